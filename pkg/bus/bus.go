// Package bus dispatches 8-bit memory and port accesses to mapped devices.
// Addresses not claimed by a device fall through to plain RAM; unclaimed
// ports read as 0xFF.
package bus

import (
	"errors"
	"fmt"
)

// MemorySize is the size of the address space.
const MemorySize = 65536

var (
	ErrConflict = errors.New("range already mapped")
	ErrNotOwner = errors.New("range not mapped by this owner")
	ErrRange    = errors.New("range outside address space")
)

type memMapping struct {
	base    uint32
	size    uint32
	handler MemoryHandler
	name    string
}

func (m memMapping) contains(addr uint32) bool {
	return addr >= m.base && addr < m.base+m.size
}

func (m memMapping) overlaps(base, size uint32) bool {
	return base < m.base+m.size && m.base < base+size
}

type ioSlot struct {
	handler IOHandler
	name    string
}

// Bus is a 64K memory space plus 256 I/O ports.
type Bus struct {
	RAM [MemorySize]byte

	mem []memMapping
	io  [256]ioSlot
	pc  uint16
}

// NewBus returns an empty bus with zeroed RAM.
func NewBus() *Bus {
	return &Bus{}
}

// MapMemory claims [base, base+size) for handler.
func (b *Bus) MapMemory(base uint32, size uint32, h MemoryHandler, name string) error {
	if size == 0 || base+size > MemorySize {
		return fmt.Errorf("%s: memory %05X+%X: %w", name, base, size, ErrRange)
	}
	for _, m := range b.mem {
		if m.overlaps(base, size) {
			if m.name == name && m.base == base && m.size == size {
				return nil
			}
			return fmt.Errorf("%s: memory %04X+%X held by %s: %w", name, base, size, m.name, ErrConflict)
		}
	}
	b.mem = append(b.mem, memMapping{base: base, size: size, handler: h, name: name})
	return nil
}

// UnmapMemory releases a range previously claimed by name. Releasing a range
// that is not mapped at all is not an error.
func (b *Bus) UnmapMemory(base uint32, size uint32, name string) error {
	for i, m := range b.mem {
		if m.base == base && m.size == size {
			if m.name != name {
				return fmt.Errorf("%s: memory %04X+%X: %w", name, base, size, ErrNotOwner)
			}
			b.mem = append(b.mem[:i], b.mem[i+1:]...)
			return nil
		}
	}
	return nil
}

// MapIO claims ports [port, port+size) for handler.
func (b *Bus) MapIO(port uint32, size uint32, h IOHandler, name string) error {
	if size == 0 || port+size > 256 {
		return fmt.Errorf("%s: port %02X+%X: %w", name, port, size, ErrRange)
	}
	for p := port; p < port+size; p++ {
		if b.io[p].handler != nil && b.io[p].name != name {
			return fmt.Errorf("%s: port %02X held by %s: %w", name, p, b.io[p].name, ErrConflict)
		}
	}
	for p := port; p < port+size; p++ {
		b.io[p] = ioSlot{handler: h, name: name}
	}
	return nil
}

// UnmapIO releases ports claimed by name.
func (b *Bus) UnmapIO(port uint32, size uint32, name string) error {
	if port+size > 256 {
		return fmt.Errorf("%s: port %02X+%X: %w", name, port, size, ErrRange)
	}
	for p := port; p < port+size; p++ {
		if b.io[p].handler != nil && b.io[p].name != name {
			return fmt.Errorf("%s: port %02X: %w", name, p, ErrNotOwner)
		}
	}
	for p := port; p < port+size; p++ {
		b.io[p] = ioSlot{}
	}
	return nil
}

// Mapped returns the name of the device answering addr, or "" for RAM.
func (b *Bus) Mapped(addr uint16) string {
	for _, m := range b.mem {
		if m.contains(uint32(addr)) {
			return m.name
		}
	}
	return ""
}

// MappedIO returns the name of the device answering port, or "".
func (b *Bus) MappedIO(port uint8) string {
	return b.io[port].name
}

// Read reads a byte from memory.
func (b *Bus) Read(addr uint16) byte {
	for _, m := range b.mem {
		if m.contains(uint32(addr)) {
			return m.handler.ReadMem(addr)
		}
	}
	return b.RAM[addr]
}

// Write writes a byte to memory.
func (b *Bus) Write(addr uint16, val byte) {
	for _, m := range b.mem {
		if m.contains(uint32(addr)) {
			m.handler.WriteMem(addr, val)
			return
		}
	}
	b.RAM[addr] = val
}

// In reads from an I/O port.
func (b *Bus) In(port uint8) byte {
	if h := b.io[port].handler; h != nil {
		return h.In(port)
	}
	return 0xFF
}

// Out writes to an I/O port. Writes to unmapped ports are dropped.
func (b *Bus) Out(port uint8, val byte) {
	if h := b.io[port].handler; h != nil {
		h.Out(port, val)
	}
}

// Deposit stores a byte the way an operator console would: through the
// normal write path.
func (b *Bus) Deposit(addr uint16, val byte) {
	b.Write(addr, val)
}

// SetPC sets the program counter a CPU attached to this bus starts from.
func (b *Bus) SetPC(pc uint16) {
	b.pc = pc
}

// PC returns the program counter set with SetPC.
func (b *Bus) PC() uint16 {
	return b.pc
}
