// Package ka4xx implements the standard devices of the KA4xx VAXstation and
// MicroVAX CPU boards: the boot ROM, the battery backed NVR with its watch
// chip, the option ROM slots and the 100Hz interval clock.
//
// Physical addresses are 32 bits. Register reads and writes are longword
// accesses; console examine and deposit use byte offsets that must be
// longword aligned.
package ka4xx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	ROMBase  = 0x20040000
	ROMSize  = 1 << 18
	romAMask = ROMSize - 1
)

var (
	ErrArgument    = errors.New("invalid argument")
	ErrNonExistent = errors.New("non-existent memory")
	ErrTooLarge    = errors.New("ROM larger than slot")
	ErrSlot        = errors.New("no such option ROM slot")
)

// ROM is the boot ROM, seen as an array of longwords. The ROM appears twice
// in its address window: reads wrap at ROMSize.
type ROM struct {
	data []uint32

	// NoDelay gives ROM reads RAM speed. When false, Delay, if set, runs on
	// every read so that code timing loops in the ROM see a slow part.
	NoDelay bool
	Delay   func()
}

func NewROM() *ROM {
	return &ROM{data: make([]uint32, ROMSize>>2)}
}

// Read returns the longword at physical address pa.
func (r *ROM) Read(pa uint32) uint32 {
	rg := ((pa - ROMBase) & romAMask) >> 2
	val := r.data[rg]
	if !r.NoDelay && r.Delay != nil {
		r.Delay()
	}
	return val
}

// WriteByte merges one byte into the longword holding pa.
func (r *ROM) WriteByte(pa uint32, val byte) {
	rg := ((pa - ROMBase) & romAMask) >> 2
	sc := (pa & 3) << 3
	r.data[rg] = uint32(val)<<sc | r.data[rg]&^(0xFF<<sc)
}

// Examine returns the longword at byte offset addr.
func (r *ROM) Examine(addr uint32) (uint32, error) {
	return examine(r.data, addr, ROMSize)
}

// Deposit stores a longword at byte offset addr.
func (r *ROM) Deposit(addr, val uint32) error {
	return deposit(r.data, addr, val, ROMSize)
}

// Load fills the ROM from a little endian byte image, starting at offset 0.
// It returns the number of bytes loaded.
func (r *ROM) Load(rd io.Reader) (int, error) {
	buf, err := io.ReadAll(io.LimitReader(rd, ROMSize+1))
	if err != nil {
		return 0, fmt.Errorf("rom load: %w", err)
	}
	if len(buf) > ROMSize {
		return 0, fmt.Errorf("rom load: image larger than %d bytes: %w", ROMSize, ErrTooLarge)
	}
	for len(buf)%4 != 0 {
		buf = append(buf, 0)
	}
	for i := 0; i < len(buf); i += 4 {
		r.data[i>>2] = binary.LittleEndian.Uint32(buf[i:])
	}
	return len(buf), nil
}

func examine(data []uint32, addr, size uint32) (uint32, error) {
	if addr&3 != 0 {
		return 0, fmt.Errorf("address %X not longword aligned: %w", addr, ErrArgument)
	}
	if addr >= size {
		return 0, fmt.Errorf("address %X: %w", addr, ErrNonExistent)
	}
	return data[addr>>2], nil
}

func deposit(data []uint32, addr, val, size uint32) error {
	if addr&3 != 0 {
		return fmt.Errorf("address %X not longword aligned: %w", addr, ErrArgument)
	}
	if addr >= size {
		return fmt.Errorf("address %X: %w", addr, ErrNonExistent)
	}
	data[addr>>2] = val
	return nil
}

// Attach loads the ROM image in path.
func (r *ROM) Attach(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("rom attach: %w", err)
	}
	defer f.Close()
	_, err = r.Load(f)
	return err
}
