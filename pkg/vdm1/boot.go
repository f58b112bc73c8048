package vdm1

import (
	"fmt"

	"retrodev/pkg/asm"
)

// Host is the machine a boot program is loaded into. *bus.Bus satisfies it.
type Host interface {
	Deposit(addr uint16, val byte)
	SetPC(pc uint16)
}

// BootSource returns the 8080 test program that fills the screen with every
// character code, advancing the pattern by one after a delay loop.
func (d *Device) BootSource() string {
	d.mu.Lock()
	memBase, ioBase := d.memBase, d.ioBase
	d.mu.Unlock()

	end := byte((uint32(memBase) + MemSize) >> 8)
	return fmt.Sprintf(`; VDM-1 test pattern
        MVI  A,0
        OUT  0%02XH       ; no shadow rows, start at row 0
        MVI  C,0
        MVI  B,0
fill:   LXI  H,0%04XH
next:   DCR  B
        MOV  M,B
        INX  H
        MOV  A,H
        CPI  0%02XH       ; past the end of the character store?
        JNZ  next
delay:  DCX  H
        MOV  A,H
        ORA  A
        JNZ  delay
        INR  C
        MOV  B,C
        JMP  fill
`, ioBase, memBase, end)
}

// BootProgram assembles the test program.
func (d *Device) BootProgram() ([]byte, error) {
	prog, _, err := asm.Assemble(d.BootSource())
	if err != nil {
		return nil, fmt.Errorf("%s: boot program: %w", Name, err)
	}
	return prog, nil
}

// Boot deposits the test program at address 0 and points the CPU at it.
func (d *Device) Boot(h Host) error {
	prog, err := d.BootProgram()
	if err != nil {
		return err
	}
	for i, b := range prog {
		h.Deposit(uint16(i), b)
	}
	h.SetPC(0)
	return nil
}
