package ka4xx

import (
	"fmt"
)

// Board groups the standard devices of one CPU board and decodes their
// physical address windows.
type Board struct {
	ROM    *ROM
	NVR    *NVR
	Option *OptionROMs
	Clock  *Clock
}

func NewBoard(s Scheduler) *Board {
	return &Board{
		ROM:    NewROM(),
		NVR:    NewNVR(),
		Option: NewOptionROMs(),
		Clock:  NewClock(s, DefaultTPS),
	}
}

// Read returns the longword at physical address pa.
func (b *Board) Read(pa uint32) (uint32, error) {
	switch {
	case pa >= ROMBase && pa < ROMBase+ROMSize:
		return b.ROM.Read(pa), nil
	case pa >= ORBase && pa < ORBase+ORSlots*ORSize:
		return b.Option.Read(pa), nil
	case pa >= NVRBase && pa < NVRBase+NVRSize:
		return b.NVR.Read(pa), nil
	}
	return 0, fmt.Errorf("read %08X: %w", pa, ErrNonExistent)
}

// Write stores a longword at physical address pa. Only the NVR is
// writable.
func (b *Board) Write(pa, val uint32) error {
	if pa >= NVRBase && pa < NVRBase+NVRSize {
		b.NVR.Write(pa, val)
		return nil
	}
	return fmt.Errorf("write %08X: %w", pa, ErrNonExistent)
}

// SetDebug turns register logging on or off for every device.
func (b *Board) SetDebug(on bool) {
	b.NVR.Debug = on
	b.Clock.mu.Lock()
	b.Clock.Debug = on
	b.Clock.mu.Unlock()
}
