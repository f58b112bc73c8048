package ka4xx

import (
	"fmt"
)

const (
	ORBase  = 0x20200000
	ORSize  = 1 << 18
	ORSlots = 4
)

type optionSlot struct {
	device string
	rom    []byte
}

// OptionROMs are the self test ROMs of the option boards, one address slot
// per board. The first byte of a ROM image gives the number of chips it is
// spread over, which sets how its bytes appear in the longwords read back.
type OptionROMs struct {
	slots [ORSlots]optionSlot

	Delay func()
}

func NewOptionROMs() *OptionROMs {
	return &OptionROMs{}
}

// Map places rom in slot index on behalf of device. The image must fit in
// the slot. Its length is used as a wrap mask and should be a power of two.
func (o *OptionROMs) Map(index int, device string, rom []byte) error {
	if index < 0 || index >= ORSlots {
		return fmt.Errorf("option ROM %d: %w", index, ErrSlot)
	}
	if len(rom) > ORSize {
		return fmt.Errorf("%s: device ROM size of %d exceeds slot size %d: %w", device, len(rom), ORSize, ErrTooLarge)
	}
	o.slots[index] = optionSlot{device: device, rom: rom}
	return nil
}

// Unmap empties slot index.
func (o *OptionROMs) Unmap(index int) error {
	if index < 0 || index >= ORSlots {
		return fmt.Errorf("option ROM %d: %w", index, ErrSlot)
	}
	o.slots[index] = optionSlot{}
	return nil
}

// Read returns the longword at physical address pa. Unused byte lanes and
// empty slots read as ones.
func (o *OptionROMs) Read(pa uint32) uint32 {
	off := pa - ORBase
	s := &o.slots[(off>>18)&3]
	data := uint32(0xFFFFFFFF)

	if len(s.rom) > 0 {
		mask := uint32(len(s.rom) - 1)
		switch s.rom[0] {
		case 1:
			rg := (off >> 2) & mask
			data = 0xFFFFFF00 | uint32(s.byteAt(rg))
		case 2:
			rg := (off >> 1) & mask
			data = 0xFFFF0000 | uint32(s.byteAt(rg)) | uint32(s.byteAt(rg+1))<<8
		case 4:
			rg := off & mask
			data = uint32(s.byteAt(rg)) | uint32(s.byteAt(rg+1))<<8 |
				uint32(s.byteAt(rg+2))<<16 | uint32(s.byteAt(rg+3))<<24
		}
	}
	if o.Delay != nil {
		o.Delay()
	}
	return data
}

func (s *optionSlot) byteAt(i uint32) byte {
	if int(i) >= len(s.rom) {
		return 0
	}
	return s.rom[i]
}

// Show describes slot index.
func (o *OptionROMs) Show(index int) string {
	if index < 0 || index >= ORSlots || o.slots[index].rom == nil {
		return "No Option Enabled"
	}
	return fmt.Sprintf("ROM for %s device", o.slots[index].device)
}
