package vdm1

import (
	"testing"

	"retrodev/pkg/bus"
	"retrodev/pkg/sched"
	"retrodev/pkg/video"
)

type rig struct {
	dev     *Device
	bus     *bus.Bus
	sched   *sched.Scheduler
	surface *video.Headless
}

func newRig(t *testing.T) *rig {
	t.Helper()
	r := &rig{
		bus:     bus.NewBus(),
		sched:   sched.NewScheduler(),
		surface: video.NewHeadless(),
	}
	r.dev = New(DefaultConfig(), r.bus, r.sched, r.surface)
	return r
}

func (d *Device) fill(b byte) {
	for i := range d.ram {
		d.ram[i] = b
	}
}

// cellPixels cuts the 9x13 block of character cell (x, y) out of a frame
// laid out like the framebuffer.
func cellPixels(frame []uint32, x, y int) []uint32 {
	out := make([]uint32, 0, CharWidth*CharHeight)
	for ry := 0; ry < CharHeight; ry++ {
		start := (y*CharHeight+ry)*Width + x*CharWidth
		out = append(out, frame[start:start+CharWidth]...)
	}
	return out
}

// expectedCell builds the cell for a glyph straight from the character ROM,
// optionally with every bit inverted.
func expectedCell(code byte, invert bool, bg, fg uint32) []uint32 {
	out := make([]uint32, 0, CharWidth*CharHeight)
	for ry := 0; ry < CharHeight; ry++ {
		c := charset[code&0x7F][ry]
		if invert {
			c = ^c
		}
		for rx := 0; rx < CharWidth; rx++ {
			bit := rx
			if rx == CharWidth-1 {
				bit = 0
			}
			if c&(0x80>>bit) != 0 {
				out = append(out, fg)
			} else {
				out = append(out, bg)
			}
		}
	}
	return out
}

func equalCells(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
