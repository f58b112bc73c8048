package vdm1

import (
	"retrodev/pkg/grid"
)

// render scans the character store into the framebuffer. The caller holds
// d.mu.
//
// The start column field of the status byte offsets the scan by whole rows.
// Once a CR or VT has been seen in MODE2 or MODE3 the rest of the pass is
// blank: neither latch is cleared at the end of a row.
func (d *Device) render() {
	addr := int(d.dstat&colMask) * Cols
	shadow := int(d.dstat&rowMask) >> 4

	crvt := d.ctrl == Mode2 || d.ctrl == Mode3
	suppress := d.ctrl == Mode1 || d.ctrl == Mode2

	var eolBlank, eosBlank bool

	for y := 0; y < Rows; y++ {
		for x := 0; x < Cols; x++ {
			c := d.ram[addr]
			addr = (addr + 1) & memMask
			code := c & 0x7F

			if crvt {
				switch code {
				case cr:
					eolBlank = true
				case vt:
					eosBlank = true
				}
			}

			if d.display == DisplayNone || eolBlank || eosBlank || y < shadow {
				c = ' '
			}

			if suppress && (code < 0x20 || code == 0x7F) {
				c = ' '
			}

			d.blit(c, x, y)
		}
	}
}

// blit draws one character cell. Bit 7 of b highlights the character by
// inverting it, except during the blink phase. Reverse video inverts it
// again. The ninth pixel column repeats the leftmost glyph bit.
func (d *Device) blit(b byte, x, y int) {
	px, py := grid.PixelOrigin(x, y, CharWidth, CharHeight)
	glyph := &charset[b&0x7F]

	for ry := 0; ry < CharHeight; ry++ {
		c := glyph[ry]

		if !d.blink && b&0x80 != 0 {
			c = ^c
		}
		if d.display == DisplayReverse {
			c = ^c
		}

		row := d.fb[(py+ry)*Width+px : (py+ry)*Width+px+CharWidth]
		for rx := 0; rx < CharWidth-1; rx++ {
			row[rx] = d.pen(c&(0x80>>rx) != 0)
		}
		row[CharWidth-1] = d.pen(c&0x80 != 0)
	}
}

func (d *Device) pen(bit bool) uint32 {
	if bit != d.reverse {
		return d.palette[1]
	}
	return d.palette[0]
}

// ensureFramebuffer allocates the framebuffer filled with the background
// colour. The caller holds d.mu.
func (d *Device) ensureFramebuffer() {
	if d.fb != nil {
		return
	}
	d.fb = make([]uint32, Width*Height)
	for i := range d.fb {
		d.fb[i] = d.palette[0]
	}
}

// Render scans the character store into the framebuffer now, whether or
// not the device is active.
func (d *Device) Render() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ensureFramebuffer()
	d.render()
}

// Framebuffer returns a copy of the framebuffer, or nil if nothing has
// been rendered.
func (d *Device) Framebuffer() []uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fb == nil {
		return nil
	}
	out := make([]uint32, len(d.fb))
	copy(out, d.fb)
	return out
}

// Palette returns the background and foreground pixel values.
func (d *Device) Palette() (bg, fg uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.palette[0], d.palette[1]
}
