package vdm1

import (
	"errors"
	"fmt"

	"retrodev/pkg/logger"
	"retrodev/pkg/video"
)

// Service is the periodic refresh. It advances the blink counter, redraws
// the window, forwards at most one key event and reschedules itself.
//
// The dirty flag is set again after every redraw, so in practice every
// tick redraws.
func (d *Device) Service() error {
	d.mu.Lock()
	d.counter++

	if d.counter%blinkTicks == 0 && d.cursor == CursorBlink {
		d.blink = !d.blink
		d.dirty = true
	}

	if d.dirty {
		d.refresh()
		d.dirty = true
	}

	onKey := d.onKey
	surface := d.surface
	d.mu.Unlock()

	var err error
	if onKey != nil && surface != nil {
		if ev, ok := surface.PollKey(); ok {
			err = onKey(ev)
		}
	}

	d.sched.ActivateAbs(d.unit, d.unit.Wait)
	return err
}

// refresh renders and presents the frame. The caller holds d.mu.
func (d *Device) refresh() {
	if !d.active {
		return
	}
	d.render()
	d.surface.Draw(Margin, Margin, Width, Height, d.fb)
	d.surface.Refresh()

	if d.debug&DebugVideo != 0 {
		logger.Log(Name, "refresh")
	}
}

// Activate attaches the display: it opens the surface window, claims the
// character store and status port on the bus and starts the refresh.
// When the surface cannot be opened nothing is mapped or scheduled and the
// device stays inactive.
func (d *Device) Activate() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.active {
		if d.surface == nil {
			return fmt.Errorf("%s: %w", Name, ErrSurface)
		}
		if err := d.surface.Open("Display", Width, Height); err != nil && !errors.Is(err, video.ErrAlreadyOpen) {
			return fmt.Errorf("%s: %w: %w", Name, ErrSurface, err)
		}
		d.surface.SetWindowSize(Width, Height*2)

		d.palette[0] = d.surface.MapRGB(0x00, 0x00, 0x00)
		d.palette[1] = d.surface.MapRGB(0x00, 0xFF, 0x30)

		d.fb = make([]uint32, Width*Height)
		for i := range d.fb {
			d.fb[i] = d.palette[0]
		}
		d.active = true

		if d.debug&DebugVideo != 0 {
			logger.Logf(Name, "window open %dx%d", Width, Height)
		}
	}

	if err := d.mapper.MapMemory(uint32(d.memBase), MemSize, d, Name); err != nil {
		return d.abort(err)
	}
	if err := d.mapper.MapIO(uint32(d.ioBase), IOSize, d, Name); err != nil {
		_ = d.mapper.UnmapMemory(uint32(d.memBase), MemSize, Name)
		return d.abort(err)
	}

	d.sched.ActivateAbs(d.unit, firstTick)
	return nil
}

// abort undoes a partial activation after a bus conflict.
func (d *Device) abort(err error) error {
	d.sched.Cancel(d.unit)
	if d.active {
		d.active = false
		_ = d.surface.Close()
	}
	return fmt.Errorf("%s: %w", Name, err)
}

// Deactivate releases the bus ranges, stops the refresh and closes the
// window. Deactivating an inactive device is a no-op apart from the bus
// and scheduler cleanup.
func (d *Device) Deactivate() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []error
	if err := d.mapper.UnmapMemory(uint32(d.memBase), MemSize, Name); err != nil {
		errs = append(errs, err)
	}
	if err := d.mapper.UnmapIO(uint32(d.ioBase), IOSize, Name); err != nil {
		errs = append(errs, err)
	}

	d.sched.Cancel(d.unit)

	if d.active {
		d.active = false
		if d.debug&DebugVideo != 0 {
			logger.Logf(Name, "window close")
		}
		if err := d.surface.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
