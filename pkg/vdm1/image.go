package vdm1

import (
	"image"

	"retrodev/pkg/video"
)

// Image renders the display into a new 586x218 image laid out as the
// window shows it: the frame drawn at (Margin, Margin) on the background,
// clipped at the right and bottom edges.
func (d *Device) Image() *image.RGBA {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ensureFramebuffer()
	d.render()

	win := make([]uint32, Width*Height)
	for i := range win {
		win[i] = d.palette[0]
	}
	video.Blit(win, Width, Height, Margin, Margin, Width, Height, d.fb)
	return video.ToImage(win, Width, Height)
}

// SavePNG renders the display to a PNG with the window's aspect ratio:
// every scanline doubled.
func (d *Device) SavePNG(path string) error {
	return video.SavePNG(path, d.Image(), 1, 2)
}
