// Package video holds the presentation surfaces a display device draws to.
// A surface is a window of palette-resolved pixels plus a keyboard queue.
package video

import "errors"

var (
	ErrNotOpen     = errors.New("surface not open")
	ErrAlreadyOpen = errors.New("surface already open")
)

// KeyEvent is a single keyboard event from the presentation surface.
type KeyEvent struct {
	Code byte
	Down bool
}

// Surface is the window a device renders into.
type Surface interface {
	// Open creates a window showing a width x height pixel surface.
	Open(title string, width, height int) error

	// SetWindowSize sets the on-screen size. The surface is scaled to fit.
	SetWindowSize(width, height int)

	// MapRGB returns the pixel value for a colour.
	MapRGB(r, g, b uint8) uint32

	// Draw copies a width x height block of pixels to (x, y). Pixels
	// falling outside the surface are clipped.
	Draw(x, y, width, height int, pixels []uint32)

	// Refresh presents everything drawn so far.
	Refresh()

	// PollKey returns the oldest pending key event, if any.
	PollKey() (KeyEvent, bool)

	Close() error
}

// PackRGB packs a colour so that the bytes of the value, least significant
// first, are R, G, B, A. This is the layout image.RGBA and
// ebiten.Image.WritePixels use.
func PackRGB(r, g, b uint8) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | 0xFF<<24
}

// UnpackRGB is the inverse of PackRGB.
func UnpackRGB(p uint32) (r, g, b, a uint8) {
	return uint8(p), uint8(p >> 8), uint8(p >> 16), uint8(p >> 24)
}

// Blit copies a w x h block of pixels into dst (dstW x dstH) at (x, y),
// clipping anything outside dst.
func Blit(dst []uint32, dstW, dstH int, x, y, w, h int, src []uint32) {
	for row := 0; row < h; row++ {
		dy := y + row
		if dy < 0 || dy >= dstH {
			continue
		}
		for col := 0; col < w; col++ {
			dx := x + col
			if dx < 0 || dx >= dstW {
				continue
			}
			i := row*w + col
			if i >= len(src) {
				return
			}
			dst[dy*dstW+dx] = src[i]
		}
	}
}
