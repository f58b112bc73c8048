package video

import (
	"fmt"
	"sync"
)

// Headless is an in-memory surface. It keeps the last presented frame and a
// queue of injected key events, which makes it the surface of choice for
// tests and batch rendering.
type Headless struct {
	// OpenErr, when set, makes Open fail with it.
	OpenErr error

	mu        sync.Mutex
	open      bool
	title     string
	width     int
	height    int
	windowW   int
	windowH   int
	frame     []uint32
	presented []uint32
	draws     int
	refreshes int
	keys      []KeyEvent
}

func NewHeadless() *Headless {
	return &Headless{}
}

func (h *Headless) Open(title string, width, height int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.OpenErr != nil {
		return h.OpenErr
	}
	if h.open {
		return ErrAlreadyOpen
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	h.open = true
	h.title = title
	h.width, h.height = width, height
	h.windowW, h.windowH = width, height
	h.frame = make([]uint32, width*height)
	h.presented = nil
	return nil
}

func (h *Headless) SetWindowSize(width, height int) {
	h.mu.Lock()
	h.windowW, h.windowH = width, height
	h.mu.Unlock()
}

func (h *Headless) MapRGB(r, g, b uint8) uint32 {
	return PackRGB(r, g, b)
}

func (h *Headless) Draw(x, y, width, height int, pixels []uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.open {
		return
	}
	Blit(h.frame, h.width, h.height, x, y, width, height, pixels)
	h.draws++
}

func (h *Headless) Refresh() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.open {
		return
	}
	if h.presented == nil {
		h.presented = make([]uint32, len(h.frame))
	}
	copy(h.presented, h.frame)
	h.refreshes++
}

func (h *Headless) PollKey() (KeyEvent, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.keys) == 0 {
		return KeyEvent{}, false
	}
	k := h.keys[0]
	h.keys = h.keys[1:]
	return k, true
}

// PushKey queues a key event for PollKey.
func (h *Headless) PushKey(k KeyEvent) {
	h.mu.Lock()
	h.keys = append(h.keys, k)
	h.mu.Unlock()
}

func (h *Headless) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.open {
		return ErrNotOpen
	}
	h.open = false
	return nil
}

// IsOpen reports whether the surface is open.
func (h *Headless) IsOpen() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.open
}

// Size returns the surface size and the requested window size.
func (h *Headless) Size() (width, height, windowW, windowH int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height, h.windowW, h.windowH
}

// Title returns the title passed to Open.
func (h *Headless) Title() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.title
}

// Frame returns a copy of the most recently presented frame, or nil if
// Refresh has not been called since Open.
func (h *Headless) Frame() []uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.presented == nil {
		return nil
	}
	c := make([]uint32, len(h.presented))
	copy(c, h.presented)
	return c
}

// Counts returns the number of Draw and Refresh calls since creation.
func (h *Headless) Counts() (draws, refreshes int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.draws, h.refreshes
}
