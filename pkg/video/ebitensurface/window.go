// Package ebitensurface presents a video.Surface in an ebiten window. It is
// kept apart from package video so headless users do not link the GUI
// stack.
package ebitensurface

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"retrodev/pkg/video"
)

// maxPaste caps the number of bytes queued from a single clipboard paste.
const maxPaste = 4096

// Window is a video.Surface shown in an ebiten window. The caller runs Game with
// ebiten.RunGame on the main goroutine while the device draws into the
// surface from elsewhere.
type Window struct {
	// Status, when set, is drawn along the bottom edge of the window.
	Status func() string

	mu        sync.RWMutex
	open      bool
	closed    bool
	width     int
	height    int
	scaleX    int
	scaleY    int
	frame     []uint32
	pix       []byte
	window    *ebiten.Image
	keys      []video.KeyEvent
	refreshes uint64

	clipboardOnce sync.Once
	clipboardOK   bool
}

func New() *Window {
	return &Window{scaleX: 1, scaleY: 1}
}

func (e *Window) Open(title string, width, height int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.open {
		return video.ErrAlreadyOpen
	}
	e.open = true
	e.closed = false
	e.width, e.height = width, height
	e.frame = make([]uint32, width*height)
	e.pix = make([]byte, width*height*4)
	e.window = nil

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return nil
}

func (e *Window) SetWindowSize(width, height int) {
	e.mu.Lock()
	if e.width > 0 && e.height > 0 {
		e.scaleX = max(width/e.width, 1)
		e.scaleY = max(height/e.height, 1)
	}
	e.mu.Unlock()
	ebiten.SetWindowSize(width, height)
}

func (e *Window) MapRGB(r, g, b uint8) uint32 {
	return video.PackRGB(r, g, b)
}

func (e *Window) Draw(x, y, width, height int, pixels []uint32) {
	e.mu.Lock()
	if e.open {
		video.Blit(e.frame, e.width, e.height, x, y, width, height, pixels)
	}
	e.mu.Unlock()
}

// Refresh converts the drawn frame into the byte layout the next ebiten
// Draw uploads.
func (e *Window) Refresh() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.open {
		return
	}
	for i, p := range e.frame {
		r, g, b, a := video.UnpackRGB(p)
		e.pix[i*4+0] = r
		e.pix[i*4+1] = g
		e.pix[i*4+2] = b
		e.pix[i*4+3] = a
	}
	e.refreshes++
}

func (e *Window) PollKey() (video.KeyEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.keys) == 0 {
		return video.KeyEvent{}, false
	}
	k := e.keys[0]
	e.keys = e.keys[1:]
	return k, true
}

func (e *Window) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.open {
		return video.ErrNotOpen
	}
	e.open = false
	e.closed = true
	return nil
}

func (e *Window) push(b byte) {
	e.mu.Lock()
	e.keys = append(e.keys, video.KeyEvent{Code: b, Down: true})
	e.mu.Unlock()
}

// Game returns the ebiten.Game presenting the surface.
func (e *Window) Game() ebiten.Game {
	return game{e}
}

type game struct {
	e *Window
}

func (g game) Update() error {
	e := g.e
	e.mu.RLock()
	closed := e.closed
	e.mu.RUnlock()
	if closed {
		return ebiten.Termination
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		e.paste()
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		if r > 0 && r < 0x80 {
			e.push(byte(r))
		}
	}
	for _, k := range specialKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			e.push(k.code)
		}
	}
	return nil
}

var specialKeys = []struct {
	key  ebiten.Key
	code byte
}{
	{ebiten.KeyEnter, '\r'},
	{ebiten.KeyNumpadEnter, '\r'},
	{ebiten.KeyBackspace, 0x08},
	{ebiten.KeyTab, '\t'},
	{ebiten.KeyEscape, 0x1B},
	{ebiten.KeyDelete, 0x7F},
}

func (e *Window) paste() {
	e.clipboardOnce.Do(func() {
		e.clipboardOK = clipboard.Init() == nil
	})
	if !e.clipboardOK {
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) > maxPaste {
		data = data[:maxPaste]
	}
	for i := 0; i < len(data); i++ {
		b := data[i]
		if b == '\n' {
			if i > 0 && data[i-1] == '\r' {
				continue
			}
			b = '\r'
		}
		if b < 0x80 {
			e.push(b)
		}
	}
}

func (g game) Draw(screen *ebiten.Image) {
	e := g.e
	e.mu.Lock()
	if e.width == 0 || e.height == 0 {
		e.mu.Unlock()
		return
	}
	if e.window == nil {
		e.window = ebiten.NewImage(e.width, e.height)
	}
	e.window.WritePixels(e.pix)
	sx, sy := e.scaleX, e.scaleY
	e.mu.Unlock()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sx), float64(sy))
	screen.DrawImage(e.window, op)

	if e.Status != nil {
		h := screen.Bounds().Dy()
		text.Draw(screen, e.Status(), basicfont.Face7x13, 4, h-4, color.RGBA{0x80, 0x80, 0x80, 0xFF})
	}
}

func (g game) Layout(_, _ int) (int, int) {
	e := g.e
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.width == 0 || e.height == 0 {
		return 1, 1
	}
	return e.width * e.scaleX, e.height * e.scaleY
}

var _ video.Surface = (*Window)(nil)
