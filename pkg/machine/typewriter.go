package machine

import (
	"retrodev/pkg/vdm1"
	"retrodev/pkg/video"
)

// Terminal is the part of the bus a Typewriter drives.
type Terminal interface {
	Read(addr uint16) byte
	Write(addr uint16, val byte)
	Out(port uint8, val byte)
}

// Typewriter echoes keys into the character store. The cursor is shown by
// the high bit of the cell under it, and the screen scrolls with the start
// offset in the status byte.
type Typewriter struct {
	term    Terminal
	memBase uint16
	port    uint8

	col, row int // row is on screen, 0 at the top
	start    int
}

func NewTypewriter(t Terminal, memBase uint16, port uint8) *Typewriter {
	w := &Typewriter{term: t, memBase: memBase, port: port}
	w.Clear()
	return w
}

// Clear blanks the screen and homes the cursor.
func (w *Typewriter) Clear() {
	for i := 0; i < vdm1.MemSize; i++ {
		w.term.Write(w.memBase+uint16(i), ' ')
	}
	w.col, w.row, w.start = 0, 0, 0
	w.term.Out(w.port, 0)
	w.cursor(true)
}

func (w *Typewriter) addr(col, row int) uint16 {
	phys := (w.start + row) % vdm1.Rows
	return w.memBase + uint16(phys*vdm1.Cols+col)
}

func (w *Typewriter) cursor(on bool) {
	a := w.addr(w.col, w.row)
	c := w.term.Read(a) &^ 0x80
	if on {
		c |= 0x80
	}
	w.term.Write(a, c)
}

// Key handles one keyboard event. It satisfies the display's keyboard
// callback.
func (w *Typewriter) Key(ev video.KeyEvent) error {
	if !ev.Down {
		return nil
	}
	w.cursor(false)
	switch c := ev.Code; {
	case c == '\r' || c == '\n':
		w.newline()
	case c == 8 || c == 0x7F:
		if w.col > 0 {
			w.col--
			w.term.Write(w.addr(w.col, w.row), ' ')
		}
	case c == 0x0C:
		w.Clear()
		return nil
	case c >= 0x20 && c < 0x7F:
		w.term.Write(w.addr(w.col, w.row), c)
		w.col++
		if w.col == vdm1.Cols {
			w.newline()
		}
	}
	w.cursor(true)
	return nil
}

func (w *Typewriter) newline() {
	w.col = 0
	if w.row < vdm1.Rows-1 {
		w.row++
		return
	}
	w.start = (w.start + 1) % vdm1.Rows
	w.term.Out(w.port, byte(w.start))
	for x := 0; x < vdm1.Cols; x++ {
		w.term.Write(w.addr(x, w.row), ' ')
	}
}

// Position returns the cursor column and screen row.
func (w *Typewriter) Position() (col, row int) {
	return w.col, w.row
}
