package vdm1

import (
	"fmt"
	"strconv"
	"strings"
)

// Ctrl is the control character switch setting.
type Ctrl int

const (
	Mode1 Ctrl = iota + 1 // control characters suppressed, CR and VT enabled
	Mode2                 // control characters blanked, CR and VT enabled
	Mode3                 // control characters displayable, CR and VT enabled
	Mode4                 // control characters displayable, CR and VT disabled
)

// Cursor is the cursor switch setting.
type Cursor int

const (
	CursorNone    Cursor = iota + 1 // all cursors suppressed
	CursorBlink                     // blinking cursor
	CursorNoBlink                   // non-blinking cursor
)

// Display is the video polarity switch setting.
type Display int

const (
	DisplayNone    Display = iota + 1 // no display
	DisplayNormal                     // normal video
	DisplayReverse                    // reverse video
)

type token[T comparable] struct {
	name  string
	value T
}

var ctrlTokens = []token[Ctrl]{
	{"MODE1", Mode1},
	{"MODE2", Mode2},
	{"MODE3", Mode3},
	{"MODE4", Mode4},
}

var cursorTokens = []token[Cursor]{
	{"NONE", CursorNone},
	{"BLINK", CursorBlink},
	{"NOBLINK", CursorNoBlink},
}

var displayTokens = []token[Display]{
	{"NONE", DisplayNone},
	{"NORMAL", DisplayNormal},
	{"REVERSE", DisplayReverse},
}

// lookup finds the token input names. Matching ignores case and accepts any
// prefix that selects exactly one token; an exact name always wins.
func lookup[T comparable](tokens []token[T], input string) (T, error) {
	var zero T
	s := strings.ToUpper(strings.TrimSpace(input))
	if s == "" {
		return zero, ErrMissingValue
	}

	var found []token[T]
	for _, t := range tokens {
		if t.name == s {
			return t.value, nil
		}
		if strings.HasPrefix(t.name, s) {
			found = append(found, t)
		}
	}
	if len(found) != 1 {
		return zero, fmt.Errorf("%q: %w", input, ErrUnknownValue)
	}
	return found[0].value, nil
}

func nameOf[T comparable](tokens []token[T], v T) string {
	for _, t := range tokens {
		if t.value == v {
			return t.name
		}
	}
	return "UNKNOWN"
}

func (c Ctrl) String() string    { return nameOf(ctrlTokens, c) }
func (c Cursor) String() string  { return nameOf(cursorTokens, c) }
func (d Display) String() string { return nameOf(displayTokens, d) }

// ParseCtrl, ParseCursor and ParseDisplay decode a switch setting without
// touching a device.
func ParseCtrl(s string) (Ctrl, error)       { return lookup(ctrlTokens, s) }
func ParseCursor(s string) (Cursor, error)   { return lookup(cursorTokens, s) }
func ParseDisplay(s string) (Display, error) { return lookup(displayTokens, s) }

// SetCtrl sets the control character switches.
func (d *Device) SetCtrl(s string) error {
	v, err := ParseCtrl(s)
	if err != nil {
		return fmt.Errorf("CTRL: %w", err)
	}
	d.mu.Lock()
	d.ctrl = v
	d.dirty = true
	d.mu.Unlock()
	return nil
}

// SetCursor sets the cursor switches. NOBLINK also ends any blink phase so
// highlighted characters are not left inverted.
func (d *Device) SetCursor(s string) error {
	v, err := ParseCursor(s)
	if err != nil {
		return fmt.Errorf("CURSOR: %w", err)
	}
	d.mu.Lock()
	d.cursor = v
	if v == CursorNoBlink {
		d.blink = false
	}
	d.dirty = true
	d.mu.Unlock()
	return nil
}

// SetDisplay sets the video polarity switches.
func (d *Device) SetDisplay(s string) error {
	v, err := ParseDisplay(s)
	if err != nil {
		return fmt.Errorf("DISPLAY: %w", err)
	}
	d.mu.Lock()
	d.display = v
	d.dirty = true
	d.mu.Unlock()
	return nil
}

// SetMemBase moves the character store. The device must be inactive.
func (d *Device) SetMemBase(s string) error {
	v, err := parseHex(s, 0xFFFF)
	if err != nil {
		return fmt.Errorf("MEMBASE: %w", err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active {
		return fmt.Errorf("MEMBASE: %w", ErrActive)
	}
	d.memBase = uint16(v) &^ memMask
	return nil
}

// SetIOBase moves the status port. The device must be inactive.
func (d *Device) SetIOBase(s string) error {
	v, err := parseHex(s, 0xFF)
	if err != nil {
		return fmt.Errorf("IOBASE: %w", err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active {
		return fmt.Errorf("IOBASE: %w", ErrActive)
	}
	d.ioBase = uint8(v)
	return nil
}

func parseHex(s string, limit uint64) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrMissingValue
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 32)
	if err != nil || v > limit {
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownValue)
	}
	return v, nil
}

// Set applies a named switch: CTRL, CURSOR, DISPLAY, MEMBASE or IOBASE.
func (d *Device) Set(param, value string) error {
	switch strings.ToUpper(strings.TrimSpace(param)) {
	case "CTRL":
		return d.SetCtrl(value)
	case "CURSOR":
		return d.SetCursor(value)
	case "DISPLAY":
		return d.SetDisplay(value)
	case "MEMBASE":
		return d.SetMemBase(value)
	case "IOBASE":
		return d.SetIOBase(value)
	}
	return fmt.Errorf("%q: %w", param, ErrUnknownParam)
}

// Show formats a named switch as NAME=VALUE.
func (d *Device) Show(param string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch p := strings.ToUpper(strings.TrimSpace(param)); p {
	case "CTRL":
		return p + "=" + d.ctrl.String(), nil
	case "CURSOR":
		return p + "=" + d.cursor.String(), nil
	case "DISPLAY":
		return p + "=" + d.display.String(), nil
	case "MEMBASE":
		return fmt.Sprintf("%s=%04X-%04X", p, d.memBase, uint32(d.memBase)+MemSize-1), nil
	case "IOBASE":
		return fmt.Sprintf("%s=%02X", p, d.ioBase), nil
	}
	return "", fmt.Errorf("%q: %w", param, ErrUnknownParam)
}

// Settings returns the current switch settings.
func (d *Device) Settings() (Ctrl, Cursor, Display) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ctrl, d.cursor, d.display
}
