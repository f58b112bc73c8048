// Package vdm1 emulates the Processor Technology VDM-1, a 64x16 character
// video display for S-100 machines. The display answers a 1K block of memory
// holding the characters on screen and one output port holding the scroll
// status. A periodic service routine scans the character memory through the
// character generator ROM into a framebuffer and hands it to a
// presentation surface.
package vdm1

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"retrodev/pkg/bus"
	"retrodev/pkg/grid"
	"retrodev/pkg/logger"
	"retrodev/pkg/sched"
	"retrodev/pkg/video"
)

const (
	Margin     = 5
	CharWidth  = 9
	CharHeight = 13
	Cols       = 64
	Rows       = 16

	// Width and Height are the size of the rendered surface in pixels.
	Width  = Cols*CharWidth + Margin*2
	Height = Rows*CharHeight + Margin*2

	MemBase = 0xCC00
	MemSize = 1024
	memMask = MemSize - 1

	IOBase = 0xFE
	IOSize = 1

	// DefaultWait is the refresh interval of the service routine.
	DefaultWait = 25 * time.Millisecond

	// firstTick is the delay between activation and the first refresh.
	firstTick = 25 * time.Microsecond

	// blinkTicks is the number of service calls per blink phase.
	blinkTicks = 10
)

// Status byte layout.
const (
	rowMask = 0xF0 // rows blanked from the top of the screen
	colMask = 0x0F // start offset in units of one row
)

const (
	cr = 0x0D
	vt = 0x0B
)

// Name is the device name used for bus ownership and log tags.
const Name = "vdm1"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrMissingValue    = fmt.Errorf("missing value: %w", ErrInvalidArgument)
	ErrUnknownValue    = fmt.Errorf("unknown value: %w", ErrInvalidArgument)
	ErrUnknownParam    = fmt.Errorf("unknown parameter: %w", ErrInvalidArgument)
	ErrActive          = errors.New("device is active")
	ErrSurface         = errors.New("display surface unavailable")
)

// DebugFlags select which activity is written to the central log.
type DebugFlags uint8

const (
	DebugReg   DebugFlags = 1 << iota // status register writes
	DebugVideo                        // window open, close and refresh
)

// ParseDebug parses a ';' or ',' separated list of REG and VIDEO. ALL
// enables both.
func ParseDebug(s string) (DebugFlags, error) {
	var f DebugFlags
	for _, name := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' }) {
		switch strings.ToUpper(strings.TrimSpace(name)) {
		case "REG":
			f |= DebugReg
		case "VIDEO":
			f |= DebugVideo
		case "ALL":
			f |= DebugReg | DebugVideo
		case "":
		default:
			return 0, fmt.Errorf("debug flag %q: %w", name, ErrUnknownValue)
		}
	}
	return f, nil
}

// Mapper is the part of the host bus the display claims its address ranges
// from. *bus.Bus satisfies it.
type Mapper interface {
	MapMemory(base, size uint32, h bus.MemoryHandler, name string) error
	UnmapMemory(base, size uint32, name string) error
	MapIO(port, size uint32, h bus.IOHandler, name string) error
	UnmapIO(port, size uint32, name string) error
}

// Scheduler runs the periodic refresh. *sched.Scheduler satisfies it.
type Scheduler interface {
	ActivateAbs(u *sched.Unit, after time.Duration)
	Cancel(u *sched.Unit)
}

// Config holds the device switches and jumpers.
type Config struct {
	MemBase uint16
	IOBase  uint8
	Wait    time.Duration
	Ctrl    Ctrl
	Cursor  Cursor
	Display Display
	Debug   DebugFlags
}

// DefaultConfig returns the factory settings: memory at CC00, status port
// FE, MODE4, non-blinking cursor, normal video.
func DefaultConfig() Config {
	return Config{
		MemBase: MemBase,
		IOBase:  IOBase,
		Wait:    DefaultWait,
		Ctrl:    Mode4,
		Cursor:  CursorNoBlink,
		Display: DisplayNormal,
	}
}

// Device is one VDM-1 board.
type Device struct {
	mu sync.Mutex

	ram     [MemSize]byte
	dstat   byte
	dirty   bool
	blink   bool
	counter uint16
	active  bool

	// reverse swaps the palette. No switch sets it; it is the polarity term
	// every pixel is XORed with.
	reverse bool

	fb      []uint32
	palette [2]uint32

	ctrl    Ctrl
	cursor  Cursor
	display Display

	memBase uint16
	ioBase  uint8
	debug   DebugFlags

	unit    *sched.Unit
	mapper  Mapper
	sched   Scheduler
	surface video.Surface

	onKey func(video.KeyEvent) error
}

// New creates a display wired to a bus, a scheduler and a presentation
// surface. The device stays inactive until Activate.
func New(cfg Config, m Mapper, s Scheduler, surface video.Surface) *Device {
	if cfg.Wait <= 0 {
		cfg.Wait = DefaultWait
	}
	d := &Device{
		dirty:   true,
		ctrl:    cfg.Ctrl,
		cursor:  cfg.Cursor,
		display: cfg.Display,
		memBase: cfg.MemBase,
		ioBase:  cfg.IOBase,
		debug:   cfg.Debug,
		mapper:  m,
		sched:   s,
		surface: surface,
	}
	d.palette[0] = video.PackRGB(0x00, 0x00, 0x00)
	d.palette[1] = video.PackRGB(0x00, 0xFF, 0x30)
	d.unit = &sched.Unit{
		Name: Name,
		Wait: cfg.Wait,
		Action: func(*sched.Unit) error {
			return d.Service()
		},
	}
	return d
}

// Unit returns the scheduler unit that drives the refresh.
func (d *Device) Unit() *sched.Unit {
	return d.unit
}

// ReadMem implements bus.MemoryHandler.
func (d *Device) ReadMem(addr uint16) byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ram[addr&memMask]
}

// WriteMem implements bus.MemoryHandler. Addresses wrap within the 1K
// character store.
func (d *Device) WriteMem(addr uint16, val byte) {
	d.mu.Lock()
	d.ram[addr&memMask] = val
	d.dirty = true
	d.mu.Unlock()
}

// In implements bus.IOHandler. The status port is write only.
func (d *Device) In(port uint8) byte {
	return 0xFF
}

// Out implements bus.IOHandler and latches the status byte.
func (d *Device) Out(port uint8, val byte) {
	d.mu.Lock()
	d.dstat = val
	d.dirty = true
	debug := d.debug
	d.mu.Unlock()

	if debug&DebugReg != 0 {
		logger.Logf(Name, "OUT %02X: DSTAT=%02X (shadow %d, start %d)", port, val, (val&rowMask)>>4, val&colMask)
	}
}

// SetKeyboardCallback registers the receiver of keyboard events polled from
// the surface. A nil callback stops polling.
func (d *Device) SetKeyboardCallback(fn func(video.KeyEvent) error) {
	d.mu.Lock()
	d.onKey = fn
	d.mu.Unlock()
}

// SetDebug replaces the debug flags.
func (d *Device) SetDebug(f DebugFlags) {
	d.mu.Lock()
	d.debug = f
	d.mu.Unlock()
}

// IsActive reports whether the device is attached to its surface.
func (d *Device) IsActive() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// Register is a named view of device state for examine commands.
type Register struct {
	Name  string
	Width int
	Value uint32
	Desc  string
}

// Registers returns the examinable state of the display.
func (d *Device) Registers() []Register {
	d.mu.Lock()
	defer d.mu.Unlock()
	return []Register{
		{Name: "DSTAT", Width: 8, Value: uint32(d.dstat), Desc: "VDM-1 display parameter register"},
		{Name: "DIRTY", Width: 1, Value: boolBit(d.dirty), Desc: "VDM-1 dirty register"},
		{Name: "BLINK", Width: 1, Value: boolBit(d.blink), Desc: "VDM-1 blink register"},
	}
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// Text returns the character store as 16 lines of 64 characters in memory
// order, with non printing codes shown as '.'. Attribute bits are ignored.
func (d *Device) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var sb strings.Builder
	for i, c := range d.ram {
		c &= 0x7F
		if c < 0x20 || c == 0x7F {
			c = '.'
		}
		sb.WriteByte(c)
		if x, _ := grid.GetGridCoords(i, Cols); x == Cols-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Cell returns the character store byte shown at column x of row y when the
// status byte is zero.
func (d *Device) Cell(x, y int) byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ram[grid.GetIndex(x, y, Cols)&memMask]
}
