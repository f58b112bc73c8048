package ka4xx

import (
	"time"
)

// Watch chip register numbers, MC146818 layout.
const (
	WtcSec = iota
	WtcSecAlarm
	WtcMin
	WtcMinAlarm
	WtcHour
	WtcHourAlarm
	WtcDow
	WtcDay
	WtcMonth
	WtcYear
	WtcCSRA
	WtcCSRB
	WtcCSRC
	WtcCSRD

	wtcRegs = 14
)

const (
	csraUIP = 0x80 // update in progress
	csrdVRT = 0x80 // valid RAM and time
)

// Watch is the time of year chip behind the first 14 NVR registers. It
// keeps time as an offset from the host clock and runs in binary 24 hour
// mode. Writing a time register moves the offset.
type Watch struct {
	// Now is the host clock. Tests replace it.
	Now func() time.Time

	offset time.Duration
	alarm  [3]byte // seconds, minutes, hours
	csra   byte
	csrb   byte
	valid  bool
}

func NewWatch() *Watch {
	return &Watch{Now: time.Now}
}

// SetValid sets the VRT bit in CSR D. The bit reflects whether the NVR
// contents survived, which is whether a backing file is attached.
func (w *Watch) SetValid(v bool) {
	w.valid = v
}

func (w *Watch) Valid() bool {
	return w.valid
}

func (w *Watch) time() time.Time {
	return w.Now().Add(w.offset)
}

// Read returns watch chip register rg.
func (w *Watch) Read(rg int) byte {
	t := w.time()
	switch rg {
	case WtcSec:
		return byte(t.Second())
	case WtcSecAlarm:
		return w.alarm[0]
	case WtcMin:
		return byte(t.Minute())
	case WtcMinAlarm:
		return w.alarm[1]
	case WtcHour:
		return byte(t.Hour())
	case WtcHourAlarm:
		return w.alarm[2]
	case WtcDow:
		return byte(t.Weekday()) + 1
	case WtcDay:
		return byte(t.Day())
	case WtcMonth:
		return byte(t.Month())
	case WtcYear:
		return byte(t.Year() % 100)
	case WtcCSRA:
		return w.csra &^ csraUIP
	case WtcCSRB:
		return w.csrb
	case WtcCSRC:
		return 0
	case WtcCSRD:
		if w.valid {
			return csrdVRT
		}
		return 0
	}
	return 0
}

// Write stores val in register rg. Time registers are rebased so the chip
// reads back val from now on. CSR C and D are read only.
func (w *Watch) Write(rg int, val byte) {
	t := w.time()
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	v := int(val)

	switch rg {
	case WtcSec:
		s = v
	case WtcSecAlarm:
		w.alarm[0] = val
		return
	case WtcMin:
		mi = v
	case WtcMinAlarm:
		w.alarm[1] = val
		return
	case WtcHour:
		h = v
	case WtcHourAlarm:
		w.alarm[2] = val
		return
	case WtcDow:
		// Derived from the date.
		return
	case WtcDay:
		d = v
	case WtcMonth:
		mo = time.Month(v)
	case WtcYear:
		y = y - y%100 + v%100
	case WtcCSRA:
		w.csra = val &^ csraUIP
		return
	case WtcCSRB:
		w.csrb = val
		return
	default:
		return
	}
	set := time.Date(y, mo, d, h, mi, s, t.Nanosecond(), t.Location())
	w.offset += set.Sub(t)
}
