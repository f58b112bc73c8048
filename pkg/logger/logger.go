// Package logger is the central log for device debug output. Entries are
// tagged, consecutive duplicates are folded into a repeat count and the log
// is bounded to the most recent MaxEntries.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// MaxEntries is the number of entries kept by the central log.
const MaxEntries = 512

// Entry is a single line in the log.
type Entry struct {
	Timestamp time.Time
	Tag       string
	Detail    string
	Repeated  int
}

func (e Entry) String() string {
	s := fmt.Sprintf("%s: %s", e.Tag, e.Detail)
	if e.Repeated > 0 {
		s = fmt.Sprintf("%s (repeat x%d)", s, e.Repeated+1)
	}
	return s + "\n"
}

type logger struct {
	mu      sync.Mutex
	max     int
	entries []Entry
	echo    io.Writer
}

var central = &logger{max: MaxEntries}

func (l *logger) log(tag, detail string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tag = strings.ReplaceAll(tag, "\n", "")
	detail = strings.ReplaceAll(detail, "\n", "")

	n := len(l.entries)
	if n > 0 && l.entries[n-1].Tag == tag && l.entries[n-1].Detail == detail {
		l.entries[n-1].Repeated++
		l.entries[n-1].Timestamp = time.Now()
	} else {
		l.entries = append(l.entries, Entry{Timestamp: time.Now(), Tag: tag, Detail: detail})
	}

	if len(l.entries) > l.max {
		l.entries = l.entries[len(l.entries)-l.max:]
	}

	if l.echo != nil {
		_, _ = io.WriteString(l.echo, l.entries[len(l.entries)-1].String())
	}
}

// Log adds an entry to the central log.
func Log(tag, detail string) {
	central.log(tag, detail)
}

// Logf adds a formatted entry to the central log.
func Logf(tag, format string, args ...any) {
	central.log(tag, fmt.Sprintf(format, args...))
}

// Clear removes all entries.
func Clear() {
	central.mu.Lock()
	central.entries = central.entries[:0]
	central.mu.Unlock()
}

// Write writes every entry to output.
func Write(output io.Writer) {
	Tail(output, MaxEntries)
}

// Tail writes the last n entries to output. Asking for more entries than
// exist is fine.
func Tail(output io.Writer, n int) {
	central.mu.Lock()
	defer central.mu.Unlock()

	if n > len(central.entries) {
		n = len(central.entries)
	}
	for _, e := range central.entries[len(central.entries)-n:] {
		_, _ = io.WriteString(output, e.String())
	}
}

// SetEcho copies every new entry to output as it is logged. A nil writer
// turns echoing off.
func SetEcho(output io.Writer) {
	central.mu.Lock()
	central.echo = output
	central.mu.Unlock()
}

// Entries returns a copy of the current entries.
func Entries() []Entry {
	central.mu.Lock()
	defer central.mu.Unlock()
	c := make([]Entry, len(central.entries))
	copy(c, central.entries)
	return c
}
