package video

import (
	"os"
	"sync"

	"golang.org/x/term"
)

// StdinKeys feeds bytes typed on the controlling terminal to a sink as key
// events. The terminal is put in raw mode so every key arrives on its own.
type StdinKeys struct {
	fd       int
	oldState *term.State
	sink     func(KeyEvent)
	done     chan struct{}
	stopped  sync.Once
}

// StartStdinKeys starts reading stdin. When stdin is not a terminal the
// reader still runs but the terminal mode is left alone.
func StartStdinKeys(sink func(KeyEvent)) (*StdinKeys, error) {
	k := &StdinKeys{
		fd:   int(os.Stdin.Fd()),
		sink: sink,
		done: make(chan struct{}),
	}

	if term.IsTerminal(k.fd) {
		old, err := term.MakeRaw(k.fd)
		if err != nil {
			return nil, err
		}
		k.oldState = old
	}

	go func() {
		defer close(k.done)
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if n > 0 {
				b := buf[0]
				// terminals send DEL for backspace
				if b == 0x7F {
					b = 0x08
				}
				k.sink(KeyEvent{Code: b, Down: true})
			}
			if err != nil {
				return
			}
		}
	}()

	return k, nil
}

// Done is closed when the reader reaches end of input.
func (k *StdinKeys) Done() <-chan struct{} {
	return k.done
}

// Stop restores the terminal. The reader goroutine exits with the process or
// at the next end of input.
func (k *StdinKeys) Stop() {
	k.stopped.Do(func() {
		if k.oldState != nil {
			_ = term.Restore(k.fd, k.oldState)
			k.oldState = nil
		}
	})
}
