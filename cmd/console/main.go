package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nsf/termbox-go"

	"retrodev/pkg/machine"
	"retrodev/pkg/utils"
	"retrodev/pkg/vdm1"
	"retrodev/pkg/video"
)

const redrawInterval = 50 * time.Millisecond

func main() {
	plain := flag.Bool("plain", false, "read raw keys from stdin and print the screen on exit instead of using a full screen view")
	flag.Parse()

	surface := video.NewHeadless()
	m := machine.New(vdm1.DefaultConfig(), surface)
	if err := m.Start(); err != nil {
		log.Fatalf("Failed to start display: %v", err)
	}
	tw := machine.NewTypewriter(m.Bus, vdm1.MemBase, vdm1.IOBase)
	m.VDM.SetKeyboardCallback(tw.Key)

	if flag.NArg() > 0 {
		fullPath, baseDir, err := utils.GetPathInfo(flag.Arg(0))
		if err != nil {
			log.Fatalf("Failed to resolve script path: %v", err)
		}
		fmt.Fprintf(os.Stderr, "running %s in %s\n", fullPath, baseDir)
		if err := m.RunScript(context.Background(), fullPath); err != nil {
			log.Fatalf("Script failed: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	if *plain {
		err := runPlain(surface)
		cancel()
		<-done
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(m.VDM.Text())
	} else {
		if err := runTermbox(m, surface); err != nil {
			cancel()
			<-done
			log.Fatal(err)
		}
		cancel()
		<-done
	}
	_ = m.Stop()
}

// runPlain forwards stdin to the display until Ctrl+D or end of input.
func runPlain(surface *video.Headless) error {
	eof := make(chan struct{})
	keys, err := video.StartStdinKeys(func(k video.KeyEvent) {
		if k.Code == 0x04 || k.Code == 0x03 {
			select {
			case <-eof:
			default:
				close(eof)
			}
			return
		}
		surface.PushKey(k)
	})
	if err != nil {
		return err
	}
	defer keys.Stop()

	select {
	case <-eof:
	case <-keys.Done():
	}
	// let the last keys reach the display
	time.Sleep(4 * vdm1.DefaultWait)
	return nil
}

func runTermbox(m *machine.Machine, surface *video.Headless) error {
	if err := termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()

	events := make(chan termbox.Event)
	go func() {
		for {
			events <- termbox.PollEvent()
		}
	}()

	ticker := time.NewTicker(redrawInterval)
	defer ticker.Stop()
	for {
		select {
		case ev := <-events:
			if ev.Type != termbox.EventKey {
				continue
			}
			if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC {
				return nil
			}
			if code, ok := keyCode(ev); ok {
				surface.PushKey(video.KeyEvent{Code: code, Down: true})
			}
		case <-ticker.C:
			drawScreen(m.VDM)
		}
	}
}

func keyCode(ev termbox.Event) (byte, bool) {
	switch {
	case ev.Ch >= 0x20 && ev.Ch < 0x7F:
		return byte(ev.Ch), true
	case ev.Key == termbox.KeySpace:
		return ' ', true
	case ev.Key == termbox.KeyEnter:
		return '\r', true
	case ev.Key == termbox.KeyBackspace || ev.Key == termbox.KeyBackspace2:
		return 0x08, true
	case ev.Key == termbox.KeyCtrlL:
		return 0x0C, true
	}
	return 0, false
}

// drawScreen shows the character store the way the display scans it:
// shadow rows blank, rows rotated by the start offset, high bit reversed.
func drawScreen(d *vdm1.Device) {
	dstat := byte(d.Registers()[0].Value)
	shadow := int(dstat >> 4)
	start := int(dstat & 0x0F)

	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	for y := 0; y < vdm1.Rows; y++ {
		if y < shadow {
			continue
		}
		for x := 0; x < vdm1.Cols; x++ {
			c := d.Cell(x, (start+y)%vdm1.Rows)
			fg, bg := termbox.ColorGreen, termbox.ColorDefault
			if c&0x80 != 0 {
				fg, bg = termbox.ColorBlack, termbox.ColorGreen
			}
			r := rune(c & 0x7F)
			if r < 0x20 || r == 0x7F {
				r = ' '
			}
			termbox.SetCell(x, y, r, fg, bg)
		}
	}
	termbox.Flush()
}
