package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"retrodev/pkg/machine"
	"retrodev/pkg/utils"
	"retrodev/pkg/vdm1"
	"retrodev/pkg/video/ebitensurface"
)

func main() {
	nvrPath := flag.String("nvr", "retrodev_nvr.bin", "NVR backing file")
	debug := flag.String("debug", "", "display debug flags: REG, VIDEO or ALL")
	flag.Parse()

	cfg := vdm1.DefaultConfig()
	flags, err := vdm1.ParseDebug(*debug)
	if err != nil {
		log.Fatalf("-debug: %v", err)
	}
	cfg.Debug = flags

	surface := ebitensurface.New()
	m := machine.New(cfg, surface)
	if err := m.Board.NVR.Attach(*nvrPath); err != nil {
		log.Fatalf("Failed to attach NVR: %v", err)
	}
	if err := m.Start(); err != nil {
		log.Fatalf("Failed to start display: %v", err)
	}

	tw := machine.NewTypewriter(m.Bus, vdm1.MemBase, vdm1.IOBase)
	m.VDM.SetKeyboardCallback(tw.Key)

	if flag.NArg() > 0 {
		fullPath, _, err := utils.GetPathInfo(flag.Arg(0))
		if err != nil {
			log.Fatalf("Failed to resolve script path: %v", err)
		}
		if err := m.RunScript(context.Background(), fullPath); err != nil {
			log.Fatalf("Script failed: %v", err)
		}
	}

	surface.Status = func() string {
		ctrl, cursor, display := m.VDM.Settings()
		return fmt.Sprintf("%v %v %v  Ctrl+Shift+V paste", ctrl, cursor, display)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	if err := ebiten.RunGame(surface.Game()); err != nil {
		log.Print(err)
	}

	cancel()
	if err := <-done; err != nil {
		log.Printf("Scheduler stopped: %v", err)
	}
	if err := m.Stop(); err != nil {
		log.Printf("Shutdown: %v", err)
	}
}
