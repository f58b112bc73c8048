package machine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"retrodev/pkg/vdm1"
	"retrodev/pkg/video"
)

func TestMachineStartStop(t *testing.T) {
	surface := video.NewHeadless()
	m := New(vdm1.DefaultConfig(), surface)
	if err := m.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !surface.IsOpen() {
		t.Error("Start: expected surface open")
	}
	if got := m.Bus.Mapped(vdm1.MemBase); got != vdm1.Name {
		t.Errorf("Mapped(CC00): expected %q, got %q", vdm1.Name, got)
	}
	if err := m.Sched.Advance(time.Second); err != nil {
		t.Fatal(err)
	}
	if got := m.Board.Clock.Ticks(); got != 100 {
		t.Errorf("clock ticks: expected 100, got %d", got)
	}
	if err := m.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if surface.IsOpen() {
		t.Error("Stop: expected surface closed")
	}
}

func TestMachineScript(t *testing.T) {
	dir := t.TempDir()
	nvr := filepath.ToSlash(filepath.Join(dir, "nvr.bin"))
	src := `
		set("vdm1", "display", "reverse")
		attach("nvr", "` + nvr + `")
		deposit(0xCC00, 0x41)
	`
	path := filepath.Join(dir, "start.lua")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	m := New(vdm1.DefaultConfig(), video.NewHeadless())
	if err := m.Start(); err != nil {
		t.Fatal(err)
	}
	if err := m.RunScript(context.Background(), path); err != nil {
		t.Fatalf("RunScript failed: %v", err)
	}
	if _, _, d := m.VDM.Settings(); d != vdm1.DisplayReverse {
		t.Errorf("display: expected REVERSE, got %v", d)
	}
	if got := m.VDM.Cell(0, 0); got != 'A' {
		t.Errorf("cell: expected 'A', got %q", got)
	}
	if err := m.Stop(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(nvr); err != nil {
		t.Errorf("Stop: expected NVR written back: %v", err)
	}
}

func TestMachineLoadBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.bin")
	if err := os.WriteFile(path, []byte{0x3E, 0x41, 0x76}, 0o644); err != nil {
		t.Fatal(err)
	}
	m := New(vdm1.DefaultConfig(), video.NewHeadless())
	n, err := m.LoadBinary(path, 0x100)
	if err != nil {
		t.Fatalf("LoadBinary failed: %v", err)
	}
	if n != 3 {
		t.Errorf("LoadBinary: expected 3 bytes, got %d", n)
	}
	if m.Bus.RAM[0x102] != 0x76 {
		t.Errorf("RAM[0102]: expected 76, got %02X", m.Bus.RAM[0x102])
	}
	if _, err := m.LoadBinary(path, 0xFFFF); err == nil {
		t.Error("LoadBinary past end: expected error")
	}
}
