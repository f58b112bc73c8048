package script_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"retrodev/pkg/bus"
	"retrodev/pkg/ka4xx"
	"retrodev/pkg/sched"
	"retrodev/pkg/script"
	"retrodev/pkg/vdm1"
	"retrodev/pkg/video"
)

type machine struct {
	bus   *bus.Bus
	sched *sched.Scheduler
	dev   *vdm1.Device
	board *ka4xx.Board
	env   *script.Env
}

func newMachine(t *testing.T) *machine {
	t.Helper()
	m := &machine{bus: bus.NewBus(), sched: sched.NewScheduler()}
	m.dev = vdm1.New(vdm1.DefaultConfig(), m.bus, m.sched, video.NewHeadless())
	if err := m.dev.Activate(); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	m.board = ka4xx.NewBoard(m.sched)
	m.env = script.New(m.bus, m.sched)
	m.env.Register("vdm1", m.dev)
	m.env.Register("rom", m.board.ROM)
	m.env.Register("nvr", m.board.NVR)
	return m
}

func TestScriptSetAndShow(t *testing.T) {
	m := newMachine(t)
	err := m.env.Run(context.Background(), `
		set("VDM1", "ctrl", "mode3")
		set("vdm1", "cursor", "bl")
		assert(show("vdm1", "ctrl") == "CTRL=MODE3", show("vdm1", "ctrl"))
	`)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	ctrl, cursor, _ := m.dev.Settings()
	if ctrl != vdm1.Mode3 {
		t.Errorf("ctrl: expected MODE3, got %v", ctrl)
	}
	if cursor != vdm1.CursorBlink {
		t.Errorf("cursor: expected BLINK, got %v", cursor)
	}
}

func TestScriptDepositAndOut(t *testing.T) {
	m := newMachine(t)
	err := m.env.Run(context.Background(), `
		deposit(0xCC00, 0x48)
		deposit(0xCC01, 0x49)
		deposit(0x0100, 0x76)
		out(0xFE, 0x10)
	`)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := m.dev.Cell(0, 0); got != 'H' {
		t.Errorf("cell 0: expected 'H', got %q", got)
	}
	if got := m.dev.Cell(1, 0); got != 'I' {
		t.Errorf("cell 1: expected 'I', got %q", got)
	}
	if got := m.bus.RAM[0x100]; got != 0x76 {
		t.Errorf("RAM[0100]: expected 76, got %02X", got)
	}
	if got := m.dev.Registers()[0].Value; got != 0x10 {
		t.Errorf("DSTAT: expected 10, got %02X", got)
	}
}

func TestScriptBootAndRun(t *testing.T) {
	m := newMachine(t)
	err := m.env.Run(context.Background(), `
		boot("vdm1")
		run(100)
	`)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	prog, err := m.dev.BootProgram()
	if err != nil {
		t.Fatal(err)
	}
	for i, b := range prog {
		if m.bus.RAM[i] != b {
			t.Fatalf("boot byte %d: expected %02X, got %02X", i, b, m.bus.RAM[i])
		}
	}
	if m.bus.PC() != 0 {
		t.Errorf("PC: expected 0, got %04X", m.bus.PC())
	}
	if m.sched.Now() < 100*time.Millisecond {
		t.Errorf("clock: expected at least 100ms, got %v", m.sched.Now())
	}
}

func TestScriptNVR(t *testing.T) {
	m := newMachine(t)
	path := filepath.ToSlash(filepath.Join(t.TempDir(), "nvr.bin"))
	err := m.env.Run(context.Background(), `
		attach("nvr", "`+path+`")
		store("nvr", 0x100, 0x5A)
		assert(examine("nvr", 0x100) == 0x5A)
		detach("nvr")
	`)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if m.board.NVR.Attached() != "" {
		t.Error("expected NVR detached")
	}
}

func TestScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		want   string
		target error
	}{
		{"unknown device", `set("tty", "ctrl", "mode1")`, "no such device", script.ErrNoDevice},
		{"bad value", `set("vdm1", "ctrl", "mode9")`, "unknown value", vdm1.ErrInvalidArgument},
		{"missing value", `set("vdm1", "cursor", "")`, "missing value", vdm1.ErrMissingValue},
		{"unsupported", `boot("nvr")`, "does not support", script.ErrUnsupported},
		{"unaligned", `examine("rom", 2)`, "not longword aligned", ka4xx.ErrArgument},
		{"non-existent", `store("nvr", 0x10000, 1)`, "non-existent", ka4xx.ErrNonExistent},
		{"byte range", `deposit(0, 256)`, "byte out of range", nil},
		{"address range", `deposit(0x10000, 0)`, "address out of range", nil},
		{"syntax", `set(`, "script", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(t)
			err := m.env.Run(context.Background(), tt.src)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("expected errors.Is(err, %v), got %v", tt.target, err)
			}
		})
	}
}

func TestScriptErrorsFromFile(t *testing.T) {
	m := newMachine(t)
	path := filepath.Join(t.TempDir(), "bad.lua")
	if err := os.WriteFile(path, []byte(`show("vdm1", "colour")`), 0o644); err != nil {
		t.Fatal(err)
	}
	err := m.env.RunFile(context.Background(), path)
	if !errors.Is(err, vdm1.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestScriptCaughtErrorNotReported(t *testing.T) {
	m := newMachine(t)
	err := m.env.Run(context.Background(), `
		local ok = pcall(set, "tty", "ctrl", "mode1")
		assert(not ok)
		error("later failure")
	`)
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, script.ErrNoDevice) {
		t.Errorf("caught error leaked into a later failure: %v", err)
	}
}

func TestScriptCancelled(t *testing.T) {
	m := newMachine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.env.Run(ctx, `while true do end`); err == nil {
		t.Error("cancelled script: expected error")
	}
}

func TestScriptRunFile(t *testing.T) {
	m := newMachine(t)
	err := m.env.RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua"))
	if err == nil {
		t.Fatal("missing file: expected error")
	}
	if errors.Is(err, script.ErrNoDevice) {
		t.Errorf("missing file: unexpected device error %v", err)
	}
}
