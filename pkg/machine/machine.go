// Package machine wires a VDM-1 and the KA4xx standard devices to a bus and
// a scheduler, and exposes them to startup scripts.
package machine

import (
	"context"
	"fmt"
	"os"
	"time"

	"retrodev/pkg/bus"
	"retrodev/pkg/ka4xx"
	"retrodev/pkg/logger"
	"retrodev/pkg/sched"
	"retrodev/pkg/script"
	"retrodev/pkg/vdm1"
	"retrodev/pkg/video"
)

// Machine is one host with its devices.
type Machine struct {
	Bus    *bus.Bus
	Sched  *sched.Scheduler
	VDM    *vdm1.Device
	Board  *ka4xx.Board
	Script *script.Env
}

// New builds a machine whose display draws to surface. The display is not
// yet active.
func New(cfg vdm1.Config, surface video.Surface) *Machine {
	m := &Machine{
		Bus:   bus.NewBus(),
		Sched: sched.NewScheduler(),
	}
	m.VDM = vdm1.New(cfg, m.Bus, m.Sched, surface)
	m.Board = ka4xx.NewBoard(m.Sched)

	m.Script = script.New(m.Bus, m.Sched)
	m.Script.Register(vdm1.Name, m.VDM)
	m.Script.Register("rom", m.Board.ROM)
	m.Script.Register("nvr", m.Board.NVR)
	return m
}

// Start activates the display and starts the interval clock.
func (m *Machine) Start() error {
	if err := m.VDM.Activate(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	m.Board.Clock.Reset()
	return nil
}

// Stop deactivates the display, stops the clock and writes back the NVR.
func (m *Machine) Stop() error {
	m.Board.Clock.Stop()
	err := m.VDM.Deactivate()
	if derr := m.Board.NVR.Detach(); derr != nil && err == nil {
		err = derr
	}
	return err
}

// RunScript runs a Lua startup script from path.
func (m *Machine) RunScript(ctx context.Context, path string) error {
	logger.Logf("machine", "running %s", path)
	return m.Script.RunFile(ctx, path)
}

// LoadBinary copies a program image into memory at addr.
func (m *Machine) LoadBinary(path string, addr uint16) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if int(addr)+len(data) > bus.MemorySize {
		return 0, fmt.Errorf("program too large for memory: %d bytes at %04X", len(data), addr)
	}
	for i, b := range data {
		m.Bus.Deposit(addr+uint16(i), b)
	}
	return len(data), nil
}

// Run advances simulated time in step with the wall clock until ctx is
// done.
func (m *Machine) Run(ctx context.Context) error {
	return m.Sched.Run(ctx, 5*time.Millisecond)
}
