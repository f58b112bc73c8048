// Package script runs Lua startup scripts against a set of devices. A
// script selects switch settings, loads memory and boots the machine the
// way an operator would at the console:
//
//	set("vdm1", "ctrl", "mode3")
//	deposit(0xCC00, 0x41)
//	out(0xFE, 0x00)
//	boot("vdm1")
//	run(100)
//	print(show("vdm1", "display"))
package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"retrodev/pkg/logger"
	"retrodev/pkg/vdm1"
)

var (
	ErrNoDevice    = errors.New("no such device")
	ErrUnsupported = errors.New("device does not support operation")
)

// Host is the machine the script pokes at. *bus.Bus satisfies it.
type Host interface {
	Deposit(addr uint16, val byte)
	SetPC(pc uint16)
	Out(port uint8, val byte)
}

// Clock advances simulated time. *sched.Scheduler satisfies it.
type Clock interface {
	Advance(d time.Duration) error
}

// Configurable devices accept named switch settings.
type Configurable interface {
	Set(param, value string) error
	Show(param string) (string, error)
}

type booter interface {
	Boot(h vdm1.Host) error
}

type attacher interface {
	Attach(path string) error
}

type detacher interface {
	Detach() error
}

type examiner interface {
	Examine(addr uint32) (uint32, error)
	Deposit(addr, val uint32) error
}

// Env is a script environment bound to one machine. Runs on one Env must
// not overlap.
type Env struct {
	host    Host
	clock   Clock
	devices map[string]any

	// raised is the Go error behind the last Lua error raised by a
	// builtin, so callers can still match it with errors.Is.
	raised error
}

// scriptError is a Lua error that carries the Go error that raised it.
type scriptError struct {
	prefix string
	lua    error
	cause  error
}

func (e *scriptError) Error() string {
	return e.prefix + ": " + e.lua.Error()
}

func (e *scriptError) Unwrap() []error {
	return []error{e.lua, e.cause}
}

func New(h Host, c Clock) *Env {
	return &Env{host: h, clock: c, devices: make(map[string]any)}
}

// Register makes dev reachable from scripts under name. Names are case
// insensitive.
func (e *Env) Register(name string, dev any) {
	e.devices[strings.ToLower(name)] = dev
}

func (e *Env) device(name string) (any, error) {
	d, ok := e.devices[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNoDevice)
	}
	return d, nil
}

// Run executes Lua source. Cancelling ctx stops the script.
func (e *Env) Run(ctx context.Context, src string) error {
	L := e.state(ctx)
	defer L.Close()
	if err := L.DoString(src); err != nil {
		return e.wrap("script", err)
	}
	return nil
}

// RunFile executes a Lua file.
func (e *Env) RunFile(ctx context.Context, path string) error {
	L := e.state(ctx)
	defer L.Close()
	if err := L.DoFile(path); err != nil {
		return e.wrap("script "+path, err)
	}
	return nil
}

// wrap attaches the Go error behind a failed run. An error raised by a
// builtin and then caught by pcall is not attached to a later failure.
func (e *Env) wrap(prefix string, err error) error {
	cause := e.raised
	e.raised = nil
	if cause == nil || !strings.Contains(err.Error(), cause.Error()) {
		return fmt.Errorf("%s: %w", prefix, err)
	}
	return &scriptError{prefix: prefix, lua: err, cause: cause}
}

func (e *Env) state(ctx context.Context) *lua.LState {
	e.raised = nil
	L := lua.NewState()
	L.SetContext(ctx)

	fns := map[string]lua.LGFunction{
		"set":     e.luaSet,
		"show":    e.luaShow,
		"deposit": e.luaDeposit,
		"out":     e.luaOut,
		"boot":    e.luaBoot,
		"run":     e.luaRun,
		"attach":  e.luaAttach,
		"detach":  e.luaDetach,
		"examine": e.luaExamine,
		"store":   e.luaStore,
		"log":     e.luaLog,
	}
	for name, fn := range fns {
		L.SetGlobal(name, L.NewFunction(fn))
	}
	return L
}

func (e *Env) check(L *lua.LState, err error) {
	if err != nil {
		e.raised = err
		L.RaiseError("%s", err.Error())
	}
}

func (e *Env) checkDevice(L *lua.LState) any {
	d, err := e.device(L.CheckString(1))
	e.check(L, err)
	return d
}

func checkByte(L *lua.LState, n int) byte {
	v := L.CheckInt(n)
	if v < 0 || v > 0xFF {
		L.ArgError(n, "byte out of range")
	}
	return byte(v)
}

// set(dev, param, value)
func (e *Env) luaSet(L *lua.LState) int {
	d := e.checkDevice(L)
	c, ok := d.(Configurable)
	if !ok {
		e.check(L, fmt.Errorf("set %s: %w", L.CheckString(1), ErrUnsupported))
	}
	e.check(L, c.Set(L.CheckString(2), L.CheckString(3)))
	return 0
}

// show(dev, param) -> "PARAM=VALUE"
func (e *Env) luaShow(L *lua.LState) int {
	d := e.checkDevice(L)
	c, ok := d.(Configurable)
	if !ok {
		e.check(L, fmt.Errorf("show %s: %w", L.CheckString(1), ErrUnsupported))
	}
	s, err := c.Show(L.CheckString(2))
	e.check(L, err)
	L.Push(lua.LString(s))
	return 1
}

// deposit(addr, byte)
func (e *Env) luaDeposit(L *lua.LState) int {
	addr := L.CheckInt(1)
	if addr < 0 || addr > 0xFFFF {
		L.ArgError(1, "address out of range")
	}
	e.host.Deposit(uint16(addr), checkByte(L, 2))
	return 0
}

// out(port, byte)
func (e *Env) luaOut(L *lua.LState) int {
	port := checkByte(L, 1)
	e.host.Out(port, checkByte(L, 2))
	return 0
}

// boot(dev)
func (e *Env) luaBoot(L *lua.LState) int {
	d := e.checkDevice(L)
	b, ok := d.(booter)
	if !ok {
		e.check(L, fmt.Errorf("boot %s: %w", L.CheckString(1), ErrUnsupported))
	}
	e.check(L, b.Boot(e.host))
	return 0
}

// run(ms) advances simulated time.
func (e *Env) luaRun(L *lua.LState) int {
	ms := L.CheckInt(1)
	if ms < 0 {
		L.ArgError(1, "negative duration")
	}
	if e.clock == nil {
		e.check(L, fmt.Errorf("run: no clock: %w", ErrUnsupported))
	}
	e.check(L, e.clock.Advance(time.Duration(ms)*time.Millisecond))
	return 0
}

// attach(dev, path)
func (e *Env) luaAttach(L *lua.LState) int {
	d := e.checkDevice(L)
	a, ok := d.(attacher)
	if !ok {
		e.check(L, fmt.Errorf("attach %s: %w", L.CheckString(1), ErrUnsupported))
	}
	e.check(L, a.Attach(L.CheckString(2)))
	return 0
}

// detach(dev)
func (e *Env) luaDetach(L *lua.LState) int {
	d := e.checkDevice(L)
	a, ok := d.(detacher)
	if !ok {
		e.check(L, fmt.Errorf("detach %s: %w", L.CheckString(1), ErrUnsupported))
	}
	e.check(L, a.Detach())
	return 0
}

// examine(dev, addr) -> longword
func (e *Env) luaExamine(L *lua.LState) int {
	d := e.checkDevice(L)
	x, ok := d.(examiner)
	if !ok {
		e.check(L, fmt.Errorf("examine %s: %w", L.CheckString(1), ErrUnsupported))
	}
	v, err := x.Examine(uint32(L.CheckInt64(2)))
	e.check(L, err)
	L.Push(lua.LNumber(v))
	return 1
}

// store(dev, addr, longword)
func (e *Env) luaStore(L *lua.LState) int {
	d := e.checkDevice(L)
	x, ok := d.(examiner)
	if !ok {
		e.check(L, fmt.Errorf("store %s: %w", L.CheckString(1), ErrUnsupported))
	}
	e.check(L, x.Deposit(uint32(L.CheckInt64(2)), uint32(L.CheckInt64(3))))
	return 0
}

// log(msg)
func (e *Env) luaLog(L *lua.LState) int {
	logger.Log("script", L.CheckString(1))
	return 0
}
