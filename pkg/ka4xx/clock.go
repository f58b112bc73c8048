package ka4xx

import (
	"sync"
	"time"

	"retrodev/pkg/logger"
	"retrodev/pkg/sched"
)

// Interval clock CSR bits.
const (
	ClkIE   = 0x40
	ClkDone = 0x80

	DefaultTPS = 100
)

// Scheduler runs the clock tick. *sched.Scheduler satisfies it.
type Scheduler interface {
	Activate(u *sched.Unit, after time.Duration)
	Cancel(u *sched.Unit)
}

// Clock is the 100Hz interval timer. Every tick raises the clock interrupt
// when interrupts are enabled.
type Clock struct {
	mu    sync.Mutex
	csr   uint32
	irq   bool
	tps   int
	ticks uint64
	unit  *sched.Unit
	sched Scheduler

	Debug bool
}

// NewClock returns a stopped clock running at tps ticks per second. Call
// Reset to start it.
func NewClock(s Scheduler, tps int) *Clock {
	if tps <= 0 {
		tps = DefaultTPS
	}
	c := &Clock{tps: tps, sched: s}
	c.unit = &sched.Unit{
		Name: "clk",
		Wait: c.period(),
		Action: func(*sched.Unit) error {
			c.Service()
			return nil
		},
	}
	return c
}

func (c *Clock) period() time.Duration {
	return time.Duration(1e6/c.tps) * time.Microsecond
}

// Unit returns the scheduler unit of the tick.
func (c *Clock) Unit() *sched.Unit {
	return c.unit
}

// ReadCSR returns the interrupt enable bit. DONE always reads zero.
func (c *Clock) ReadCSR() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.csr & ClkIE
}

// WriteCSR updates the interrupt enable. Clearing IE drops a pending
// interrupt. DONE is accepted and ignored; the interrupt stays pending
// until Ack.
func (c *Clock) WriteCSR(data uint32) {
	c.mu.Lock()
	if data&ClkIE == 0 {
		c.irq = false
	}
	c.csr = c.csr&^ClkIE | data&ClkIE
	debug := c.Debug
	c.mu.Unlock()

	if debug {
		logger.Logf("ka4xx", "ICCS <- %02X", data)
	}
}

// Interrupt reports whether the clock interrupt is pending.
func (c *Clock) Interrupt() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.irq
}

// Ack clears a pending interrupt, as the CPU does when it takes it.
func (c *Clock) Ack() {
	c.mu.Lock()
	c.irq = false
	c.mu.Unlock()
}

// Ticks returns the number of ticks since the clock was created.
func (c *Clock) Ticks() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}

// Service is the tick routine.
func (c *Clock) Service() {
	c.mu.Lock()
	if c.csr&ClkIE != 0 {
		c.irq = true
	}
	c.ticks++
	c.mu.Unlock()
	c.sched.Activate(c.unit, c.period())
}

// Reset clears the CSR and any pending interrupt and starts the tick.
func (c *Clock) Reset() {
	c.mu.Lock()
	c.csr = 0
	c.irq = false
	c.mu.Unlock()
	c.sched.Activate(c.unit, c.period())
}

// Stop cancels the tick.
func (c *Clock) Stop() {
	c.sched.Cancel(c.unit)
}

// Register is a named view of device state for examine commands.
type Register struct {
	Name  string
	Value uint32
}

// Registers returns the examinable clock state.
func (c *Clock) Registers() []Register {
	c.mu.Lock()
	defer c.mu.Unlock()
	var irq uint32
	if c.irq {
		irq = 1
	}
	return []Register{
		{"CSR", c.csr},
		{"INT", irq},
		{"IE", (c.csr & ClkIE) >> 6},
		{"TPS", uint32(c.tps)},
	}
}
