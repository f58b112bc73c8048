// Package sched is a discrete event scheduler running on a simulated
// clock. Devices register units whose service routine runs when the unit's
// delay expires; the routine reschedules itself to become periodic.
//
// A Scheduler is not safe for concurrent use. One goroutine owns it and
// every device callback runs on that goroutine.
package sched

import (
	"context"
	"time"
)

// Unit is a schedulable event source.
type Unit struct {
	Name string

	// Wait is the unit's nominal service interval. The scheduler does not
	// use it directly; service routines pass it back to Activate.
	Wait time.Duration

	// Action is the service routine. A non-nil error stops Advance.
	Action func(u *Unit) error

	at     time.Duration
	seq    uint64
	active bool
}

// Scheduler orders pending units by expiry time. Units due at the same time
// run in the order they were activated.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue []*Unit
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the simulated time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// IsActive reports whether u is waiting to run.
func (s *Scheduler) IsActive(u *Unit) bool {
	return u.active
}

// Pending returns the number of scheduled units.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Activate schedules u to run after the given delay. An already active unit
// keeps its current expiry.
func (s *Scheduler) Activate(u *Unit, after time.Duration) {
	if u.active {
		return
	}
	s.insert(u, after)
}

// ActivateAbs schedules u to run after the given delay, replacing any
// pending activation.
func (s *Scheduler) ActivateAbs(u *Unit, after time.Duration) {
	s.Cancel(u)
	s.insert(u, after)
}

// Cancel removes u from the queue. Cancelling an idle unit does nothing.
func (s *Scheduler) Cancel(u *Unit) {
	if !u.active {
		return
	}
	for i, q := range s.queue {
		if q == u {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			break
		}
	}
	u.active = false
}

// TimeLeft returns how long until u runs, or zero for an idle unit.
func (s *Scheduler) TimeLeft(u *Unit) time.Duration {
	if !u.active {
		return 0
	}
	return u.at - s.now
}

func (s *Scheduler) insert(u *Unit, after time.Duration) {
	if after < 0 {
		after = 0
	}
	s.seq++
	u.at = s.now + after
	u.seq = s.seq
	u.active = true

	i := len(s.queue)
	for i > 0 && s.queue[i-1].at > u.at {
		i--
	}
	s.queue = append(s.queue, nil)
	copy(s.queue[i+1:], s.queue[i:])
	s.queue[i] = u
}

// Advance moves the clock forward by d, running every unit that expires on
// the way. It stops at the first service routine that returns an error,
// leaving the clock at that unit's expiry time.
func (s *Scheduler) Advance(d time.Duration) error {
	target := s.now + d
	for len(s.queue) > 0 && s.queue[0].at <= target {
		u := s.queue[0]
		s.queue = s.queue[1:]
		u.active = false
		s.now = u.at

		if u.Action == nil {
			continue
		}
		if err := u.Action(u); err != nil {
			return err
		}
	}
	s.now = target
	return nil
}

// Run advances the clock in step with wall time, polling every interval,
// until ctx is done or a service routine fails. Cancellation is not an
// error.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			elapsed := t.Sub(last)
			last = t
			if err := s.Advance(elapsed); err != nil {
				return err
			}
		}
	}
}
