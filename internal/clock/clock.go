// Package clock provides cancellable scheduled tasks.
//
// The session machine and the toast never call time.AfterFunc directly; they
// receive a Scheduler so the TUI can run callbacks on its event loop and tests
// can drive time by hand.
package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Task is a scheduled callback. Stop reports whether it prevented the run.
type Task interface {
	Stop() bool
}

// Scheduler runs f once after d unless the returned Task is stopped first.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

// Real schedules on the runtime timer. Callbacks run on their own goroutine.
type Real struct{}

// AfterFunc wraps time.AfterFunc.
func (Real) AfterFunc(d time.Duration, f func()) Task {
	return time.AfterFunc(d, f)
}

// Task states for dispatched callbacks.
const (
	taskPending int32 = iota
	taskStopped
	taskRan
)

// Dispatcher schedules callbacks whose execution is handed to a single
// consumer goroutine through Next. A stopped task never runs, even when its
// timer fired and the callback is already queued.
type Dispatcher struct {
	ready chan func()
	done  chan struct{}
	once  sync.Once
}

// NewDispatcher creates a Dispatcher with the given queue size.
func NewDispatcher(buffer int) *Dispatcher {
	if buffer < 0 {
		buffer = 0
	}
	return &Dispatcher{
		ready: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

type dispatchedTask struct {
	timer *time.Timer
	state atomic.Int32
}

func (t *dispatchedTask) Stop() bool {
	t.timer.Stop()
	return t.state.CompareAndSwap(taskPending, taskStopped)
}

func (t *dispatchedTask) run(f func()) {
	if t.state.CompareAndSwap(taskPending, taskRan) {
		f()
	}
}

// AfterFunc arms a timer that queues f for the consumer after d.
func (d *Dispatcher) AfterFunc(dur time.Duration, f func()) Task {
	t := &dispatchedTask{}
	t.timer = time.AfterFunc(dur, func() {
		select {
		case d.ready <- func() { t.run(f) }:
		case <-d.done:
		}
	})
	return t
}

// Next blocks until a callback is due and returns it. ok is false once the
// dispatcher is closed.
func (d *Dispatcher) Next() (fn func(), ok bool) {
	select {
	case <-d.done:
		return nil, false
	default:
	}
	select {
	case fn := <-d.ready:
		return fn, true
	case <-d.done:
		return nil, false
	}
}

// Close releases blocked timers and consumers. Safe to call more than once.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.done) })
}
