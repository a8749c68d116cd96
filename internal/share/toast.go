package share

import (
	"sync"
	"time"

	"github.com/mindvr/reststyle/internal/clock"
)

// DefaultToastDuration is how long a toast stays visible.
const DefaultToastDuration = 2200 * time.Millisecond

// Toast holds at most one transient message.
type Toast struct {
	sched    clock.Scheduler
	duration time.Duration
	onChange func()

	mu      sync.Mutex
	message string
	task    clock.Task
	gen     uint64
}

// NewToast creates a toast. onChange, if set, runs after every show and
// dismiss.
func NewToast(sched clock.Scheduler, d time.Duration, onChange func()) *Toast {
	if d <= 0 {
		d = DefaultToastDuration
	}
	if sched == nil {
		sched = clock.Real{}
	}
	return &Toast{sched: sched, duration: d, onChange: onChange}
}

// Show replaces the current message and restarts the dismissal timer.
func (t *Toast) Show(msg string) {
	t.mu.Lock()
	if t.task != nil {
		t.task.Stop()
	}
	t.gen++
	gen := t.gen
	t.message = msg
	t.task = t.sched.AfterFunc(t.duration, func() { t.expire(gen) })
	t.mu.Unlock()
	t.changed()
}

// Message returns the visible message, or "".
func (t *Toast) Message() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.message
}

// Dismiss hides the message now.
func (t *Toast) Dismiss() {
	t.mu.Lock()
	if t.task != nil {
		t.task.Stop()
		t.task = nil
	}
	t.gen++
	had := t.message != ""
	t.message = ""
	t.mu.Unlock()
	if had {
		t.changed()
	}
}

func (t *Toast) expire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.message = ""
	t.task = nil
	t.mu.Unlock()
	t.changed()
}

func (t *Toast) changed() {
	if t.onChange != nil {
		t.onChange()
	}
}
