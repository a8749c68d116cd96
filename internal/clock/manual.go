package clock

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Scheduler driven by Advance. Callbacks run synchronously on
// the goroutine calling Advance. Intended for tests.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	m       *Manual
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	ran     bool
}

func (t *manualTask) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if t.stopped || t.ran {
		return false
	}
	t.stopped = true
	return true
}

// NewManual returns a Manual clock at offset zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc schedules f at now+d.
func (m *Manual) AfterFunc(d time.Duration, f func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTask{m: m, at: m.now + d, seq: m.seq, f: f}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves time forward by d and runs every task that became due, in
// due order. Tasks scheduled by callbacks run too if they fall inside the
// window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		t := m.popDue(target)
		if t == nil {
			break
		}
		t.f()
	}

	m.mu.Lock()
	m.now = target
	m.mu.Unlock()
}

// popDue removes and returns the earliest live task due at or before target,
// moving the clock to its due time.
func (m *Manual) popDue(target time.Duration) *manualTask {
	m.mu.Lock()
	defer m.mu.Unlock()

	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.stopped && !t.ran {
			live = append(live, t)
		}
	}
	m.tasks = live
	if len(m.tasks) == 0 {
		return nil
	}

	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].at != m.tasks[j].at {
			return m.tasks[i].at < m.tasks[j].at
		}
		return m.tasks[i].seq < m.tasks[j].seq
	})
	next := m.tasks[0]
	if next.at > target {
		return nil
	}
	next.ran = true
	m.tasks = m.tasks[1:]
	if next.at > m.now {
		m.now = next.at
	}
	return next
}

// Pending returns the number of tasks that have neither run nor been stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.stopped && !t.ran {
			n++
		}
	}
	return n
}
