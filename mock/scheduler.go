package mock

import (
	"sync"
	"time"

	"github.com/fwojciec/docsearch"
)

var _ docsearch.Scheduler = (*Scheduler)(nil)

// Scheduler is a manual clock implementing docsearch.Scheduler.
// Callbacks only run from Advance, in deadline order.
type Scheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*timer
}

type timer struct {
	s     *Scheduler
	at    time.Duration
	seq   int
	f     func()
	state int // 0 pending, 1 fired, 2 stopped
}

func (t *timer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.state != 0 {
		return false
	}
	t.state = 2
	return true
}

// AfterFunc registers f to run once the clock has advanced by d.
func (s *Scheduler) AfterFunc(d time.Duration, f func()) docsearch.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &timer{s: s, at: s.now + d, seq: s.seq, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward by d, running every callback that falls
// due, including callbacks scheduled by other callbacks.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.at
		next.state = 1
		s.mu.Unlock()
		next.f()
		s.mu.Lock()
	}
	s.now = target
	s.mu.Unlock()
}

func (s *Scheduler) nextDue(target time.Duration) *timer {
	var next *timer
	for _, t := range s.timers {
		if t.state != 0 || t.at > target {
			continue
		}
		if next == nil || t.at < next.at || (t.at == next.at && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

// Pending returns the number of callbacks not yet fired or stopped.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if t.state == 0 {
			n++
		}
	}
	return n
}
