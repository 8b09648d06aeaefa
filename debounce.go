package docsearch

import (
	"sync"
	"time"
)

// Timer is a pending callback created by a Scheduler.
type Timer interface {
	// Stop prevents the callback from firing. It returns false if the
	// callback has already fired or been stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Ensure SystemScheduler implements Scheduler at compile time.
var _ Scheduler = SystemScheduler{}

// SystemScheduler schedules callbacks on the runtime timer.
type SystemScheduler struct{}

// AfterFunc implements Scheduler using time.AfterFunc.
func (SystemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer coalesces rapid calls to Trigger into a single call of fn with
// the latest value, made once no Trigger has happened for the delay.
// At most one call is pending at any time.
type Debouncer struct {
	mu        sync.Mutex
	scheduler Scheduler
	delay     time.Duration
	fn        func(string)
	timer     Timer
	seq       uint64
}

// NewDebouncer returns a Debouncer calling fn after delay of quiet.
func NewDebouncer(scheduler Scheduler, delay time.Duration, fn func(string)) *Debouncer {
	return &Debouncer{
		scheduler: scheduler,
		delay:     delay,
		fn:        fn,
	}
}

// Trigger resets the pending timer so fn runs with value after the delay.
func (d *Debouncer) Trigger(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = d.scheduler.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A timer that fired while Trigger or Stop held the lock is stale.
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		d.fn(value)
	})
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}
