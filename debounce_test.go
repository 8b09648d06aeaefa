package docsearch_test

import (
	"testing"
	"time"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/mock"
	"github.com/stretchr/testify/assert"
)

func TestDebouncer_Trigger(t *testing.T) {
	t.Parallel()

	t.Run("coalesces rapid triggers into one call with the latest value", func(t *testing.T) {
		t.Parallel()

		clock := &mock.Scheduler{}
		var calls []string
		d := docsearch.NewDebouncer(clock, 250*time.Millisecond, func(v string) {
			calls = append(calls, v)
		})

		d.Trigger("c")
		clock.Advance(100 * time.Millisecond)
		d.Trigger("ca")
		clock.Advance(100 * time.Millisecond)
		d.Trigger("cac")
		clock.Advance(249 * time.Millisecond)

		assert.Empty(t, calls)

		clock.Advance(time.Millisecond)

		assert.Equal(t, []string{"cac"}, calls)
		assert.Zero(t, clock.Pending())
	})

	t.Run("separate bursts each produce a call", func(t *testing.T) {
		t.Parallel()

		clock := &mock.Scheduler{}
		var calls []string
		d := docsearch.NewDebouncer(clock, 250*time.Millisecond, func(v string) {
			calls = append(calls, v)
		})

		d.Trigger("one")
		clock.Advance(300 * time.Millisecond)
		d.Trigger("two")
		clock.Advance(300 * time.Millisecond)

		assert.Equal(t, []string{"one", "two"}, calls)
	})

	t.Run("keeps at most one timer pending", func(t *testing.T) {
		t.Parallel()

		clock := &mock.Scheduler{}
		d := docsearch.NewDebouncer(clock, 250*time.Millisecond, func(string) {})

		d.Trigger("a")
		d.Trigger("ab")
		d.Trigger("abc")

		assert.Equal(t, 1, clock.Pending())
	})
}

func TestDebouncer_Stop(t *testing.T) {
	t.Parallel()

	clock := &mock.Scheduler{}
	called := false
	d := docsearch.NewDebouncer(clock, 250*time.Millisecond, func(string) { called = true })

	d.Trigger("query")
	d.Stop()
	clock.Advance(time.Second)

	assert.False(t, called)
	assert.Zero(t, clock.Pending())
}

func TestSystemScheduler_AfterFunc(t *testing.T) {
	t.Parallel()

	done := make(chan struct{})
	docsearch.SystemScheduler{}.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback did not run")
	}
}
