package scheduler

import (
	"testing"
	"time"
)

func TestAtSkipsPastInstants(t *testing.T) {
	s := New(time.UTC)
	now := time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{name: "in the past", at: now.Add(-35 * time.Minute), want: false},
		{name: "exactly now", at: now, want: false},
		{name: "in the future", at: now.Add(time.Hour), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.At(tt.at, func() {}); got != tt.want {
				t.Errorf("At(%s) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
	s.Stop()
}

func TestAtFiresOnce(t *testing.T) {
	s := New(time.UTC)
	defer s.Stop()

	fired := make(chan struct{})
	if !s.At(time.Now().Add(10*time.Millisecond), func() { close(fired) }) {
		t.Fatal("timer was not scheduled")
	}
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestStopCancelsPendingTimers(t *testing.T) {
	s := New(time.UTC)

	fired := make(chan struct{}, 1)
	if !s.At(time.Now().Add(50*time.Millisecond), func() { fired <- struct{}{} }) {
		t.Fatal("timer was not scheduled")
	}
	s.Stop()

	select {
	case <-fired:
		t.Fatal("timer fired after Stop")
	case <-time.After(150 * time.Millisecond):
	}

	// Scheduling after Stop is refused.
	if s.At(time.Now().Add(time.Hour), func() {}) {
		t.Error("At succeeded after Stop")
	}
}

func TestJobPanicIsContained(t *testing.T) {
	s := New(time.UTC)
	defer s.Stop()

	done := make(chan struct{})
	s.At(time.Now().Add(5*time.Millisecond), func() {
		defer close(done)
		panic("boom")
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not run")
	}
}
