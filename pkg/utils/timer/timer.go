// Package timer tracks elapsed time for a command and for the stage it is currently in.
package timer

import (
	"sync"
	"time"
)

// Timer measures total and per-stage durations.
type Timer interface {
	// Start resets the timer and begins the first stage.
	Start()
	// NewStage begins a new stage without touching the total.
	NewStage()
	// GetTiming returns the total elapsed time and the time spent in the current stage.
	GetTiming() (time.Duration, time.Duration)
}

type stopwatch struct {
	mu         sync.Mutex
	now        func() time.Time
	startedAt  time.Time
	stageStart time.Time
}

// New returns a Timer that has already been started.
func New() Timer {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *stopwatch {
	sw := &stopwatch{now: now}
	sw.Start()

	return sw
}

func (s *stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.startedAt = s.now()
	s.stageStart = s.startedAt
}

func (s *stopwatch) NewStage() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stageStart = s.now()
}

func (s *stopwatch) GetTiming() (time.Duration, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.now()

	return current.Sub(s.startedAt), current.Sub(s.stageStart)
}
