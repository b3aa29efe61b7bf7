package telemetry

import "time"

// StepTimer tracks simulation step durations over a rolling window.
type StepTimer struct {
	samples     []time.Duration
	writeIndex  int
	sampleCount int
	start       time.Time
}

// NewStepTimer creates a timer averaging over windowSize steps.
func NewStepTimer(windowSize int) *StepTimer {
	if windowSize < 1 {
		windowSize = 60
	}
	return &StepTimer{samples: make([]time.Duration, windowSize)}
}

// Start begins timing a step.
func (s *StepTimer) Start() {
	s.start = time.Now()
}

// Stop records the step started by Start.
func (s *StepTimer) Stop() {
	s.Record(time.Since(s.start))
}

// Record adds one step duration.
func (s *StepTimer) Record(d time.Duration) {
	s.samples[s.writeIndex] = d
	s.writeIndex = (s.writeIndex + 1) % len(s.samples)
	if s.sampleCount < len(s.samples) {
		s.sampleCount++
	}
}

// Avg returns the mean step duration in the window.
func (s *StepTimer) Avg() time.Duration {
	if s.sampleCount == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < s.sampleCount; i++ {
		total += s.samples[i]
	}
	return total / time.Duration(s.sampleCount)
}

// StepsPerSecond is the rate the window average could sustain.
func (s *StepTimer) StepsPerSecond() float64 {
	avg := s.Avg()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}
