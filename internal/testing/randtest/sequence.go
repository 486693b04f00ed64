// Package randtest provides deterministic random sources for tests.
package randtest

import "sync"

// Source replays a fixed list of draws, cycling when exhausted.
type Source struct {
	mu     sync.Mutex
	values []float64
	next   int
	calls  int
}

// Sequence returns a Source that yields values in order.
// An empty sequence always yields 0.
func Sequence(values ...float64) *Source {
	return &Source{values: values}
}

// Float64 returns the next value in the sequence.
func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Calls returns how many draws were taken.
func (s *Source) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
