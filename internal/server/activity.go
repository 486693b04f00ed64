package server

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/osse101/tidepool/internal/logger"
)

type ipActivity struct {
	requests   int
	failedAuth int
}

// SuspiciousActivityDetector counts requests and failed logins per IP over a
// fixed window. All counts reset together when the window rolls over.
type SuspiciousActivityDetector struct {
	mu          sync.Mutex
	clock       clockwork.Clock
	window      time.Duration
	budget      int
	byIP        map[string]*ipActivity
	windowStart time.Time
}

func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return NewSuspiciousActivityDetectorWithClock(clockwork.NewRealClock(), RequestBudgetPerWindow, ActivityWindow)
}

// NewSuspiciousActivityDetectorWithClock allows budget requests per IP per window
func NewSuspiciousActivityDetectorWithClock(clock clockwork.Clock, budget int, window time.Duration) *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		clock:       clock,
		window:      window,
		budget:      budget,
		byIP:        make(map[string]*ipActivity),
		windowStart: clock.Now(),
	}
}

// activity returns the counters for ip in the current window. Caller holds mu.
func (s *SuspiciousActivityDetector) activity(ip string) *ipActivity {
	if now := s.clock.Now(); now.Sub(s.windowStart) > s.window {
		clear(s.byIP)
		s.windowStart = now
	}
	a, ok := s.byIP[ip]
	if !ok {
		a = &ipActivity{}
		s.byIP[ip] = a
	}
	return a
}

// RecordFailedAuth counts a rejected credential and returns the window total for ip
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.activity(ip)
	a.failedAuth++
	if a.failedAuth >= FailedAuthAlertThreshold {
		logger.Warn(SecurityAlertFailedAuth, "ip", ip, "count", a.failedAuth)
	}
	return a.failedAuth
}

// RecordRequest counts a request and reports whether ip is still within budget
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.activity(ip)
	a.requests++
	if a.requests <= s.budget {
		return true
	}
	if a.requests%highRateLogEvery == 0 {
		logger.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", a.requests)
	}
	return false
}

func (s *SuspiciousActivityDetector) snapshot(ip string) ipActivity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.byIP[ip]; ok {
		return *a
	}
	return ipActivity{}
}
