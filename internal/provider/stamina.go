package provider

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/osse101/tidepool/internal/domain"
	"github.com/osse101/tidepool/internal/utils"
)

// DefaultStaminaPercent is reported for actors the tracker has never seen
const DefaultStaminaPercent = 1.0

// StaminaTracker is an in-memory StaminaProvider fed by the host application.
type StaminaTracker struct {
	mu       sync.RWMutex
	levels   map[string]float64
	fallback float64
}

// NewStaminaTracker creates a tracker reporting fallback for unknown actors.
func NewStaminaTracker(fallback float64) *StaminaTracker {
	return &StaminaTracker{
		levels:   make(map[string]float64),
		fallback: utils.Clamp(fallback, 0, 1),
	}
}

// Set records an actor's stamina, clamped to [0,1].
func (s *StaminaTracker) Set(actorID string, percent float64) error {
	if actorID == "" {
		return fmt.Errorf("%w: empty actor id", domain.ErrInvalidInput)
	}
	if math.IsNaN(percent) {
		return fmt.Errorf("%w: stamina is NaN", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels[actorID] = utils.Clamp(percent, 0, 1)
	return nil
}

// Forget drops an actor's recorded stamina
func (s *StaminaTracker) Forget(actorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.levels, actorID)
}

// StaminaPercentFor implements StaminaProvider
func (s *StaminaTracker) StaminaPercentFor(_ context.Context, actorID string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if level, ok := s.levels[actorID]; ok {
		return level, nil
	}
	return s.fallback, nil
}
