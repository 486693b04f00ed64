// Package rarity selects rarity tiers by cumulative weight.
package rarity

import (
	"fmt"
	"math"
	"sort"

	"github.com/osse101/tidepool/internal/domain"
	"github.com/osse101/tidepool/internal/utils"
)

// Assigner picks a rarity tier for a new node. It holds no mutable state;
// all randomness comes from the source passed to Assign.
type Assigner struct {
	tiers       []domain.RarityTier
	cumulative  []float64
	totalWeight float64
}

// NewAssigner validates tiers and precomputes the normalized cumulative weights.
// Weights summing to zero (or any negative/NaN weight) is a configuration error.
func NewAssigner(tiers []domain.RarityTier) (*Assigner, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("%w: no rarity tiers defined", domain.ErrInvalidConfiguration)
	}

	ordered := make([]domain.RarityTier, len(tiers))
	copy(ordered, tiers)
	sortTiers(ordered)

	total := 0.0
	seen := make(map[string]bool, len(ordered))
	for _, tier := range ordered {
		if seen[tier.Name] {
			return nil, fmt.Errorf("%w: duplicate rarity tier %q", domain.ErrInvalidConfiguration, tier.Name)
		}
		seen[tier.Name] = true
		if tier.SelectionWeight < 0 || math.IsNaN(tier.SelectionWeight) || math.IsInf(tier.SelectionWeight, 0) {
			return nil, fmt.Errorf("%w: tier %q has invalid selection weight %v", domain.ErrInvalidConfiguration, tier.Name, tier.SelectionWeight)
		}
		total += tier.SelectionWeight
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: rarity selection weights sum to zero", domain.ErrInvalidConfiguration)
	}

	cumulative := make([]float64, len(ordered))
	running := 0.0
	for i, tier := range ordered {
		running += tier.SelectionWeight / total
		cumulative[i] = running
	}

	return &Assigner{
		tiers:       ordered,
		cumulative:  cumulative,
		totalWeight: total,
	}, nil
}

// Assign draws once from rng and returns the first tier whose cumulative weight exceeds the draw.
func (a *Assigner) Assign(rng utils.RandomSource) domain.RarityTier {
	return a.Select(rng.Float64())
}

// Select maps a draw in [0,1) to a tier. Draws at or past the last boundary
// (floating point rounding) resolve to the last tier with non-zero weight.
func (a *Assigner) Select(draw float64) domain.RarityTier {
	for i, c := range a.cumulative {
		if draw < c && a.tiers[i].SelectionWeight > 0 {
			return a.tiers[i]
		}
	}
	for i := len(a.tiers) - 1; i >= 0; i-- {
		if a.tiers[i].SelectionWeight > 0 {
			return a.tiers[i]
		}
	}
	return a.tiers[len(a.tiers)-1]
}

// Lookup returns the tier with the given name (case-sensitive).
func (a *Assigner) Lookup(name string) (domain.RarityTier, bool) {
	for _, tier := range a.tiers {
		if tier.Name == name {
			return tier, true
		}
	}
	return domain.RarityTier{}, false
}

// Tiers returns the tiers in selection order.
func (a *Assigner) Tiers() []domain.RarityTier {
	out := make([]domain.RarityTier, len(a.tiers))
	copy(out, a.tiers)
	return out
}

// Probability returns the normalized selection probability of the named tier.
func (a *Assigner) Probability(name string) float64 {
	for _, tier := range a.tiers {
		if tier.Name == name {
			return tier.SelectionWeight / a.totalWeight
		}
	}
	return 0
}

func sortTiers(tiers []domain.RarityTier) {
	sort.SliceStable(tiers, func(i, j int) bool {
		if tiers[i].Rank != tiers[j].Rank {
			return tiers[i].Rank < tiers[j].Rank
		}
		return tiers[i].Name < tiers[j].Name
	})
}
