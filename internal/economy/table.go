// Package economy holds the static base economy table: rarity tiers and per-resource
// yields, respawn durations, experience and rare materials.
package economy

import (
	"fmt"
	"math"
	"sort"

	"github.com/osse101/tidepool/internal/domain"
)

// ResourceEconomy is the static economics of one resource type.
type ResourceEconomy struct {
	ResourceType       domain.ResourceType `json:"resource_type"`
	BaseRespawnSeconds float64             `json:"base_respawn_seconds"`
	BaseExperience     float64             `json:"base_experience"`
	RareMaterial       string              `json:"rare_material"`
	// BaseYield is keyed by rarity tier name.
	BaseYield map[string]int `json:"base_yield"`
}

// File is the on-disk layout of the economy config.
type File struct {
	RarityTiers []domain.RarityTier `json:"rarity_tiers"`
	Resources   []ResourceEconomy   `json:"resources"`
}

// Table is the validated, read-only economy table.
type Table struct {
	tiers     []domain.RarityTier
	resources map[domain.ResourceType]ResourceEconomy
}

// New validates the tiers and resources and builds a Table.
// Every resource must carry a base yield for every tier.
func New(tiers []domain.RarityTier, resources []ResourceEconomy) (*Table, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("%w: no rarity tiers defined", domain.ErrInvalidConfiguration)
	}
	for _, tier := range tiers {
		if tier.RespawnMultiplier < 0 || math.IsNaN(tier.RespawnMultiplier) {
			return nil, fmt.Errorf(ErrMsgInvalidTierMultiplierFmt, domain.ErrInvalidConfiguration, tier.Name, tier.RespawnMultiplier)
		}
		if tier.BonusChance < 0 || tier.BonusChance > 1 || math.IsNaN(tier.BonusChance) {
			return nil, fmt.Errorf(ErrMsgInvalidBonusChanceFmt, domain.ErrInvalidConfiguration, tier.Name, tier.BonusChance)
		}
		if !(tier.HarvestDifficulty > 0) {
			return nil, fmt.Errorf(ErrMsgInvalidDifficultyFmt, domain.ErrInvalidConfiguration, tier.Name, tier.HarvestDifficulty)
		}
	}

	byType := make(map[domain.ResourceType]ResourceEconomy, len(resources))
	for _, res := range resources {
		rt := res.ResourceType.Normalize()
		if _, dup := byType[rt]; dup {
			return nil, fmt.Errorf(ErrMsgDuplicateResourceFmt, domain.ErrInvalidConfiguration, rt)
		}
		if res.BaseRespawnSeconds < 0 || math.IsNaN(res.BaseRespawnSeconds) {
			return nil, fmt.Errorf(ErrMsgInvalidRespawnFmt, domain.ErrInvalidConfiguration, rt, res.BaseRespawnSeconds)
		}
		if res.RareMaterial == "" {
			return nil, fmt.Errorf(ErrMsgMissingRareMaterialFmt, domain.ErrInvalidConfiguration, rt)
		}
		yields := make(map[string]int, len(res.BaseYield))
		for _, tier := range tiers {
			amount, ok := res.BaseYield[tier.Name]
			if !ok || amount < 0 {
				return nil, fmt.Errorf(ErrMsgMissingYieldFmt, domain.ErrInvalidConfiguration, rt, tier.Name)
			}
			yields[tier.Name] = amount
		}
		res.ResourceType = rt
		res.BaseYield = yields
		byType[rt] = res
	}

	tiersCopy := make([]domain.RarityTier, len(tiers))
	copy(tiersCopy, tiers)

	return &Table{tiers: tiersCopy, resources: byType}, nil
}

// Tiers returns a copy of the configured rarity tiers.
func (t *Table) Tiers() []domain.RarityTier {
	out := make([]domain.RarityTier, len(t.tiers))
	copy(out, t.tiers)
	return out
}

// Resource returns the economics for rt, or ErrInvalidConfiguration when rt is not configured.
func (t *Table) Resource(rt domain.ResourceType) (ResourceEconomy, error) {
	res, ok := t.resources[rt.Normalize()]
	if !ok {
		return ResourceEconomy{}, fmt.Errorf(ErrMsgUnknownResourceFmt, domain.ErrInvalidConfiguration, rt)
	}
	return res, nil
}

// BaseYield returns the primary yield for rt at the given rarity.
func (t *Table) BaseYield(rt domain.ResourceType, rarity string) (int, error) {
	res, err := t.Resource(rt)
	if err != nil {
		return 0, err
	}
	amount, ok := res.BaseYield[rarity]
	if !ok {
		return 0, fmt.Errorf(ErrMsgMissingYieldFmt, domain.ErrInvalidConfiguration, rt, rarity)
	}
	return amount, nil
}

// RespawnSeconds is the derived base respawn duration: resource base × tier multiplier.
func (t *Table) RespawnSeconds(rt domain.ResourceType, tier domain.RarityTier) (float64, error) {
	res, err := t.Resource(rt)
	if err != nil {
		return 0, err
	}
	return res.BaseRespawnSeconds * tier.RespawnMultiplier, nil
}

// ResourceTypes lists configured resource types in sorted order.
func (t *Table) ResourceTypes() []domain.ResourceType {
	out := make([]domain.ResourceType, 0, len(t.resources))
	for rt := range t.resources {
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
