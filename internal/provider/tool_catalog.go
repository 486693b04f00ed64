package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/tidepool/internal/domain"
)

// Tool kinds shipped with the default catalog
const (
	ToolKindKnife   = "knife"
	ToolKindPickaxe = "pickaxe"
	ToolKindPryBar  = "pry_bar"
)

// ToolProfile is a tool kind's effectiveness, optionally overridden per resource type.
type ToolProfile struct {
	Default    domain.ToolEffectiveness
	ByResource map[domain.ResourceType]domain.ToolEffectiveness
}

// StaticToolCatalog answers effectiveness lookups from a fixed table keyed by tool kind.
type StaticToolCatalog struct {
	profiles map[string]ToolProfile
}

// NewStaticToolCatalog creates a catalog. Kind keys are normalized to lower case.
func NewStaticToolCatalog(profiles map[string]ToolProfile) *StaticToolCatalog {
	normalized := make(map[string]ToolProfile, len(profiles))
	for kind, profile := range profiles {
		normalized[normalizeKind(kind)] = profile
	}
	return &StaticToolCatalog{profiles: normalized}
}

// DefaultToolCatalog returns the catalog used by the demo host
func DefaultToolCatalog() *StaticToolCatalog {
	return NewStaticToolCatalog(map[string]ToolProfile{
		ToolKindKnife: {
			Default: domain.ToolEffectiveness{Equipped: true, SpeedMultiplier: 1.2, SuccessMultiplier: 0.9, DurabilityLoss: 1},
			ByResource: map[domain.ResourceType]domain.ToolEffectiveness{
				domain.ResourceKelp: {Equipped: true, SpeedMultiplier: 2.0, SuccessMultiplier: 1.25, BonusChanceAdd: 0.05, DurabilityLoss: 0.5},
			},
		},
		ToolKindPickaxe: {
			Default: domain.ToolEffectiveness{Equipped: true, SpeedMultiplier: 0.8, SuccessMultiplier: 0.8, DurabilityLoss: 2},
			ByResource: map[domain.ResourceType]domain.ToolEffectiveness{
				domain.ResourceRock:  {Equipped: true, SpeedMultiplier: 1.5, SuccessMultiplier: 1.3, BonusChanceAdd: 0.1, DurabilityLoss: 1.5},
				domain.ResourceCoral: {Equipped: true, SpeedMultiplier: 1.2, SuccessMultiplier: 1.1, DurabilityLoss: 2},
			},
		},
		ToolKindPryBar: {
			Default: domain.ToolEffectiveness{Equipped: true, SpeedMultiplier: 1.0, SuccessMultiplier: 0.9, DurabilityLoss: 1},
			ByResource: map[domain.ResourceType]domain.ToolEffectiveness{
				domain.ResourcePearl: {Equipped: true, SpeedMultiplier: 1.0, SuccessMultiplier: 1.4, BonusChanceAdd: 0.05, DurabilityLoss: 1},
			},
		},
	})
}

// EffectivenessFor implements ToolEffectivenessProvider
func (c *StaticToolCatalog) EffectivenessFor(_ context.Context, tool *domain.ToolContext, rt domain.ResourceType) (domain.ToolEffectiveness, error) {
	if tool == nil {
		return domain.BareHands(), nil
	}
	profile, ok := c.profiles[normalizeKind(tool.Kind)]
	if !ok {
		return domain.ToolEffectiveness{}, fmt.Errorf("%w: unknown tool kind %q", domain.ErrInvalidInput, tool.Kind)
	}
	if eff, ok := profile.ByResource[rt.Normalize()]; ok {
		return eff, nil
	}
	return profile.Default, nil
}

// Kinds returns the known tool kinds
func (c *StaticToolCatalog) Kinds() []string {
	kinds := make([]string, 0, len(c.profiles))
	for kind := range c.profiles {
		kinds = append(kinds, kind)
	}
	return kinds
}

func normalizeKind(kind string) string {
	return strings.ToLower(strings.TrimSpace(kind))
}
