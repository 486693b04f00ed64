// Package provider holds the read-only collaborators the engine consults while resolving a harvest.
package provider

import (
	"context"

	"github.com/osse101/tidepool/internal/domain"
)

// ToolEffectivenessProvider reports how well a tool performs against a resource type.
// A nil tool means bare hands and must yield domain.BareHands().
type ToolEffectivenessProvider interface {
	EffectivenessFor(ctx context.Context, tool *domain.ToolContext, rt domain.ResourceType) (domain.ToolEffectiveness, error)
}

// StaminaProvider reports an actor's stamina in [0,1].
type StaminaProvider interface {
	StaminaPercentFor(ctx context.Context, actorID string) (float64, error)
}
