package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/tidepool/internal/domain"
)

func TestStaticToolCatalog_EffectivenessFor(t *testing.T) {
	catalog := DefaultToolCatalog()
	ctx := context.Background()

	tests := []struct {
		name     string
		tool     *domain.ToolContext
		rt       domain.ResourceType
		expected domain.ToolEffectiveness
	}{
		{
			name:     "no tool is bare hands",
			tool:     nil,
			rt:       domain.ResourceRock,
			expected: domain.BareHands(),
		},
		{
			name:     "resource override",
			tool:     &domain.ToolContext{ToolID: "k1", Kind: ToolKindKnife},
			rt:       domain.ResourceKelp,
			expected: domain.ToolEffectiveness{Equipped: true, SpeedMultiplier: 2.0, SuccessMultiplier: 1.25, BonusChanceAdd: 0.05, DurabilityLoss: 0.5},
		},
		{
			name:     "falls back to kind default",
			tool:     &domain.ToolContext{ToolID: "k1", Kind: ToolKindKnife},
			rt:       domain.ResourcePearl,
			expected: domain.ToolEffectiveness{Equipped: true, SpeedMultiplier: 1.2, SuccessMultiplier: 0.9, DurabilityLoss: 1},
		},
		{
			name:     "kind and resource are normalized",
			tool:     &domain.ToolContext{ToolID: "p1", Kind: "  PickAxe "},
			rt:       "ROCK",
			expected: domain.ToolEffectiveness{Equipped: true, SpeedMultiplier: 1.5, SuccessMultiplier: 1.3, BonusChanceAdd: 0.1, DurabilityLoss: 1.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eff, err := catalog.EffectivenessFor(ctx, tt.tool, tt.rt)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, eff)
		})
	}
}

func TestStaticToolCatalog_UnknownKind(t *testing.T) {
	catalog := DefaultToolCatalog()

	_, err := catalog.EffectivenessFor(context.Background(), &domain.ToolContext{Kind: "spoon"}, domain.ResourceKelp)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "spoon")
}

func TestStaticToolCatalog_Kinds(t *testing.T) {
	catalog := NewStaticToolCatalog(map[string]ToolProfile{"Net": {}, "trap": {}})
	assert.ElementsMatch(t, []string{"net", "trap"}, catalog.Kinds())
	assert.ElementsMatch(t, []string{ToolKindKnife, ToolKindPickaxe, ToolKindPryBar}, DefaultToolCatalog().Kinds())
}
