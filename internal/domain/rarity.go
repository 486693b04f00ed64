package domain

// Rarity tier names
const (
	RarityCommon   = "Common"
	RarityUncommon = "Uncommon"
	RarityRare     = "Rare"
)

// RarityTier is an immutable bucket of economic multipliers attached to a node at creation.
type RarityTier struct {
	Name string `json:"name"`
	// Rank fixes the deterministic order used for cumulative weight selection.
	Rank              int     `json:"rank"`
	SelectionWeight   float64 `json:"selection_weight"`
	RespawnMultiplier float64 `json:"respawn_multiplier"`
	BonusChance       float64 `json:"bonus_chance"`
	HarvestDifficulty float64 `json:"harvest_difficulty"`
}

// IsRare reports whether the tier is eligible for rare-material drops.
func (t RarityTier) IsRare() bool {
	return t.Name == RarityRare
}
