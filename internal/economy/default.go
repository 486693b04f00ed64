package economy

import "github.com/osse101/tidepool/internal/domain"

// DefaultTiers mirrors the rarity_tiers section of configs/economy/harvest_economy.json.
func DefaultTiers() []domain.RarityTier {
	return []domain.RarityTier{
		{Name: domain.RarityCommon, Rank: 0, SelectionWeight: 0.80, RespawnMultiplier: 1.0, BonusChance: 0.05, HarvestDifficulty: 1.0},
		{Name: domain.RarityUncommon, Rank: 1, SelectionWeight: 0.15, RespawnMultiplier: 1.5, BonusChance: 0.15, HarvestDifficulty: 1.3},
		{Name: domain.RarityRare, Rank: 2, SelectionWeight: 0.05, RespawnMultiplier: 2.5, BonusChance: 0.30, HarvestDifficulty: 2.0},
	}
}

// DefaultResources mirrors the resources section of configs/economy/harvest_economy.json.
func DefaultResources() []ResourceEconomy {
	return []ResourceEconomy{
		{
			ResourceType:       domain.ResourceKelp,
			BaseRespawnSeconds: 60,
			BaseExperience:     5,
			RareMaterial:       "glowing_kelp_essence",
			BaseYield:          map[string]int{domain.RarityCommon: 3, domain.RarityUncommon: 5, domain.RarityRare: 8},
		},
		{
			ResourceType:       domain.ResourceRock,
			BaseRespawnSeconds: 120,
			BaseExperience:     8,
			RareMaterial:       "geode_fragment",
			BaseYield:          map[string]int{domain.RarityCommon: 2, domain.RarityUncommon: 4, domain.RarityRare: 6},
		},
		{
			ResourceType:       domain.ResourcePearl,
			BaseRespawnSeconds: 300,
			BaseExperience:     15,
			RareMaterial:       "black_pearl",
			BaseYield:          map[string]int{domain.RarityCommon: 1, domain.RarityUncommon: 2, domain.RarityRare: 3},
		},
		{
			ResourceType:       domain.ResourceCoral,
			BaseRespawnSeconds: 180,
			BaseExperience:     10,
			RareMaterial:       "living_coral_polyp",
			BaseYield:          map[string]int{domain.RarityCommon: 2, domain.RarityUncommon: 3, domain.RarityRare: 5},
		},
	}
}

// Default builds the in-code table. It panics only if the literals above are malformed.
func Default() *Table {
	table, err := New(DefaultTiers(), DefaultResources())
	if err != nil {
		panic(err)
	}
	return table
}
