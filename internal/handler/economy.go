package handler

import (
	"net/http"

	"github.com/osse101/tidepool/internal/domain"
	"github.com/osse101/tidepool/internal/economy"
)

// EconomyResource is one configured resource as shown to operators
type EconomyResource struct {
	ResourceType       domain.ResourceType `json:"resource_type"`
	DisplayName        string              `json:"display_name"`
	BaseRespawnSeconds float64             `json:"base_respawn_seconds"`
	BaseExperience     float64             `json:"base_experience"`
	RareMaterial       string              `json:"rare_material"`
	BaseYield          map[string]int      `json:"base_yield"`
}

// EconomyResponse lists the configured rarity tiers and resources
type EconomyResponse struct {
	RarityTiers []domain.RarityTier `json:"rarity_tiers"`
	Resources   []EconomyResource   `json:"resources"`
}

// HandleGetEconomy handles GET /economy
func HandleGetEconomy(table *economy.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := EconomyResponse{RarityTiers: table.Tiers()}
		for _, rt := range table.ResourceTypes() {
			res, err := table.Resource(rt)
			if err != nil {
				respondServiceError(w, r, "Get economy", err)
				return
			}
			resp.Resources = append(resp.Resources, EconomyResource{
				ResourceType:       res.ResourceType,
				DisplayName:        res.ResourceType.DisplayName(),
				BaseRespawnSeconds: res.BaseRespawnSeconds,
				BaseExperience:     res.BaseExperience,
				RareMaterial:       res.RareMaterial,
				BaseYield:          res.BaseYield,
			})
		}
		respondJSON(w, http.StatusOK, resp)
	}
}
