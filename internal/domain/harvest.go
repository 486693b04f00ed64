package domain

// FailureReason explains an unsuccessful harvest.
type FailureReason string

const (
	FailureInsufficientStamina FailureReason = "insufficient_stamina"
	FailureToolRequired        FailureReason = "tool_required"
	FailureGeneric             FailureReason = "generic_failure"
)

// HarvestOutcome is the result of one resolved harvest attempt.
// Exactly one of Success or FailureReason is set.
type HarvestOutcome struct {
	Success                bool                 `json:"success"`
	PrimaryYield           map[ResourceType]int `json:"primary_yield,omitempty"`
	BonusYield             map[ResourceType]int `json:"bonus_yield,omitempty"`
	RareDrop               string               `json:"rare_drop,omitempty"`
	Experience             uint32               `json:"experience"`
	ToolDurabilityLoss     float64              `json:"tool_durability_loss"`
	StaminaCost            uint32               `json:"stamina_cost"`
	HarvestDurationSeconds float64              `json:"harvest_duration_seconds"`
	FailureReason          FailureReason        `json:"failure_reason,omitempty"`
}

// HarvestContext identifies who is harvesting and with what.
type HarvestContext struct {
	ActorID string
	// Tool is nil when the actor harvests bare-handed.
	Tool *ToolContext
}
