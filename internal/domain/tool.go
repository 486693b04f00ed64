package domain

// ToolContext identifies the equipped tool as seen by the external tool system.
type ToolContext struct {
	ToolID string `json:"tool_id"`
	Kind   string `json:"kind"`
}

// ToolEffectiveness is the multiplier bundle a tool contributes against one resource type.
type ToolEffectiveness struct {
	Equipped          bool    `json:"equipped"`
	SpeedMultiplier   float64 `json:"speed_multiplier"`
	SuccessMultiplier float64 `json:"success_multiplier"`
	BonusChanceAdd    float64 `json:"bonus_chance_add"`
	DurabilityLoss    float64 `json:"durability_loss"`
}

// Bare-hands effectiveness values
const (
	BareHandsSuccessMultiplier = 0.6
	BareHandsSpeedMultiplier   = 1.0
)

// BareHands returns the effectiveness used when no tool is equipped.
func BareHands() ToolEffectiveness {
	return ToolEffectiveness{
		Equipped:          false,
		SpeedMultiplier:   BareHandsSpeedMultiplier,
		SuccessMultiplier: BareHandsSuccessMultiplier,
	}
}
