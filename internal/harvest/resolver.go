// Package harvest resolves a single harvest attempt into an outcome.
package harvest

import (
	"fmt"
	"math"

	"github.com/osse101/tidepool/internal/domain"
	"github.com/osse101/tidepool/internal/economy"
	"github.com/osse101/tidepool/internal/utils"
)

// Attempt carries the node fields and external inputs for one resolution.
type Attempt struct {
	ResourceType   domain.ResourceType
	Rarity         domain.RarityTier
	Tool           domain.ToolEffectiveness
	StaminaPercent float64
}

// Resolver computes harvest outcomes from the static economy table.
// It keeps no state between calls; all randomness comes from the caller's source.
type Resolver struct {
	table *economy.Table
}

// NewResolver creates a resolver backed by table.
func NewResolver(table *economy.Table) *Resolver {
	return &Resolver{table: table}
}

// SuccessChance is baseSuccessChance × successMultiplier × max(0.3, stamina) / difficulty,
// clamped to [0,1]. A NaN multiplier counts as zero.
func SuccessChance(rarity domain.RarityTier, tool domain.ToolEffectiveness, staminaPercent float64) float64 {
	multiplier := math.Max(0, utils.NaNTo(tool.SuccessMultiplier, 0))
	chance := baseSuccessChance * multiplier * effectiveStamina(staminaPercent) / rarity.HarvestDifficulty
	return utils.Clamp(utils.NaNTo(chance, 0), 0, 1)
}

// StaminaCost is round(10 / max(0.3, stamina)).
func StaminaCost(staminaPercent float64) uint32 {
	return utils.RoundToUint(baseStaminaCost / effectiveStamina(staminaPercent))
}

// DurationSeconds is 2.0 / speedMultiplier. NaN and very slow speeds count as minSpeedMultiplier.
func DurationSeconds(tool domain.ToolEffectiveness) float64 {
	return baseHarvestSeconds / math.Max(minSpeedMultiplier, utils.NaNTo(tool.SpeedMultiplier, minSpeedMultiplier))
}

// effectiveStamina clamps to [0.3, 1]; unknown stamina counts as exhausted.
func effectiveStamina(staminaPercent float64) float64 {
	return math.Max(staminaFloor, utils.Clamp(utils.NaNTo(staminaPercent, 0), 0, 1))
}

// Resolve rolls a harvest attempt. Draw order is fixed: success, then bonus, then rare drop,
// each an independent draw taken only when that step applies.
// The only error is a resource type missing from the economy table.
func (r *Resolver) Resolve(attempt Attempt, rng utils.RandomSource) (domain.HarvestOutcome, error) {
	res, err := r.table.Resource(attempt.ResourceType)
	if err != nil {
		return domain.HarvestOutcome{}, err
	}
	primary, ok := res.BaseYield[attempt.Rarity.Name]
	if !ok {
		return domain.HarvestOutcome{}, fmt.Errorf(economy.ErrMsgMissingYieldFmt, domain.ErrInvalidConfiguration, attempt.ResourceType, attempt.Rarity.Name)
	}

	outcome := domain.HarvestOutcome{
		ToolDurabilityLoss:     math.Max(0, utils.NaNTo(attempt.Tool.DurabilityLoss, 0)),
		StaminaCost:            StaminaCost(attempt.StaminaPercent),
		HarvestDurationSeconds: DurationSeconds(attempt.Tool),
	}

	chance := SuccessChance(attempt.Rarity, attempt.Tool, attempt.StaminaPercent)
	if rng.Float64() >= chance {
		outcome.FailureReason = failureReason(attempt)
		return outcome, nil
	}

	outcome.Success = true
	outcome.PrimaryYield = map[domain.ResourceType]int{res.ResourceType: primary}
	outcome.Experience = utils.RoundToUint(res.BaseExperience * attempt.Rarity.HarvestDifficulty)

	bonusChance := attempt.Rarity.BonusChance + math.Max(0, utils.NaNTo(attempt.Tool.BonusChanceAdd, 0))
	if rng.Float64() < bonusChance {
		outcome.BonusYield = map[domain.ResourceType]int{res.ResourceType: bonusAmount(primary)}
	}

	if attempt.Rarity.IsRare() && rng.Float64() < rareDropChance {
		outcome.RareDrop = res.RareMaterial
	}

	return outcome, nil
}

// failureReason applies the first matching policy.
func failureReason(attempt Attempt) domain.FailureReason {
	switch {
	case attempt.StaminaPercent < insufficientStaminaLevel:
		return domain.FailureInsufficientStamina
	case !attempt.Tool.Equipped && attempt.Rarity.HarvestDifficulty > toolRequiredDifficulty:
		return domain.FailureToolRequired
	default:
		return domain.FailureGeneric
	}
}

func bonusAmount(primary int) int {
	if amount := primary / bonusYieldDivisor; amount > minBonusYield {
		return amount
	}
	return minBonusYield
}
