package harvest

const (
	baseSuccessChance = 0.8 // Success chance before tool, stamina and difficulty modifiers
	rareDropChance    = 0.2 // Fixed chance of a rare material on Rare-tier nodes
)

const (
	staminaFloor             = 0.3 // Stamina below this counts as this for chance and cost
	insufficientStaminaLevel = 0.2 // Failures below this are blamed on stamina
	toolRequiredDifficulty   = 1.5 // Bare-handed failures above this difficulty report ToolRequired
)

const (
	baseStaminaCost    = 10.0
	baseHarvestSeconds = 2.0
	minSpeedMultiplier = 0.1 // Keeps harvest duration finite when a tool reports zero speed
	bonusYieldDivisor  = 2
	minBonusYield      = 1
)
