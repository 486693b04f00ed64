package economy

// ==================== Config Paths ====================

const (
	DefaultConfigPath = "configs/economy/harvest_economy.json"
	DefaultSchemaPath = "configs/schemas/harvest_economy.schema.json"
)

// ==================== Error Messages ====================

// Formatted error messages for table validation
const (
	ErrMsgReadConfigFailedFmt      = "failed to read economy config %s: %w"
	ErrMsgSchemaValidationFmt      = "schema validation failed for %s: %w"
	ErrMsgParseConfigFailedFmt     = "failed to parse economy config %s: %w"
	ErrMsgUnknownResourceFmt       = "%w: resource type %q missing from economy table"
	ErrMsgDuplicateResourceFmt     = "%w: resource type %q defined twice"
	ErrMsgMissingYieldFmt          = "%w: resource type %q has no base yield for rarity %q"
	ErrMsgInvalidRespawnFmt        = "%w: resource type %q has invalid base respawn seconds %v"
	ErrMsgInvalidTierMultiplierFmt = "%w: rarity %q has invalid respawn multiplier %v"
	ErrMsgInvalidBonusChanceFmt    = "%w: rarity %q has bonus chance %v outside [0,1]"
	ErrMsgInvalidDifficultyFmt     = "%w: rarity %q has non-positive harvest difficulty %v"
	ErrMsgMissingRareMaterialFmt   = "%w: resource type %q has no rare material"
)
