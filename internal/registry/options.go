package registry

// CreateOption customizes a node at creation
type CreateOption func(*createOptions)

type createOptions struct {
	rarity           string
	enhancementLevel uint32
}

// WithRarity pins the node's rarity tier by name instead of rolling one.
func WithRarity(name string) CreateOption {
	return func(o *createOptions) { o.rarity = name }
}

// WithEnhancementLevel sets the node's enhancement level.
func WithEnhancementLevel(level uint32) CreateOption {
	return func(o *createOptions) { o.enhancementLevel = level }
}
