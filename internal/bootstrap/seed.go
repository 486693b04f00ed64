package bootstrap

import (
	"context"

	"github.com/osse101/tidepool/internal/domain"
	"github.com/osse101/tidepool/internal/logger"
	"github.com/osse101/tidepool/internal/registry"
	"github.com/osse101/tidepool/internal/utils"
)

// SeedNodes creates count nodes cycling through resourceTypes at random positions.
// Rarity is rolled by the registry. Returns how many were created.
func SeedNodes(ctx context.Context, reg registry.Service, resourceTypes []domain.ResourceType, count int, rng utils.RandomSource) int {
	if count <= 0 || len(resourceTypes) == 0 {
		return 0
	}
	log := logger.FromContext(ctx)

	created := 0
	for i := 0; i < count; i++ {
		rt := resourceTypes[i%len(resourceTypes)]
		pos := domain.Position{
			X: utils.UniformRange(rng, -SeedAreaHalfWidth, SeedAreaHalfWidth),
			Y: utils.UniformRange(rng, -SeedAreaHalfWidth, SeedAreaHalfWidth),
			Z: utils.UniformRange(rng, -SeedMaxDepth, 0),
		}
		if _, err := reg.CreateNode(ctx, rt, pos); err != nil {
			log.Warn(LogMsgSeedNodeFailed, "resource_type", rt, "error", err)
			continue
		}
		created++
	}

	log.Info(LogMsgNodesSeeded, "requested", count, "created", created)
	return created
}
