package provider

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/tidepool/internal/domain"
	"github.com/osse101/tidepool/internal/metrics"
)

// Cache lookup results recorded in metrics
const (
	cacheResultHit  = "hit"
	cacheResultMiss = "miss"
)

// CachedToolProvider memoizes another provider's answers with an expiring LRU.
// Bare-hands lookups and errors are never cached.
type CachedToolProvider struct {
	next ToolEffectivenessProvider
	lru  *expirable.LRU[string, domain.ToolEffectiveness]
}

// NewCachedToolProvider wraps next with a cache of the given size and TTL.
func NewCachedToolProvider(next ToolEffectivenessProvider, size int, ttl time.Duration) *CachedToolProvider {
	return &CachedToolProvider{
		next: next,
		lru:  expirable.NewLRU[string, domain.ToolEffectiveness](size, nil, ttl),
	}
}

// EffectivenessFor implements ToolEffectivenessProvider
func (c *CachedToolProvider) EffectivenessFor(ctx context.Context, tool *domain.ToolContext, rt domain.ResourceType) (domain.ToolEffectiveness, error) {
	if tool == nil {
		return c.next.EffectivenessFor(ctx, nil, rt)
	}

	key := cacheKey(tool, rt)
	if eff, ok := c.lru.Get(key); ok {
		metrics.ToolCacheLookupsTotal.WithLabelValues(cacheResultHit).Inc()
		return eff, nil
	}
	metrics.ToolCacheLookupsTotal.WithLabelValues(cacheResultMiss).Inc()

	eff, err := c.next.EffectivenessFor(ctx, tool, rt)
	if err != nil {
		return domain.ToolEffectiveness{}, err
	}
	c.lru.Add(key, eff)
	return eff, nil
}

// Len returns the number of cached entries
func (c *CachedToolProvider) Len() int {
	return c.lru.Len()
}

// Purge drops every cached entry
func (c *CachedToolProvider) Purge() {
	c.lru.Purge()
}

func cacheKey(tool *domain.ToolContext, rt domain.ResourceType) string {
	return tool.ToolID + ":" + normalizeKind(tool.Kind) + ":" + string(rt.Normalize())
}
