// Package catalog defines the candidate-supplying contract the build
// engine consumes, and the providers that implement it.
package catalog

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/Ankaaflow/pc-builder-sub000/internal/model"
)

// Provider tiers, lowest ranks first when merged results tie.
const (
	TierScraped   = 0 // freshly discovered pricing
	TierStatic    = 1 // curated static catalog
	TierCommunity = 2 // community-sourced entries
)

// Provider supplies candidate components per category and region. A
// provider may legitimately return fewer candidates than exist, or none.
type Provider interface {
	// Name returns the provider identifier for logging.
	Name() string
	// Tier returns the provider's priority class (lower is fresher).
	Tier() int
	// Candidates lists available components for a category in a region.
	Candidates(ctx context.Context, cat model.Category, region model.Region) ([]model.Component, error)
}

// Registry merges candidates across registered providers. Components
// that normalize to the same name are deduplicated, keeping the entry
// from the lowest-tier (freshest) provider.
type Registry struct {
	mu        sync.RWMutex
	providers []Provider
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a provider. Providers are kept ordered by tier.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers = append(r.providers, p)
	sort.SliceStable(r.providers, func(i, j int) bool {
		return r.providers[i].Tier() < r.providers[j].Tier()
	})
}

// Providers returns the registered providers in tier order.
func (r *Registry) Providers() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// Candidates queries every provider in tier order and merges the results.
// A provider error (timeout, abandoned fetch) drops that provider's
// contribution, not the whole query: selection proceeds with whatever
// candidates arrived.
func (r *Registry) Candidates(ctx context.Context, cat model.Category, region model.Region) ([]model.Component, error) {
	seen := make(map[string]struct{})
	var merged []model.Component

	for _, p := range r.Providers() {
		if err := ctx.Err(); err != nil {
			return merged, err
		}
		comps, err := p.Candidates(ctx, cat, region)
		if err != nil {
			zap.L().Warn("catalog: provider query failed",
				zap.String("provider", p.Name()),
				zap.String("category", string(cat)),
				zap.Error(err),
			)
			continue
		}
		for _, c := range comps {
			key := c.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			c.SourceTier = p.Tier()
			merged = append(merged, c)
		}
	}

	return merged, nil
}
