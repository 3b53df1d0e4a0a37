package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Ankaaflow/pc-builder-sub000/internal/learned"
	"github.com/Ankaaflow/pc-builder-sub000/internal/model"
)

// CommunityProvider serves components surfaced from observed community
// builds. Beyond acting as a lowest-priority candidate source, each
// ingested build feeds pair observations into the learned overlay, which
// is where the soft compatibility evidence comes from.
type CommunityProvider struct {
	overlay *learned.Overlay // optional

	mu    sync.RWMutex
	byCat map[model.Category][]model.Component
}

// NewCommunity creates an empty community provider. overlay may be nil;
// observations are then simply not recorded.
func NewCommunity(overlay *learned.Overlay) *CommunityProvider {
	return &CommunityProvider{
		overlay: overlay,
		byCat:   make(map[model.Category][]model.Component),
	}
}

func (p *CommunityProvider) Name() string { return "community" }
func (p *CommunityProvider) Tier() int    { return TierCommunity }

func (p *CommunityProvider) Candidates(_ context.Context, cat model.Category, region model.Region) ([]model.Component, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []model.Component
	for _, c := range p.byCat[cat] {
		if _, ok := c.Price(region); !ok {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// IngestBuild adds the components of one observed working build and
// records the compatibility pairings it evidences: CPU+motherboard,
// CPU+cooler, and motherboard+memory.
func (p *CommunityProvider) IngestBuild(ctx context.Context, comps []model.Component) {
	byCat := make(map[model.Category]*model.Component, len(comps))

	p.mu.Lock()
	for i := range comps {
		c := comps[i]
		p.byCat[c.Category] = append(p.byCat[c.Category], c)
		byCat[c.Category] = &comps[i]
	}
	p.mu.Unlock()

	if p.overlay == nil {
		return
	}
	pairs := [][2]model.Category{
		{model.CategoryCPU, model.CategoryMotherboard},
		{model.CategoryCPU, model.CategoryCooler},
		{model.CategoryMotherboard, model.CategoryMemory},
	}
	recorded := 0
	for _, pair := range pairs {
		a, b := byCat[pair[0]], byCat[pair[1]]
		if a == nil || b == nil {
			continue
		}
		p.overlay.Record(ctx, a.Name, b.Name, true, "community-build")
		recorded++
	}
	zap.L().Debug("catalog: community build ingested",
		zap.Int("components", len(comps)),
		zap.Int("pairs_recorded", recorded),
	)
}
