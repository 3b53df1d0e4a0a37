package catalog

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ankaaflow/pc-builder-sub000/internal/model"
)

// stubProvider serves a fixed component list at a fixed tier.
type stubProvider struct {
	name  string
	tier  int
	comps []model.Component
	err   error
}

func (p stubProvider) Name() string { return p.name }
func (p stubProvider) Tier() int    { return p.tier }

func (p stubProvider) Candidates(_ context.Context, cat model.Category, region model.Region) ([]model.Component, error) {
	if p.err != nil {
		return nil, p.err
	}
	var out []model.Component
	for _, c := range p.comps {
		if c.Category != cat {
			continue
		}
		if _, ok := c.Price(region); !ok {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func comp(name string, cat model.Category, price int) model.Component {
	return model.Component{
		ID:       name,
		Name:     name,
		Category: cat,
		Prices:   map[model.Region]int{"US": price},
	}
}

func TestRegistry_TierOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(stubProvider{name: "community", tier: TierCommunity})
	r.Register(stubProvider{name: "scraped", tier: TierScraped})
	r.Register(stubProvider{name: "static", tier: TierStatic})

	ps := r.Providers()
	require.Len(t, ps, 3)
	assert.Equal(t, "scraped", ps[0].Name())
	assert.Equal(t, "static", ps[1].Name())
	assert.Equal(t, "community", ps[2].Name())
}

func TestRegistry_DedupKeepsLowestTier(t *testing.T) {
	fresh := comp("AMD Ryzen 5 7600", model.CategoryCPU, 219)
	stale := comp("AMD Ryzen 5 7600", model.CategoryCPU, 229)
	other := comp("Intel Core i5-13600K", model.CategoryCPU, 285)

	r := NewRegistry()
	r.Register(stubProvider{name: "static", tier: TierStatic, comps: []model.Component{stale, other}})
	r.Register(stubProvider{name: "scraped", tier: TierScraped, comps: []model.Component{fresh}})

	merged, err := r.Candidates(context.Background(), model.CategoryCPU, "US")
	require.NoError(t, err)
	require.Len(t, merged, 2)

	byName := make(map[string]model.Component)
	for _, c := range merged {
		byName[c.Name] = c
	}
	got := byName["AMD Ryzen 5 7600"]
	price, _ := got.Price("US")
	assert.Equal(t, 219, price, "scraped entry wins the dedup")
	assert.Equal(t, TierScraped, got.SourceTier)
	assert.Equal(t, TierStatic, byName["Intel Core i5-13600K"].SourceTier)
}

func TestRegistry_DedupIsNameNormalized(t *testing.T) {
	r := NewRegistry()
	r.Register(stubProvider{name: "scraped", tier: TierScraped, comps: []model.Component{
		comp("Noctua NH-D15", model.CategoryCooler, 109),
	}})
	r.Register(stubProvider{name: "static", tier: TierStatic, comps: []model.Component{
		comp("noctua nh d15", model.CategoryCooler, 119),
	}})

	merged, err := r.Candidates(context.Background(), model.CategoryCooler, "US")
	require.NoError(t, err)
	require.Len(t, merged, 1)
	price, _ := merged[0].Price("US")
	assert.Equal(t, 109, price)
}

func TestRegistry_ProviderErrorSkipped(t *testing.T) {
	ok := comp("Kingston NV2 1TB", model.CategoryStorage, 55)

	r := NewRegistry()
	r.Register(stubProvider{name: "scraped", tier: TierScraped, err: eris.New("timeout")})
	r.Register(stubProvider{name: "static", tier: TierStatic, comps: []model.Component{ok}})

	merged, err := r.Candidates(context.Background(), model.CategoryStorage, "US")
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "Kingston NV2 1TB", merged[0].Name)
}

func TestRegistry_ContextCancellation(t *testing.T) {
	r := NewRegistry()
	r.Register(stubProvider{name: "static", tier: TierStatic, comps: []model.Component{
		comp("Thing", model.CategoryCase, 80),
	}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Candidates(ctx, model.CategoryCase, "US")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegistry_EmptyRegistry(t *testing.T) {
	r := NewRegistry()
	merged, err := r.Candidates(context.Background(), model.CategoryCPU, "US")
	require.NoError(t, err)
	assert.Empty(t, merged)
}
