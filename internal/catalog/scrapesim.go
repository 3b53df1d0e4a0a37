package catalog

import (
	"context"
	"math/rand"
	"sync"

	"github.com/Ankaaflow/pc-builder-sub000/internal/model"
)

// ScrapeSimProvider stands in for a live price scraper: it re-serves an
// inner provider's catalog with freshly jittered pricing and a matching
// trend flag, at the scraped (freshest) tier. Real scraping is a
// collaborator concern; this keeps the freshness tier exercised without
// network access.
type ScrapeSimProvider struct {
	inner Provider

	mu  sync.Mutex
	rng *rand.Rand
}

// NewScrapeSim wraps a provider with simulated fresh pricing. The seed
// makes runs reproducible; pass a time-derived seed for organic jitter.
func NewScrapeSim(inner Provider, seed int64) *ScrapeSimProvider {
	return &ScrapeSimProvider{
		inner: inner,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (p *ScrapeSimProvider) Name() string { return "scrape-sim" }
func (p *ScrapeSimProvider) Tier() int    { return TierScraped }

// Candidates re-prices the inner provider's components with up to ±3%
// jitter, marking the trend to match the direction of the move.
func (p *ScrapeSimProvider) Candidates(ctx context.Context, cat model.Category, region model.Region) ([]model.Component, error) {
	comps, err := p.inner.Candidates(ctx, cat, region)
	if err != nil {
		return nil, err
	}

	out := make([]model.Component, 0, len(comps))
	for _, c := range comps {
		fresh := c
		fresh.Prices = make(map[model.Region]int, len(c.Prices))
		for r, price := range c.Prices {
			jittered := p.jitter(price)
			fresh.Prices[r] = jittered
			if r == region {
				switch {
				case jittered > price:
					fresh.Trend = model.TrendUp
				case jittered < price:
					fresh.Trend = model.TrendDown
				default:
					fresh.Trend = model.TrendStable
				}
			}
		}
		out = append(out, fresh)
	}
	return out, nil
}

// jitter moves a price by up to ±3%, never below 1.
func (p *ScrapeSimProvider) jitter(price int) int {
	p.mu.Lock()
	f := 1 + (p.rng.Float64()*2-1)*0.03
	p.mu.Unlock()

	jittered := int(float64(price) * f)
	if jittered < 1 {
		jittered = 1
	}
	return jittered
}
