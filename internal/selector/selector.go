// Package selector resolves a full build against a budget: categories
// are committed in dependency order (CPU, then motherboard, then memory,
// then the independent slots, then the power supply sized last), each
// slot going to the highest-scoring candidate that passes the
// deterministic rules against the partial build.
//
// Selection is greedy with no backtracking: once a category commits it
// is never revisited, so an early pick can strand a later category even
// when a different early pick would have worked. This mirrors how users
// shop part-by-part and keeps outcomes explainable.
package selector

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Ankaaflow/pc-builder-sub000/internal/budget"
	"github.com/Ankaaflow/pc-builder-sub000/internal/compat"
	"github.com/Ankaaflow/pc-builder-sub000/internal/model"
)

const defaultEnvelopeStretch = 1.5

// CandidateSource supplies candidates per category; the catalog registry
// implements it.
type CandidateSource interface {
	Candidates(ctx context.Context, cat model.Category, region model.Region) ([]model.Component, error)
}

// Options tunes a Selector.
type Options struct {
	// EnvelopeStretch widens the per-category budget envelope when
	// querying candidates so a category is not starved just because
	// nothing lands exactly inside it. Defaults to 1.5.
	EnvelopeStretch float64
	// Seed fixes the scoring jitter for reproducible runs; 0 seeds from
	// the clock.
	Seed int64
}

// Selector picks components for a build.
type Selector struct {
	source   CandidateSource
	reporter *compat.Reporter
	stretch  float64

	mu  sync.Mutex
	rng *rand.Rand
}

// Result is a finished (possibly partial) selection.
type Result struct {
	Build      *model.Build              `json:"build"`
	Allocation budget.Allocation         `json:"allocation"`
	Report     *compat.Report            `json:"report"`
	Skipped    map[model.Category]string `json:"skipped,omitempty"`
}

// New creates a Selector. reporter may be nil, in which case the final
// report comes from the deterministic rules alone.
func New(source CandidateSource, reporter *compat.Reporter, opts Options) *Selector {
	stretch := opts.EnvelopeStretch
	if stretch <= 0 {
		stretch = defaultEnvelopeStretch
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if reporter == nil {
		reporter = compat.NewReporter(nil)
	}
	return &Selector{
		source:   source,
		reporter: reporter,
		stretch:  stretch,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Select resolves a build for the budget and region. The CPU,
// motherboard and memory chain must resolve or the whole build fails
// with a NoCandidateError; the remaining categories degrade to being
// left unselected with a recorded reason.
func (s *Selector) Select(ctx context.Context, totalBudget int, region model.Region) (*Result, error) {
	if totalBudget <= 0 {
		return nil, eris.Errorf("selector: non-positive budget %d", totalBudget)
	}

	alloc := budget.Allocate(totalBudget)
	build := model.NewBuild(totalBudget, region)
	result := &Result{
		Build:      build,
		Allocation: alloc,
		Skipped:    make(map[model.Category]string),
	}

	// Dependency chain: each step is constrained by the previous one and
	// failure is fatal.
	for _, cat := range []model.Category{model.CategoryCPU, model.CategoryMotherboard, model.CategoryMemory} {
		pick, err := s.resolve(ctx, build, cat, alloc.Envelope(cat))
		if err != nil {
			return nil, err
		}
		build.Set(pick)
		s.logPick(cat, pick, region)
	}

	// The independent slots share no data dependency, so their candidate
	// fetches run concurrently; the picks still commit in a fixed order
	// because the case is checked against the chosen GPU and cooler.
	independents := []model.Category{model.CategoryGPU, model.CategoryStorage, model.CategoryCooler, model.CategoryCase}
	fetched, err := s.fetchConcurrently(ctx, region, independents)
	if err != nil {
		return nil, err
	}

	for _, cat := range independents {
		pick, err := s.pick(build, cat, alloc.Envelope(cat), fetched[cat])
		if err != nil {
			var nce *NoCandidateError
			if eris.As(err, &nce) {
				result.Skipped[cat] = nce.Reason
				zap.L().Warn("selector: leaving category unselected",
					zap.String("category", string(cat)),
					zap.String("reason", nce.Reason),
				)
				continue
			}
			return nil, err
		}
		build.Set(pick)
		s.logPick(cat, pick, region)
	}

	// Power supply last, sized against the draw of everything chosen.
	psu, err := s.resolvePSU(ctx, build, alloc.Envelope(model.CategoryPSU))
	if err != nil {
		var nce *NoCandidateError
		if eris.As(err, &nce) {
			result.Skipped[model.CategoryPSU] = nce.Reason
		} else {
			return nil, err
		}
	} else {
		build.Set(psu)
		s.logPick(model.CategoryPSU, psu, region)
	}

	result.Report = s.reporter.Report(ctx, build)

	zap.L().Info("selector: build resolved",
		zap.Int("budget", totalBudget),
		zap.String("region", string(region)),
		zap.Int("total_price", build.TotalPrice()),
		zap.Bool("compatible", result.Report.Compatible),
		zap.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

// resolve fetches and picks for one category, treating any failure as an
// error for the caller to classify.
func (s *Selector) resolve(ctx context.Context, build *model.Build, cat model.Category, envelope int) (*model.Component, error) {
	cands, err := s.source.Candidates(ctx, cat, build.Region)
	if err != nil {
		return nil, eris.Wrapf(err, "selector: fetch %s candidates", cat)
	}
	return s.pick(build, cat, envelope, cands)
}

// pick filters candidates to affordable, in-stock, rule-compatible ones
// and returns the highest-scoring survivor.
func (s *Selector) pick(build *model.Build, cat model.Category, envelope int, cands []model.Component) (*model.Component, error) {
	if len(cands) == 0 {
		return nil, &NoCandidateError{Category: cat, Envelope: envelope, Reason: ReasonNoCandidates}
	}

	ceilingPrice := int(math.Ceil(float64(envelope) * s.stretch))
	affordable := make([]scored, 0, len(cands))
	for i := range cands {
		c := cands[i]
		if c.Availability == model.AvailabilityOutOfStock {
			continue
		}
		price, ok := c.Price(build.Region)
		if !ok || price > ceilingPrice {
			continue
		}
		affordable = append(affordable, scored{component: c, price: price})
	}
	if len(affordable) == 0 {
		return nil, &NoCandidateError{Category: cat, Envelope: envelope, Considered: len(cands), Reason: ReasonNoneAffordable}
	}

	compatible := affordable[:0]
	for _, cand := range affordable {
		c := cand.component
		if rep := compat.Evaluate(build.With(&c)); len(rep.Issues) > 0 {
			continue
		}
		compatible = append(compatible, cand)
	}
	if len(compatible) == 0 {
		return nil, &NoCandidateError{Category: cat, Envelope: envelope, Considered: len(affordable), Reason: ReasonNoneCompatible}
	}

	for i := range compatible {
		compatible[i].score = s.score(&compatible[i].component, compatible[i].price, envelope)
	}
	rank(compatible)

	best := compatible[0].component
	return &best, nil
}

// resolvePSU sizes the supply against the estimated draw: only
// candidates clearing the 1.1x minimum qualify, then cost, headroom and
// efficiency certification decide.
func (s *Selector) resolvePSU(ctx context.Context, build *model.Build, envelope int) (*model.Component, error) {
	cands, err := s.source.Candidates(ctx, model.CategoryPSU, build.Region)
	if err != nil {
		return nil, eris.Wrap(err, "selector: fetch psu candidates")
	}
	if len(cands) == 0 {
		return nil, &NoCandidateError{Category: model.CategoryPSU, Envelope: envelope, Reason: ReasonNoCandidates}
	}

	draw := compat.EstimateDraw(build)
	minWattage := int(math.Ceil(float64(draw) * 1.1))
	ceilingPrice := int(math.Ceil(float64(envelope) * s.stretch))

	qualified := make([]scored, 0, len(cands))
	affordableCount := 0
	for i := range cands {
		c := cands[i]
		if c.Availability == model.AvailabilityOutOfStock {
			continue
		}
		price, ok := c.Price(build.Region)
		if !ok || price > ceilingPrice {
			continue
		}
		affordableCount++
		wattage, ok := psuRatedWattage(&c)
		if !ok || wattage < minWattage {
			continue
		}
		qualified = append(qualified, scored{
			component: c,
			price:     price,
			score:     psuScore(&c, price, envelope, wattage, draw),
		})
	}
	if len(qualified) == 0 {
		reason := ReasonNoneSufficient
		if affordableCount == 0 {
			reason = ReasonNoneAffordable
		}
		return nil, &NoCandidateError{Category: model.CategoryPSU, Envelope: envelope, Considered: len(cands), Reason: reason}
	}

	rank(qualified)
	best := qualified[0].component
	return &best, nil
}

// fetchConcurrently issues the candidate queries for independent
// categories in parallel.
func (s *Selector) fetchConcurrently(ctx context.Context, region model.Region, cats []model.Category) (map[model.Category][]model.Component, error) {
	var mu sync.Mutex
	fetched := make(map[model.Category][]model.Component, len(cats))

	g, gctx := errgroup.WithContext(ctx)
	for _, cat := range cats {
		g.Go(func() error {
			cands, err := s.source.Candidates(gctx, cat, region)
			if err != nil {
				return eris.Wrapf(err, "selector: fetch %s candidates", cat)
			}
			mu.Lock()
			fetched[cat] = cands
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fetched, nil
}

func (s *Selector) randFloat() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *Selector) logPick(cat model.Category, pick *model.Component, region model.Region) {
	price, _ := pick.Price(region)
	zap.L().Debug("selector: committed",
		zap.String("category", string(cat)),
		zap.String("component", pick.Name),
		zap.Int("price", price),
	)
}

// psuRatedWattage reads the supply's rating from specs or its name.
func psuRatedWattage(c *model.Component) (int, bool) {
	if s, ok := c.Specs.(model.PSUSpecs); ok && s.Wattage > 0 {
		return s.Wattage, true
	}
	return compat.PSUWattage(c)
}
