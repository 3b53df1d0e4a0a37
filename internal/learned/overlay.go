// Package learned maintains a soft compatibility index mined from
// observed community builds. It augments the deterministic rule engine
// for pairings the rules cannot resolve; it never produces critical
// findings and it fails open when its backing store is unavailable.
package learned

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Ankaaflow/pc-builder-sub000/internal/model"
)

const (
	// baseConfidence is assigned on the first observation of a pair.
	baseConfidence = 0.6
	// corroborationStep is added per repeat observation, capped at 1.0.
	corroborationStep = 0.1
	// partialMatchThreshold is the minimum token-overlap ratio for a
	// stored pair to stand in for a query pair.
	partialMatchThreshold = 0.5
	// partialMatchDiscount scales down a partial match's confidence.
	partialMatchDiscount = 0.7
	// defaultConfidence is returned when nothing matches: the overlay is
	// biased toward not blocking a build on absence of evidence.
	defaultConfidence = 0.1
)

// Judgment is a probabilistic compatibility verdict for a named pair.
type Judgment struct {
	Compatible  bool    `json:"compatible"`
	Confidence  float64 `json:"confidence"`
	Source      string  `json:"source"`
	Explanation string  `json:"explanation,omitempty"`
}

// Observation is a persisted pair record.
type Observation struct {
	PairKey      string    `json:"pair_key"`
	NameA        string    `json:"name_a"`
	NameB        string    `json:"name_b"`
	Compatible   bool      `json:"compatible"`
	Confidence   float64   `json:"confidence"`
	Observations int       `json:"observations"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ObservationStore persists the observation index across processes.
type ObservationStore interface {
	LoadObservations(ctx context.Context) ([]Observation, error)
	UpsertObservation(ctx context.Context, obs Observation) error
}

// Overlay is the in-memory pair index. Reads take a shared lock; writes
// are serialized. Construct one per process and inject it wherever a
// soft judgment is needed; tests get isolated instances.
type Overlay struct {
	mu    sync.RWMutex
	index map[string]*Observation
	store ObservationStore // optional
}

// NewOverlay creates an overlay, warming the index from the store when
// one is provided. A store load failure is logged and ignored: the
// overlay starts empty rather than blocking startup.
func NewOverlay(ctx context.Context, store ObservationStore) *Overlay {
	o := &Overlay{
		index: make(map[string]*Observation),
		store: store,
	}
	if store == nil {
		return o
	}
	obs, err := store.LoadObservations(ctx)
	if err != nil {
		zap.L().Warn("learned: could not load observations, starting empty", zap.Error(err))
		return o
	}
	for i := range obs {
		rec := obs[i]
		o.index[rec.PairKey] = &rec
	}
	zap.L().Debug("learned: index loaded", zap.Int("pairs", len(o.index)))
	return o
}

// Record notes an observed pairing. Repeat observations of the same pair
// raise its confidence by a fixed step, capped at 1.0; a contradicting
// observation replaces the verdict and resets confidence to base.
func (o *Overlay) Record(ctx context.Context, nameA, nameB string, compatible bool, source string) Judgment {
	key := PairKey(nameA, nameB)

	o.mu.Lock()
	rec, ok := o.index[key]
	if !ok {
		rec = &Observation{
			PairKey:    key,
			NameA:      nameA,
			NameB:      nameB,
			Compatible: compatible,
			Confidence: baseConfidence,
		}
		o.index[key] = rec
	} else if rec.Compatible == compatible {
		rec.Confidence += corroborationStep
		if rec.Confidence > 1.0 {
			rec.Confidence = 1.0
		}
	} else {
		rec.Compatible = compatible
		rec.Confidence = baseConfidence
	}
	rec.Observations++
	rec.UpdatedAt = time.Now().UTC()
	snapshot := *rec
	o.mu.Unlock()

	if o.store != nil {
		if err := o.store.UpsertObservation(ctx, snapshot); err != nil {
			// Fail open: losing one write costs a little confidence later,
			// not correctness now.
			zap.L().Warn("learned: persist observation failed",
				zap.String("pair", key),
				zap.Error(err),
			)
		}
	}

	return Judgment{
		Compatible:  snapshot.Compatible,
		Confidence:  snapshot.Confidence,
		Source:      source,
		Explanation: fmt.Sprintf("observed together %d time(s)", snapshot.Observations),
	}
}

// Check resolves a pair: exact index hit first, then the best partial
// match above the overlap threshold (discounted), then the optimistic
// low-confidence default. The returned error is always nil today; the
// signature leaves room for future store-backed lookups.
func (o *Overlay) Check(ctx context.Context, nameA, nameB string) (Judgment, error) {
	key := PairKey(nameA, nameB)

	o.mu.RLock()
	defer o.mu.RUnlock()

	if rec, ok := o.index[key]; ok {
		return Judgment{
			Compatible:  rec.Compatible,
			Confidence:  rec.Confidence,
			Source:      "observed",
			Explanation: fmt.Sprintf("pair observed %d time(s)", rec.Observations),
		}, nil
	}

	if rec, score := o.bestPartialMatch(nameA, nameB); rec != nil {
		return Judgment{
			Compatible:  rec.Compatible,
			Confidence:  rec.Confidence * partialMatchDiscount,
			Source:      "partial-match",
			Explanation: fmt.Sprintf("similar to observed pair %q / %q (overlap %.2f)", rec.NameA, rec.NameB, score),
		}, nil
	}

	return Judgment{
		Compatible:  true,
		Confidence:  defaultConfidence,
		Source:      "default",
		Explanation: "no evidence either way",
	}, nil
}

// Len returns the number of indexed pairs.
func (o *Overlay) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.index)
}

// bestPartialMatch scans for the stored pair whose sides overlap most
// with the query names. Both sides must clear the threshold, in either
// orientation. Caller holds at least a read lock.
func (o *Overlay) bestPartialMatch(nameA, nameB string) (*Observation, float64) {
	var best *Observation
	bestScore := 0.0

	ta, tb := tokens(nameA), tokens(nameB)
	for _, rec := range o.index {
		ra, rb := tokens(rec.NameA), tokens(rec.NameB)

		straight := minf(overlap(ta, ra), overlap(tb, rb))
		crossed := minf(overlap(ta, rb), overlap(tb, ra))
		score := maxf(straight, crossed)

		if score >= partialMatchThreshold && score > bestScore {
			best = rec
			bestScore = score
		}
	}
	return best, bestScore
}

// PairKey builds a normalized, order-independent key for a name pair.
func PairKey(nameA, nameB string) string {
	a := model.NormalizeName(nameA)
	b := model.NormalizeName(nameB)
	if a > b {
		a, b = b, a
	}
	return a + "::" + b
}

// tokens splits a normalized name into its hyphen-delimited tokens.
func tokens(name string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range strings.Split(model.NormalizeName(name), "-") {
		if t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}

// overlap is the Jaccard ratio of two token sets.
func overlap(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// SortedPairs returns all observations ordered by pair key, for listing.
func (o *Overlay) SortedPairs() []Observation {
	o.mu.RLock()
	out := make([]Observation, 0, len(o.index))
	for _, rec := range o.index {
		out = append(out, *rec)
	}
	o.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].PairKey < out[j].PairKey })
	return out
}
