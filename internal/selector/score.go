package selector

import (
	"sort"
	"strings"

	"github.com/Ankaaflow/pc-builder-sub000/internal/model"
)

// Scoring weights. Budget fit dominates; the jitter term exists only to
// break monoculture across repeated runs with identical inputs.
const (
	weightBudgetFit    = 0.55
	weightAvailability = 0.25
	weightBrand        = 0.12
	weightJitter       = 0.08
)

// brandReputation is a small fixed table of brand priors. Unlisted
// brands get a neutral default.
var brandReputation = map[string]float64{
	"amd":             0.90,
	"intel":           0.90,
	"nvidia":          0.95,
	"asus":            0.85,
	"msi":             0.82,
	"gigabyte":        0.80,
	"asrock":          0.75,
	"corsair":         0.85,
	"g.skill":         0.82,
	"kingston":        0.80,
	"crucial":         0.80,
	"samsung":         0.90,
	"western digital": 0.85,
	"noctua":          0.92,
	"thermalright":    0.78,
	"deepcool":        0.75,
	"arctic":          0.80,
	"seasonic":        0.90,
	"evga":            0.82,
	"thermaltake":     0.72,
	"nzxt":            0.80,
	"fractal design":  0.85,
	"montech":         0.68,
}

const brandDefault = 0.6

// efficiencyBonus maps PSU certification tiers to a selection bonus.
var efficiencyBonus = map[string]float64{
	"titanium": 0.10,
	"platinum": 0.08,
	"gold":     0.06,
	"silver":   0.04,
	"bronze":   0.02,
}

type scored struct {
	component model.Component
	price     int
	score     float64
}

// score blends budget fit, availability, brand reputation and a random
// perturbation for one candidate against its category envelope.
func (s *Selector) score(c *model.Component, price, envelope int) float64 {
	return weightBudgetFit*budgetFit(price, envelope) +
		weightAvailability*availabilityTerm(c.Availability) +
		weightBrand*brandTerm(c.Brand) +
		weightJitter*s.randFloat()
}

// budgetFit rewards spending close to (but not over) the envelope.
// Under-spending scales linearly; over-spending is penalized twice as
// steeply since the stretch allowance already widened the envelope.
func budgetFit(price, envelope int) float64 {
	if envelope <= 0 {
		return 0
	}
	r := float64(price) / float64(envelope)
	if r <= 1 {
		return r
	}
	fit := 1 - (r-1)*2
	if fit < 0 {
		return 0
	}
	return fit
}

func availabilityTerm(a model.Availability) float64 {
	switch a {
	case model.AvailabilityInStock:
		return 1.0
	case model.AvailabilityLimited:
		return 0.5
	default:
		return 0
	}
}

func brandTerm(brand string) float64 {
	if v, ok := brandReputation[strings.ToLower(brand)]; ok {
		return v
	}
	return brandDefault
}

// rank orders scored candidates best-first. Beyond the score (which
// already carries the random term), ties fall to fresher catalog
// sources, then lower price, then name for determinism.
func rank(cands []scored) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		if cands[i].component.SourceTier != cands[j].component.SourceTier {
			return cands[i].component.SourceTier < cands[j].component.SourceTier
		}
		if cands[i].price != cands[j].price {
			return cands[i].price < cands[j].price
		}
		return cands[i].component.Name < cands[j].component.Name
	})
}

// psuScore prefers cheap supplies that clear the minimum wattage, with
// bonuses for 20-50% headroom over the estimated draw and for higher
// efficiency certification.
func psuScore(c *model.Component, price, envelope, wattage, draw int) float64 {
	budget := float64(envelope) * 2
	priceTerm := 1 - float64(price)/budget
	if priceTerm < 0 {
		priceTerm = 0
	}
	score := 0.6 * priceTerm

	if draw > 0 {
		headroom := float64(wattage) / float64(draw)
		if headroom >= 1.2 && headroom <= 1.5 {
			score += 0.15
		}
	}

	score += efficiencyTier(c)
	return score
}

// efficiencyTier reads the certification from specs, falling back to a
// name scan ("80+ Gold" style branding).
func efficiencyTier(c *model.Component) float64 {
	if s, ok := c.Specs.(model.PSUSpecs); ok && s.Efficiency != "" {
		return efficiencyBonus[strings.ToLower(s.Efficiency)]
	}
	name := strings.ToLower(c.Name)
	for tier, bonus := range efficiencyBonus {
		if strings.Contains(name, tier) {
			return bonus
		}
	}
	return 0
}
