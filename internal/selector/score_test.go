package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ankaaflow/pc-builder-sub000/internal/model"
)

func TestBudgetFit(t *testing.T) {
	assert.InDelta(t, 1.0, budgetFit(240, 240), 1e-9)
	assert.InDelta(t, 0.5, budgetFit(120, 240), 1e-9)
	// Over-spend is penalized twice as steeply.
	assert.InDelta(t, 0.8, budgetFit(264, 240), 1e-9)
	assert.InDelta(t, 0.0, budgetFit(480, 240), 1e-9)
	assert.Equal(t, 0.0, budgetFit(100, 0))
}

func TestAvailabilityTerm(t *testing.T) {
	assert.Equal(t, 1.0, availabilityTerm(model.AvailabilityInStock))
	assert.Equal(t, 0.5, availabilityTerm(model.AvailabilityLimited))
	assert.Equal(t, 0.0, availabilityTerm(model.AvailabilityOutOfStock))
}

func TestBrandTerm(t *testing.T) {
	assert.Equal(t, 0.92, brandTerm("Noctua"))
	assert.Equal(t, 0.92, brandTerm("NOCTUA"))
	assert.Equal(t, brandDefault, brandTerm("Unheard Of Inc"))
}

func TestRank_TieBreaks(t *testing.T) {
	cands := []scored{
		{component: model.Component{Name: "b", SourceTier: 1}, price: 100, score: 0.5},
		{component: model.Component{Name: "a", SourceTier: 0}, price: 100, score: 0.5},
		{component: model.Component{Name: "c", SourceTier: 0}, price: 90, score: 0.5},
		{component: model.Component{Name: "d"}, price: 50, score: 0.9},
	}
	rank(cands)

	assert.Equal(t, "d", cands[0].component.Name, "highest score first")
	assert.Equal(t, "c", cands[1].component.Name, "lower price breaks the tier tie")
	assert.Equal(t, "a", cands[2].component.Name, "fresher tier beats staler")
	assert.Equal(t, "b", cands[3].component.Name)
}

func TestPSUScore_HeadroomBonus(t *testing.T) {
	inRange := model.Component{Name: "a", Specs: model.PSUSpecs{Wattage: 650}}
	outOfRange := model.Component{Name: "b", Specs: model.PSUSpecs{Wattage: 1200}}

	// 650/500 = 1.3 headroom lands the bonus; 1200/500 = 2.4 does not.
	withBonus := psuScore(&inRange, 80, 96, 650, 500)
	without := psuScore(&outOfRange, 80, 96, 1200, 500)
	assert.InDelta(t, 0.15, withBonus-without, 1e-9)
}

func TestEfficiencyTier(t *testing.T) {
	specced := model.Component{Specs: model.PSUSpecs{Wattage: 750, Efficiency: "Gold"}}
	assert.InDelta(t, 0.06, efficiencyTier(&specced), 1e-9)

	named := model.Component{Name: "Seasonic Focus GX-850 80+ Platinum"}
	assert.InDelta(t, 0.08, efficiencyTier(&named), 1e-9)

	plain := model.Component{Name: "Generic 500W"}
	assert.Equal(t, 0.0, efficiencyTier(&plain))
}
