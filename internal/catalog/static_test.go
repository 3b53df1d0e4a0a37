package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ankaaflow/pc-builder-sub000/internal/model"
)

const sampleCatalog = `
components:
  - id: cpu-test-1
    name: AMD Ryzen 5 7600
    brand: AMD
    category: cpu
    prices:
      US: 229
      EU: 239
    specs:
      socket: am5
      generation: zen4
      cores: 6
      tdp_watts: 65
  - id: psu-test-1
    name: Corsair RM750e
    brand: Corsair
    category: psu
    availability: limited
    trend: down
    prices:
      US: 99
    specs:
      wattage: 750
      efficiency: gold
  - id: case-test-1
    name: NZXT H5 Flow
    brand: NZXT
    category: case
    prices:
      EU: 105
`

func TestNewStatic_ParsesComponents(t *testing.T) {
	p, err := NewStatic("static:test", []byte(sampleCatalog))
	require.NoError(t, err)

	cpus, err := p.Candidates(context.Background(), model.CategoryCPU, "US")
	require.NoError(t, err)
	require.Len(t, cpus, 1)

	c := cpus[0]
	assert.Equal(t, "cpu-test-1", c.ID)
	assert.Equal(t, "AMD Ryzen 5 7600", c.Name)
	assert.Equal(t, model.AvailabilityInStock, c.Availability)
	assert.Equal(t, model.TrendStable, c.Trend)

	price, ok := c.Price("US")
	require.True(t, ok)
	assert.Equal(t, 229, price)

	specs, ok := c.Specs.(model.CPUSpecs)
	require.True(t, ok)
	assert.Equal(t, "am5", specs.Socket)
	assert.Equal(t, 65, specs.TDPWatts)
}

func TestNewStatic_TypedSpecsPerCategory(t *testing.T) {
	p, err := NewStatic("static:test", []byte(sampleCatalog))
	require.NoError(t, err)

	psus, err := p.Candidates(context.Background(), model.CategoryPSU, "US")
	require.NoError(t, err)
	require.Len(t, psus, 1)

	specs, ok := psus[0].Specs.(model.PSUSpecs)
	require.True(t, ok)
	assert.Equal(t, 750, specs.Wattage)
	assert.Equal(t, "gold", specs.Efficiency)
	assert.Equal(t, model.AvailabilityLimited, psus[0].Availability)
	assert.Equal(t, model.TrendDown, psus[0].Trend)
}

func TestNewStatic_MissingSpecsIsNil(t *testing.T) {
	p, err := NewStatic("static:test", []byte(sampleCatalog))
	require.NoError(t, err)

	cases, err := p.Candidates(context.Background(), model.CategoryCase, "EU")
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Nil(t, cases[0].Specs)
}

func TestCandidates_FiltersByRegionPrice(t *testing.T) {
	p, err := NewStatic("static:test", []byte(sampleCatalog))
	require.NoError(t, err)

	// The PSU only has a US price.
	psus, err := p.Candidates(context.Background(), model.CategoryPSU, "EU")
	require.NoError(t, err)
	assert.Empty(t, psus)
}

func TestNewStatic_UnknownCategory(t *testing.T) {
	_, err := NewStatic("static:test", []byte(`
components:
  - id: x
    name: Widget
    category: widget
    prices:
      US: 10
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestNewStatic_RejectsNonPositivePrice(t *testing.T) {
	_, err := NewStatic("static:test", []byte(`
components:
  - id: x
    name: Free CPU
    category: cpu
    prices:
      US: 0
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-positive price")
}

func TestNewStatic_MalformedYAML(t *testing.T) {
	_, err := NewStatic("static:test", []byte("components: ["))
	require.Error(t, err)
}

func TestNewEmbedded_LoadsShippedCatalog(t *testing.T) {
	p, err := NewEmbedded()
	require.NoError(t, err)

	regions := p.Regions()
	assert.Contains(t, regions, model.Region("US"))
	assert.Contains(t, regions, model.Region("EU"))

	// The shipped catalog covers every category in at least one region.
	for _, cat := range model.AllCategories() {
		comps, err := p.Candidates(context.Background(), cat, "US")
		require.NoError(t, err)
		assert.NotEmpty(t, comps, "category %s", cat)
	}
}

func TestRegions(t *testing.T) {
	p, err := NewStatic("static:test", []byte(sampleCatalog))
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.Region{"US", "EU"}, p.Regions())
}
