package catalog

import (
	"context"
	_ "embed"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/Ankaaflow/pc-builder-sub000/internal/model"
)

//go:embed data/catalog.yaml
var embeddedCatalog []byte

// StaticProvider serves a curated component catalog loaded from YAML.
type StaticProvider struct {
	name  string
	byCat map[model.Category][]model.Component
}

// catalogFile is the on-disk catalog shape. Specs are decoded lazily per
// category so each category gets its own typed spec struct.
type catalogFile struct {
	Components []rawComponent `yaml:"components"`
}

type rawComponent struct {
	ID           string         `yaml:"id"`
	Name         string         `yaml:"name"`
	Brand        string         `yaml:"brand"`
	Category     string         `yaml:"category"`
	Availability string         `yaml:"availability"`
	Trend        string         `yaml:"trend"`
	Prices       map[string]int `yaml:"prices"`
	Specs        yaml.Node      `yaml:"specs"`
}

// NewStatic parses a YAML catalog document.
func NewStatic(name string, data []byte) (*StaticProvider, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, eris.Wrap(err, "catalog: parse yaml")
	}

	p := &StaticProvider{
		name:  name,
		byCat: make(map[model.Category][]model.Component),
	}
	for i, raw := range file.Components {
		c, err := raw.toComponent()
		if err != nil {
			return nil, eris.Wrapf(err, "catalog: component %d (%s)", i, raw.Name)
		}
		p.byCat[c.Category] = append(p.byCat[c.Category], c)
	}
	return p, nil
}

// NewStaticFromFile loads a catalog from disk.
func NewStaticFromFile(path string) (*StaticProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s", path)
	}
	return NewStatic("static:"+path, data)
}

// NewEmbedded loads the catalog shipped in the binary.
func NewEmbedded() (*StaticProvider, error) {
	return NewStatic("static:embedded", embeddedCatalog)
}

func (p *StaticProvider) Name() string { return p.name }
func (p *StaticProvider) Tier() int    { return TierStatic }

// Candidates returns the catalog entries for a category that carry a
// price for the region. Availability filtering is the selector's job.
func (p *StaticProvider) Candidates(_ context.Context, cat model.Category, region model.Region) ([]model.Component, error) {
	var out []model.Component
	for _, c := range p.byCat[cat] {
		if _, ok := c.Price(region); !ok {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// Regions returns every region that appears in at least one price map.
func (p *StaticProvider) Regions() []model.Region {
	seen := make(map[model.Region]struct{})
	for _, comps := range p.byCat {
		for _, c := range comps {
			for r := range c.Prices {
				seen[r] = struct{}{}
			}
		}
	}
	out := make([]model.Region, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	return out
}

func (raw rawComponent) toComponent() (model.Component, error) {
	cat, ok := model.ParseCategory(raw.Category)
	if !ok {
		return model.Component{}, eris.Errorf("unknown category %q", raw.Category)
	}

	prices := make(map[model.Region]int, len(raw.Prices))
	for region, price := range raw.Prices {
		if price <= 0 {
			return model.Component{}, eris.Errorf("non-positive price %d for region %s", price, region)
		}
		prices[model.Region(region)] = price
	}

	specs, err := decodeSpecs(cat, raw.Specs)
	if err != nil {
		return model.Component{}, err
	}

	availability := model.Availability(raw.Availability)
	if availability == "" {
		availability = model.AvailabilityInStock
	}
	trend := model.PriceTrend(raw.Trend)
	if trend == "" {
		trend = model.TrendStable
	}

	return model.Component{
		ID:           raw.ID,
		Name:         raw.Name,
		Brand:        raw.Brand,
		Category:     cat,
		Prices:       prices,
		Specs:        specs,
		Availability: availability,
		Trend:        trend,
	}, nil
}

// decodeSpecs maps the free-form specs node onto the category's typed
// spec struct. An absent node yields nil specs: the component stays
// usable, rules just report lower confidence.
func decodeSpecs(cat model.Category, node yaml.Node) (model.Specs, error) {
	if node.IsZero() {
		return nil, nil
	}
	var specs model.Specs
	var err error
	switch cat {
	case model.CategoryCPU:
		var s model.CPUSpecs
		err = node.Decode(&s)
		specs = s
	case model.CategoryGPU:
		var s model.GPUSpecs
		err = node.Decode(&s)
		specs = s
	case model.CategoryMotherboard:
		var s model.MotherboardSpecs
		err = node.Decode(&s)
		specs = s
	case model.CategoryMemory:
		var s model.MemorySpecs
		err = node.Decode(&s)
		specs = s
	case model.CategoryStorage:
		var s model.StorageSpecs
		err = node.Decode(&s)
		specs = s
	case model.CategoryCooler:
		var s model.CoolerSpecs
		err = node.Decode(&s)
		specs = s
	case model.CategoryPSU:
		var s model.PSUSpecs
		err = node.Decode(&s)
		specs = s
	case model.CategoryCase:
		var s model.CaseSpecs
		err = node.Decode(&s)
		specs = s
	}
	if err != nil {
		return nil, eris.Wrapf(err, "decode %s specs", cat)
	}
	return specs, nil
}
