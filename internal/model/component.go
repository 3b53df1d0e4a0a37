// Package model defines the data structures shared across the build engine.
package model

import "strings"

// Category is one of the eight fixed component slots in a build.
type Category string

const (
	CategoryCPU         Category = "cpu"
	CategoryGPU         Category = "gpu"
	CategoryMotherboard Category = "motherboard"
	CategoryMemory      Category = "memory"
	CategoryStorage     Category = "storage"
	CategoryCooler      Category = "cooler"
	CategoryPSU         Category = "psu"
	CategoryCase        Category = "case"
)

// AllCategories returns the eight categories in selection dependency order:
// the CPU/motherboard/memory chain first, then the independent slots, then
// the power supply which is sized against everything else.
func AllCategories() []Category {
	return []Category{
		CategoryCPU,
		CategoryMotherboard,
		CategoryMemory,
		CategoryGPU,
		CategoryStorage,
		CategoryCooler,
		CategoryCase,
		CategoryPSU,
	}
}

// ParseCategory validates a category string.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllCategories() {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Region is a market region code (e.g. "US", "EU").
type Region string

// Availability describes stock state in a region.
type Availability string

const (
	AvailabilityInStock    Availability = "in-stock"
	AvailabilityLimited    Availability = "limited"
	AvailabilityOutOfStock Availability = "out-of-stock"
)

// PriceTrend indicates recent price movement for a component.
type PriceTrend string

const (
	TrendUp     PriceTrend = "up"
	TrendDown   PriceTrend = "down"
	TrendStable PriceTrend = "stable"
)

// Component is a purchasable part supplied by a catalog provider.
// Components are immutable from the engine's perspective: selection and
// rule evaluation only read them.
type Component struct {
	ID           string         `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	Brand        string         `json:"brand" yaml:"brand"`
	Category     Category       `json:"category" yaml:"category"`
	Prices       map[Region]int `json:"prices" yaml:"prices"`
	Specs        Specs          `json:"specs,omitempty" yaml:"-"`
	Availability Availability   `json:"availability" yaml:"availability"`
	Trend        PriceTrend     `json:"trend" yaml:"trend"`

	// SourceTier records which class of catalog provider surfaced this
	// component (0 = freshly scraped, 1 = static catalog, 2 = community).
	// Used only as a scoring tie-breaker.
	SourceTier int `json:"source_tier,omitempty" yaml:"-"`
}

// Price returns the component's price in the given region.
func (c *Component) Price(region Region) (int, bool) {
	p, ok := c.Prices[region]
	return p, ok
}

// Key returns a normalized deduplication key for the component, so that
// the same part surfaced by multiple providers collapses to one entry.
func (c *Component) Key() string {
	return string(c.Category) + "/" + NormalizeName(c.Name)
}

// NormalizeName lowercases a product name and collapses punctuation and
// whitespace runs to single hyphens, so "Noctua NH-D15" and
// "noctua nh_d15" compare equal.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	prevHyphen := true // trim leading separators
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
