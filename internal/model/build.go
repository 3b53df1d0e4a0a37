package model

// Build is a (possibly partial) configuration: at most one component per
// category. It is created empty per selection run and mutated only by the
// selector, one category at a time; once a category commits it is never
// revisited.
type Build struct {
	Region   Region                  `json:"region"`
	Budget   int                     `json:"budget"`
	Selected map[Category]*Component `json:"selected"`
}

// NewBuild creates an empty build for the given budget and region.
func NewBuild(budget int, region Region) *Build {
	return &Build{
		Region:   region,
		Budget:   budget,
		Selected: make(map[Category]*Component, 8),
	}
}

// Component returns the selected component for a category, or nil.
func (b *Build) Component(cat Category) *Component {
	if b == nil || b.Selected == nil {
		return nil
	}
	return b.Selected[cat]
}

// Set commits a component to its category slot.
func (b *Build) Set(c *Component) {
	b.Selected[c.Category] = c
}

// With returns a shallow copy of the build with the candidate slotted in,
// leaving the original untouched. Used to trial-evaluate candidates.
func (b *Build) With(c *Component) *Build {
	trial := &Build{
		Region:   b.Region,
		Budget:   b.Budget,
		Selected: make(map[Category]*Component, len(b.Selected)+1),
	}
	for cat, sel := range b.Selected {
		trial.Selected[cat] = sel
	}
	trial.Selected[c.Category] = c
	return trial
}

// Complete reports whether every category has a selection.
func (b *Build) Complete() bool {
	for _, cat := range AllCategories() {
		if b.Selected[cat] == nil {
			return false
		}
	}
	return true
}

// TotalPrice sums the regional prices of all selected components.
// Components without a price entry for the build's region contribute zero.
func (b *Build) TotalPrice() int {
	total := 0
	for _, c := range b.Selected {
		if c == nil {
			continue
		}
		if p, ok := c.Price(b.Region); ok {
			total += p
		}
	}
	return total
}
