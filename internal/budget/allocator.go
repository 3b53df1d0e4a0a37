// Package budget splits a total build budget into per-category envelopes.
package budget

import (
	"math"

	"github.com/Ankaaflow/pc-builder-sub000/internal/model"
)

// Allocation maps each category to its integer currency envelope.
type Allocation map[model.Category]int

// shares is the fixed percentage table. The entries sum to 1.0.
var shares = map[model.Category]float64{
	model.CategoryGPU:         0.35,
	model.CategoryCPU:         0.20,
	model.CategoryMotherboard: 0.10,
	model.CategoryMemory:      0.08,
	model.CategoryStorage:     0.08,
	model.CategoryPSU:         0.08,
	model.CategoryCooler:      0.06,
	model.CategoryCase:        0.05,
}

// Allocate splits total into per-category envelopes by the fixed share
// table, rounding each envelope to the nearest whole unit. Rounding may
// leave a small unallocated remainder; it must never allocate more than
// the total, so any overshoot is shaved off the largest envelope.
func Allocate(total int) Allocation {
	alloc := make(Allocation, len(shares))
	sum := 0
	for cat, share := range shares {
		env := int(math.Round(float64(total) * share))
		alloc[cat] = env
		sum += env
	}

	if over := sum - total; over > 0 {
		alloc[model.CategoryGPU] -= over
		if alloc[model.CategoryGPU] < 0 {
			alloc[model.CategoryGPU] = 0
		}
	}

	return alloc
}

// Envelope returns the allocated amount for a category.
func (a Allocation) Envelope(cat model.Category) int {
	return a[cat]
}

// Total sums all envelopes.
func (a Allocation) Total() int {
	sum := 0
	for _, env := range a {
		sum += env
	}
	return sum
}
