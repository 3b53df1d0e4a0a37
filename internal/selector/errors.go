package selector

import (
	"fmt"

	"github.com/Ankaaflow/pc-builder-sub000/internal/model"
)

// Failure reasons, kept distinct so callers can tell "nothing
// affordable" from "nothing compatible with what is already chosen".
const (
	ReasonNoCandidates   = "no candidates returned"
	ReasonNoneAffordable = "no affordable in-stock candidates"
	ReasonNoneCompatible = "no candidates compatible with the partial build"
	ReasonNoneSufficient = "no candidates clear the minimum wattage"
)

// NoCandidateError reports that a category could not be resolved. It is
// fatal for the CPU/motherboard/memory dependency chain; for the
// remaining categories the selector degrades to leaving the slot
// unselected instead.
type NoCandidateError struct {
	Category   model.Category
	Envelope   int
	Considered int
	Reason     string
}

func (e *NoCandidateError) Error() string {
	return fmt.Sprintf("selector: no candidate for %s (envelope %d, considered %d): %s",
		e.Category, e.Envelope, e.Considered, e.Reason)
}
