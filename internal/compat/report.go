// Package compat implements the deterministic compatibility rule engine
// and the report it produces over a partial or complete build.
package compat

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/Ankaaflow/pc-builder-sub000/internal/learned"
	"github.com/Ankaaflow/pc-builder-sub000/internal/model"
)

// IssueType classifies what a compatibility finding is about.
type IssueType string

const (
	IssueSocket   IssueType = "socket"
	IssueChipset  IssueType = "chipset"
	IssueMemory   IssueType = "memory"
	IssuePower    IssueType = "power"
	IssuePhysical IssueType = "physical"
	IssueBIOS     IssueType = "bios"
)

// Severity grades a finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Issue is a single compatibility finding.
type Issue struct {
	Type     IssueType `json:"type"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	Details  string    `json:"details,omitempty"`
}

// Report aggregates all rule findings over a build. Compatible is true
// iff there are zero critical issues; warnings and notes never affect it.
type Report struct {
	Compatible         bool    `json:"compatible"`
	Issues             []Issue `json:"issues"`
	Warnings           []Issue `json:"warnings"`
	Notes              []Issue `json:"notes,omitempty"`
	PowerDrawWatts     int     `json:"power_draw_watts"`
	RecommendedWattage int     `json:"recommended_wattage"`
}

func (r *Report) add(issues ...Issue) {
	for _, is := range issues {
		switch is.Severity {
		case SeverityCritical:
			r.Issues = append(r.Issues, is)
		case SeverityWarning:
			r.Warnings = append(r.Warnings, is)
		default:
			r.Notes = append(r.Notes, is)
		}
	}
}

// Evaluate runs every deterministic rule against the build and unions the
// findings. It is a pure function of the build: no side effects, safe to
// call repeatedly and concurrently.
func Evaluate(b *model.Build) *Report {
	r := &Report{}

	r.add(checkSocket(b)...)
	r.add(checkChipset(b)...)
	r.add(checkMemory(b)...)
	r.add(checkCooler(b)...)
	r.add(checkClearance(b)...)

	draw := EstimateDraw(b)
	r.PowerDrawWatts = draw
	r.RecommendedWattage = int(math.Ceil(float64(draw) * recommendedHeadroom))
	r.add(checkPower(b, draw)...)

	r.Compatible = len(r.Issues) == 0
	return r
}

// Reporter wraps Evaluate with an optional learned-compatibility overlay.
// The overlay only adds nuance for pairings the deterministic rules could
// not resolve; it never overrides a critical finding.
type Reporter struct {
	overlay *learned.Overlay
}

// NewReporter creates a Reporter. overlay may be nil.
func NewReporter(overlay *learned.Overlay) *Reporter {
	return &Reporter{overlay: overlay}
}

// Report evaluates the build and, where the cooler/CPU pairing was left
// unverified, consults the overlay for a soft judgment.
func (rp *Reporter) Report(ctx context.Context, b *model.Build) *Report {
	r := Evaluate(b)

	if rp.overlay == nil {
		return r
	}

	cpu := b.Component(model.CategoryCPU)
	cooler := b.Component(model.CategoryCooler)
	if cpu == nil || cooler == nil || coolerVerified(cpu, cooler) {
		return r
	}

	j, err := rp.overlay.Check(ctx, cooler.Name, cpu.Name)
	if err != nil {
		// Fail open: overlay trouble must never block reporting.
		zap.L().Warn("compat: overlay lookup failed", zap.Error(err))
		return r
	}

	sev := SeverityInfo
	if !j.Compatible {
		sev = SeverityWarning
	}
	r.add(Issue{
		Type:     IssueSocket,
		Severity: sev,
		Message:  "cooler pairing judged from observed builds",
		Details:  j.Explanation,
	})

	return r
}

// coolerVerified reports whether the deterministic cooler rule reached a
// definite answer for the pairing.
func coolerVerified(cpu, cooler *model.Component) bool {
	if isUniversalCooler(cooler) {
		return true
	}
	s, ok := cooler.Specs.(model.CoolerSpecs)
	if !ok || len(s.Sockets) == 0 {
		return false
	}
	_, cpuOK := socketOf(cpu)
	return cpuOK
}
