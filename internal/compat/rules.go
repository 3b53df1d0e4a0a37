package compat

import (
	"fmt"
	"math"
	"strings"

	"github.com/Ankaaflow/pc-builder-sub000/internal/model"
)

const (
	// baselineDrawWatts covers the motherboard, fans and drives, which
	// individually draw too little to model per component.
	baselineDrawWatts = 120

	// minHeadroom is the hard floor on supply sizing; below it the build
	// gets a critical power issue.
	minHeadroom = 1.1

	// recommendedHeadroom is the target supply sizing; between the two
	// thresholds the build gets a warning.
	recommendedHeadroom = 1.2
)

// checkSocket verifies the CPU and motherboard share a socket family.
// The rule is symmetric in its inputs: a mismatch is critical regardless
// of which side is inspected first. If either socket cannot be
// determined the rule downgrades to a warning rather than assuming
// compatibility or incompatibility.
func checkSocket(b *model.Build) []Issue {
	cpu := b.Component(model.CategoryCPU)
	mb := b.Component(model.CategoryMotherboard)
	if cpu == nil || mb == nil {
		return nil
	}

	cpuSocket, cpuOK := socketOf(cpu)
	mbSocket, mbOK := socketOf(mb)

	if !cpuOK || !mbOK {
		side := cpu.Name
		if cpuOK {
			side = mb.Name
		}
		return []Issue{{
			Type:     IssueSocket,
			Severity: SeverityWarning,
			Message:  "could not verify CPU/motherboard socket match",
			Details:  fmt.Sprintf("no socket information for %s", side),
		}}
	}

	if cpuSocket != mbSocket {
		return []Issue{{
			Type:     IssueSocket,
			Severity: SeverityCritical,
			Message:  "CPU and motherboard sockets do not match",
			Details:  fmt.Sprintf("%s is %s, %s is %s", cpu.Name, strings.ToUpper(cpuSocket), mb.Name, strings.ToUpper(mbSocket)),
		}}
	}
	return nil
}

// checkChipset warns when the motherboard's chipset is not in the known
// launch-support set for the CPU's socket generation. Firmware updates
// usually resolve this, so it is a risk, not a hard failure.
func checkChipset(b *model.Build) []Issue {
	cpu := b.Component(model.CategoryCPU)
	mb := b.Component(model.CategoryMotherboard)
	if cpu == nil || mb == nil {
		return nil
	}

	cpuSocket, ok := socketOf(cpu)
	if !ok {
		return nil // socket rule already warned
	}
	known, ok := chipsetsBySocket[cpuSocket]
	if !ok {
		return nil
	}

	chipset, ok := chipsetOf(mb)
	if !ok {
		return []Issue{{
			Type:     IssueChipset,
			Severity: SeverityWarning,
			Message:  "could not determine motherboard chipset",
			Details:  mb.Name,
		}}
	}

	for _, cs := range known {
		if chipset == cs {
			return nil
		}
	}
	return []Issue{{
		Type:     IssueBIOS,
		Severity: SeverityWarning,
		Message:  "chipset may need a BIOS update for this CPU",
		Details:  fmt.Sprintf("%s not in the launch-support set for %s", strings.ToUpper(chipset), strings.ToUpper(cpuSocket)),
	}}
}

// checkMemory verifies the memory kit against the motherboard platform:
// wrong DDR generation is critical, excess speed runs downclocked
// (warning), excess capacity is critical.
func checkMemory(b *model.Build) []Issue {
	mem := b.Component(model.CategoryMemory)
	mb := b.Component(model.CategoryMotherboard)
	if mem == nil || mb == nil {
		return nil
	}

	var issues []Issue

	memType, memOK := memoryTypeOf(mem)
	supported := supportedMemoryTypes(mb)

	switch {
	case !memOK || len(supported) == 0:
		side := mem.Name
		if memOK {
			side = mb.Name
		}
		issues = append(issues, Issue{
			Type:     IssueMemory,
			Severity: SeverityWarning,
			Message:  "could not verify memory generation support",
			Details:  fmt.Sprintf("no memory type information for %s", side),
		})
	default:
		match := false
		for _, t := range supported {
			if t == memType {
				match = true
				break
			}
		}
		if !match {
			issues = append(issues, Issue{
				Type:     IssueMemory,
				Severity: SeverityCritical,
				Message:  "memory generation not supported by motherboard",
				Details:  fmt.Sprintf("%s is %s, %s supports %s", mem.Name, strings.ToUpper(memType), mb.Name, strings.ToUpper(strings.Join(supported, "/"))),
			})
		}
	}

	memSpecs, hasMemSpecs := mem.Specs.(model.MemorySpecs)
	mbSpecs, hasMBSpecs := mb.Specs.(model.MotherboardSpecs)
	if hasMemSpecs && hasMBSpecs {
		if mbSpecs.MaxMemorySpeedMHz > 0 && memSpecs.SpeedMHz > mbSpecs.MaxMemorySpeedMHz {
			issues = append(issues, Issue{
				Type:     IssueMemory,
				Severity: SeverityWarning,
				Message:  "memory faster than platform maximum, will run at a lower speed",
				Details:  fmt.Sprintf("%d MHz kit, platform maximum %d MHz", memSpecs.SpeedMHz, mbSpecs.MaxMemorySpeedMHz),
			})
		}
		if mbSpecs.MaxMemoryGB > 0 && memSpecs.CapacityGB > mbSpecs.MaxMemoryGB {
			issues = append(issues, Issue{
				Type:     IssueMemory,
				Severity: SeverityCritical,
				Message:  "memory capacity exceeds platform maximum",
				Details:  fmt.Sprintf("%d GB kit, platform maximum %d GB", memSpecs.CapacityGB, mbSpecs.MaxMemoryGB),
			})
		}
	}

	return issues
}

// supportedMemoryTypes resolves the motherboard's accepted DDR
// generations: its own declared memory type wins, otherwise the socket
// platform table decides.
func supportedMemoryTypes(mb *model.Component) []string {
	if s, ok := mb.Specs.(model.MotherboardSpecs); ok && s.MemoryType != "" {
		return []string{normalize(s.MemoryType)}
	}
	if socket, ok := socketOf(mb); ok {
		return memoryTypesBySocket[socket]
	}
	return nil
}

// EstimateDraw computes the build's total estimated power draw in watts:
// CPU TDP + GPU board power + memory draw + a fixed baseline for the
// rest of the system. Missing spec data contributes zero.
func EstimateDraw(b *model.Build) int {
	draw := baselineDrawWatts

	if cpu := b.Component(model.CategoryCPU); cpu != nil {
		if s, ok := cpu.Specs.(model.CPUSpecs); ok {
			draw += s.TDPWatts
		}
	}
	if gpu := b.Component(model.CategoryGPU); gpu != nil {
		if s, ok := gpu.Specs.(model.GPUSpecs); ok {
			draw += s.PowerDrawWatts
		}
	}
	if mem := b.Component(model.CategoryMemory); mem != nil {
		draw += memoryDraw(mem)
	}
	return draw
}

// memoryDraw estimates a kit's draw from its capacity and generation:
// roughly 3 W per 16 GB for DDR5 and 2 W per 16 GB for DDR4, with a 4 W
// floor for any kit.
func memoryDraw(mem *model.Component) int {
	s, ok := mem.Specs.(model.MemorySpecs)
	if !ok || s.CapacityGB <= 0 {
		return 4
	}
	perSixteen := 2
	if t, ok := memoryTypeOf(mem); ok && t == "ddr5" {
		perSixteen = 3
	}
	d := s.CapacityGB * perSixteen / 16
	if d < 4 {
		d = 4
	}
	return d
}

// checkPower verifies the supply clears the minimum headroom over the
// estimated draw (critical below 1.1x) and flags supplies that clear the
// minimum but miss the recommended 1.2x target (warning).
func checkPower(b *model.Build, draw int) []Issue {
	psu := b.Component(model.CategoryPSU)
	if psu == nil {
		return nil
	}

	wattage, ok := psuWattageOf(psu)
	if !ok {
		return []Issue{{
			Type:     IssuePower,
			Severity: SeverityWarning,
			Message:  "could not determine power supply wattage",
			Details:  psu.Name,
		}}
	}

	minWattage := int(math.Ceil(float64(draw) * minHeadroom))
	recWattage := int(math.Ceil(float64(draw) * recommendedHeadroom))

	switch {
	case wattage < minWattage:
		return []Issue{{
			Type:     IssuePower,
			Severity: SeverityCritical,
			Message:  "power supply is insufficient for the estimated draw",
			Details:  fmt.Sprintf("%d W supply, %d W estimated draw, %d W minimum", wattage, draw, minWattage),
		}}
	case wattage < recWattage:
		return []Issue{{
			Type:     IssuePower,
			Severity: SeverityWarning,
			Message:  "power supply meets the minimum but not the recommended headroom",
			Details:  fmt.Sprintf("%d W supply, %d W recommended", wattage, recWattage),
		}}
	}
	return nil
}

// checkCooler verifies the cooler's declared socket list covers the
// CPU's socket family. A declared mismatch is critical; a recognized
// universal mounting family passes without a declared list; anything
// else is left unverified (warning) for the overlay to refine.
func checkCooler(b *model.Build) []Issue {
	cpu := b.Component(model.CategoryCPU)
	cooler := b.Component(model.CategoryCooler)
	if cpu == nil || cooler == nil {
		return nil
	}

	cpuSocket, cpuOK := socketOf(cpu)

	if s, ok := cooler.Specs.(model.CoolerSpecs); ok && len(s.Sockets) > 0 {
		if !cpuOK {
			return []Issue{{
				Type:     IssueSocket,
				Severity: SeverityWarning,
				Message:  "could not verify cooler socket support",
				Details:  fmt.Sprintf("no socket information for %s", cpu.Name),
			}}
		}
		for _, declared := range s.Sockets {
			if normalize(declared) == cpuSocket {
				return nil
			}
		}
		return []Issue{{
			Type:     IssueSocket,
			Severity: SeverityCritical,
			Message:  "cooler does not support the CPU socket",
			Details:  fmt.Sprintf("%s supports %s, CPU is %s", cooler.Name, strings.Join(s.Sockets, "/"), strings.ToUpper(cpuSocket)),
		}}
	}

	if isUniversalCooler(cooler) {
		return []Issue{{
			Type:     IssueSocket,
			Severity: SeverityInfo,
			Message:  "cooler ships universal mounting hardware",
			Details:  cooler.Name,
		}}
	}

	return []Issue{{
		Type:     IssueSocket,
		Severity: SeverityWarning,
		Message:  "cooler socket support is undeclared",
		Details:  cooler.Name,
	}}
}

// checkClearance compares GPU length and cooler height against the
// case's declared clearances. Clearance figures from catalogs are
// approximate, so exceedance is never more than a warning.
func checkClearance(b *model.Build) []Issue {
	enc := b.Component(model.CategoryCase)
	if enc == nil {
		return nil
	}
	encSpecs, ok := enc.Specs.(model.CaseSpecs)
	if !ok {
		return nil
	}

	var issues []Issue

	if gpu := b.Component(model.CategoryGPU); gpu != nil {
		if s, ok := gpu.Specs.(model.GPUSpecs); ok && s.LengthMM > 0 && encSpecs.MaxGPULengthMM > 0 && s.LengthMM > encSpecs.MaxGPULengthMM {
			issues = append(issues, Issue{
				Type:     IssuePhysical,
				Severity: SeverityWarning,
				Message:  "graphics card may not fit the case",
				Details:  fmt.Sprintf("%d mm card, %d mm clearance", s.LengthMM, encSpecs.MaxGPULengthMM),
			})
		}
	}

	if cooler := b.Component(model.CategoryCooler); cooler != nil {
		if s, ok := cooler.Specs.(model.CoolerSpecs); ok {
			if s.HeightMM > 0 && encSpecs.MaxCoolerHeightMM > 0 && s.HeightMM > encSpecs.MaxCoolerHeightMM {
				issues = append(issues, Issue{
					Type:     IssuePhysical,
					Severity: SeverityWarning,
					Message:  "cooler may be too tall for the case",
					Details:  fmt.Sprintf("%d mm cooler, %d mm clearance", s.HeightMM, encSpecs.MaxCoolerHeightMM),
				})
			}
			if s.RadiatorMM > 0 && encSpecs.MaxRadiatorMM > 0 && s.RadiatorMM > encSpecs.MaxRadiatorMM {
				issues = append(issues, Issue{
					Type:     IssuePhysical,
					Severity: SeverityWarning,
					Message:  "radiator may not fit the case",
					Details:  fmt.Sprintf("%d mm radiator, %d mm supported", s.RadiatorMM, encSpecs.MaxRadiatorMM),
				})
			}
		}
	}

	return issues
}
