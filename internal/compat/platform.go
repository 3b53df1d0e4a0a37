package compat

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Ankaaflow/pc-builder-sub000/internal/model"
)

// chipsetsBySocket maps a socket family to the chipsets known to support
// CPUs of that family out of the box. A motherboard whose chipset is not
// listed for the CPU's socket may still work after a BIOS update, so a
// miss here is a warning, not a hard incompatibility.
//
// Hard-coded by necessity: there is no authoritative machine-readable
// source for this, so the table is maintained by hand as platforms ship.
var chipsetsBySocket = map[string][]string{
	"am5":     {"a620", "b650", "b650e", "x670", "x670e", "b840", "b850", "x870", "x870e"},
	"am4":     {"a320", "b350", "x370", "b450", "x470", "a520", "b550", "x570"},
	"lga1700": {"h610", "b660", "h670", "z690", "b760", "h770", "z790"},
	"lga1851": {"h810", "b860", "z890"},
	"lga1200": {"h410", "b460", "h470", "z490", "b560", "h570", "z590"},
}

// memoryTypesBySocket maps a socket family to the memory generations its
// platforms accept. AM4 and LGA1200 are DDR4-only; AM5 is DDR5-only;
// LGA1700 boards ship in both flavors so the board's own spec wins when
// present.
var memoryTypesBySocket = map[string][]string{
	"am5":     {"ddr5"},
	"am4":     {"ddr4"},
	"lga1700": {"ddr4", "ddr5"},
	"lga1851": {"ddr5"},
	"lga1200": {"ddr4"},
}

// universalCoolerFamilies lists product lines that ship mounting kits for
// every current socket. A cooler matching one of these is treated as
// compatible even without a declared socket list.
var universalCoolerFamilies = []string{
	"hyper 212",
	"nh-d15",
	"nh-u12",
	"nh-u14",
	"ak620",
	"ak500",
	"peerless assassin",
	"assassin x",
	"liquid freezer",
	"kraken",
	"galahad",
	"arctic freezer",
	"dark rock",
}

// socketNamePatterns maps name substrings to socket families for
// components whose catalog entry carries no structured socket field.
// Order matters: more specific patterns first.
var socketNamePatterns = []struct {
	pattern string
	socket  string
}{
	{"am5", "am5"},
	{"am4", "am4"},
	{"lga1851", "lga1851"},
	{"lga 1851", "lga1851"},
	{"lga1700", "lga1700"},
	{"lga 1700", "lga1700"},
	{"lga1200", "lga1200"},
	{"lga 1200", "lga1200"},
}

// cpuNameSocketRules infers a socket family from CPU model-number
// conventions: Ryzen 7000/8000/9000 are AM5, earlier Ryzen are AM4,
// Intel Core 12th-14th gen are LGA1700, Core Ultra 200 is LGA1851.
var cpuNameSocketRules = []struct {
	re     *regexp.Regexp
	socket string
}{
	{regexp.MustCompile(`ryzen\s*\d\s*[789]\d{3}`), "am5"},
	{regexp.MustCompile(`ryzen\s*\d\s*[12345]\d{3}`), "am4"},
	{regexp.MustCompile(`core\s*ultra\s*[579]\s*2\d{2}`), "lga1851"},
	{regexp.MustCompile(`i[3579][- ]1[234]\d{3}`), "lga1700"},
	{regexp.MustCompile(`i[3579][- ]1[01]\d{3}`), "lga1200"},
}

// normalize lowercases and strips punctuation so socket and chipset
// comparisons are case- and punctuation-insensitive.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// socketOf determines a component's socket family from structured specs,
// falling back to name-pattern inference. The second return reports
// whether a socket could be determined at all.
func socketOf(c *model.Component) (string, bool) {
	if c == nil {
		return "", false
	}
	switch s := c.Specs.(type) {
	case model.CPUSpecs:
		if s.Socket != "" {
			return normalize(s.Socket), true
		}
	case model.MotherboardSpecs:
		if s.Socket != "" {
			return normalize(s.Socket), true
		}
	}
	return inferSocketFromName(c)
}

func inferSocketFromName(c *model.Component) (string, bool) {
	name := strings.ToLower(c.Name)
	for _, p := range socketNamePatterns {
		if strings.Contains(name, p.pattern) {
			return p.socket, true
		}
	}
	if c.Category == model.CategoryCPU {
		for _, rule := range cpuNameSocketRules {
			if rule.re.MatchString(name) {
				return rule.socket, true
			}
		}
	}
	return "", false
}

// chipsetOf extracts a motherboard's chipset from specs or, failing that,
// by scanning the model name for a known chipset code. Substring
// containment counts: "ASUS TUF Gaming B650-Plus" matches "b650".
func chipsetOf(c *model.Component) (string, bool) {
	if c == nil {
		return "", false
	}
	if s, ok := c.Specs.(model.MotherboardSpecs); ok && s.Chipset != "" {
		return normalize(s.Chipset), true
	}
	name := normalize(c.Name)
	best := ""
	for _, chipsets := range chipsetsBySocket {
		for _, cs := range chipsets {
			// Prefer the longest match so "b650e" is not reported as "b650".
			if strings.Contains(name, cs) && len(cs) > len(best) {
				best = cs
			}
		}
	}
	return best, best != ""
}

// memoryTypeOf extracts a memory module's DDR generation from specs or
// name ("ddr4"/"ddr5" substring).
func memoryTypeOf(c *model.Component) (string, bool) {
	if c == nil {
		return "", false
	}
	if s, ok := c.Specs.(model.MemorySpecs); ok && s.Type != "" {
		return normalize(s.Type), true
	}
	name := normalize(c.Name)
	for _, gen := range []string{"ddr5", "ddr4", "ddr3"} {
		if strings.Contains(name, gen) {
			return gen, true
		}
	}
	return "", false
}

var wattageRe = regexp.MustCompile(`(\d{3,4})\s*w`)

// psuWattageOf extracts a power supply's rated wattage from specs or from
// a "750W"-style token in the name.
func psuWattageOf(c *model.Component) (int, bool) {
	if c == nil {
		return 0, false
	}
	if s, ok := c.Specs.(model.PSUSpecs); ok && s.Wattage > 0 {
		return s.Wattage, true
	}
	m := wattageRe.FindStringSubmatch(strings.ToLower(c.Name))
	if m == nil {
		return 0, false
	}
	w, err := strconv.Atoi(m[1])
	if err != nil || w < 200 || w > 2000 {
		return 0, false
	}
	return w, true
}

// PSUWattage exposes wattage extraction (specs first, then name) for
// the selector's supply sizing.
func PSUWattage(c *model.Component) (int, bool) {
	return psuWattageOf(c)
}

// isUniversalCooler reports whether the cooler's name matches one of the
// known multi-socket product lines.
func isUniversalCooler(c *model.Component) bool {
	name := strings.ToLower(c.Name)
	for _, family := range universalCoolerFamilies {
		if strings.Contains(name, family) {
			return true
		}
	}
	return false
}
