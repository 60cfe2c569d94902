// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package palette generates brand-appropriate, contrast-validated color
// palettes. It is the fallback color source for every run that does not pin
// explicit colors in its settings.
package palette

import (
	"math/rand"
	"strings"

	"github.com/pdiddy/newsletter-engine/pkg/types"
)

// maxAttempts bounds palette regeneration before falling back to Fallback.
const maxAttempts = 5

// Fallback is the known-good palette returned when repeated generation fails
// contrast validation.
var Fallback = types.Palette{
	Primary:    "#1e3a5f",
	Secondary:  "#4a6fa5",
	Accent:     "#2d5a3d",
	Text:       "#1f2937",
	Background: "#ffffff",
}

// textGrays are the fixed dark grays used for body text.
var textGrays = []string{"#1f2937", "#111827", "#374151", "#1e293b"}

// hueRange is a [min,max] band of the HSL hue circle.
type hueRange struct {
	min, max float64
}

// categoryHues maps content categories to on-brand hue bands. Lookup is
// exact first, then substring, then the general-purpose fallback.
var categoryHues = map[string][]hueRange{
	"technology": {{200, 250}, {250, 280}, {170, 200}},
	"software":   {{200, 250}, {250, 280}},
	"finance":    {{200, 240}, {140, 170}},
	"business":   {{200, 240}, {20, 45}},
	"health":     {{140, 180}, {170, 200}},
	"wellness":   {{140, 180}, {80, 140}},
	"food":       {{10, 40}, {40, 60}, {0, 15}},
	"travel":     {{170, 220}, {25, 50}},
	"fashion":    {{290, 330}, {330, 360}, {0, 20}},
	"education":  {{200, 250}, {40, 60}},
	"sports":     {{0, 25}, {200, 240}, {100, 140}},
	"music":      {{250, 300}, {300, 340}},
	"gaming":     {{250, 290}, {170, 200}},
	"science":    {{180, 230}, {250, 280}},
	"real estate": {{140, 170}, {200, 230}},
}

// generalHues is the fallback band for unrecognized categories.
var generalHues = []hueRange{{190, 250}}

// primaryLightness bounds the primary color's HSL lightness. A package var
// so tests can force validation failures.
var primaryLightness = hueRange{0.25, 0.40}

// Generator produces palettes from an injected random source, so selection
// is reproducible under a fixed seed.
type Generator struct {
	rand *rand.Rand
}

// NewGenerator builds a Generator. A nil source falls back to a
// time-seeded one.
func NewGenerator(r *rand.Rand) *Generator {
	if r == nil {
		r = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Generator{rand: r}
}

// Generate produces a validated palette for the category. It regenerates up
// to five times when the primary color fails the luminance check and returns
// Fallback if every attempt fails.
func (g *Generator) Generate(category string) types.Palette {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		p := g.generateOnce(category)
		if Luminance(p.Primary) < 0.5 {
			return p
		}
	}
	return Fallback
}

// generateOnce samples one unvalidated palette.
func (g *Generator) generateOnce(category string) types.Palette {
	ranges := hueRangesFor(category)
	band := ranges[g.rand.Intn(len(ranges))]
	primaryHue := g.between(band.min, band.max)

	// Primary: professional, deep, authoritative.
	primary := hslToHex(primaryHue, g.between(0.35, 0.55), g.between(primaryLightness.min, primaryLightness.max))

	// Secondary stays near the primary hue.
	secondaryHue := wrapHue(primaryHue + g.between(-20, 20))
	secondary := hslToHex(secondaryHue, g.between(0.30, 0.50), g.between(0.35, 0.50))

	// Accent: complementary, triadic, or analogous.
	offsets := []float64{180, 120, 30, -30}
	accentHue := wrapHue(primaryHue + offsets[g.rand.Intn(len(offsets))])
	accent := hslToHex(accentHue, g.between(0.40, 0.60), g.between(0.30, 0.45))

	return types.Palette{
		Primary:    primary,
		Secondary:  secondary,
		Accent:     accent,
		Text:       textGrays[g.rand.Intn(len(textGrays))],
		Background: "#ffffff",
	}
}

// between samples uniformly from [lo, hi).
func (g *Generator) between(lo, hi float64) float64 {
	return lo + g.rand.Float64()*(hi-lo)
}

// hueRangesFor resolves a category to its hue bands: exact match, then
// substring match in either direction, then the general-purpose band.
func hueRangesFor(category string) []hueRange {
	key := strings.ToLower(strings.TrimSpace(category))
	if ranges, ok := categoryHues[key]; ok {
		return ranges
	}
	for name, ranges := range categoryHues {
		if key != "" && (strings.Contains(key, name) || strings.Contains(name, key)) {
			return ranges
		}
	}
	return generalHues
}

func wrapHue(h float64) float64 {
	for h < 0 {
		h += 360
	}
	for h >= 360 {
		h -= 360
	}
	return h
}
