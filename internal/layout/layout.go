// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package layout plans the structural blueprint of a newsletter issue.
//
// The planner's JSON is advisory: the stage decodes it over a per-run default
// blueprint and fills any remaining gaps, so downstream rendering never
// observes a missing field regardless of what the generator returned.
package layout

import (
	"context"
	"fmt"

	"github.com/pdiddy/newsletter-engine/internal/gateway"
	"github.com/pdiddy/newsletter-engine/internal/palette"
	"github.com/pdiddy/newsletter-engine/internal/structured"
	"github.com/pdiddy/newsletter-engine/pkg/types"
)

// Stage is the layout planning pipeline stage.
type Stage struct {
	gen      gateway.Generator
	palettes *palette.Generator
}

// NewStage builds the layout stage. The palette generator supplies the
// design-token defaults, seeded by the brand category, so even a
// total-parse-failure run yields a category-appropriate palette rather than
// one fixed constant.
func NewStage(gen gateway.Generator, palettes *palette.Generator) *Stage {
	return &Stage{gen: gen, palettes: palettes}
}

// Run plans the blueprint for the written content. The returned Origin
// reports whether the planner's JSON parsed or the defaults were used
// wholesale. Run only fails when the generation call itself fails.
func (s *Stage) Run(ctx context.Context, brand types.Brand, content types.WrittenContent) (types.LayoutBlueprint, structured.Origin, error) {
	prompt, err := buildPrompt(brand, content)
	if err != nil {
		return types.LayoutBlueprint{}, structured.OriginDefaulted, fmt.Errorf("building layout prompt: %w", err)
	}

	raw, err := s.gen.Generate(ctx, prompt, gateway.PurposeGeneral)
	if err != nil {
		return types.LayoutBlueprint{}, structured.OriginDefaulted, fmt.Errorf("layout generation: %w", err)
	}

	defaults := defaultBlueprint(s.palettes.Generate(brand.Category))
	blueprint, origin := structured.Decode(raw, defaults)
	return fillBlueprint(blueprint, defaults), origin, nil
}

// defaultBlueprint is the documented default for every blueprint field, with
// design tokens drawn from the supplied palette.
func defaultBlueprint(p types.Palette) types.LayoutBlueprint {
	return types.LayoutBlueprint{
		ChosenLayout: types.ChosenLayout{
			ID:    "classic-stack",
			Name:  "Classic Stack",
			Score: 70,
			Why:   "single-column stack renders reliably in every mail client",
		},
		Header: types.LayoutRegion{
			Type:     "banner",
			Elements: []string{"logo", "issue-date", "headline"},
		},
		Footer: types.LayoutRegion{
			Type:     "compliance",
			Elements: []string{"unsubscribe", "address", "social-links"},
		},
		SectionsOrder: []types.SectionSpec{
			{Type: "intro", Title: "From the editor"},
			{Type: "feature", Title: "Lead story"},
			{Type: "digest", Title: "In brief"},
			{Type: "cta", Title: "Worth your time"},
		},
		CSSFramework: "inline",
		DesignTokens: types.DesignTokens{
			Primary:      p.Primary,
			Secondary:    p.Secondary,
			Accent:       p.Accent,
			Text:         p.Text,
			Background:   p.Background,
			Font:         "Helvetica, Arial, sans-serif",
			BaseFontSize: "16px",
		},
		DynamicElements: []string{"stat-highlight", "callout"},
		MobileNotes:     "single column below 480px; 44px minimum tap targets",
	}
}

// fillBlueprint replaces any field the decode left empty with its default.
// Decode-over-defaults covers absent fields; this pass covers fields the
// planner set to null or an empty value.
func fillBlueprint(b, d types.LayoutBlueprint) types.LayoutBlueprint {
	if b.ChosenLayout.ID == "" {
		b.ChosenLayout.ID = d.ChosenLayout.ID
	}
	if b.ChosenLayout.Name == "" {
		b.ChosenLayout.Name = d.ChosenLayout.Name
	}
	if b.ChosenLayout.Score == 0 {
		b.ChosenLayout.Score = d.ChosenLayout.Score
	}
	if b.ChosenLayout.Why == "" {
		b.ChosenLayout.Why = d.ChosenLayout.Why
	}

	if b.Header.Type == "" {
		b.Header.Type = d.Header.Type
	}
	if len(b.Header.Elements) == 0 {
		b.Header.Elements = d.Header.Elements
	}
	if b.Footer.Type == "" {
		b.Footer.Type = d.Footer.Type
	}
	if len(b.Footer.Elements) == 0 {
		b.Footer.Elements = d.Footer.Elements
	}

	if len(b.SectionsOrder) == 0 {
		b.SectionsOrder = d.SectionsOrder
	}
	if b.CSSFramework == "" {
		b.CSSFramework = d.CSSFramework
	}

	b.DesignTokens = fillTokens(b.DesignTokens, d.DesignTokens)

	if len(b.DynamicElements) == 0 {
		b.DynamicElements = d.DynamicElements
	}
	if b.MobileNotes == "" {
		b.MobileNotes = d.MobileNotes
	}

	return b
}

func fillTokens(t, d types.DesignTokens) types.DesignTokens {
	if t.Primary == "" {
		t.Primary = d.Primary
	}
	if t.Secondary == "" {
		t.Secondary = d.Secondary
	}
	if t.Accent == "" {
		t.Accent = d.Accent
	}
	if t.Text == "" {
		t.Text = d.Text
	}
	if t.Background == "" {
		t.Background = d.Background
	}
	if t.Font == "" {
		t.Font = d.Font
	}
	if t.BaseFontSize == "" {
		t.BaseFontSize = d.BaseFontSize
	}
	return t
}
