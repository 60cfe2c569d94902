// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/pdiddy/newsletter-engine/internal/gateway"
	"github.com/pdiddy/newsletter-engine/internal/palette"
	"github.com/pdiddy/newsletter-engine/internal/structured"
	"github.com/pdiddy/newsletter-engine/pkg/types"
)

type mockGenerator struct {
	response string
	prompt   string
}

func (m *mockGenerator) Generate(_ context.Context, prompt string, _ gateway.Purpose) (string, error) {
	m.prompt = prompt
	return m.response, nil
}

func testStage(gen gateway.Generator) *Stage {
	return NewStage(gen, palette.NewGenerator(rand.New(rand.NewSource(1))))
}

func testBrand() types.Brand {
	return types.Brand{Name: "Circuit Weekly", Category: "technology", Tone: "curious"}
}

// assertComplete fails if any blueprint field is missing a concrete value.
func assertComplete(t *testing.T, b types.LayoutBlueprint) {
	t.Helper()
	checks := map[string]string{
		"chosen_layout.id":             b.ChosenLayout.ID,
		"chosen_layout.name":           b.ChosenLayout.Name,
		"chosen_layout.why":            b.ChosenLayout.Why,
		"header.type":                  b.Header.Type,
		"footer.type":                  b.Footer.Type,
		"css_framework":                b.CSSFramework,
		"design_tokens.primary":        b.DesignTokens.Primary,
		"design_tokens.secondary":      b.DesignTokens.Secondary,
		"design_tokens.accent":         b.DesignTokens.Accent,
		"design_tokens.text":           b.DesignTokens.Text,
		"design_tokens.background":     b.DesignTokens.Background,
		"design_tokens.font":           b.DesignTokens.Font,
		"design_tokens.base_font_size": b.DesignTokens.BaseFontSize,
		"mobile_notes":                 b.MobileNotes,
	}
	for field, value := range checks {
		if value == "" {
			t.Errorf("blueprint field %s is empty", field)
		}
	}
	if b.ChosenLayout.Score == 0 {
		t.Error("chosen_layout.score is zero")
	}
	if len(b.Header.Elements) == 0 || len(b.Footer.Elements) == 0 {
		t.Error("header/footer elements are empty")
	}
	if len(b.SectionsOrder) == 0 {
		t.Error("sections_order is empty")
	}
	if len(b.DynamicElements) == 0 {
		t.Error("dynamic_elements is empty")
	}
}

func TestRunWithMalformedResponses(t *testing.T) {
	responses := []string{
		"",
		"I'm sorry, I can't produce JSON today.",
		`{"chosen_layout": {"id": "broken"`,
		"```json\n{not valid}\n```",
		"null",
	}

	for _, raw := range responses {
		gen := &mockGenerator{response: raw}
		blueprint, origin, err := testStage(gen).Run(context.Background(), testBrand(), types.WrittenContent{RawContent: "words"})
		if err != nil {
			t.Fatalf("response %q: %v", raw, err)
		}
		if origin != structured.OriginDefaulted {
			t.Errorf("response %q: origin = %v, want defaulted", raw, origin)
		}
		assertComplete(t, blueprint)
	}
}

func TestRunMergesPartialResponse(t *testing.T) {
	gen := &mockGenerator{response: `Here is the plan:
{"chosen_layout": {"id": "hero-grid", "name": "Hero Grid", "score": 88, "why": "strong visual lead"},
 "design_tokens": {"primary": "#102030"}}`}

	blueprint, origin, err := testStage(gen).Run(context.Background(), testBrand(), types.WrittenContent{RawContent: "words"})
	if err != nil {
		t.Fatal(err)
	}
	if origin != structured.OriginParsed {
		t.Errorf("origin = %v, want parsed", origin)
	}
	if blueprint.ChosenLayout.ID != "hero-grid" || blueprint.ChosenLayout.Score != 88 {
		t.Errorf("parsed values lost: %+v", blueprint.ChosenLayout)
	}
	if blueprint.DesignTokens.Primary != "#102030" {
		t.Errorf("primary = %s, want parsed #102030", blueprint.DesignTokens.Primary)
	}
	// Fields the planner omitted must still be concrete.
	assertComplete(t, blueprint)
}

func TestDefaultTokensComeFromCategoryPalette(t *testing.T) {
	gen := &mockGenerator{response: "garbage"}
	blueprint, _, err := testStage(gen).Run(context.Background(), testBrand(), types.WrittenContent{RawContent: "words"})
	if err != nil {
		t.Fatal(err)
	}
	if lum := palette.Luminance(blueprint.DesignTokens.Primary); lum >= 0.5 {
		t.Errorf("default primary %s luminance %.3f, want < 0.5", blueprint.DesignTokens.Primary, lum)
	}
	if blueprint.DesignTokens.Background != "#ffffff" {
		t.Errorf("background = %s", blueprint.DesignTokens.Background)
	}
}

func TestPromptCarriesPreviewAndWordCount(t *testing.T) {
	long := strings.Repeat("word ", 600) // 3000 chars, above the preview limit
	gen := &mockGenerator{response: "{}"}
	if _, _, err := testStage(gen).Run(context.Background(), testBrand(), types.WrittenContent{RawContent: long}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(gen.prompt, "word count: 600") {
		t.Error("prompt missing word count")
	}
	if strings.Count(gen.prompt, "word") > 350 {
		t.Error("preview not truncated to the limit")
	}
}
