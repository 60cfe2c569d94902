// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package design

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/pdiddy/newsletter-engine/internal/gateway"
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

func testRenderer(gen gateway.Generator) *Renderer {
	return NewRenderer(gen, rand.New(rand.NewSource(1)))
}

func testBrand() types.Brand {
	return types.Brand{Name: "Circuit Weekly", Tone: "curious", Domain: "circuitweekly.io"}
}

func testPalette() types.Palette {
	return types.Palette{
		Primary: "#112233", Secondary: "#445566", Accent: "#2d5a3d",
		Text: "#1f2937", Background: "#ffffff",
	}
}

func testBlueprint() types.LayoutBlueprint {
	return types.LayoutBlueprint{
		SectionsOrder: []types.SectionSpec{{Type: "feature", Title: "Lead"}},
		DesignTokens:  types.DesignTokens{Font: "Georgia, serif"},
	}
}

const bodyFragment = `<table role="presentation" width="100%"><tr><td>body copy</td></tr></table>`

func render(t *testing.T, gen *mockGenerator, content types.WrittenContent) types.RenderedNewsletter {
	t.Helper()
	out, err := testRenderer(gen).Render(context.Background(), testBrand(), types.DefaultSettings(), content, testBlueprint(), testPalette())
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestRenderDocumentShape(t *testing.T) {
	out := render(t, &mockGenerator{response: bodyFragment}, types.WrittenContent{})

	if !strings.HasPrefix(out.HTML, "<!DOCTYPE html>") {
		t.Error("document must start with <!DOCTYPE html>")
	}
	if !strings.HasSuffix(out.HTML, "</html>") {
		t.Error("document must end with </html>")
	}
	if got := strings.Count(out.HTML, "<style>"); got != 1 {
		t.Errorf("style blocks = %d, want exactly 1", got)
	}
	if !strings.Contains(out.HTML, `width="600"`) {
		t.Error("content width must be constrained to 600px")
	}
	if !strings.Contains(out.HTML, "[if mso]") {
		t.Error("missing MSO conditional")
	}
	if !strings.Contains(out.HTML, "@media only screen and (max-width: 480px)") {
		t.Error("missing mobile media query")
	}
	if strings.Contains(out.HTML, "<script") || strings.Contains(out.HTML, `<link`) {
		t.Error("document must not reference external scripts or stylesheets")
	}
	if !strings.Contains(out.HTML, "body copy") {
		t.Error("generated body fragment missing")
	}
	if !strings.Contains(out.HTML, "Unsubscribe") {
		t.Error("compliance footer missing")
	}
}

func TestRenderManualColorsVerbatim(t *testing.T) {
	out := render(t, &mockGenerator{response: bodyFragment}, types.WrittenContent{})

	if !strings.Contains(out.HTML, "#112233") {
		t.Error("primary #112233 must appear verbatim in styling")
	}
	if !strings.Contains(out.HTML, "#445566") {
		t.Error("secondary #445566 must appear verbatim in styling")
	}
}

func TestRenderSubjectSelection(t *testing.T) {
	t.Run("uses extracted subject lines", func(t *testing.T) {
		out := render(t, &mockGenerator{response: bodyFragment}, types.WrittenContent{
			SubjectLines: []string{"Foo", "Bar", "Baz"},
		})
		if out.Subject != "Foo" || out.Preheader != "Bar" {
			t.Errorf("subject/preheader = %q/%q", out.Subject, out.Preheader)
		}
	})

	t.Run("falls back to brand name", func(t *testing.T) {
		out := render(t, &mockGenerator{response: bodyFragment}, types.WrittenContent{})
		if out.Subject != "Circuit Weekly Newsletter" {
			t.Errorf("subject = %q", out.Subject)
		}
		if out.Preheader != "Your latest updates" {
			t.Errorf("preheader = %q", out.Preheader)
		}
	})
}

func TestSentinelRoundTrip(t *testing.T) {
	out := render(t, &mockGenerator{response: bodyFragment}, types.WrittenContent{
		SubjectLines: []string{"Foo", "Bar"},
	})

	subject, preheader := ExtractSentinels(out.HTML)
	if subject != "Foo" {
		t.Errorf("subject = %q, want Foo", subject)
	}
	if preheader != "Bar" {
		t.Errorf("preheader = %q, want Bar", preheader)
	}
}

func TestExtractSentinelsMissing(t *testing.T) {
	subject, preheader := ExtractSentinels("<!DOCTYPE html><html></html>")
	if subject != "" || preheader != "" {
		t.Errorf("got %q/%q, want empty", subject, preheader)
	}
}

func TestSanitizeBody(t *testing.T) {
	raw := "```html\n<html><body><table><tr><td>x</td></tr></table></body></html>\n```"
	got := sanitizeBody(raw)
	if strings.Contains(got, "<html>") || strings.Contains(got, "<body>") || strings.Contains(got, "```") {
		t.Errorf("sanitized body still carries shell markup: %q", got)
	}
	if !strings.Contains(got, "<table>") {
		t.Errorf("table content lost: %q", got)
	}
}

func TestHeaderCatalogTokensResolve(t *testing.T) {
	gen := &mockGenerator{response: bodyFragment}
	for seed := int64(0); seed < 10; seed++ {
		r := NewRenderer(gen, rand.New(rand.NewSource(seed)))
		out, err := r.Render(context.Background(), testBrand(), types.DefaultSettings(), types.WrittenContent{}, testBlueprint(), testPalette())
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(out.HTML, "{{") {
			t.Fatalf("seed %d: unresolved template token in document", seed)
		}
		if !strings.Contains(out.HTML, "Circuit Weekly") {
			t.Errorf("seed %d: brand name missing from header", seed)
		}
	}
}

func TestBodyPromptManualImages(t *testing.T) {
	settings := types.DefaultSettings()
	settings.Images = types.ImageSettings{
		Mode: types.ModeManual,
		URLs: []string{"https://cdn.circuitweekly.io/hero.png", "https://cdn.circuitweekly.io/chart.png"},
	}

	gen := &mockGenerator{response: bodyFragment}
	_, err := testRenderer(gen).Render(context.Background(), testBrand(), settings, types.WrittenContent{}, testBlueprint(), testPalette())
	if err != nil {
		t.Fatal(err)
	}

	for _, url := range settings.Images.URLs {
		if !strings.Contains(gen.prompt, url) {
			t.Errorf("body prompt missing pinned image %q", url)
		}
	}

	t.Run("random mode pins nothing", func(t *testing.T) {
		gen := &mockGenerator{response: bodyFragment}
		render(t, gen, types.WrittenContent{})
		if strings.Contains(gen.prompt, "exactly these image URLs") {
			t.Error("random image mode must not pin URLs in the prompt")
		}
	})
}

func TestBodyPromptCarriesRules(t *testing.T) {
	gen := &mockGenerator{response: bodyFragment}
	render(t, gen, types.WrittenContent{RawContent: "the written issue"})

	for _, want := range []string{"the written issue", "#112233", "stat-highlight", "callout", "do NOT emit"} {
		if !strings.Contains(gen.prompt, want) {
			t.Errorf("body prompt missing %q", want)
		}
	}
}
