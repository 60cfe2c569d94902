// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package design

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pdiddy/newsletter-engine/pkg/types"
)

// bodyPromptTmpl requests the newsletter body as an email-safe HTML fragment.
// The envelope supplies the document shell, so the fragment must not.
var bodyPromptTmpl = template.Must(template.New("body").Parse(`Convert this newsletter content into the HTML body of an email.

Brand: {{.Name}}, tone: {{.Tone}}.

Content:
---
{{.Content}}
---

Planned sections, in order:
{{- range .Sections}}
- {{.Type}}: {{.Title}}
{{- end}}

Color palette (use these exact values):
- primary {{.Primary}}, secondary {{.Secondary}}, accent {{.Accent}}, text {{.Text}}

Output rules, all mandatory:
- tables only ("role=presentation"), no div-based layout
- every style inline; no style blocks, no classes except "stack" on columns
- do NOT emit <html>, <head>, <body> or a doctype; produce only the inner fragment
- at least 400 words of rendered copy
- include exactly one stat-highlight block: a full-width table row with a large number on the accent color
- include exactly one callout box using the secondary color background
- links styled with the primary color, underlined
- images (if any) with explicit width and alt text
{{- if .Images}}
- use exactly these image URLs, in this order, where the sections call for imagery; do not invent others:
{{- range .Images}}
  - {{.}}
{{- end}}
{{- end}}

Respond with the HTML fragment only.`))

type bodyPromptData struct {
	Name      string
	Tone      string
	Content   string
	Sections  []types.SectionSpec
	Images    []string
	Primary   string
	Secondary string
	Accent    string
	Text      string
}

func buildBodyPrompt(brand types.Brand, settings types.Settings, content types.WrittenContent, blueprint types.LayoutBlueprint, pal types.Palette) (string, error) {
	data := bodyPromptData{
		Name:      brand.Name,
		Tone:      brand.Tone,
		Content:   content.RawContent,
		Sections:  blueprint.SectionsOrder,
		Images:    manualImages(settings),
		Primary:   pal.Primary,
		Secondary: pal.Secondary,
		Accent:    pal.Accent,
		Text:      pal.Text,
	}

	var buf bytes.Buffer
	if err := bodyPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// manualImages returns the pinned image URLs when the settings supply them.
// In random mode the generator chooses its own imagery.
func manualImages(settings types.Settings) []string {
	if settings.Images.Mode == types.ModeManual {
		return settings.Images.URLs
	}
	return nil
}

// sentinel markers used to carry subject and preheader inside the document.
const (
	subjectSentinel   = "<!-- SUBJECT:"
	preheaderSentinel = "<!-- PREHEADER:"
)

// ExtractSentinels pulls the subject and preheader out of a rendered
// document's sentinel comments. Missing sentinels yield empty strings; the
// orchestrator applies its own fallbacks.
func ExtractSentinels(html string) (subject, preheader string) {
	return extractSentinel(html, subjectSentinel), extractSentinel(html, preheaderSentinel)
}

func extractSentinel(html, marker string) string {
	start := strings.Index(html, marker)
	if start < 0 {
		return ""
	}
	rest := html[start+len(marker):]
	end := strings.Index(rest, "-->")
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}
