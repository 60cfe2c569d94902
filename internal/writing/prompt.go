// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writing

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/newsletter-engine/pkg/types"
)

// writingPromptTmpl turns research Markdown into newsletter prose. Optional
// directives are assembled by the caller; the template itself has no
// conditionals beyond iterating them.
var writingPromptTmpl = template.Must(template.New("writing").Parse(`Write this week's issue of the {{.Name}} newsletter.

Brand tone: {{.Tone}}
Audience: {{.Audience}}

Creative directive: write in the voice of {{.Voice}}. Commit to it fully for this issue.

Research material:
---
{{.Research}}
---

Requirements:
- open with the three strongest subject line candidates, each on its own line prefixed with "SUBJECT:"
- then write the full newsletter body in Markdown, grounded in the research
- keep every statistic tied to its source
- end with a one-sentence sign-off in the brand voice
{{- range .Directives}}
{{.}}
{{- end}}`))

type promptData struct {
	Name       string
	Tone       string
	Audience   string
	Voice      string
	Research   string
	Directives []string
}

func buildPrompt(brand types.Brand, settings types.Settings, research types.ResearchBundle, voice string) (string, error) {
	data := promptData{
		Name:       brand.Name,
		Tone:       brand.Tone,
		Audience:   brand.Audience,
		Voice:      voice,
		Research:   research.RawMarkdown,
		Directives: directives(brand, settings),
	}

	var buf bytes.Buffer
	if err := writingPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func directives(brand types.Brand, settings types.Settings) []string {
	var out []string

	if v := brand.Voice; v != nil {
		if len(v.Vocabulary) > 0 {
			out = append(out, fmt.Sprintf("- favor the brand vocabulary: %s", strings.Join(v.Vocabulary, ", ")))
		}
		if len(v.ToneMarkers) > 0 {
			out = append(out, fmt.Sprintf("- tone markers: %s", strings.Join(v.ToneMarkers, ", ")))
		}
		if v.StyleGuide != "" {
			out = append(out, fmt.Sprintf("- style guide: %s", v.StyleGuide))
		}
	}

	if settings.LinksCount.Mode == types.ModeManual && settings.LinksCount.Count > 0 {
		out = append(out, fmt.Sprintf("- include exactly %d outbound links", settings.LinksCount.Count))
	}

	switch settings.ContentSize {
	case types.SizeSmall:
		out = append(out, "- target length: 300-500 words")
	case types.SizeMedium:
		out = append(out, "- target length: 600-900 words")
	case types.SizeLarge:
		out = append(out, "- target length: 1200-1800 words")
	}

	return out
}
