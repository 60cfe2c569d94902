// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/newsletter-engine/pkg/types"
)

// researchPromptTmpl asks the generator for newsletter source material. The
// template has no conditional logic of its own: optional directives are
// assembled by the caller and passed in as Directives.
var researchPromptTmpl = template.Must(template.New("research").Parse(`You are researching content for an email newsletter.

Brand: {{.Name}} ({{.Category}})
Audience: {{.Audience}}
Tone: {{.Tone}}
About the brand: {{.Description}}

Gather current, relevant source material for this week's issue. Respond in Markdown:
- start with a single # headline capturing the issue's lead story
- follow with 3-5 ## topic sections, each with a short factual summary
- cite a source URL for every statistic or dated claim
- prefer primary sources and recent developments
{{- range .Directives}}
{{.}}
{{- end}}

Respond with the Markdown only.`))

// promptData is the typed field set the template renders over.
type promptData struct {
	Name        string
	Category    string
	Audience    string
	Tone        string
	Description string
	Directives  []string
}

// buildPrompt renders the research prompt, folding the settings into
// optional directive lines.
func buildPrompt(brand types.Brand, settings types.Settings) (string, error) {
	data := promptData{
		Name:        brand.Name,
		Category:    brand.Category,
		Audience:    brand.Audience,
		Tone:        brand.Tone,
		Description: brand.Description,
		Directives:  directives(settings),
	}

	var buf bytes.Buffer
	if err := researchPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// directives translates manual settings into extra prompt lines. Random-mode
// options contribute nothing and leave the choice to the generator.
func directives(settings types.Settings) []string {
	var out []string

	if settings.Categories.Mode == types.ModeManual && len(settings.Categories.List) > 0 {
		out = append(out, fmt.Sprintf("- cover these topic categories: %s", strings.Join(settings.Categories.List, ", ")))
	}
	if len(settings.Keywords) > 0 {
		out = append(out, fmt.Sprintf("- work in these keywords where natural: %s", strings.Join(settings.Keywords, ", ")))
	}
	if settings.Content.Mode == types.ModeManual && settings.Content.Text != "" {
		out = append(out, fmt.Sprintf("- build on this source material supplied by the editor:\n%s", settings.Content.Text))
	}

	switch settings.ContentSize {
	case types.SizeSmall:
		out = append(out, "- keep it brief: 3 topics, a paragraph each")
	case types.SizeLarge:
		out = append(out, "- go deep: 5 topics with detailed summaries")
	}

	return out
}
