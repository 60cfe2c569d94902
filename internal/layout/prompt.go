// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pdiddy/newsletter-engine/pkg/types"
)

// previewLimit bounds the content excerpt embedded in the planning prompt.
const previewLimit = 1500

// layoutPromptTmpl asks the planner for a structural blueprint as JSON.
var layoutPromptTmpl = template.Must(template.New("layout").Parse(`Plan the layout for an email newsletter issue.

Brand: {{.Name}} ({{.Category}})
Tone: {{.Tone}}
Content word count: {{.WordCount}}

Content preview:
---
{{.Preview}}
---

Choose a layout that fits this content and respond with a single JSON object:
{
  "chosen_layout": {"id": "...", "name": "...", "score": 0-100, "why": "..."},
  "header": {"type": "...", "elements": ["..."]},
  "footer": {"type": "...", "elements": ["..."]},
  "sections_order": [{"type": "...", "title": "..."}],
  "css_framework": "inline",
  "design_tokens": {"primary": "#rrggbb", "secondary": "#rrggbb", "accent": "#rrggbb", "text": "#rrggbb", "background": "#rrggbb", "font": "...", "base_font_size": "16px"},
  "dynamic_elements": ["..."],
  "mobile_notes": "..."
}

Every layout must be email-client safe: table-based, single column on mobile. Respond with the JSON only.`))

type promptData struct {
	Name      string
	Category  string
	Tone      string
	WordCount int
	Preview   string
}

func buildPrompt(brand types.Brand, content types.WrittenContent) (string, error) {
	preview := content.RawContent
	if len(preview) > previewLimit {
		preview = preview[:previewLimit]
	}

	data := promptData{
		Name:      brand.Name,
		Category:  brand.Category,
		Tone:      brand.Tone,
		WordCount: len(strings.Fields(content.RawContent)),
		Preview:   preview,
	}

	var buf bytes.Buffer
	if err := layoutPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
