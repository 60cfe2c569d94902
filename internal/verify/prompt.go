// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/newsletter-engine/pkg/types"
)

// claimPromptTmpl asks for every checkable factual assertion as JSON.
var claimPromptTmpl = template.Must(template.New("claims").Parse(`Extract every factual claim from this newsletter text.

Text:
---
{{.Text}}
---

A claim is a checkable assertion about the world: a statistic, a dated event, a quantitative comparison, or a statement attributed to a source. Skip opinions and marketing copy.

Respond with a JSON array only. Each element:
{"text": "the claim verbatim", "is_statistic": true/false, "source_url": "cited URL or empty", "context": "the sentence it appears in"}

An empty array is a valid answer.`))

func buildClaimPrompt(text string) (string, error) {
	var buf bytes.Buffer
	if err := claimPromptTmpl.Execute(&buf, struct{ Text string }{Text: text}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// judgePromptTmpl asks for the two model-judged quality metrics.
var judgePromptTmpl = template.Must(template.New("judge").Parse(`Rate this newsletter for the brand below.

Brand: {{.Name}} ({{.Category}})
Tone: {{.Tone}}
Audience: {{.Audience}}

Newsletter text:
---
{{.Text}}
---

Respond with a single JSON object:
{"engagement": 0-10, "brand_alignment": 0-10, "feedback": ["short actionable notes"]}

engagement: how compelling the content is for the stated audience.
brand_alignment: how well the voice and topics fit the brand.
Respond with the JSON only.`))

type judgePromptData struct {
	Name     string
	Category string
	Tone     string
	Audience string
	Text     string
}

func buildJudgePrompt(text string, brand types.Brand) (string, error) {
	data := judgePromptData{
		Name:     brand.Name,
		Category: brand.Category,
		Tone:     brand.Tone,
		Audience: brand.Audience,
		Text:     text,
	}
	var buf bytes.Buffer
	if err := judgePromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
