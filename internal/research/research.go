// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research gathers source material for a newsletter run as
// semi-structured Markdown.
package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/newsletter-engine/internal/gateway"
	"github.com/pdiddy/newsletter-engine/pkg/types"
)

// Stage is the research pipeline stage. It issues one research-purpose
// generation call and forwards the raw response as the authoritative payload.
type Stage struct {
	gen gateway.Generator
}

// NewStage builds the research stage.
func NewStage(gen gateway.Generator) *Stage {
	return &Stage{gen: gen}
}

// Run executes the stage. The returned bundle's RawMarkdown is guaranteed
// non-empty; Headline and Topics are best-effort anchors and may be empty.
func (s *Stage) Run(ctx context.Context, brand types.Brand, settings types.Settings) (types.ResearchBundle, error) {
	prompt, err := buildPrompt(brand, settings)
	if err != nil {
		return types.ResearchBundle{}, fmt.Errorf("building research prompt: %w", err)
	}

	raw, err := s.gen.Generate(ctx, prompt, gateway.PurposeResearch)
	if err != nil {
		return types.ResearchBundle{}, fmt.Errorf("research generation: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return types.ResearchBundle{}, fmt.Errorf("research generation returned empty content")
	}

	return types.ResearchBundle{
		RawMarkdown: raw,
		Headline:    extractHeadline(raw),
		Topics:      extractTopics(raw),
	}, nil
}

// extractHeadline returns the first Markdown heading's text, or the first
// non-empty line when the response carries no headings.
func extractHeadline(raw string) string {
	firstLine := ""
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
		if firstLine == "" {
			firstLine = trimmed
		}
	}
	return firstLine
}

// maxTopics caps the anchor topic list; extraction is diagnostic only.
const maxTopics = 3

// extractTopics collects up to three second-level heading texts.
func extractTopics(raw string) []string {
	var topics []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "## ") {
			topics = append(topics, strings.TrimSpace(strings.TrimPrefix(trimmed, "## ")))
			if len(topics) == maxTopics {
				break
			}
		}
	}
	return topics
}
