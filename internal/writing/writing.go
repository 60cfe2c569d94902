// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package writing turns research material into long-form newsletter prose.
package writing

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/pdiddy/newsletter-engine/internal/gateway"
	"github.com/pdiddy/newsletter-engine/pkg/types"
)

// voiceStyles are the named styles the creative directive offers the
// generator. The directive is a prompt-level instruction only; downstream
// stages must not assume any particular voice was used.
var voiceStyles = []string{
	"the sharp analyst: precise, data-forward, no filler",
	"the trusted friend: warm, direct, conversational",
	"the field reporter: vivid scene-setting, concrete detail",
	"the veteran editor: dry wit, strong opinions, short sentences",
	"the enthusiast: energetic, curious, generous with context",
}

// subjectMarker prefixes candidate subject lines in the generator's output.
const subjectMarker = "SUBJECT:"

// maxSubjectLines caps best-effort subject extraction.
const maxSubjectLines = 3

// Stage is the writing pipeline stage.
type Stage struct {
	gen  gateway.Generator
	rand *rand.Rand
}

// NewStage builds the writing stage. The random source picks the per-run
// voice style; nil falls back to a time-seeded source.
func NewStage(gen gateway.Generator, r *rand.Rand) *Stage {
	if r == nil {
		r = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Stage{gen: gen, rand: r}
}

// Run executes the stage. RawContent carries the complete generator response
// forward even when subject extraction finds nothing.
func (s *Stage) Run(ctx context.Context, brand types.Brand, settings types.Settings, research types.ResearchBundle) (types.WrittenContent, error) {
	voice := voiceStyles[s.rand.Intn(len(voiceStyles))]

	prompt, err := buildPrompt(brand, settings, research, voice)
	if err != nil {
		return types.WrittenContent{}, fmt.Errorf("building writing prompt: %w", err)
	}

	raw, err := s.gen.Generate(ctx, prompt, gateway.PurposeGeneral)
	if err != nil {
		return types.WrittenContent{}, fmt.Errorf("writing generation: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return types.WrittenContent{}, fmt.Errorf("writing generation returned empty content")
	}

	return types.WrittenContent{
		RawContent:   raw,
		SubjectLines: extractSubjectLines(raw),
	}, nil
}

// extractSubjectLines scans for SUBJECT:-marked lines and returns up to
// three, markers stripped.
func extractSubjectLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(trimmed, subjectMarker); ok {
			subject := strings.TrimSpace(rest)
			if subject != "" {
				lines = append(lines, subject)
			}
			if len(lines) == maxSubjectLines {
				break
			}
		}
	}
	return lines
}
