// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writing

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

func testStage(gen gateway.Generator) *Stage {
	return NewStage(gen, rand.New(rand.NewSource(1)))
}

func testBrand() types.Brand {
	return types.Brand{Name: "Circuit Weekly", Tone: "curious", Audience: "engineers"}
}

func TestRunExtractsSubjectLines(t *testing.T) {
	raw := strings.Join([]string{
		"SUBJECT: Chips are so back",
		"SUBJECT: The fab boom nobody predicted",
		"SUBJECT: Silicon never sleeps",
		"SUBJECT: A fourth candidate that should be ignored",
		"",
		"## The issue",
		"Body text here.",
	}, "\n")

	gen := &mockGenerator{response: raw}
	content, err := testStage(gen).Run(context.Background(), testBrand(), types.DefaultSettings(), types.ResearchBundle{RawMarkdown: "# r"})
	if err != nil {
		t.Fatal(err)
	}
	if content.RawContent != raw {
		t.Error("raw content must be forwarded unmodified")
	}
	if len(content.SubjectLines) != 3 {
		t.Fatalf("subject lines = %v, want 3", content.SubjectLines)
	}
	if content.SubjectLines[0] != "Chips are so back" {
		t.Errorf("first subject = %q", content.SubjectLines[0])
	}
}

func TestRunWithoutSubjectMarkers(t *testing.T) {
	gen := &mockGenerator{response: "body with no markers"}
	content, err := testStage(gen).Run(context.Background(), testBrand(), types.DefaultSettings(), types.ResearchBundle{RawMarkdown: "# r"})
	if err != nil {
		t.Fatal(err)
	}
	if len(content.SubjectLines) != 0 {
		t.Errorf("subject lines = %v, want none", content.SubjectLines)
	}
	if content.RawContent == "" {
		t.Error("raw payload lost despite failed anchor extraction")
	}
}

func TestPromptCarriesResearchAndVoice(t *testing.T) {
	gen := &mockGenerator{response: "ok"}
	research := types.ResearchBundle{RawMarkdown: "# The research payload"}

	brand := testBrand()
	brand.Voice = &types.VoiceProfile{
		Vocabulary: []string{"builders"},
		StyleGuide: "never bury the lede",
	}

	if _, err := testStage(gen).Run(context.Background(), brand, types.DefaultSettings(), research); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"The research payload", "builders", "never bury the lede", "voice of"} {
		if !strings.Contains(gen.prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestVoiceStyleDeterministicUnderSeed(t *testing.T) {
	prompts := make([]string, 2)
	for i := range prompts {
		gen := &mockGenerator{response: "ok"}
		if _, err := testStage(gen).Run(context.Background(), testBrand(), types.DefaultSettings(), types.ResearchBundle{RawMarkdown: "r"}); err != nil {
			t.Fatal(err)
		}
		prompts[i] = gen.prompt
	}
	if prompts[0] != prompts[1] {
		t.Error("same seed should select the same voice style")
	}
}
