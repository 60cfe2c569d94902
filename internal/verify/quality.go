// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"context"
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/newsletter-engine/internal/gateway"
	"github.com/pdiddy/newsletter-engine/internal/structured"
	"github.com/pdiddy/newsletter-engine/pkg/types"
)

// QualityScorer rates a rendered newsletter's editorial quality. Three
// metrics are computed deterministically from the HTML; engagement and brand
// alignment are model-judged with neutral defaults on failure.
type QualityScorer struct {
	gen gateway.Generator
}

// NewQualityScorer builds a quality scorer.
func NewQualityScorer(gen gateway.Generator) *QualityScorer {
	return &QualityScorer{gen: gen}
}

// judgedScores is the model's portion of the metrics.
type judgedScores struct {
	Engagement     int      `json:"engagement"`
	BrandAlignment int      `json:"brand_alignment"`
	Feedback       []string `json:"feedback"`
}

// neutralJudged is the default when the evaluation call fails or returns
// garbage: mid-scale scores that neither reward nor punish.
var neutralJudged = judgedScores{Engagement: 5, BrandAlignment: 5}

// ScoreNewsletter produces a quality report for the document.
func (q *QualityScorer) ScoreNewsletter(ctx context.Context, html string, brand types.Brand) types.QualityReport {
	text := extractText(html)

	metrics := types.QualityMetrics{
		Readability: scoreReadability(text),
		Structure:   scoreStructure(html),
		SEO:         scoreSEO(html),
	}

	judged := q.judge(ctx, text, brand)
	metrics.Engagement = clampScore(judged.Engagement)
	metrics.BrandAlignment = clampScore(judged.BrandAlignment)

	return types.QualityReport{
		OverallScore: OverallScore(metrics),
		Metrics:      metrics,
		Feedback:     judged.Feedback,
	}
}

// judge runs the single model evaluation call. Any failure yields the
// neutral defaults.
func (q *QualityScorer) judge(ctx context.Context, text string, brand types.Brand) judgedScores {
	prompt, err := buildJudgePrompt(text, brand)
	if err != nil {
		return neutralJudged
	}
	raw, err := q.gen.Generate(ctx, prompt, gateway.PurposeGeneral)
	if err != nil {
		return neutralJudged
	}
	judged, _ := structured.Decode(raw, neutralJudged)
	return judged
}

// OverallScore combines the metrics into a 0-100 score. The weights
// (readability 1.5, structure 1.5, engagement 3, brand alignment 3, seo 1)
// sum to 10, so all-10 metrics score exactly 100.
func OverallScore(m types.QualityMetrics) int {
	weighted := float64(m.Readability)*1.5 +
		float64(m.Structure)*1.5 +
		float64(m.Engagement)*3.0 +
		float64(m.BrandAlignment)*3.0 +
		float64(m.SEO)*1.0
	return int(math.Round(weighted))
}

// scoreReadability starts at 10 and penalizes long average sentence length.
func scoreReadability(text string) int {
	avg := averageSentenceLength(text)
	score := 10
	if avg > 20 {
		score -= 2
	}
	if avg > 30 {
		score -= 3
	}
	return score
}

// averageSentenceLength returns the mean word count per sentence.
func averageSentenceLength(text string) float64 {
	sentences := 0
	words := len(strings.Fields(text))
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}
	return float64(words) / float64(sentences)
}

// scoreStructure starts at 5 and credits structural markup, capped at 10.
func scoreStructure(html string) int {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 5
	}

	score := 5
	if doc.Find("h1,h2,h3").Length() > 0 {
		score += 2
	}
	if doc.Find("ul,ol").Length() > 0 {
		score += 2
	}
	if doc.Find("b,strong").Length() > 0 {
		score++
	}
	if score > 10 {
		score = 10
	}
	return score
}

// scoreSEO starts at 5 and credits the subject/preheader sentinel comments.
func scoreSEO(html string) int {
	score := 5
	if strings.Contains(html, subjectSentinelMarker) {
		score += 3
	}
	if strings.Contains(html, preheaderSentinelMarker) {
		score += 2
	}
	return score
}

// Sentinel markers mirrored from the design stage's output contract.
const (
	subjectSentinelMarker   = "<!-- SUBJECT:"
	preheaderSentinelMarker = "<!-- PREHEADER:"
)

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
