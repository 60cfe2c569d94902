// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// QualityMetrics are the five editorial sub-scores, each on a 0-10 scale.
// Readability, Structure, and SEO are computed deterministically from the
// HTML; Engagement and BrandAlignment are model-judged.
type QualityMetrics struct {
	Readability    int `json:"readability"`
	Engagement     int `json:"engagement"`
	Structure      int `json:"structure"`
	SEO            int `json:"seo"`
	BrandAlignment int `json:"brand_alignment"`
}

// QualityReport is the quality scorer's output.
type QualityReport struct {
	// OverallScore is the weighted sum of the metrics on a 0-100 scale:
	// readability*1.5 + structure*1.5 + engagement*3 + brandAlignment*3 +
	// seo*1, rounded. All-10 metrics score 100.
	OverallScore int            `json:"overall_score"`
	Metrics      QualityMetrics `json:"metrics"`
	Feedback     []string       `json:"feedback"`
}

// Claim is one factual assertion extracted from newsletter content.
type Claim struct {
	Text        string `json:"text"`
	IsStatistic bool   `json:"is_statistic"`
	SourceURL   string `json:"source_url,omitempty"`
	Context     string `json:"context"`
}

// VerificationStatus classifies one claim's verification outcome.
type VerificationStatus string

const (
	ClaimVerified   VerificationStatus = "verified"
	ClaimUnverified VerificationStatus = "unverified"
	ClaimSuspicious VerificationStatus = "suspicious"
)

// VerificationResult pairs a claim with its credibility assessment.
type VerificationResult struct {
	Claim  Claim              `json:"claim"`
	Status VerificationStatus `json:"status"`

	// CredibilityScore rates the claim's cited source from 0 (malformed
	// URL) to 10 (government, academic, or peer-reviewed source).
	CredibilityScore int    `json:"credibility_score"`
	Notes            string `json:"notes,omitempty"`
}

// FactCheckReport is the fact checker's output. It never mutates the
// artifact it describes.
type FactCheckReport struct {
	// Score is the percentage of claims that verified, 0-100. A
	// newsletter with no extractable claims scores 100.
	Score              int                  `json:"score"`
	Claims             []VerificationResult `json:"claims"`
	HasUnverifiedStats bool                 `json:"has_unverified_stats"`
}
