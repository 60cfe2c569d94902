// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify provides post-hoc fact checking and quality scoring for
// rendered newsletters. Both analyses are read-only: they never mutate the
// artifact, and their failures never affect a run's outcome.
package verify

import (
	"context"
	"math"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/newsletter-engine/internal/gateway"
	"github.com/pdiddy/newsletter-engine/internal/structured"
	"github.com/pdiddy/newsletter-engine/pkg/types"
)

// defaultMaxInFlight caps concurrent claim verifications to protect outbound
// rate limits.
const defaultMaxInFlight = 8

// FactChecker extracts factual claims from newsletter content and scores
// their cited sources.
type FactChecker struct {
	gen         gateway.Generator
	maxInFlight int
}

// NewFactChecker builds a fact checker. maxInFlight <= 0 uses the default.
func NewFactChecker(gen gateway.Generator, maxInFlight int) *FactChecker {
	if maxInFlight <= 0 {
		maxInFlight = defaultMaxInFlight
	}
	return &FactChecker{gen: gen, maxInFlight: maxInFlight}
}

// CheckNewsletter analyzes a rendered document and reports how well its
// claims are sourced. Extraction failure is absorbed: an unparseable claim
// list produces a report over zero claims, which scores 100.
func (f *FactChecker) CheckNewsletter(ctx context.Context, html string) types.FactCheckReport {
	text := extractText(html)
	claims := f.extractClaims(ctx, text)
	if len(claims) == 0 {
		return types.FactCheckReport{Score: 100, HasUnverifiedStats: false}
	}

	results := f.verifyAll(ctx, claims)

	verified := 0
	hasUnverifiedStats := false
	for _, r := range results {
		if r.Status == types.ClaimVerified {
			verified++
		}
		if r.Status != types.ClaimVerified && r.Claim.IsStatistic {
			hasUnverifiedStats = true
		}
	}

	return types.FactCheckReport{
		Score:              int(math.Round(100 * float64(verified) / float64(len(results)))),
		Claims:             results,
		HasUnverifiedStats: hasUnverifiedStats,
	}
}

// extractClaims asks the generator for a JSON array of claims. Any failure,
// from the call itself to malformed JSON, yields no claims.
func (f *FactChecker) extractClaims(ctx context.Context, text string) []types.Claim {
	prompt, err := buildClaimPrompt(text)
	if err != nil {
		return nil
	}
	raw, err := f.gen.Generate(ctx, prompt, gateway.PurposeGeneral)
	if err != nil {
		return nil
	}
	claims, _ := structured.DecodeSlice[types.Claim](raw)
	return claims
}

// verifyAll verifies claims concurrently with a bounded worker count,
// preserving input order in the results.
func (f *FactChecker) verifyAll(ctx context.Context, claims []types.Claim) []types.VerificationResult {
	results := make([]types.VerificationResult, len(claims))

	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(f.maxInFlight)

	for i, claim := range claims {
		i, claim := i, claim
		g.Go(func() error {
			r := verifyClaim(claim)
			mu.Lock()
			results[i] = r
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return results
}

// verifyClaim classifies a single claim from its cited source.
func verifyClaim(claim types.Claim) types.VerificationResult {
	if claim.SourceURL == "" {
		return verifyWithoutSource(claim)
	}

	score := ScoreSource(claim.SourceURL)
	status := types.ClaimSuspicious
	notes := "low-credibility source"
	if score >= 4 {
		status = types.ClaimVerified
		notes = ""
	}
	return types.VerificationResult{
		Claim:            claim,
		Status:           status,
		CredibilityScore: score,
		Notes:            notes,
	}
}

// verifyWithoutSource handles un-cited claims. Policy: statistics require a
// source and stay unverified without one; non-statistic claims (opinions,
// qualitative statements) verify by default — leniency, not oversight.
func verifyWithoutSource(claim types.Claim) types.VerificationResult {
	if claim.IsStatistic {
		return types.VerificationResult{
			Claim:  claim,
			Status: types.ClaimUnverified,
			Notes:  "statistic cited without a source",
		}
	}
	return types.VerificationResult{
		Claim:  claim,
		Status: types.ClaimVerified,
		Notes:  "non-statistic claim accepted without citation",
	}
}

// credibilityTable maps source-domain suffixes and hosts to trust ratings.
var credibilityTable = []struct {
	match string
	score int
}{
	// Government and academic.
	{".gov", 10},
	{".edu", 10},
	// Peer-reviewed journals.
	{"nature.com", 10},
	{"science.org", 10},
	{"thelancet.com", 10},
	{"nejm.org", 10},
	// Major wire services and press.
	{"reuters.com", 8},
	{"apnews.com", 8},
	{"bloomberg.com", 8},
	{"bbc.com", 8},
	{"bbc.co.uk", 8},
	{"nytimes.com", 8},
	{"wsj.com", 8},
	{"ft.com", 8},
	// Encyclopedic.
	{"wikipedia.org", 6},
	{"britannica.com", 6},
	// Social and blog platforms.
	{"twitter.com", 2},
	{"x.com", 2},
	{"facebook.com", 2},
	{"reddit.com", 3},
	{"medium.com", 3},
	{"substack.com", 3},
	{"blogspot.com", 2},
	{"wordpress.com", 2},
}

// ScoreSource rates a cited URL's domain credibility from 0 to 10. Unknown
// domains rate a neutral 5; malformed or missing URLs rate 0.
func ScoreSource(sourceURL string) int {
	if sourceURL == "" {
		return 0
	}
	u, err := url.Parse(sourceURL)
	if err != nil || u.Host == "" {
		return 0
	}

	host := strings.ToLower(u.Host)
	for _, entry := range credibilityTable {
		if hostMatches(host, entry.match) {
			return entry.score
		}
	}
	return 5
}

// hostMatches reports whether host falls under a table entry. TLD entries
// (".gov") match by raw suffix; host entries ("x.com") match the host itself
// or a subdomain of it, never an unrelated host that merely ends in the same
// characters (fox.com is not x.com).
func hostMatches(host, match string) bool {
	if strings.HasPrefix(match, ".") {
		return strings.HasSuffix(host, match)
	}
	return host == match || strings.HasSuffix(host, "."+match)
}

// extractText strips markup from the document, returning readable text.
func extractText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	doc.Find("style,script").Remove()
	return strings.TrimSpace(doc.Text())
}
