// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences the generation stages and manages each run's
// lifecycle record.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/newsletter-engine/internal/design"
	"github.com/pdiddy/newsletter-engine/internal/gateway"
	"github.com/pdiddy/newsletter-engine/internal/layout"
	"github.com/pdiddy/newsletter-engine/internal/palette"
	"github.com/pdiddy/newsletter-engine/internal/research"
	"github.com/pdiddy/newsletter-engine/internal/verify"
	"github.com/pdiddy/newsletter-engine/internal/writing"
	"github.com/pdiddy/newsletter-engine/pkg/types"
)

// IssueStore is the record contract the orchestrator consumes.
type IssueStore interface {
	GetBrand(ctx context.Context, id string) (types.Brand, error)
	CreateIssue(ctx context.Context, issue types.Issue) error
	UpdateIssue(ctx context.Context, issue types.Issue) error
	GetIssue(ctx context.Context, id string) (types.Issue, error)
}

// Deps wires the orchestrator's collaborators.
type Deps struct {
	Store     IssueStore
	Generator gateway.Generator

	// Verify tunes the verification subsystem; the zero value uses its
	// documented defaults.
	Verify types.VerifyConfig

	// Rand seeds stage-level randomness (voice style, header choice,
	// palette sampling). Nil falls back to a time-seeded source.
	Rand *rand.Rand

	// Log receives structured run events. Nil means no logging.
	Log *zap.Logger

	// Progress receives human-readable stage progress. Nil discards it.
	Progress io.Writer
}

// Orchestrator runs the full generation pipeline for one brand at a time.
// Separate Orchestrator values may run concurrently; they share nothing but
// the gateway's outbound capacity.
type Orchestrator struct {
	store    IssueStore
	log      *zap.Logger
	progress io.Writer

	palettes *palette.Generator
	research *research.Stage
	writing  *writing.Stage
	layout   *layout.Stage
	design   *design.Renderer

	factCheck *verify.FactChecker
	quality   *verify.QualityScorer
}

// New builds an orchestrator from its dependencies.
func New(deps Deps) *Orchestrator {
	r := deps.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	progress := deps.Progress
	if progress == nil {
		progress = io.Discard
	}

	palettes := palette.NewGenerator(r)
	return &Orchestrator{
		store:     deps.Store,
		log:       log,
		progress:  progress,
		palettes:  palettes,
		research:  research.NewStage(deps.Generator),
		writing:   writing.NewStage(deps.Generator, r),
		layout:    layout.NewStage(deps.Generator, palettes),
		design:    design.NewRenderer(deps.Generator, r),
		factCheck: verify.NewFactChecker(deps.Generator, deps.Verify.MaxInFlight),
		quality:   verify.NewQualityScorer(deps.Generator),
	}
}

// Run executes one end-to-end generation run for the brand. The issue is
// created in GENERATING and transitions exactly once, to DRAFT on success or
// FAILED on the first unrecovered error, before Run returns. Stage errors
// surface verbatim alongside the failed issue.
func (o *Orchestrator) Run(ctx context.Context, brandID string) (types.Issue, error) {
	brand, err := o.store.GetBrand(ctx, brandID)
	if err != nil {
		return types.Issue{}, err
	}
	settings := types.ApplyDefaults(brand.Settings)

	issue := types.Issue{
		ID:        uuid.NewString(),
		BrandID:   brand.ID,
		Status:    types.StatusGenerating,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := o.store.CreateIssue(ctx, issue); err != nil {
		return types.Issue{}, err
	}

	start := time.Now()
	o.log.Info("run started", zap.String("run_id", issue.ID), zap.String("brand", brand.ID))

	rendered, err := o.generate(ctx, brand, settings)
	if err != nil {
		issue.Status = types.StatusFailed
		if updateErr := o.store.UpdateIssue(ctx, issue); updateErr != nil {
			o.log.Error("failed to mark run failed", zap.String("run_id", issue.ID), zap.Error(updateErr))
		}
		o.log.Warn("run failed",
			zap.String("run_id", issue.ID),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return issue, err
	}

	subject, preheader := design.ExtractSentinels(rendered.HTML)
	if subject == "" {
		subject = brand.Name + " Newsletter"
	}
	if preheader == "" {
		preheader = "Your latest updates"
	}

	issue.Status = types.StatusDraft
	issue.Subject = subject
	issue.Preheader = preheader
	issue.HTMLContent = rendered.HTML
	if err := o.store.UpdateIssue(ctx, issue); err != nil {
		return issue, fmt.Errorf("persisting draft: %w", err)
	}

	o.log.Info("run completed",
		zap.String("run_id", issue.ID),
		zap.String("subject", subject),
		zap.Duration("duration", time.Since(start)))

	return issue, nil
}

// generate runs the four content stages strictly in sequence: each stage's
// prompt depends on the complete output of the previous one.
func (o *Orchestrator) generate(ctx context.Context, brand types.Brand, settings types.Settings) (types.RenderedNewsletter, error) {
	fmt.Fprintln(o.progress, "researching")
	bundle, err := o.research.Run(ctx, brand, settings)
	if err != nil {
		return types.RenderedNewsletter{}, err
	}

	fmt.Fprintln(o.progress, "writing")
	content, err := o.writing.Run(ctx, brand, settings, bundle)
	if err != nil {
		return types.RenderedNewsletter{}, err
	}

	fmt.Fprintln(o.progress, "planning layout")
	blueprint, origin, err := o.layout.Run(ctx, brand, content)
	if err != nil {
		return types.RenderedNewsletter{}, err
	}
	o.log.Debug("layout planned", zap.String("origin", origin.String()))

	pal := o.resolvePalette(settings, blueprint, brand.Category)

	fmt.Fprintln(o.progress, "rendering")
	return o.design.Render(ctx, brand, settings, content, blueprint, pal)
}

// resolvePalette picks the run's palette: manual settings colors win, then
// the blueprint's design tokens, then a fresh generated palette.
func (o *Orchestrator) resolvePalette(settings types.Settings, blueprint types.LayoutBlueprint, category string) types.Palette {
	pal := blueprint.DesignTokens.Palette()
	if pal.Primary == "" {
		pal = o.palettes.Generate(category)
	}
	if primary, secondary, ok := settings.ManualColors(); ok {
		pal.Primary = primary
		pal.Secondary = secondary
	}
	return pal
}

// VerificationReport bundles the two post-hoc analyses.
type VerificationReport struct {
	FactCheck types.FactCheckReport `json:"fact_check"`
	Quality   types.QualityReport   `json:"quality"`
}

// Verify runs fact checking and quality scoring against a persisted issue.
// It never mutates the issue; sub-call failures inside the analyses are
// absorbed into neutral reports.
func (o *Orchestrator) Verify(ctx context.Context, issueID string) (VerificationReport, error) {
	issue, err := o.store.GetIssue(ctx, issueID)
	if err != nil {
		return VerificationReport{}, err
	}
	if issue.Status == types.StatusGenerating || issue.Status == types.StatusFailed {
		return VerificationReport{}, fmt.Errorf("issue %s has no verifiable artifact (status %s)", issueID, issue.Status)
	}

	brand, err := o.store.GetBrand(ctx, issue.BrandID)
	if err != nil {
		return VerificationReport{}, err
	}

	fmt.Fprintln(o.progress, "fact checking")
	factCheck := o.factCheck.CheckNewsletter(ctx, issue.HTMLContent)

	fmt.Fprintln(o.progress, "scoring quality")
	quality := o.quality.ScoreNewsletter(ctx, issue.HTMLContent, brand)

	return VerificationReport{FactCheck: factCheck, Quality: quality}, nil
}
