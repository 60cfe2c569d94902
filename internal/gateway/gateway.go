// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gateway provides a single-call abstraction over the configured
// text-generation backends. Every pipeline stage funnels its one generation
// call through Generator.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/newsletter-engine/pkg/types"
)

// Purpose selects which backend class serves a generation call.
type Purpose string

const (
	// PurposeGeneral routes to the default backend.
	PurposeGeneral Purpose = "general"

	// PurposeResearch prefers a web-search-capable backend when one is
	// configured, falling back silently to the general backend.
	PurposeResearch Purpose = "research"
)

// ErrMissingAPIKey is returned before any outbound call when a selected
// backend has no credentials. Runs fail immediately on this error.
var ErrMissingAPIKey = errors.New("gateway: missing API key")

// Generator is the stage-facing contract. Implementations issue exactly one
// outbound call per invocation: no retry, no caching, no deduplication.
// Transport and authentication failures propagate unmodified.
type Generator interface {
	Generate(ctx context.Context, prompt string, purpose Purpose) (string, error)
}

// backend is one concrete provider binding.
type backend interface {
	complete(ctx context.Context, prompt string) (string, error)
}

// Gateway routes generation calls to the configured backends.
type Gateway struct {
	general  backend
	research backend
	log      *zap.Logger
}

// New builds a Gateway from explicit configuration. It returns an error for
// unknown provider names; missing credentials are reported lazily at call
// time so a partially-configured gateway can still serve the other purpose.
func New(cfg types.GatewayConfig, log *zap.Logger) (*Gateway, error) {
	if log == nil {
		log = zap.NewNop()
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	general, err := newBackend(cfg.General, maxTokens)
	if err != nil {
		return nil, fmt.Errorf("general backend: %w", err)
	}

	var research backend
	if cfg.Research.Provider != "" {
		research, err = newBackend(cfg.Research, maxTokens)
		if err != nil {
			return nil, fmt.Errorf("research backend: %w", err)
		}
	}

	return &Gateway{general: general, research: research, log: log}, nil
}

// newBackend maps a provider name to its implementation.
func newBackend(cfg types.ProviderConfig, maxTokens int) (backend, error) {
	switch cfg.Provider {
	case "openrouter", "perplexity":
		return newChatBackend(cfg, maxTokens), nil
	case "gemini":
		return newGeminiBackend(cfg), nil
	case "":
		return nil, errors.New("no provider configured")
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// Generate routes the prompt to the backend matching purpose and returns the
// generated text.
func (g *Gateway) Generate(ctx context.Context, prompt string, purpose Purpose) (string, error) {
	b := g.general
	routed := PurposeGeneral
	if purpose == PurposeResearch && g.research != nil {
		b = g.research
		routed = PurposeResearch
	}

	start := time.Now()
	text, err := b.complete(ctx, prompt)
	g.log.Debug("generation call",
		zap.String("purpose", string(routed)),
		zap.Int("prompt_len", len(prompt)),
		zap.Int("response_len", len(text)),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err))
	if err != nil {
		return "", err
	}
	return text, nil
}

// newHTTPClient is the shared client constructor for backends. Generation
// calls can be slow, so the transport timeout is generous; there is no
// per-stage timeout above this.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Minute}
}
