// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/newsletter-engine/internal/httputil"
	"github.com/pdiddy/newsletter-engine/pkg/types"
)

// geminiEndpoint is the generateContent URL template. Package-level var for
// test substitution.
var geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

// geminiBackend calls the Gemini generateContent API.
type geminiBackend struct {
	model   string
	apiKey  string
	baseURL string
	client  *http.Client
}

func newGeminiBackend(cfg types.ProviderConfig) *geminiBackend {
	return &geminiBackend{
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client:  newHTTPClient(),
	}
}

// geminiRequest is the generateContent request body.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// geminiResponse is the subset of the generateContent response we read.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (b *geminiBackend) complete(ctx context.Context, prompt string) (string, error) {
	// Short-circuit before any outbound call when unconfigured.
	if b.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	url := b.baseURL
	if url == "" {
		url = fmt.Sprintf(geminiEndpoint, b.model)
	}

	req := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}

	data, err := httputil.PostJSON(ctx, b.client, url, map[string]string{
		"x-goog-api-key": b.apiKey,
	}, req)
	if err != nil {
		return "", err
	}

	var resp geminiResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decoding generateContent response: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generateContent response has no candidates")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
