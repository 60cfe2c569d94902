// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/newsletter-engine/internal/httputil"
	"github.com/pdiddy/newsletter-engine/pkg/types"
)

// chatServer returns a test server speaking the chat-completions shape and a
// pointer to the last request body it saw.
func chatServer(t *testing.T, reply string) (*httptest.Server, *chatRequest) {
	t.Helper()
	last := &chatRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(last))
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, last
}

func testConfig(generalURL, researchURL string) types.GatewayConfig {
	cfg := types.GatewayConfig{
		General: types.ProviderConfig{
			Provider: "openrouter",
			Model:    "test-model",
			APIKey:   "k",
			BaseURL:  generalURL,
		},
	}
	if researchURL != "" {
		cfg.Research = types.ProviderConfig{
			Provider: "perplexity",
			Model:    "test-research-model",
			APIKey:   "k",
			BaseURL:  researchURL,
		}
	}
	return cfg
}

func TestGenerateGeneral(t *testing.T) {
	srv, last := chatServer(t, "generated text")

	g, err := New(testConfig(srv.URL, ""), zap.NewNop())
	require.NoError(t, err)

	text, err := g.Generate(context.Background(), "write something", PurposeGeneral)
	require.NoError(t, err)
	assert.Equal(t, "generated text", text)
	assert.Equal(t, "test-model", last.Model)
	assert.Equal(t, defaultMaxTokens, last.MaxTokens)
	require.Len(t, last.Messages, 2)
	assert.Equal(t, "system", last.Messages[0].Role)
	assert.Equal(t, "write something", last.Messages[1].Content)
}

func TestResearchRouting(t *testing.T) {
	general, _ := chatServer(t, "general answer")
	research, _ := chatServer(t, "research answer")

	t.Run("prefers research backend", func(t *testing.T) {
		g, err := New(testConfig(general.URL, research.URL), nil)
		require.NoError(t, err)

		text, err := g.Generate(context.Background(), "q", PurposeResearch)
		require.NoError(t, err)
		assert.Equal(t, "research answer", text)
	})

	t.Run("falls back to general when unconfigured", func(t *testing.T) {
		g, err := New(testConfig(general.URL, ""), nil)
		require.NoError(t, err)

		text, err := g.Generate(context.Background(), "q", PurposeResearch)
		require.NoError(t, err)
		assert.Equal(t, "general answer", text)
	})
}

func TestProviderErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	g, err := New(testConfig(srv.URL, ""), nil)
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "q", PurposeGeneral)
	var statusErr *httputil.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "bad key")
}

func TestGeminiMissingKeyShortCircuits(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	g, err := New(types.GatewayConfig{
		General: types.ProviderConfig{Provider: "gemini", Model: "m", BaseURL: srv.URL},
	}, nil)
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "q", PurposeGeneral)
	require.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Zero(t, calls, "no outbound call should be made without a key")
}

func TestGeminiBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k", r.Header.Get("x-goog-api-key"))
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": "gemini text"}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	g, err := New(types.GatewayConfig{
		General: types.ProviderConfig{Provider: "gemini", Model: "m", APIKey: "k", BaseURL: srv.URL},
	}, nil)
	require.NoError(t, err)

	text, err := g.Generate(context.Background(), "q", PurposeGeneral)
	require.NoError(t, err)
	assert.Equal(t, "gemini text", text)
}

func TestUnknownProvider(t *testing.T) {
	_, err := New(types.GatewayConfig{
		General: types.ProviderConfig{Provider: "mystery"},
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}
