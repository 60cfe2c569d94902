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

const defaultMaxTokens = 8000

// systemPrompt frames every chat-completion call. Stage prompts carry the
// task-specific instructions in the user message.
const systemPrompt = "You are an expert newsletter content system. Follow the instructions exactly and produce only the requested output."

// chatEndpoints maps provider names to their OpenAI-compatible completion
// endpoints.
var chatEndpoints = map[string]string{
	"openrouter": "https://openrouter.ai/api/v1/chat/completions",
	"perplexity": "https://api.perplexity.ai/chat/completions",
}

// chatBackend calls an OpenAI-compatible chat-completions endpoint.
type chatBackend struct {
	endpoint  string
	model     string
	apiKey    string
	maxTokens int
	client    *http.Client
}

func newChatBackend(cfg types.ProviderConfig, maxTokens int) *chatBackend {
	endpoint := cfg.BaseURL
	if endpoint == "" {
		endpoint = chatEndpoints[cfg.Provider]
	}
	return &chatBackend{
		endpoint:  endpoint,
		model:     cfg.Model,
		apiKey:    cfg.APIKey,
		maxTokens: maxTokens,
		client:    newHTTPClient(),
	}
}

// chatMessage is a single message in the completion conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request body for the chat-completions endpoint.
type chatRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

// chatResponse is the subset of the completion response the gateway reads.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (b *chatBackend) complete(ctx context.Context, prompt string) (string, error) {
	if b.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	req := chatRequest{
		Model:     b.model,
		MaxTokens: b.maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	data, err := httputil.PostJSON(ctx, b.client, b.endpoint, map[string]string{
		"Authorization": "Bearer " + b.apiKey,
	}, req)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
