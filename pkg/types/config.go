// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ProviderConfig identifies one text-generation backend.
type ProviderConfig struct {
	// Provider selects the backend implementation: "openrouter",
	// "perplexity", or "gemini".
	Provider string `json:"provider" yaml:"provider"`

	// Model is the model identifier sent to the provider.
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the provider's default endpoint (used by tests).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// GatewayConfig holds the gateway's backend selection. Research names an
// optional web-search-capable backend; when it is unset, research-purpose
// calls fall back silently to General.
type GatewayConfig struct {
	General  ProviderConfig `json:"general" yaml:"general"`
	Research ProviderConfig `json:"research" yaml:"research"`

	// MaxTokens caps the completion length requested from HTTP backends
	// (default 8000).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// StoreConfig holds settings for the record store.
type StoreConfig struct {
	// Path is the SQLite database file (default "newsletters.db").
	Path string `json:"path" yaml:"path"`
}

// VerifyConfig holds settings for the verification subsystem.
type VerifyConfig struct {
	// MaxInFlight caps concurrent claim verifications (default 8).
	MaxInFlight int `json:"max_in_flight" yaml:"max_in_flight"`
}

// PipelineConfig groups all component configurations.
type PipelineConfig struct {
	Gateway GatewayConfig `json:"gateway" yaml:"gateway"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Verify  VerifyConfig  `json:"verify" yaml:"verify"`
}
