// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the newsletter-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/newsletter-engine/internal/gateway"
	"github.com/pdiddy/newsletter-engine/internal/secrets"
	"github.com/pdiddy/newsletter-engine/internal/store"
	"github.com/pdiddy/newsletter-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the newsletter-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "newsletter-engine",
	Short: "AI-driven newsletter generation pipeline",
	Long: `newsletter-engine generates complete email newsletters for configured
brands. A generation run moves through research, writing, layout, and design
stages, each driven by an AI provider, and persists the rendered draft.

Brands and issues live in a local SQLite database; generate, verify, palette,
brand, and issue are the operational subcommands.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./newsletter-engine.yaml or ~/.config/newsletter-engine/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("newsletter-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "newsletter-engine"))
		}
	}

	viper.SetEnvPrefix("NEWSLETTER_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the process logger. Verbose runs get human-readable debug
// output; normal runs get production JSON at info level.
func newLogger() (*zap.Logger, error) {
	if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// gatewayConfig assembles provider configuration from the config file, with
// API keys falling back to .secrets/ files.
func gatewayConfig() types.GatewayConfig {
	viper.SetDefault("gateway.general.provider", "openrouter")
	viper.SetDefault("gateway.general.model", "anthropic/claude-sonnet-4")
	viper.SetDefault("gateway.research.provider", "perplexity")
	viper.SetDefault("gateway.research.model", "sonar-pro")

	return types.GatewayConfig{
		General: types.ProviderConfig{
			Provider: viper.GetString("gateway.general.provider"),
			Model:    viper.GetString("gateway.general.model"),
			APIKey:   providerKey(viper.GetString("gateway.general.provider"), viper.GetString("gateway.general.api_key")),
			BaseURL:  viper.GetString("gateway.general.base_url"),
		},
		Research: types.ProviderConfig{
			Provider: viper.GetString("gateway.research.provider"),
			Model:    viper.GetString("gateway.research.model"),
			APIKey:   providerKey(viper.GetString("gateway.research.provider"), viper.GetString("gateway.research.api_key")),
			BaseURL:  viper.GetString("gateway.research.base_url"),
		},
		MaxTokens: viper.GetInt("gateway.max_tokens"),
	}
}

// providerKey maps a provider name to its .secrets/ key file.
func providerKey(provider, configured string) string {
	return secretDefault(provider+"-api-key", configured)
}

// openStore opens the issue database configured under store.path.
func openStore() (*store.Store, error) {
	return store.Open(types.StoreConfig{Path: viper.GetString("store.path")})
}

// verifyConfig reads verification tuning from configuration.
func verifyConfig() types.VerifyConfig {
	return types.VerifyConfig{MaxInFlight: viper.GetInt("verify.max_in_flight")}
}

// newGateway builds the AI gateway from configuration.
func newGateway(log *zap.Logger) (*gateway.Gateway, error) {
	return gateway.New(gatewayConfig(), log)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
