package providers

import (
	"os"
	"strings"
)

// AIProviderConfig describes the configured provider chain: which provider
// to try first and which ones to fall back to, each with its own connection
// settings.
type AIProviderConfig struct {
	DefaultProvider string                       `mapstructure:"default_provider" yaml:"default_provider"`
	FallbackOrder   []string                     `mapstructure:"fallback_order" yaml:"fallback_order"`
	Providers       map[string]*ProviderSettings `mapstructure:"providers" yaml:"providers"`
}

// ProviderSettings is one provider entry in the chain.
type ProviderSettings struct {
	Enabled     bool     `mapstructure:"enabled" yaml:"enabled"`
	BaseURL     string   `mapstructure:"base_url" yaml:"base_url"`
	Model       string   `mapstructure:"model" yaml:"model"`
	ApiKey      string   `mapstructure:"api_key" yaml:"api_key"`
	MaxTokens   int      `mapstructure:"max_tokens" yaml:"max_tokens"`
	Temperature *float32 `mapstructure:"temperature" yaml:"temperature,omitempty"`
}

// ResolveAPIKey expands ${ENV_VAR} indirection in the configured key, so the
// config file can reference the environment instead of embedding secrets.
func (settings *ProviderSettings) ResolveAPIKey() string {
	key := strings.TrimSpace(settings.ApiKey)
	if strings.HasPrefix(key, "${") && strings.HasSuffix(key, "}") {
		return os.Getenv(strings.TrimSuffix(strings.TrimPrefix(key, "${"), "}"))
	}
	return key
}

// Resolvable reports whether the named provider can actually be used: it
// must be enabled and, unless it is a local provider, carry a resolvable API
// key.
func (settings *ProviderSettings) Resolvable(name string) bool {
	if settings == nil || !settings.Enabled {
		return false
	}
	if name == "ollama" {
		return true
	}
	return settings.ResolveAPIKey() != ""
}

// ChainOrder returns the provider names to try in order: the default
// provider first, then the fallback order, without duplicates.
func (config *AIProviderConfig) ChainOrder() []string {
	var order []string
	seen := make(map[string]struct{})
	appendName := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if _, duplicate := seen[name]; duplicate {
			return
		}
		seen[name] = struct{}{}
		order = append(order, name)
	}

	appendName(config.DefaultProvider)
	for _, name := range config.FallbackOrder {
		appendName(name)
	}
	return order
}
