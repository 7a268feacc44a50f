package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// newTestRootCmd builds a root command with the full flag set registered.
func newTestRootCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "docparser"}
	InitFlags(cmd)
	return cmd
}

// resetConfigState clears viper's global state before and after a test,
// since LoadConfigs registers defaults and bindings globally.
func resetConfigState(t *testing.T) {
	t.Helper()
	viper.Reset()
	cfgFile = ""
	t.Cleanup(func() {
		viper.Reset()
		cfgFile = ""
	})
}

// Test that loading without any configuration file falls back to defaults.
func TestLoadConfigsDefaults(t *testing.T) {
	resetConfigState(t)

	config := LoadConfigs(newTestRootCmd(), t.TempDir())

	require.NotNil(t, config)
	assert.Equal(t, "1.0.0", config.Version)
	assert.Equal(t, "dracula", config.Theme)
	assert.Equal(t, "Reports", config.ReportsDir)
	assert.True(t, config.EnableCache)
	assert.Equal(t, 1, config.Parallelism)
	assert.Equal(t, "qualitative", config.AnalysisMode)
	assert.False(t, config.AIEnabled)

	require.NotNil(t, config.AIProviderConfig)
	assert.Equal(t, "openai", config.AIProviderConfig.DefaultProvider)
	assert.Equal(t, []string{"anthropic", "ollama"}, config.AIProviderConfig.FallbackOrder)
	require.Contains(t, config.AIProviderConfig.Providers, "openai")
	assert.Equal(t, "gpt-4o", config.AIProviderConfig.Providers["openai"].Model)
	assert.Equal(t, "${OPENAI_API_KEY}", config.AIProviderConfig.Providers["openai"].ApiKey)
	require.Contains(t, config.AIProviderConfig.Providers, "ollama")
	assert.False(t, config.AIProviderConfig.Providers["ollama"].Enabled)
}

// Test that a docparser-config.yml in the working directory overrides
// defaults while untouched keys keep their default values.
func TestLoadConfigsReadsYAMLFile(t *testing.T) {
	resetConfigState(t)

	cwd := t.TempDir()
	content := `theme: light
parallelism: 4
ai_enabled: true
exclude_patterns:
  - drafts/
  - "*.tmp"
ai_provider_config:
  default_provider: anthropic
  providers:
    openai:
      model: gpt-4o-mini
`
	require.NoError(t, os.WriteFile(filepath.Join(cwd, "docparser-config.yml"), []byte(content), 0644))

	config := LoadConfigs(newTestRootCmd(), cwd)

	assert.Equal(t, "light", config.Theme)
	assert.Equal(t, 4, config.Parallelism)
	assert.True(t, config.AIEnabled)
	assert.Equal(t, []string{"drafts/", "*.tmp"}, config.ExcludePatterns)
	assert.Equal(t, "anthropic", config.AIProviderConfig.DefaultProvider)

	// Overridden provider key merges with the remaining provider defaults.
	assert.Equal(t, "gpt-4o-mini", config.AIProviderConfig.Providers["openai"].Model)
	assert.Equal(t, "https://api.openai.com/v1", config.AIProviderConfig.Providers["openai"].BaseURL)
	assert.Equal(t, "claude-3-5-sonnet-latest", config.AIProviderConfig.Providers["anthropic"].Model)

	// Untouched top-level keys keep defaults.
	assert.Equal(t, "Reports", config.ReportsDir)
	assert.True(t, config.EnableCache)
}

// Test that a config file passed via --config is honored even outside
// the working directory.
func TestLoadConfigsExplicitConfigFile(t *testing.T) {
	resetConfigState(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reports_dir: Sessions\nanalysis_mode: quantitative\n"), 0644))

	cmd := newTestRootCmd()
	require.NoError(t, cmd.PersistentFlags().Set("config", path))

	config := LoadConfigs(cmd, t.TempDir())

	assert.Equal(t, "Sessions", config.ReportsDir)
	assert.Equal(t, "quantitative", config.AnalysisMode)
	assert.Equal(t, "dracula", config.Theme)
}

// Test that explicitly set CLI flags win over values from the config file.
func TestLoadConfigsFlagsOverrideFile(t *testing.T) {
	resetConfigState(t)

	cwd := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cwd, "docparser-config.yml"), []byte("parallelism: 4\nai_enabled: false\n"), 0644))

	cmd := newTestRootCmd()
	require.NoError(t, cmd.PersistentFlags().Set("parallelism", "8"))
	require.NoError(t, cmd.PersistentFlags().Set("ai", "true"))
	require.NoError(t, cmd.PersistentFlags().Set("provider", "ollama"))

	config := LoadConfigs(cmd, cwd)

	assert.Equal(t, 8, config.Parallelism)
	assert.True(t, config.AIEnabled)
	assert.Equal(t, "ollama", config.AIProviderConfig.DefaultProvider)
}

// Test that bound environment variables override defaults.
func TestLoadConfigsEnvOverride(t *testing.T) {
	resetConfigState(t)

	t.Setenv("ANALYSIS_MODE", "quantitative")
	t.Setenv("PROVIDER", "anthropic")
	t.Setenv("REPORTS_DIR", "Archive")

	config := LoadConfigs(newTestRootCmd(), t.TempDir())

	assert.Equal(t, "quantitative", config.AnalysisMode)
	assert.Equal(t, "anthropic", config.AIProviderConfig.DefaultProvider)
	assert.Equal(t, "Archive", config.ReportsDir)
}

// Test that WriteDefault produces a YAML file that parses back into the
// default configuration.
func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docparser-config.yml")
	require.NoError(t, WriteDefault(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var config Config
	require.NoError(t, yaml.Unmarshal(content, &config))

	assert.Equal(t, DefaultConfig.Version, config.Version)
	assert.Equal(t, DefaultConfig.AnalysisMode, config.AnalysisMode)
	assert.Equal(t, DefaultConfig.AIProviderConfig.DefaultProvider, config.AIProviderConfig.DefaultProvider)
	require.Contains(t, config.AIProviderConfig.Providers, "anthropic")
	assert.Equal(t, "${ANTHROPIC_API_KEY}", config.AIProviderConfig.Providers["anthropic"].ApiKey)
}

// Test that WriteDefault reports an error for an unwritable destination.
func TestWriteDefaultInvalidPath(t *testing.T) {
	err := WriteDefault(filepath.Join(t.TempDir(), "missing", "docparser-config.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write config file")
}
