package config

import (
	"fmt"
	"os"

	"github.com/giarcheuli/docparser/constants/lipgloss"
	"github.com/giarcheuli/docparser/providers"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the structure of the configuration file
type Config struct {
	Version          string                      `mapstructure:"version" yaml:"version"`
	Theme            string                      `mapstructure:"theme" yaml:"theme"`
	Verbose          bool                        `mapstructure:"verbose" yaml:"verbose"`
	ReportsDir       string                      `mapstructure:"reports_dir" yaml:"reports_dir"`
	EnableCache      bool                        `mapstructure:"enable_cache" yaml:"enable_cache"`
	Parallelism      int                         `mapstructure:"parallelism" yaml:"parallelism"`
	ExcludePatterns  []string                    `mapstructure:"exclude_patterns" yaml:"exclude_patterns"`
	AnalysisMode     string                      `mapstructure:"analysis_mode" yaml:"analysis_mode"`
	AIEnabled        bool                        `mapstructure:"ai_enabled" yaml:"ai_enabled"`
	AIProviderConfig *providers.AIProviderConfig `mapstructure:"ai_provider_config" yaml:"ai_provider_config"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:      "1.0.0",
	Theme:        "dracula",
	Verbose:      false,
	ReportsDir:   "Reports",
	EnableCache:  true,
	Parallelism:  1,
	AnalysisMode: "qualitative",
	AIEnabled:    false,
	AIProviderConfig: &providers.AIProviderConfig{
		DefaultProvider: "openai",
		FallbackOrder:   []string{"anthropic", "ollama"},
		Providers: map[string]*providers.ProviderSettings{
			"openai": {
				Enabled: true,
				BaseURL: "https://api.openai.com/v1",
				Model:   "gpt-4o",
				ApiKey:  "${OPENAI_API_KEY}",
			},
			"anthropic": {
				Enabled: true,
				BaseURL: "https://api.anthropic.com",
				Model:   "claude-3-5-sonnet-latest",
				ApiKey:  "${ANTHROPIC_API_KEY}",
			},
			"ollama": {
				Enabled: false,
				BaseURL: "http://localhost:11434/api",
				Model:   "llama3.2",
			},
		},
	},
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) *Config {
	var config *Config

	// Set default values using Viper
	setDefaults()

	// Automatically read environment variables
	viper.AutomaticEnv()

	// Explicitly bind environment variables to config keys
	bindEnv()

	// Check if the user provided a config file
	if cfgFile != "" {
		// Use the config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Look for configuration files in the current directory
		viper.SetConfigName("docparser-config") // Name of config file (without extension)
		viper.AddConfigPath(cwd)                // Look in the current working directory

		// Support both JSON and YAML formats
		viper.SetConfigType("yaml") // Set default type
		if err := viper.ReadInConfig(); err != nil {
			// If YAML fails, try JSON
			viper.SetConfigType("json")
			if err := viper.ReadInConfig(); err != nil {
				// If both fail, we'll continue with defaults
				fmt.Println(lipgloss.Yellow.Render("No configuration file found, using defaults"))
			}
		}
	}

	// Read the explicitly specified config file (if any)
	if cfgFile != "" {
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading config file: %v", err)))
			os.Exit(1)
		}
	}

	// Bind CLI flags to override config values
	bindFlags(rootCmd)

	// Unmarshal the configuration into the Config struct
	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(1)
	}

	return config
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("theme", DefaultConfig.Theme)
	viper.SetDefault("verbose", DefaultConfig.Verbose)
	viper.SetDefault("reports_dir", DefaultConfig.ReportsDir)
	viper.SetDefault("enable_cache", DefaultConfig.EnableCache)
	viper.SetDefault("parallelism", DefaultConfig.Parallelism)
	viper.SetDefault("exclude_patterns", DefaultConfig.ExcludePatterns)
	viper.SetDefault("analysis_mode", DefaultConfig.AnalysisMode)
	viper.SetDefault("ai_enabled", DefaultConfig.AIEnabled)
	viper.SetDefault("ai_provider_config.default_provider", DefaultConfig.AIProviderConfig.DefaultProvider)
	viper.SetDefault("ai_provider_config.fallback_order", DefaultConfig.AIProviderConfig.FallbackOrder)
	for name, settings := range DefaultConfig.AIProviderConfig.Providers {
		prefix := "ai_provider_config.providers." + name
		viper.SetDefault(prefix+".enabled", settings.Enabled)
		viper.SetDefault(prefix+".base_url", settings.BaseURL)
		viper.SetDefault(prefix+".model", settings.Model)
		viper.SetDefault(prefix+".api_key", settings.ApiKey)
	}
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("theme", "THEME")
	_ = viper.BindEnv("verbose", "VERBOSE")
	_ = viper.BindEnv("reports_dir", "REPORTS_DIR")
	_ = viper.BindEnv("enable_cache", "ENABLE_CACHE")
	_ = viper.BindEnv("parallelism", "PARALLELISM")
	_ = viper.BindEnv("analysis_mode", "ANALYSIS_MODE")
	_ = viper.BindEnv("ai_enabled", "AI_ENABLED")
	_ = viper.BindEnv("ai_provider_config.default_provider", "PROVIDER")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("reports_dir", rootCmd.PersistentFlags().Lookup("reports-dir"))
	_ = viper.BindPFlag("enable_cache", rootCmd.PersistentFlags().Lookup("enable-cache"))
	_ = viper.BindPFlag("parallelism", rootCmd.PersistentFlags().Lookup("parallelism"))
	_ = viper.BindPFlag("exclude_patterns", rootCmd.PersistentFlags().Lookup("exclude"))
	_ = viper.BindPFlag("analysis_mode", rootCmd.PersistentFlags().Lookup("analysis-mode"))
	_ = viper.BindPFlag("ai_enabled", rootCmd.PersistentFlags().Lookup("ai"))
	_ = viper.BindPFlag("ai_provider_config.default_provider", rootCmd.PersistentFlags().Lookup("provider"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	// Theme configuration
	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Set customize theme for rendering markdown output. (e.g., 'dracula', 'light', 'dark')")

	// Verbosity configuration
	rootCmd.PersistentFlags().Bool("verbose", DefaultConfig.Verbose, "Print detailed progress, cache statistics and token usage during analysis.")

	// Report configuration
	rootCmd.PersistentFlags().String("reports-dir", DefaultConfig.ReportsDir, "The directory where report sessions are written.")

	// Cache configuration
	rootCmd.PersistentFlags().Bool("enable-cache", DefaultConfig.EnableCache, "Enable or disable extraction caching for repeated runs.")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")

	// Analysis configuration
	rootCmd.PersistentFlags().Int("parallelism", DefaultConfig.Parallelism, "The number of documents analyzed concurrently.")
	rootCmd.PersistentFlags().StringSlice("exclude", nil, "Glob or 'dir/' patterns excluded from scanning (repeatable).")
	rootCmd.PersistentFlags().String("analysis-mode", DefaultConfig.AnalysisMode, "The AI analysis mode: 'qualitative' or 'quantitative'.")
	rootCmd.PersistentFlags().Bool("ai", DefaultConfig.AIEnabled, "Enable AI summaries and insights for analyzed documents.")
	rootCmd.PersistentFlags().String("provider", DefaultConfig.AIProviderConfig.DefaultProvider, "The AI provider tried first (e.g., 'openai', 'anthropic', 'ollama').")
}

// WriteDefault renders the default configuration as YAML to the given path,
// giving users a complete file to edit.
func WriteDefault(path string) error {
	content, err := yaml.Marshal(DefaultConfig)
	if err != nil {
		return fmt.Errorf("failed to render default config: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
