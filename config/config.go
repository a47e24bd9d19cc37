package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	Serp   SerpConfig
	Cache  CacheConfig
	Engine EngineConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SerpConfig holds search provider configuration
type SerpConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// EngineConfig holds recommendation engine tuning knobs
type EngineConfig struct {
	MinCandidates      int    `mapstructure:"min_candidates"`
	TopN               int    `mapstructure:"top_n"`
	DefaultRegion      string `mapstructure:"default_region"`
	EnableDebugLogging bool   `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/skinsage/")

	// Environment variable settings
	v.SetEnvPrefix("SKINSAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Search provider defaults. The api_key default registers the key so
	// the env-only value survives Unmarshal.
	v.SetDefault("serp.api_key", "")
	v.SetDefault("serp.base_url", "https://serpapi.com")
	v.SetDefault("serp.timeout", "10s")

	// Cache defaults
	v.SetDefault("cache.ttl", "1h")

	// Engine defaults
	v.SetDefault("engine.min_candidates", 6)
	v.SetDefault("engine.top_n", 12)
	v.SetDefault("engine.default_region", "in")
	v.SetDefault("engine.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Serp.APIKey == "" {
		return fmt.Errorf("search provider API key is required (set SKINSAGE_SERP_API_KEY)")
	}

	if config.Engine.MinCandidates <= 0 {
		return fmt.Errorf("engine.min_candidates must be positive, got: %d", config.Engine.MinCandidates)
	}

	if config.Engine.TopN <= 0 {
		return fmt.Errorf("engine.top_n must be positive, got: %d", config.Engine.TopN)
	}

	return nil
}
