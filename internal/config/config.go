package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persistent application configuration
type Config struct {
	// API holds connection settings for the recommendation service
	API APIConfig `json:"api"`

	// UI Preferences
	UI UIConfig `json:"ui"`
}

// APIConfig holds recommendation service settings
type APIConfig struct {
	BaseURL   string `json:"base_url"`
	TimeoutMs int    `json:"timeout_ms"`
}

// UIConfig holds UI preferences
type UIConfig struct {
	SuggestionLimit int `json:"suggestion_limit"` // max autocomplete entries shown
	ResultLimit     int `json:"result_limit"`     // top_n for searches
	SimilarLimit    int `json:"similar_limit"`    // top_n for "similar items" on detail
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "http://localhost:8000",
			TimeoutMs: 15000,
		},
		UI: UIConfig{
			SuggestionLimit: 6,
			ResultLimit:     8,
			SimilarLimit:    4,
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".recengine", "config.json")
}

// Load reads config from disk, or returns defaults
func Load() (*Config, error) {
	path := ConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.AutoPopulateFromEnv()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), nil
	}

	cfg.applyDefaults()
	cfg.AutoPopulateFromEnv()
	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// AutoPopulateFromEnv fills in settings from environment variables.
// RECENGINE_API_URL wins over whatever is on disk so a deployed backend
// can be targeted without editing the config file.
func (c *Config) AutoPopulateFromEnv() {
	if url := os.Getenv("RECENGINE_API_URL"); url != "" {
		c.API.BaseURL = url
	}
}

// applyDefaults fills zero values left by partial config files
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.API.TimeoutMs <= 0 {
		c.API.TimeoutMs = def.API.TimeoutMs
	}
	if c.UI.SuggestionLimit <= 0 {
		c.UI.SuggestionLimit = def.UI.SuggestionLimit
	}
	if c.UI.ResultLimit <= 0 {
		c.UI.ResultLimit = def.UI.ResultLimit
	}
	if c.UI.SimilarLimit <= 0 {
		c.UI.SimilarLimit = def.UI.SimilarLimit
	}
}
