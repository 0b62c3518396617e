package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	werrors "github.com/trueinfluence/writeit/internal/errors"
)

// Defaults applied when the config file leaves a field empty.
const (
	DefaultServerURL     = "http://localhost:8000"
	DefaultListen        = ":8000"
	DefaultLLMBaseURL    = "https://openrouter.ai/api/v1"
	DefaultModel         = "openai/gpt-4o-mini"
	DefaultBundleDir     = "bundles"
	DefaultRatePerMinute = 10
	DefaultBurst         = 3
)

// Environment variables that override the file.
const (
	EnvServerURL = "WRITEIT_SERVER_URL"
	EnvSlug      = "WRITEIT_SLUG"
	EnvAPIKey    = "OPENROUTER_API_KEY"
)

// Config holds the application configuration
type Config struct {
	ServerURL string `json:"server_url"`        // Base URL of the generation server
	Slug      string `json:"slug"`              // Creator identifier embedded in the endpoint path
	Persona   string `json:"persona,omitempty"` // Voice label shown in loading messages
	BigBet    string `json:"big_bet,omitempty"` // Default big bet for explain actions
	DeckPath  string `json:"deck_path,omitempty"`

	Theme                string `json:"theme,omitempty"`
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"`

	// LatestOnlyResults drops the result of an action that was superseded by
	// a newer one. Off by default: whichever action settles last is rendered.
	LatestOnlyResults bool `json:"latest_only_results,omitempty"`

	Server ServerConfig `json:"server"`

	mu       sync.RWMutex
	filePath string
}

// ServerConfig configures `writeit serve`.
type ServerConfig struct {
	Listen        string `json:"listen,omitempty"`
	BaseURL       string `json:"base_url,omitempty"` // OpenAI-compatible API base
	Model         string `json:"model,omitempty"`
	BundleDir     string `json:"bundle_dir,omitempty"` // Holds <slug>/voice_profile.json and manifest.json
	RatePerMinute int    `json:"rate_per_minute,omitempty"`
	Burst         int    `json:"burst,omitempty"`
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".writeit"), nil
}

// DefaultPath returns the path to the config file
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from the default location, or returns defaults if it doesn't exist
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields a default config
// that will be written to path on Save.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, werrors.ConfigLoadFailed(path, err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, werrors.ConfigLoadFailed(path, err)
		}
	}

	cfg.applyEnv()
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overrides file values with environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvServerURL); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv(EnvSlug); v != "" {
		c.Slug = v
	}
}

// ensureInitialized fills defaults for empty fields.
//
// Thread-safety: only called from LoadFrom before the Config is shared.
func (c *Config) ensureInitialized() {
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	if c.Server.Listen == "" {
		c.Server.Listen = DefaultListen
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = DefaultLLMBaseURL
	}
	if c.Server.Model == "" {
		c.Server.Model = DefaultModel
	}
	if c.Server.BundleDir == "" {
		c.Server.BundleDir = DefaultBundleDir
	}
	if c.Server.RatePerMinute <= 0 {
		c.Server.RatePerMinute = DefaultRatePerMinute
	}
	if c.Server.Burst <= 0 {
		c.Server.Burst = DefaultBurst
	}
}

// Validate checks that the config is internally consistent.
// The slug is not required here; commands that dispatch actions check it.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return werrors.ConfigInvalid(fmt.Sprintf("server_url %q is not an absolute URL", c.ServerURL))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return werrors.ConfigInvalid(fmt.Sprintf("server_url scheme %q is not http or https", u.Scheme))
	}
	return nil
}

// RequireSlug returns an error when no slug is configured.
func (c *Config) RequireSlug() error {
	if c.GetSlug() == "" {
		return werrors.ConfigInvalid("no slug configured: set \"slug\" in the config file, " + EnvSlug + ", or --slug")
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return werrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return werrors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return werrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// SetFilePath sets where Save writes the config
func (c *Config) SetFilePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filePath = path
}

// FilePath returns where Save writes the config
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// GetServerURL returns the generation server base URL
func (c *Config) GetServerURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ServerURL
}

// GetSlug returns the creator slug
func (c *Config) GetSlug() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Slug
}

// SetSlug sets the creator slug
func (c *Config) SetSlug(slug string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Slug = slug
}

// GetPersona returns the voice label, falling back to the slug
func (c *Config) GetPersona() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Persona != "" {
		return c.Persona
	}
	return c.Slug
}

// GetBigBet returns the default big bet for explain actions
func (c *Config) GetBigBet() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.BigBet
}

// GetDeckPath returns the deck file path, defaulting to deck.toml next to the config file
func (c *Config) GetDeckPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.DeckPath != "" {
		return c.DeckPath
	}
	return filepath.Join(filepath.Dir(c.filePath), "deck.toml")
}

// SetDeckPath sets the deck file path
func (c *Config) SetDeckPath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DeckPath = path
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// LatestOnly reports whether superseded results should be dropped
func (c *Config) LatestOnly() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LatestOnlyResults
}

// GetServer returns a copy of the server section
func (c *Config) GetServer() ServerConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Server
}

// APIKey returns the LLM API key from the environment. It is never stored in the file.
func APIKey() string {
	return os.Getenv(EnvAPIKey)
}
