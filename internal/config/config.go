package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"partsearch/internal/catalog"
)

// ErrInvalid is returned when a configuration fails validation
var ErrInvalid = errors.New("invalid config")

// MaxHitsPerPage is the largest per-category cap accepted
const MaxHitsPerPage = 1000

// Config represents the application configuration
type Config struct {
	Algolia    AlgoliaSettings    `toml:"algolia"`
	Search     SearchSettings     `toml:"search"`
	Categories []catalog.Category `toml:"category,omitempty"` // overrides and additions
	UI         UISettings         `toml:"ui"`
	Build      BuildSettings      `toml:"build"`
	Log        LogSettings        `toml:"log"`
}

// AlgoliaSettings holds the provider credentials
type AlgoliaSettings struct {
	AppID        string `toml:"app_id"`
	SearchAPIKey string `toml:"search_api_key"`
	AdminAPIKey  string `toml:"admin_api_key,omitempty"`
	BaseURL      string `toml:"base_url,omitempty"`
	Timeout      string `toml:"timeout"`
}

// SearchSettings tunes the federated query
type SearchSettings struct {
	HitsPerPage   int      `toml:"hits_per_page"`
	Placeholder   string   `toml:"placeholder"`
	Debounce      string   `toml:"debounce"`
	CacheSize     int      `toml:"cache_size"`
	CloseOnSelect bool     `toml:"close_on_select"`
	Categories    []string `toml:"categories,omitempty"` // restrict and reorder
}

// UISettings represents UI-related configuration
type UISettings struct {
	Mouse bool `toml:"mouse"`
}

// BuildSettings locates the picked parts database
type BuildSettings struct {
	Path string `toml:"path"`
}

// LogSettings configures the log file
type LogSettings struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

// Service handles configuration management
type Service interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

type configService struct {
	filePath string
}

// NewService creates a config service reading path, or the default
// location when path is empty
func NewService(path string) Service {
	if path == "" {
		path = filepath.Join(Dir(), "config.toml")
	}
	return &configService{filePath: path}
}

// Dir returns the partsearch config directory
func Dir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "partsearch")
}

// Load loads the configuration file, falling back to defaults when it does
// not exist. Environment overrides are applied either way.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		ApplyEnv(cfg)
		return cfg, cfg.Validate()
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	ApplyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Credentials may be in the file
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Parse decodes TOML over the defaults, so missing keys keep their default
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	dir := Dir()
	return &Config{
		Algolia: AlgoliaSettings{
			Timeout: "10s",
		},
		Search: SearchSettings{
			HitsPerPage:   3,
			Placeholder:   "Search for CPUs, GPUs, RAM, storage...",
			Debounce:      "150ms",
			CacheSize:     256,
			CloseOnSelect: true,
		},
		UI: UISettings{
			Mouse: true,
		},
		Build: BuildSettings{
			Path: filepath.Join(dir, "build.db"),
		},
		Log: LogSettings{
			Level: "info",
			Path:  filepath.Join(dir, "partsearch.log"),
		},
	}
}

// Validate checks caps, durations and category names
func (c *Config) Validate() error {
	if c.Search.HitsPerPage < 1 || c.Search.HitsPerPage > MaxHitsPerPage {
		return fmt.Errorf("%w: search.hits_per_page must be between 1 and %d, got %d",
			ErrInvalid, MaxHitsPerPage, c.Search.HitsPerPage)
	}
	if c.Search.CacheSize < 0 {
		return fmt.Errorf("%w: search.cache_size must not be negative", ErrInvalid)
	}
	for _, cat := range c.Categories {
		if cat.HitsPerPage < 0 || cat.HitsPerPage > MaxHitsPerPage {
			return fmt.Errorf("%w: category %q hits_per_page must be between 1 and %d",
				ErrInvalid, cat.Name, MaxHitsPerPage)
		}
	}
	if _, err := c.DebounceDuration(); err != nil {
		return err
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.Catalog(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// DebounceDuration parses search.debounce. Empty means no debounce.
func (c *Config) DebounceDuration() (time.Duration, error) {
	return parseDuration("search.debounce", c.Search.Debounce)
}

// TimeoutDuration parses algolia.timeout. Empty means the client default.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	return parseDuration("algolia.timeout", c.Algolia.Timeout)
}

func parseDuration(key, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalid, key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", ErrInvalid, key)
	}
	return d, nil
}

// Catalog builds the category catalog: the defaults with [[category]]
// entries merged in by name, new names appended, then restricted to
// search.categories when set.
func (c *Config) Catalog() (*catalog.Catalog, error) {
	cats := catalog.Default()
	index := make(map[string]int, len(cats))
	for i, cat := range cats {
		index[cat.Name] = i
	}

	for _, o := range c.Categories {
		i, ok := index[o.Name]
		if !ok {
			index[o.Name] = len(cats)
			cats = append(cats, o)
			continue
		}
		if o.Label != "" {
			cats[i].Label = o.Label
		}
		if o.Icon != "" {
			cats[i].Icon = o.Icon
		}
		if o.HitsPerPage > 0 {
			cats[i].HitsPerPage = o.HitsPerPage
		}
	}

	cat, err := catalog.New(cats)
	if err != nil {
		return nil, err
	}
	if len(c.Search.Categories) > 0 {
		return cat.Subset(c.Search.Categories)
	}
	return cat, nil
}

// HasCredentials reports whether the provider can be reached
func (c *Config) HasCredentials() bool {
	return c.Algolia.AppID != "" && c.Algolia.SearchAPIKey != ""
}
