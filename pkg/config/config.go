// Package config loads the service configuration from a TOML file.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the top-level service configuration.
type Config struct {
	Bind        string `toml:"bind"`
	BaseURL     string `toml:"base_url"`
	ID          string `toml:"id"`
	Title       string `toml:"title"`
	Description string `toml:"description"`

	// SearchTimeout bounds the whole flatten and filter pipeline.
	SearchTimeout Duration `toml:"search_timeout"`
	// MaxDepth bounds catalog traversal depth.
	MaxDepth int `toml:"max_depth"`
	// Workers sizes the per-collection fan-out pool. Zero disables fan-out.
	Workers int `toml:"workers"`

	Collections map[string]CollectionInfo `toml:"collections"`
}

// CollectionInfo configures one STAC collection.
type CollectionInfo struct {
	Title       string       `toml:"title"`
	Description string       `toml:"description"`
	Links       []LinkInfo   `toml:"links"`
	Provider    ProviderInfo `toml:"provider"`
}

// LinkInfo is a static link appended to every document resolved for the
// collection.
type LinkInfo struct {
	Rel   string `toml:"rel"`
	Href  string `toml:"href"`
	Type  string `toml:"type"`
	Title string `toml:"title"`
}

// ProviderInfo selects and configures the collection's data provider.
type ProviderInfo struct {
	Type string `toml:"type"`
	Dir  string `toml:"dir"`
	URL  string `toml:"url"`
}

// Duration wraps time.Duration with TOML text (de)serialization.
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// Default configuration values.
const (
	DefaultBind          = ":8080"
	DefaultBaseURL       = "http://localhost:8080"
	DefaultSearchTimeout = 30 * time.Second
	DefaultMaxDepth      = 16
)

// LoadConfig reads and validates a configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Bind == "" {
		c.Bind = DefaultBind
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	if c.SearchTimeout.Duration == 0 {
		c.SearchTimeout = Duration{DefaultSearchTimeout}
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.Collections == nil {
		c.Collections = make(map[string]CollectionInfo)
	}
}

func (c *Config) validate() error {
	for id, col := range c.Collections {
		if col.Provider.Type == "" {
			return fmt.Errorf("collection %q: provider type is required", id)
		}
	}
	return nil
}

// StacBaseURL returns the public base URL of the /stac surface.
func (c *Config) StacBaseURL() string {
	return c.BaseURL + "/stac"
}

// CollectionIDs returns the configured collection ids in stable order.
func (c *Config) CollectionIDs() []string {
	ids := make([]string, 0, len(c.Collections))
	for id := range c.Collections {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
