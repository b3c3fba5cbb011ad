package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/filter"
)

// dirName is the per-user directory holding the config file and database.
const dirName = ".mtga-cardfilter"

// Config represents the application configuration.
type Config struct {
	// Card data
	Catalog CatalogConfig `toml:"catalog"`

	// Saved filter database
	Storage StorageConfig `toml:"storage"`

	// REST API server
	API APIConfig `toml:"api"`

	// Filter decoding
	Filter FilterConfig `toml:"filter"`

	// Filter file watching
	Watch WatchConfig `toml:"watch"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// CatalogConfig contains card pool settings.
type CatalogConfig struct {
	Path    string `toml:"path"`    // Scryfall bulk JSON file
	Workers int    `toml:"workers"` // Search goroutines (0 = GOMAXPROCS)
	Strict  bool   `toml:"strict"`  // Fail on malformed cards instead of skipping
}

// StorageConfig contains database settings.
type StorageConfig struct {
	DBPath      string `toml:"db_path"`      // Empty uses the config directory
	AutoMigrate bool   `toml:"auto_migrate"` // Apply migrations on startup
}

// APIConfig contains REST server settings.
type APIConfig struct {
	Port           int      `toml:"port"`
	RatePerSecond  float64  `toml:"rate_per_second"` // Search requests per second
	Burst          int      `toml:"burst"`           // Search burst size
	MaxResults     int      `toml:"max_results"`     // Cap on cards per search response
	AllowedOrigins []string `toml:"allowed_origins"` // CORS origins
}

// FilterConfig contains filter decoding settings.
type FilterConfig struct {
	DefaultFaces     string `toml:"default_faces"`      // any, all, front or back
	MaxPatternLength int    `toml:"max_pattern_length"` // 0 = unlimited
}

// WatchConfig contains filter file watching settings.
type WatchConfig struct {
	PollInterval string `toml:"poll_interval"` // Backup polling interval (e.g., "2s")
	UseFsnotify  bool   `toml:"use_fsnotify"`  // Use file system events
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Path:    "",
			Workers: 0,
		},
		Storage: StorageConfig{
			DBPath:      "",
			AutoMigrate: true,
		},
		API: APIConfig{
			Port:           8080,
			RatePerSecond:  20,
			Burst:          40,
			MaxResults:     500,
			AllowedOrigins: []string{"http://localhost:*"},
		},
		Filter: FilterConfig{
			DefaultFaces:     filter.AnyFace.String(),
			MaxPatternLength: 1024,
		},
		Watch: WatchConfig{
			PollInterval: "2s",
			UseFsnotify:  true,
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// Dir returns the per-user configuration directory, creating it if needed.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	dir := filepath.Join(homeDir, dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return dir, nil
}

// Path returns the path to the configuration file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from the default location.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from path. Returns the default config if
// the file doesn't exist; keys missing from the file keep their defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return config, nil
}

// Save saves the configuration to the default location.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Catalog.Workers < 0 {
		return fmt.Errorf("catalog workers cannot be negative: %d", c.Catalog.Workers)
	}

	if c.API.Port <= 0 || c.API.Port > 65535 {
		return fmt.Errorf("invalid API port: %d", c.API.Port)
	}
	if c.API.RatePerSecond <= 0 {
		return fmt.Errorf("API rate must be positive: %v", c.API.RatePerSecond)
	}
	if c.API.Burst < 1 {
		return fmt.Errorf("API burst must be at least 1: %d", c.API.Burst)
	}
	if c.API.MaxResults < 0 {
		return fmt.Errorf("API max results cannot be negative: %d", c.API.MaxResults)
	}

	if _, err := filter.ParseFaceSelection(c.Filter.DefaultFaces); err != nil {
		return fmt.Errorf("invalid default faces: %w", err)
	}
	if c.Filter.MaxPatternLength < 0 {
		return fmt.Errorf("max pattern length cannot be negative: %d", c.Filter.MaxPatternLength)
	}

	if _, err := time.ParseDuration(c.Watch.PollInterval); err != nil {
		return fmt.Errorf("invalid poll interval %q: %w", c.Watch.PollInterval, err)
	}

	return nil
}

// GetWatchPollInterval returns the watch poll interval as a duration.
func (c *Config) GetWatchPollInterval() (time.Duration, error) {
	return time.ParseDuration(c.Watch.PollInterval)
}

// GetDBPath returns the configured database path, defaulting to filters.db
// in the configuration directory.
func (c *Config) GetDBPath() (string, error) {
	if c.Storage.DBPath != "" {
		return c.Storage.DBPath, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "filters.db"), nil
}

// DecodeOptions returns the filter decoding options. The config should have
// been validated; an unknown face selection falls back to any.
func (c *Config) DecodeOptions() filter.DecodeOptions {
	faces, err := filter.ParseFaceSelection(c.Filter.DefaultFaces)
	if err != nil {
		faces = filter.AnyFace
	}
	return filter.DecodeOptions{
		DefaultFaces:     faces,
		MaxPatternLength: c.Filter.MaxPatternLength,
	}
}
