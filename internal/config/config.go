package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults used by DefaultConfig and Normalize.
const (
	DefaultListen         = "127.0.0.1:8080"
	DefaultTimezone       = "UTC"
	DefaultCatalogPath    = "./catalog.yaml"
	DefaultReloadCron     = "*/5 * * * *"
	DefaultMaxPerCell     = 3
	DefaultMaxOccurrences = 500
	DefaultPreviewPath    = "./cache/preview.png"
	DefaultLogLevel       = "info"
)

// BasicAuthConfig holds HTTP Basic Auth credentials for the Web UI/API.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the Web UI and API.
	Listen string `yaml:"listen" json:"listen"`

	// Timezone is the IANA zone that decides which day is "today".
	Timezone string `yaml:"timezone" json:"timezone"`

	// CatalogPath points at the YAML training catalog.
	CatalogPath string `yaml:"catalog" json:"catalog"`

	// ReloadCron is a cron spec (e.g. "*/5 * * * *") for re-reading the
	// catalog from disk.
	ReloadCron string `yaml:"reload" json:"reload"`

	// MaxPerCell caps the trainings listed in a month cell.
	MaxPerCell int `yaml:"max_per_cell" json:"max_per_cell"`

	// MaxOccurrences caps how many sessions one recurring session expands to.
	MaxOccurrences int `yaml:"max_occurrences" json:"max_occurrences"`

	// PreviewPath is where -once writes the captured month view PNG.
	PreviewPath string `yaml:"preview_path" json:"preview_path"`

	LogLevel string `yaml:"log_level" json:"log_level"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all endpoints
	// except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:         DefaultListen,
		Timezone:       DefaultTimezone,
		CatalogPath:    DefaultCatalogPath,
		ReloadCron:     DefaultReloadCron,
		MaxPerCell:     DefaultMaxPerCell,
		MaxOccurrences: DefaultMaxOccurrences,
		PreviewPath:    DefaultPreviewPath,
		LogLevel:       DefaultLogLevel,
	}
}

// Normalize fills in missing/zero values with defaults so partially-filled
// configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	if c.CatalogPath == "" {
		c.CatalogPath = DefaultCatalogPath
	}
	if c.ReloadCron == "" {
		c.ReloadCron = DefaultReloadCron
	}
	if c.MaxPerCell <= 0 {
		c.MaxPerCell = DefaultMaxPerCell
	}
	if c.MaxOccurrences <= 0 {
		c.MaxOccurrences = DefaultMaxOccurrences
	}
	if c.PreviewPath == "" {
		c.PreviewPath = DefaultPreviewPath
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	// Empty credentials disable auth rather than lock everyone out.
	if c.BasicAuth != nil && (c.BasicAuth.Username == "" || c.BasicAuth.Password == "") {
		c.BasicAuth = nil
	}
}

// CatalogFile resolves CatalogPath relative to the directory of the config
// file at configPath.
func (c *Config) CatalogFile(configPath string) string {
	if filepath.IsAbs(c.CatalogPath) || configPath == "" {
		return c.CatalogPath
	}
	return filepath.Join(filepath.Dir(configPath), c.CatalogPath)
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written with 0600
//     permissions and returned.
//   - Otherwise the YAML is decoded and defaults are filled in.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes cfg to path atomically (temp file in the same directory, then
// rename) with 0600 permissions, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".trainingcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save is a convenience wrapper around the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
