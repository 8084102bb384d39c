package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/panekit/panekit/pkg/errors"
)

// =============================================================================
// Config - TOML Configuration File
// =============================================================================

// Config is the panekit configuration file, by default at
// ~/.config/panekit/config.toml. Flags override file values.
type Config struct {
	Editor EditorConfig `toml:"editor"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
}

// EditorConfig tunes session defaults.
type EditorConfig struct {
	// GridSize overrides the snap grid for documents that do not carry
	// their own. Zero keeps the document's value.
	GridSize int `toml:"grid_size"`

	// Snap enables grid snapping at session start.
	Snap bool `toml:"snap"`

	// HandleMargin is the resize handle hit-test half-size.
	HandleMargin int `toml:"handle_margin"`

	// DividerTolerance is the divider grab distance.
	DividerTolerance int `toml:"divider_tolerance"`

	// AdjacencyTolerance is the region-edge to separator matching
	// distance for divider derivation.
	AdjacencyTolerance int `toml:"adjacency_tolerance"`
}

// StoreConfig selects and parameterizes the layout store backend.
type StoreConfig struct {
	// Backend is one of "memory", "file", "redis", "mongo", or "null".
	Backend string `toml:"backend"`

	// Dir is the file backend's base directory. Empty means the default
	// config-dir location.
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
	Mongo MongoConfig `toml:"mongo"`
}

// RedisConfig holds redis backend connection settings.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig holds mongo backend connection settings.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Listen is the address the serve command binds to.
	Listen string `toml:"listen"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Editor: EditorConfig{
			Snap: true,
		},
		Store: StoreConfig{
			Backend: "file",
		},
		Server: ServerConfig{
			Listen: ":8473",
		},
	}
}

// loadConfig reads the config file into c.Config. A missing file at the
// default location is fine; an explicitly given path must exist.
func (c *CLI) loadConfig() error {
	path := c.configPath
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = configPath(); err != nil {
			return nil
		}
	}

	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "load config %s", path)
	}

	c.Config = cfg
	c.Logger.Debug("config loaded", "path", path)
	return nil
}

// =============================================================================
// Paths
// =============================================================================

// configPath returns the config file path using the XDG standard
// (~/.config/panekit/config.toml).
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// configDir returns the configuration directory (~/.config/panekit/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
