package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/panekit/panekit/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Editor.Snap {
		t.Error("Editor.Snap should default to true")
	}
	if cfg.Store.Backend != "file" {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, "file")
	}
	if cfg.Server.Listen != ":8473" {
		t.Errorf("Server.Listen = %q, want %q", cfg.Server.Listen, ":8473")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[editor]
grid_size = 10
snap = false
handle_margin = 8

[store]
backend = "memory"

[server]
listen = ":9000"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c := newTestCLI()
	c.configPath = path
	if err := c.loadConfig(); err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if c.Config.Editor.GridSize != 10 {
		t.Errorf("GridSize = %d, want 10", c.Config.Editor.GridSize)
	}
	if c.Config.Editor.Snap {
		t.Error("Snap should be false from file")
	}
	if c.Config.Editor.HandleMargin != 8 {
		t.Errorf("HandleMargin = %d, want 8", c.Config.Editor.HandleMargin)
	}
	if c.Config.Store.Backend != "memory" {
		t.Errorf("Store.Backend = %q, want %q", c.Config.Store.Backend, "memory")
	}
	if c.Config.Server.Listen != ":9000" {
		t.Errorf("Server.Listen = %q, want %q", c.Config.Server.Listen, ":9000")
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[editor]\ngrid_size = 6\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := newTestCLI()
	c.configPath = path
	if err := c.loadConfig(); err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if c.Config.Editor.GridSize != 6 {
		t.Errorf("GridSize = %d, want 6", c.Config.Editor.GridSize)
	}
	// Sections the file omits keep their defaults.
	if c.Config.Store.Backend != "file" {
		t.Errorf("Store.Backend = %q, want default %q", c.Config.Store.Backend, "file")
	}
	if c.Config.Server.Listen != ":8473" {
		t.Errorf("Server.Listen = %q, want default %q", c.Config.Server.Listen, ":8473")
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	c := newTestCLI()
	c.configPath = filepath.Join(t.TempDir(), "nope.toml")

	if err := c.loadConfig(); err == nil {
		t.Error("explicitly given missing config should error")
	}
}

func TestLoadConfigDefaultMissing(t *testing.T) {
	// Point the XDG config home at an empty directory so the default
	// path does not exist.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := newTestCLI()
	if err := c.loadConfig(); err != nil {
		t.Errorf("missing default config should be fine, got: %v", err)
	}
	if c.Config.Store.Backend != "file" {
		t.Error("defaults should survive a missing config file")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[editor\nbroken"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := newTestCLI()
	c.configPath = path
	err := c.loadConfig()
	if err == nil {
		t.Fatal("malformed config should error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error code = %v, want INVALID_FORMAT", errors.GetCode(err))
	}
}

func TestConfigDirXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	dir, err := configDir()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join("/tmp/xdg-test", "panekit")
	if dir != want {
		t.Errorf("configDir() = %q, want %q", dir, want)
	}
}

func TestConfigDirHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := configDir()
	if err != nil {
		t.Fatal(err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(home, ".config", "panekit")
	if dir != want {
		t.Errorf("configDir() = %q, want %q", dir, want)
	}
}
