package cli

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func newTestCLI() *CLI {
	return New(io.Discard, log.InfoLevel)
}

func TestRootCommandSubcommands(t *testing.T) {
	root := newTestCLI().RootCommand()

	want := []string{
		"edit", "validate", "collisions", "diff", "dividers",
		"graph", "serve", "store", "completion",
	}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestRootCommandMetadata(t *testing.T) {
	root := newTestCLI().RootCommand()

	if root.Use != "panekit" {
		t.Errorf("Use = %q, want %q", root.Use, "panekit")
	}
	if !root.SilenceUsage {
		t.Error("root command should silence usage on errors")
	}
	if root.Version == "" {
		t.Error("root command should carry a version")
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("root command missing --config flag")
	}
}

func TestStoreSubcommands(t *testing.T) {
	root := newTestCLI().RootCommand()

	names := map[string]bool{}
	for _, cmd := range root.Commands() {
		if cmd.Name() == "store" {
			for _, sub := range cmd.Commands() {
				names[sub.Name()] = true
			}
		}
	}
	if len(names) == 0 {
		t.Fatal("store command not registered")
	}

	for _, name := range []string{"list", "get", "put", "delete", "path"} {
		if !names[name] {
			t.Errorf("store command missing subcommand %q", name)
		}
	}
}

func TestNewDefaults(t *testing.T) {
	c := newTestCLI()

	if c.Logger == nil {
		t.Fatal("New() should set a logger")
	}
	if c.Config.Store.Backend != "file" {
		t.Errorf("default store backend = %q, want %q", c.Config.Store.Backend, "file")
	}
	if !c.Config.Editor.Snap {
		t.Error("snap should default to enabled")
	}
}

func TestSessionOptions(t *testing.T) {
	c := newTestCLI()
	c.Config.Editor.Snap = false
	c.Config.Editor.HandleMargin = 9
	c.Config.Editor.DividerTolerance = 4
	c.Config.Editor.AdjacencyTolerance = 12

	opts := c.sessionOptions()

	if !opts.DisableSnap {
		t.Error("DisableSnap should mirror a disabled snap config")
	}
	if opts.HandleMargin != 9 {
		t.Errorf("HandleMargin = %d, want 9", opts.HandleMargin)
	}
	if opts.DividerTolerance != 4 {
		t.Errorf("DividerTolerance = %d, want 4", opts.DividerTolerance)
	}
	if opts.AdjacencyTolerance != 12 {
		t.Errorf("AdjacencyTolerance = %d, want 12", opts.AdjacencyTolerance)
	}
}
