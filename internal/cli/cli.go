// Package cli implements the panekit command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/panekit/panekit/pkg/buildinfo"
	"github.com/panekit/panekit/pkg/observe"
	"github.com/panekit/panekit/pkg/store"
	"github.com/panekit/panekit/pkg/workspace"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "panekit"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level. Debug level also routes the
// observe hooks into the logger so gestures and store traffic show up.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observe.SetSessionHooks(&logSessionHooks{logger: c.Logger})
		observe.SetStoreHooks(&logStoreHooks{logger: c.Logger})
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "panekit",
		Short:        "Panekit edits fixed-size rectangular display layouts",
		Long:         `Panekit is an interactive editor engine for rectangular display layouts: named regions on a fixed canvas, dragged and resized directly or moved together through derived dividers, validated on every step, and saved to a keyed layout store.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/panekit/config.toml)")

	// Register all subcommands
	root.AddCommand(c.editCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.collisionsCommand())
	root.AddCommand(c.diffCommand())
	root.AddCommand(c.dividersCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Store / Workspace Factories
// =============================================================================

// openStore opens the configured layout store. A non-empty backend
// overrides the config file selection.
func (c *CLI) openStore(ctx context.Context, backend string) (store.Store, error) {
	cfg := c.Config.Store
	if backend != "" {
		cfg.Backend = backend
	}
	return store.Open(ctx, store.Config{
		Backend: cfg.Backend,
		Dir:     cfg.Dir,
		Redis: store.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		Mongo: store.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		},
	})
}

// newWorkspace builds a workspace over the configured store.
func (c *CLI) newWorkspace(ctx context.Context, backend string) (*workspace.Workspace, error) {
	st, err := c.openStore(ctx, backend)
	if err != nil {
		return nil, err
	}
	return workspace.New(st, c.Logger), nil
}

// sessionOptions maps the editor section of the config onto workspace
// options. Key and segments are filled in per command.
func (c *CLI) sessionOptions() workspace.Options {
	return workspace.Options{
		DisableSnap:        !c.Config.Editor.Snap,
		HandleMargin:       c.Config.Editor.HandleMargin,
		DividerTolerance:   c.Config.Editor.DividerTolerance,
		AdjacencyTolerance: c.Config.Editor.AdjacencyTolerance,
	}
}
