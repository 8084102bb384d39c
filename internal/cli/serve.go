package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/panekit/panekit/internal/server"
)

// serveCommand creates the serve command exposing a session over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen       string
		key          string
		segmentsPath string
		backend      string
		noSnap       bool
	)

	cmd := &cobra.Command{
		Use:   "serve [layout.json]",
		Short: "Serve one editing session over HTTP",
		Long: `Serve one editing session over HTTP.

The document becomes the session baseline; with --key, a previously saved
override is loaded on top and POST /api/save writes back to the store.
The API exposes the document (GET with ETag, PUT with import semantics),
explicit region edits, resets, collision and diff reports, derived
dividers, and a server-sent event stream firing on every committed change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], listen, key, segmentsPath, backend, noSnap)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default from config)")
	cmd.Flags().StringVarP(&key, "key", "k", "", "store key for override load and saves")
	cmd.Flags().StringVarP(&segmentsPath, "segments", "s", "", "separator segments file")
	cmd.Flags().StringVar(&backend, "store", "", "store backend: file, memory, redis, mongo, null")
	cmd.Flags().BoolVar(&noSnap, "no-snap", false, "start with grid snapping off")

	return cmd
}

// runServe builds the session and blocks until the context is cancelled
// or the listener fails.
func (c *CLI) runServe(ctx context.Context, input, listen, key, segmentsPath, backend string, noSnap bool) error {
	doc, err := c.loadDocument(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	segments, err := c.resolveSegments(doc, segmentsPath)
	if err != nil {
		return err
	}

	ws, err := c.newWorkspace(ctx, backend)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer ws.Close()

	srv, err := server.New(ctx, server.Config{
		Workspace:   ws,
		Baseline:    doc,
		Key:         key,
		Segments:    segments,
		DisableSnap: noSnap || !c.Config.Editor.Snap,
		Logger:      c.Logger,
	})
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	if listen == "" {
		listen = c.Config.Server.Listen
	}
	httpServer := &http.Server{
		Addr:              listen,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	c.Logger.Info("serving layout session", "addr", listen, "layout", input, "key", key)
	printInfo("Serving %s on %s", input, listen)
	printDetail("API under /api, event stream at /api/events")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve on %s: %w", listen, err)
		}
		return nil
	}
}
