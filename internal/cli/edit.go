package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// editCommand creates the edit command opening the interactive editor.
func (c *CLI) editCommand() *cobra.Command {
	var (
		key          string
		segmentsPath string
		backend      string
		noSnap       bool
	)

	cmd := &cobra.Command{
		Use:   "edit [layout.json]",
		Short: "Open a layout document in the interactive terminal editor",
		Long: `Open a layout document in the interactive terminal editor.

The document becomes the session baseline. With --key, a previously saved
override document is loaded on top and 'w' saves the current geometry back
under that key. Regions are dragged and resized with the mouse; in divider
mode, dragging a divider moves every region touching it. Every change is
validated before it commits, so the geometry on screen is always legal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd.Context(), args[0], key, segmentsPath, backend, noSnap)
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "store key for override load and saves")
	cmd.Flags().StringVarP(&segmentsPath, "segments", "s", "", "separator segments file")
	cmd.Flags().StringVar(&backend, "store", "", "store backend: file, memory, redis, mongo, null")
	cmd.Flags().BoolVar(&noSnap, "no-snap", false, "start with grid snapping off")

	return cmd
}

// runEdit loads the session and runs the bubbletea editor program.
func (c *CLI) runEdit(ctx context.Context, input, key, segmentsPath, backend string, noSnap bool) error {
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

	opts := c.sessionOptions()
	opts.Key = key
	opts.Segments = segments
	opts.DisableSnap = opts.DisableSnap || noSnap

	ed, err := ws.LoadSession(ctx, doc, opts)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	model := newEditorModel(ctx, ws, ed, c.Config.Editor.HandleMargin)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}

	if m, ok := final.(editorModel); ok {
		changes := len(m.session().Diff())
		switch {
		case m.saved:
			printSuccess("Layout saved to %q", key)
		case changes > 0:
			printWarning("%d unsaved changes discarded", changes)
		default:
			printInfo("No changes")
		}
	}
	return nil
}
