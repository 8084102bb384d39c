package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/panekit/panekit/pkg/divider"
)

// graphCommand creates the graph command for rendering divider adjacency.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		segmentsPath string
		output       string
		format       string
	)

	cmd := &cobra.Command{
		Use:   "graph [layout.json]",
		Short: "Render the divider adjacency graph as DOT or SVG",
		Long: `Render the divider adjacency graph as DOT or SVG.

Each derived divider becomes a node connected to the regions on its near
and far sides. The graph shows which regions a divider drag would move
together, which is the first thing to check when a cascade feels wrong.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "dot" && format != "svg" {
				return fmt.Errorf("unknown format %q (want dot or svg)", format)
			}
			return c.runGraph(cmd.Context(), args[0], segmentsPath, output, format)
		},
	}

	cmd.Flags().StringVarP(&segmentsPath, "segments", "s", "", "separator segments file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg (default), dot")

	return cmd
}

// runGraph derives dividers and writes the adjacency graph.
func (c *CLI) runGraph(ctx context.Context, input, segmentsPath, output, format string) error {
	doc, err := c.loadDocument(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	segments, err := c.resolveSegments(doc, segmentsPath)
	if err != nil {
		return err
	}

	dividers := divider.Derive(doc.Regions.All(), segments, doc.Canvas, c.Config.Editor.AdjacencyTolerance)
	if len(dividers) == 0 {
		printInfo("No dividers derived, nothing to render")
		return nil
	}

	var data []byte
	switch format {
	case "dot":
		data = []byte(divider.ToDOT(dividers))
	case "svg":
		p := newProgress(c.Logger)
		data, err = divider.RenderSVG(ctx, dividers)
		if err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
		p.done(fmt.Sprintf("Rendered %d dividers", len(dividers)))
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + "." + format
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Graph written")
	printFile(outputPath)
	return nil
}
