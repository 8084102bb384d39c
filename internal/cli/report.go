package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/panekit/panekit/pkg/divider"
	"github.com/panekit/panekit/pkg/layout"
)

// =============================================================================
// collisions - Overlapping Region Pairs
// =============================================================================

// collisionsCommand creates the collisions command.
func (c *CLI) collisionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "collisions [layout.json]",
		Short: "List overlapping region pairs",
		Long: `List overlapping region pairs.

Two regions collide when their rectangles share interior area. Touching
edges and corners do not count. Pairs are reported in document order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCollisions(args[0])
		},
	}
}

// runCollisions loads the document and prints the collision table.
func (c *CLI) runCollisions(input string) error {
	doc, err := c.loadDocument(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	collisions := layout.Collisions(doc.Regions.All())
	if len(collisions) == 0 {
		printSuccess("No collisions")
		return nil
	}

	printWarning("%d colliding pairs", len(collisions))
	printNewline()

	rows := make([][]string, len(collisions))
	for i, col := range collisions {
		a, _ := doc.Regions.Get(col.A)
		b, _ := doc.Regions.Get(col.B)
		rows[i] = []string{col.A, fmtRect(a), col.B, fmtRect(b)}
	}
	renderTable([]string{"Region", "Rect", "Region", "Rect"}, rows)

	return nil
}

// =============================================================================
// diff - Geometry Changes Between Two Documents
// =============================================================================

// diffCommand creates the diff command.
func (c *CLI) diffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff [baseline.json] [current.json]",
		Short: "Show geometry changes between two layout documents",
		Long: `Show geometry changes between two layout documents.

Regions are matched by name. Moved and resized regions are listed with
their old and new rectangles; regions present in only one document are
marked added or removed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDiff(args[0], args[1])
		},
	}
}

// runDiff loads both documents and prints the change table.
func (c *CLI) runDiff(basePath, currentPath string) error {
	base, err := c.loadDocument(basePath)
	if err != nil {
		return fmt.Errorf("load baseline %s: %w", basePath, err)
	}
	current, err := c.loadDocument(currentPath)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", currentPath, err)
	}

	changes := layout.Diff(base.Regions, current.Regions)
	if len(changes) == 0 {
		printSuccess("Documents are geometrically identical")
		return nil
	}

	printInfo("%d changed regions", len(changes))
	printNewline()

	rows := make([][]string, len(changes))
	for i, ch := range changes {
		switch {
		case ch.Added:
			rows[i] = []string{ch.Name, "added", "-", fmtRect(ch.To)}
		case ch.Removed:
			rows[i] = []string{ch.Name, "removed", fmtRect(ch.From), "-"}
		default:
			rows[i] = []string{ch.Name, "changed", fmtRect(ch.From), fmtRect(ch.To)}
		}
	}
	renderTable([]string{"Region", "Change", "From", "To"}, rows)

	return nil
}

// =============================================================================
// dividers - Divider Derivation Dump
// =============================================================================

// dividersCommand creates the dividers command for inspecting derivation.
func (c *CLI) dividersCommand() *cobra.Command {
	var segmentsPath string

	cmd := &cobra.Command{
		Use:   "dividers [layout.json]",
		Short: "Show the dividers derived from a layout",
		Long: `Show the dividers derived from a layout.

Dividers are derived by matching region edges against separator line
segments. Segments come from the sidecar file given with --segments (a
JSON array of [x1, y1, x2, y2] arrays); without one, separators are
inferred from region edges facing each other across a small gap.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDividers(args[0], segmentsPath)
		},
	}

	cmd.Flags().StringVarP(&segmentsPath, "segments", "s", "", "separator segments file")

	return cmd
}

// runDividers derives and prints the divider table.
func (c *CLI) runDividers(input, segmentsPath string) error {
	doc, err := c.loadDocument(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	segments, err := c.resolveSegments(doc, segmentsPath)
	if err != nil {
		return err
	}

	tol := c.Config.Editor.AdjacencyTolerance
	dividers := divider.Derive(doc.Regions.All(), segments, doc.Canvas, tol)
	if len(dividers) == 0 {
		printInfo("No dividers derived from %d segments", len(segments))
		return nil
	}

	printInfo("%d dividers from %d segments", len(dividers), len(segments))
	printNewline()

	rows := make([][]string, len(dividers))
	for i, d := range dividers {
		rows[i] = []string{
			string(d.Axis),
			fmt.Sprintf("%d", d.Position),
			fmt.Sprintf("%d..%d", d.Span.Start, d.Span.End),
			strings.Join(d.Near, ", "),
			strings.Join(d.Far, ", "),
			fmtSegment(d.Source),
		}
	}
	renderTable([]string{"Axis", "Pos", "Span", "Near", "Far", "Source"}, rows)

	return nil
}
