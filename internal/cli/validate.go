package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/panekit/panekit/pkg/geom"
	"github.com/panekit/panekit/pkg/layout"
)

// validateCommand creates the validate command for checking layout documents.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [layout.json]",
		Short: "Check a layout document against the canvas rules",
		Long: `Check a layout document against the canvas rules.

The document must be self-contained: a usable canvas, a non-negative grid
size, and at least one region, with every rectangle inside the canvas.
Failures are reported per region and field, the same list the editor and
the HTTP boundary return for rejected imports.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0])
		},
	}
}

// runValidate loads the document and reports every field-level failure.
func (c *CLI) runValidate(input string) error {
	doc, err := c.loadDocument(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	verrs := layout.ValidateDocument(doc, geom.Size{})
	if len(verrs) == 0 {
		printSuccess("Layout is valid")
		printDetail("canvas %dx%d, %d regions, grid %d",
			doc.Canvas.W, doc.Canvas.H, doc.Regions.Len(), doc.GridSize)
		printNextStep("Edit", "panekit edit "+input)
		return nil
	}

	printError("Layout is invalid")
	printNewline()

	rows := make([][]string, len(verrs))
	for i, fe := range verrs {
		region := fe.Region
		if region == "" {
			region = "-"
		}
		rows[i] = []string{region, fe.Field, fe.Message}
	}
	renderTable([]string{"Region", "Field", "Problem"}, rows)

	return fmt.Errorf("%d validation failures", len(verrs))
}
