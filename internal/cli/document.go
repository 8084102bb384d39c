package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/panekit/panekit/pkg/divider"
	"github.com/panekit/panekit/pkg/geom"
	"github.com/panekit/panekit/pkg/layout"
)

// loadDocument reads a layout document from path, applying the configured
// grid override when the document carries no grid of its own.
func (c *CLI) loadDocument(path string) (*layout.Document, error) {
	doc, err := layout.ImportJSON(path)
	if err != nil {
		return nil, err
	}
	if doc.GridSize == 0 && c.Config.Editor.GridSize > 0 {
		doc.GridSize = c.Config.Editor.GridSize
	}
	return doc, nil
}

// loadSegments reads separator segments from a JSON sidecar file holding
// an array of [x1, y1, x2, y2] arrays.
func loadSegments(path string) ([]geom.Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read segments %s: %w", path, err)
	}
	var segments []geom.Segment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, fmt.Errorf("parse segments %s: %w", path, err)
	}
	return segments, nil
}

// resolveSegments returns the separator segments for a document: the
// sidecar file when one is given, otherwise segments inferred from shared
// region edges.
func (c *CLI) resolveSegments(doc *layout.Document, segmentsPath string) ([]geom.Segment, error) {
	if segmentsPath != "" {
		return loadSegments(segmentsPath)
	}
	tol := c.Config.Editor.AdjacencyTolerance
	if tol <= 0 {
		tol = divider.DefaultTolerance
	}
	return divider.InferSegments(doc.Regions.All(), 2*tol), nil
}
