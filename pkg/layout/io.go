package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadJSON decodes a layout document from r.
//
// The input must be a JSON object with a "rects" mapping; "canvas" and
// "gridSize" are optional and fall back to the consumer's current values
// when absent:
//
//	{
//	  "canvas": {"w": 250, "h": 122},
//	  "gridSize": 4,
//	  "rects": {"clock": [6, 6, 118, 28]}
//	}
//
// ReadJSON returns an error if the JSON is malformed, a rect is not a
// 4-element integer array, or a region name appears twice. It performs no
// semantic validation beyond decoding; run ValidateDocument on the result
// before use. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc.Regions == nil {
		doc.Regions = NewRegions()
	}
	return &doc, nil
}

// ImportJSON reads a JSON file at path and returns the decoded document.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes a document as indented JSON and writes it to w.
// Region order is preserved, so the output can be re-imported with
// [ReadJSON] for an identical region map.
func WriteJSON(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a document to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(doc, f)
}
