// Package layout defines the geometry document model for a fixed-size
// rectangular display layout and the operations over it: a validated,
// insertion-ordered region store, single-rect and whole-document validation,
// pairwise collision detection, baseline diffing, and JSON import/export.
//
// # Document Format
//
// A layout document is a JSON object:
//
//	{
//	  "canvas": {"w": 250, "h": 122},
//	  "gridSize": 4,
//	  "rects": {
//	    "clock":  [6, 6, 118, 28],
//	    "status": [131, 6, 90, 28]
//	  }
//	}
//
// Each rects entry maps a region name to a [x, y, w, h] integer array. The
// order of entries is significant: it is preserved through decode and encode,
// and it defines stacking for hit-testing (last entry is topmost).
//
// # Validation Tiers
//
// Rectangles are validated against two minimum sizes. Documents crossing the
// I/O boundary (import, initial load, reset) accept any positive extent
// (w, h >= 1). Interactive edits through [Store.Set] and [Store.SetAll]
// require w, h >= [MinSize] so that regions stay large enough to grab.
// Validation failures are reported as [ValidationErrors], a list of
// field-specific [FieldError] values, never as a bare boolean.
//
// # Import and Export
//
// Use [ImportJSON] to read a document from a file path, or [ReadJSON] to
// read from any io.Reader. Both reject malformed rect arrays, duplicate
// region names, and non-integer coordinates. Use [ExportJSON] and
// [WriteJSON] for the reverse direction. A document that decodes cleanly
// re-encodes to an identical region map, in the same order.
package layout
