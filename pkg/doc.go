// Package pkg provides the core libraries for Panekit layout editing.
//
// # Overview
//
// Panekit edits fixed-size rectangular display layouts: named regions on a
// small integer canvas, moved and resized directly or cascaded together
// through derived divider lines. The pkg directory is organized into four
// main areas:
//
//  1. [layout] - Document model (regions, validation, JSON format)
//  2. [editor] - Interactive session (hit-testing, gestures, commits)
//  3. [divider] - Derived divider lines and the adjacency graph
//  4. [store] / [workspace] - Persistence backends and session lifecycle
//
// # Architecture
//
// The typical data flow through Panekit:
//
//	Layout JSON document
//	         ↓
//	    [layout] package (parse + validate against the canvas)
//	         ↓
//	    [editor] package (pointer/key events → candidate → commit)
//	         ↓
//	    [divider] package (recomputed after every commit)
//	         ↓
//	    Saved document / reports / DOT / SVG
//
// # Quick Start
//
// Load a document and drive an editing session:
//
//	import (
//	    "github.com/panekit/panekit/pkg/editor"
//	    "github.com/panekit/panekit/pkg/layout"
//	)
//
//	// 1. Import a document
//	doc, _ := layout.ImportJSON("layout.json")
//
//	// 2. Start a session
//	sess, _ := editor.NewSession(doc, editor.Options{})
//
//	// 3. Drag the region under (64, 50) ten units right
//	sess.HandlePointer(editor.PointerEvent{X: 64, Y: 50, PrimaryButtonDown: true})
//	sess.HandlePointer(editor.PointerEvent{X: 74, Y: 50, PrimaryButtonDown: true})
//	sess.HandlePointer(editor.PointerEvent{X: 74, Y: 50, PrimaryButtonDown: false})
//
//	// 4. Export the result
//	_ = layout.ExportJSON(sess.Export(), "layout.json")
//
// # Main Packages
//
// ## Geometry and Documents
//
// [geom] - Integer rectangles, points, segments, and sizes shared by every
// other package. Rectangles and segments marshal as compact JSON arrays.
//
// [layout] - The document model: insertion-ordered regions on a fixed
// canvas, field-level validation, collision and diff reports, and the JSON
// document format. The [layout.Store] enforces bounds on every write.
//
// ## Editing
//
// [editor] - A single-user editing session. Routes pointer presses through
// region and handle hit-testing, computes candidate rectangles per frame,
// validates them, and commits or silently drops. Keyboard nudges, grid
// snapping, import/export, and baseline resets live here too.
//
// [divider] - Derives movable divider lines from regions plus separator
// segments. Dividers are never stored: every query recomputes them, so they
// cannot go stale. Divider drags cascade across both sides, conserving the
// combined extent. Includes DOT and SVG rendering of the adjacency graph
// and segment inference for documents without explicit separators.
//
// ## Infrastructure
//
// [store] - Keyed document storage with file, memory, Redis, MongoDB, and
// null backends behind one interface, plus content hashing and retry with
// backoff for transient backend failures.
//
// [workspace] - Composes the editor with a store: loads sessions with a
// stored override applied over the baseline, saves exports back, and logs
// the lifecycle. CLI and HTTP hosts share it.
//
// [errors] - Coded errors with user-facing messages.
//
// [observe] - Optional instrumentation hooks for session events.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/editor/...     # Specific package
//	go test -run Example         # Examples only
//
// [geom]: https://pkg.go.dev/github.com/panekit/panekit/pkg/geom
// [layout]: https://pkg.go.dev/github.com/panekit/panekit/pkg/layout
// [layout.Store]: https://pkg.go.dev/github.com/panekit/panekit/pkg/layout#Store
// [editor]: https://pkg.go.dev/github.com/panekit/panekit/pkg/editor
// [divider]: https://pkg.go.dev/github.com/panekit/panekit/pkg/divider
// [store]: https://pkg.go.dev/github.com/panekit/panekit/pkg/store
// [workspace]: https://pkg.go.dev/github.com/panekit/panekit/pkg/workspace
// [errors]: https://pkg.go.dev/github.com/panekit/panekit/pkg/errors
// [observe]: https://pkg.go.dev/github.com/panekit/panekit/pkg/observe
// [buildinfo]: https://pkg.go.dev/github.com/panekit/panekit/pkg/buildinfo
package pkg
