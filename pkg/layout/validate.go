package layout

import (
	"fmt"
	"strings"

	"github.com/panekit/panekit/pkg/errors"
	"github.com/panekit/panekit/pkg/geom"
)

// FieldError describes a single validation failure, tied to the region and
// field that caused it so hosts can highlight the offending input.
type FieldError struct {
	Region  string // region name, empty for document-level errors
	Field   string // "x", "y", "w", "h", "name", "canvas", "gridSize", "rects"
	Message string
}

// Error implements the error interface.
func (e FieldError) Error() string {
	if e.Region != "" {
		return fmt.Sprintf("region %q: %s", e.Region, e.Message)
	}
	return e.Message
}

// ValidationErrors is the list of failures from a one-shot validation pass.
// The empty list means the input is valid.
type ValidationErrors []FieldError

// Error implements the error interface by joining all failures.
func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// OrNil returns v as an error, or nil when there are no failures.
// ValidationErrors is a slice type, so a typed-nil comparison at the call
// site would be wrong; use this instead.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// ValidateRect checks a single rectangle against the canvas bounds.
// min is the smallest allowed width and height: 1 for documents crossing
// the I/O boundary, MinSize for interactive edits. All failures are
// collected, not just the first.
func ValidateRect(name string, r geom.Rect, canvas geom.Size, min int) ValidationErrors {
	var errs ValidationErrors

	add := func(field, format string, args ...any) {
		errs = append(errs, FieldError{
			Region:  name,
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if r.X < 0 {
		add("x", "x must be >= 0 (got %d)", r.X)
	}
	if r.Y < 0 {
		add("y", "y must be >= 0 (got %d)", r.Y)
	}
	if r.W < min {
		add("w", "w must be >= %d (got %d)", min, r.W)
	}
	if r.H < min {
		add("h", "h must be >= %d (got %d)", min, r.H)
	}
	if canvas.W > 0 && r.X+r.W > canvas.W {
		add("w", "x + w must be <= %d (got %d)", canvas.W, r.X+r.W)
	}
	if canvas.H > 0 && r.Y+r.H > canvas.H {
		add("h", "y + h must be <= %d (got %d)", canvas.H, r.Y+r.H)
	}

	return errs
}

// ValidateDocument checks whole-document invariants: a usable canvas, a
// non-negative grid size, and a rects mapping with at least one entry where
// every entry is a valid rectangle (min width and height 1).
//
// A document without its own canvas is validated against fallback, which is
// how imports inherit the session canvas. Pass a zero fallback when the
// document must be self-contained.
func ValidateDocument(doc *Document, fallback geom.Size) ValidationErrors {
	var errs ValidationErrors

	canvas := doc.Canvas
	if canvas.IsZero() {
		canvas = fallback
	}
	if canvas.W < 1 {
		errs = append(errs, FieldError{Field: "canvas", Message: fmt.Sprintf("canvas w must be >= 1 (got %d)", canvas.W)})
	}
	if canvas.H < 1 {
		errs = append(errs, FieldError{Field: "canvas", Message: fmt.Sprintf("canvas h must be >= 1 (got %d)", canvas.H)})
	}

	if doc.GridSize < 0 {
		errs = append(errs, FieldError{Field: "gridSize", Message: fmt.Sprintf("gridSize must be >= 0 (got %d)", doc.GridSize)})
	}

	if doc.Regions == nil || doc.Regions.Len() == 0 {
		errs = append(errs, FieldError{Field: "rects", Message: "rects must contain at least one region"})
		return errs
	}

	for _, reg := range doc.Regions.All() {
		if err := errors.ValidateRegionName(reg.Name); err != nil {
			errs = append(errs, FieldError{Region: reg.Name, Field: "name", Message: errors.UserMessage(err)})
		}
		errs = append(errs, ValidateRect(reg.Name, reg.Rect, canvas, 1)...)
	}

	return errs
}
