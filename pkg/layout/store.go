package layout

import (
	"github.com/panekit/panekit/pkg/errors"
	"github.com/panekit/panekit/pkg/geom"
)

// Store owns the mapping from region name to rectangle together with the
// canvas it lives on. Every mutation is validator-gated: a rejected write
// returns an error and leaves the store untouched. Region insertion order
// is preserved and defines stacking for hit-testing (last is topmost).
//
// Store is not safe for concurrent use. It is designed to be owned by a
// single editor session that serializes all access.
type Store struct {
	canvas   geom.Size
	gridSize int
	regions  *Regions
}

// NewStore builds a store from a document. The document must be
// self-contained and valid: canvas present, at least one region, every
// rectangle inside the canvas with positive extent. A zero gridSize falls
// back to DefaultGridSize.
func NewStore(doc *Document) (*Store, error) {
	if verrs := ValidateDocument(doc, geom.Size{}); len(verrs) > 0 {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, verrs, "invalid layout document")
	}

	gridSize := doc.GridSize
	if gridSize == 0 {
		gridSize = DefaultGridSize
	}

	return &Store{
		canvas:   doc.Canvas,
		gridSize: gridSize,
		regions:  doc.Regions.Clone(),
	}, nil
}

// Canvas returns the canvas dimensions.
func (s *Store) Canvas() geom.Size { return s.canvas }

// GridSize returns the snap grid spacing.
func (s *Store) GridSize() int { return s.gridSize }

// Len returns the number of regions.
func (s *Store) Len() int { return s.regions.Len() }

// Get returns the rectangle for name and whether the region exists.
func (s *Store) Get(name string) (geom.Rect, bool) {
	return s.regions.Get(name)
}

// Names returns the region names in stacking order (first is bottom).
func (s *Store) Names() []string { return s.regions.Names() }

// All returns (name, rect) pairs in stacking order.
func (s *Store) All() []Region { return s.regions.All() }

// Set writes a rectangle for name, applying interactive validation
// (w, h >= MinSize, inside canvas). A new name is appended to the stacking
// order. On failure nothing is mutated and the returned error carries the
// field-level failures as its cause.
func (s *Store) Set(name string, rect geom.Rect) error {
	if _, ok := s.regions.Get(name); !ok {
		if err := errors.ValidateRegionName(name); err != nil {
			return err
		}
	}
	if verrs := ValidateRect(name, rect, s.canvas, MinSize); len(verrs) > 0 {
		return errors.Wrap(errors.ErrCodeInvalidRect, verrs, "invalid rect for region %q", name)
	}
	s.regions.Set(name, rect)
	return nil
}

// SetAll applies a batch of rectangle updates atomically: every candidate
// is validated with interactive rules first, and if any one fails, or names
// an unknown region, no region is mutated.
func (s *Store) SetAll(updates map[string]geom.Rect) error {
	var verrs ValidationErrors
	for name, rect := range updates {
		if _, ok := s.regions.Get(name); !ok {
			return errors.New(errors.ErrCodeRegionNotFound, "region %q not found", name)
		}
		verrs = append(verrs, ValidateRect(name, rect, s.canvas, MinSize)...)
	}
	if len(verrs) > 0 {
		return errors.Wrap(errors.ErrCodeInvalidRect, verrs, "invalid batch update")
	}
	for name, rect := range updates {
		s.regions.Set(name, rect)
	}
	return nil
}

// Restore writes a rectangle using document validation (w, h >= 1). Reset
// paths use it so that baseline regions smaller than MinSize restore
// verbatim. A region absent from the current map is re-created at the end
// of the stacking order.
func (s *Store) Restore(name string, rect geom.Rect) error {
	if _, ok := s.regions.Get(name); !ok {
		if err := errors.ValidateRegionName(name); err != nil {
			return err
		}
	}
	if verrs := ValidateRect(name, rect, s.canvas, 1); len(verrs) > 0 {
		return errors.Wrap(errors.ErrCodeInvalidRect, verrs, "invalid rect for region %q", name)
	}
	s.regions.Set(name, rect)
	return nil
}

// Replace swaps the store contents for the given document, atomically.
// Canvas and gridSize keep their current values when the document omits
// them; when present they take effect along with the new region map. The
// document is validated first, and on failure the store is untouched with
// the field-level failures returned as the error cause.
func (s *Store) Replace(doc *Document) error {
	if verrs := ValidateDocument(doc, s.canvas); len(verrs) > 0 {
		return errors.Wrap(errors.ErrCodeInvalidDocument, verrs, "invalid layout document")
	}

	if !doc.Canvas.IsZero() {
		s.canvas = doc.Canvas
	}
	if doc.GridSize > 0 {
		s.gridSize = doc.GridSize
	}
	s.regions = doc.Regions.Clone()
	return nil
}

// Document returns a snapshot of the current store contents as a document.
// The snapshot is independent of the store.
func (s *Store) Document() *Document {
	return &Document{
		Canvas:   s.canvas,
		GridSize: s.gridSize,
		Regions:  s.regions.Clone(),
	}
}
