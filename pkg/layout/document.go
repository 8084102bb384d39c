package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/panekit/panekit/pkg/geom"
)

// Layout defaults.
const (
	// MinSize is the smallest width or height a region may have after an
	// interactive edit. Documents crossing the I/O boundary accept w, h >= 1.
	MinSize = 8

	// DefaultGridSize is the snap grid spacing used when a document does
	// not specify one.
	DefaultGridSize = 4
)

// Region pairs a name with its rectangle. Slices of Region preserve
// document insertion order.
type Region struct {
	Name string
	Rect geom.Rect
}

// Regions is an insertion-ordered mapping from region name to rectangle.
// The zero value is not usable; construct with NewRegions.
type Regions struct {
	names []string
	rects map[string]geom.Rect
}

// NewRegions returns an empty region mapping.
func NewRegions() *Regions {
	return &Regions{rects: make(map[string]geom.Rect)}
}

// Len returns the number of regions.
func (r *Regions) Len() int { return len(r.names) }

// Get returns the rectangle for name and whether it exists.
func (r *Regions) Get(name string) (geom.Rect, bool) {
	rect, ok := r.rects[name]
	return rect, ok
}

// Set stores rect under name. A new name is appended to the order;
// an existing name keeps its position.
func (r *Regions) Set(name string, rect geom.Rect) {
	if _, ok := r.rects[name]; !ok {
		r.names = append(r.names, name)
	}
	r.rects[name] = rect
}

// Names returns the region names in insertion order.
func (r *Regions) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// All returns (name, rect) pairs in insertion order.
func (r *Regions) All() []Region {
	out := make([]Region, len(r.names))
	for i, name := range r.names {
		out[i] = Region{Name: name, Rect: r.rects[name]}
	}
	return out
}

// Clone returns an independent copy preserving order.
func (r *Regions) Clone() *Regions {
	out := &Regions{
		names: make([]string, len(r.names)),
		rects: make(map[string]geom.Rect, len(r.rects)),
	}
	copy(out.names, r.names)
	for k, v := range r.rects {
		out.rects[k] = v
	}
	return out
}

// Equal reports whether r and o hold the same regions with the same
// rectangles in the same order.
func (r *Regions) Equal(o *Regions) bool {
	if r.Len() != o.Len() {
		return false
	}
	for i, name := range r.names {
		if o.names[i] != name {
			return false
		}
		if r.rects[name] != o.rects[name] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the regions as a JSON object in insertion order.
func (r *Regions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.rects[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the regions, preserving key
// order. Duplicate region names are rejected: silently keeping the last
// occurrence would hide a corrupted document.
func (r *Regions) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode regions: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("rects must be an object, got %v", tok)
	}

	names := make([]string, 0)
	rects := make(map[string]geom.Rect)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode region name: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("region name must be a string, got %v", keyTok)
		}
		if _, dup := rects[name]; dup {
			return fmt.Errorf("duplicate region name %q", name)
		}

		var rect geom.Rect
		if err := dec.Decode(&rect); err != nil {
			return fmt.Errorf("region %q: %w", name, err)
		}

		names = append(names, name)
		rects[name] = rect
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode regions: %w", err)
	}

	r.names = names
	r.rects = rects
	return nil
}

// Document is a complete layout geometry document: the canvas dimensions,
// the snap grid spacing, and the ordered region map. It is the only
// artifact that crosses the subsystem boundary.
type Document struct {
	Canvas   geom.Size `json:"canvas"`
	GridSize int       `json:"gridSize,omitempty"`
	Regions  *Regions  `json:"rects"`
}

// NewDocument returns an empty document with the given canvas and the
// default grid size.
func NewDocument(canvas geom.Size) *Document {
	return &Document{
		Canvas:   canvas,
		GridSize: DefaultGridSize,
		Regions:  NewRegions(),
	}
}

// Clone returns an independent deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{Canvas: d.Canvas, GridSize: d.GridSize}
	if d.Regions != nil {
		out.Regions = d.Regions.Clone()
	}
	return out
}

// Equal reports whether two documents are identical: same canvas, same
// grid size, same regions in the same order.
func (d *Document) Equal(o *Document) bool {
	if d.Canvas != o.Canvas || d.GridSize != o.GridSize {
		return false
	}
	switch {
	case d.Regions == nil && o.Regions == nil:
		return true
	case d.Regions == nil || o.Regions == nil:
		return false
	}
	return d.Regions.Equal(o.Regions)
}

// SortedNames returns the region names in lexical order. Useful for
// deterministic report output independent of stacking order.
func (d *Document) SortedNames() []string {
	if d.Regions == nil {
		return nil
	}
	names := d.Regions.Names()
	sort.Strings(names)
	return names
}
