package geom

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the rectangle as the compact 4-element array
// [x, y, w, h] used by the layout document format.
func (r Rect) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("[%d, %d, %d, %d]", r.X, r.Y, r.W, r.H)), nil
}

// UnmarshalJSON decodes a rectangle from a 4-element integer array.
// Anything else, including float coordinates or a wrong element count,
// is rejected.
func (r *Rect) UnmarshalJSON(data []byte) error {
	vals, err := intQuad(data, "rect")
	if err != nil {
		return err
	}
	r.X, r.Y, r.W, r.H = vals[0], vals[1], vals[2], vals[3]
	return nil
}

// MarshalJSON encodes the segment as the 4-element array [x1, y1, x2, y2].
func (s Segment) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("[%d, %d, %d, %d]", s.X1, s.Y1, s.X2, s.Y2)), nil
}

// UnmarshalJSON decodes a segment from a 4-element integer array.
func (s *Segment) UnmarshalJSON(data []byte) error {
	vals, err := intQuad(data, "segment")
	if err != nil {
		return err
	}
	s.X1, s.Y1, s.X2, s.Y2 = vals[0], vals[1], vals[2], vals[3]
	return nil
}

// intQuad decodes a JSON array of exactly four integers.
func intQuad(data []byte, what string) ([4]int, error) {
	var vals [4]int

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []json.Number
	if err := dec.Decode(&raw); err != nil {
		return vals, fmt.Errorf("%s must be a 4-element array: %w", what, err)
	}
	if len(raw) != 4 {
		return vals, fmt.Errorf("%s must have exactly 4 elements, got %d", what, len(raw))
	}

	for i, n := range raw {
		v, err := n.Int64()
		if err != nil {
			return vals, fmt.Errorf("%s element %d must be an integer, got %s", what, i, n.String())
		}
		vals[i] = int(v)
	}

	return vals, nil
}
