// Package divider derives movable divider lines from a region layout plus a
// set of separator line segments.
//
// A divider is a derived concept, never stored: it is recomputed from the
// current regions and segments on every query, so it can never go stale
// after a drag or an import. Each divider knows which regions sit on its
// near side (left of a vertical divider, above a horizontal one) and which
// on its far side; dragging the divider cascades a resize across both sets.
//
// Matching is tolerance-based. A region edge within [DefaultTolerance] units
// of a segment's line, with extents overlapping the segment's span, joins
// the divider. Segments on the canvas border, diagonal segments, and
// zero-length segments never produce dividers, and a divider with nothing
// on either side is discarded because there is nothing to cascade.
package divider

import (
	"github.com/panekit/panekit/pkg/geom"
	"github.com/panekit/panekit/pkg/layout"
)

// DefaultTolerance is the maximum distance between a region edge and a
// segment's line for the region to join the divider.
const DefaultTolerance = 8

// Span is the extent of a divider along its own axis: the y range for a
// vertical divider, the x range for a horizontal one.
type Span struct {
	Start, End int
}

// overlaps reports strict overlap with the half-open region extent
// [lo, hi). Touching endpoints do not count.
func (s Span) overlaps(lo, hi int) bool {
	return lo < s.End && s.Start < hi
}

// Divider is a movable line touching regions on both sides.
type Divider struct {
	// Axis is geom.Vertical for a divider moving along x, geom.Horizontal
	// for one moving along y.
	Axis geom.Orientation

	// Position is the divider's coordinate on its axis.
	Position int

	// Span is the divider's extent along the perpendicular axis.
	Span Span

	// SourceIndex is the position of the originating segment in the slice
	// passed to Derive. Cascade commits write the divider's new position
	// back through this index.
	SourceIndex int

	// Source is a copy of the originating segment.
	Source geom.Segment

	// Near lists regions whose trailing edge (right or bottom) sits on the
	// divider; a positive drag grows them. Far lists regions whose leading
	// edge (left or top) sits on it; a positive drag moves and shrinks
	// them. Both are in stacking order.
	Near []string
	Far  []string
}

// Derive computes the dividers for the given regions and separator
// segments. The result is ordered by segment position in the input.
//
// For each axis-aligned segment not coincident with a canvas border, a
// region joins the divider when the matching edge is within tolerance of
// the segment's line and the region's extent along the line strictly
// overlaps the segment's span. Segments that end up with an empty side are
// dropped. Pass tolerance <= 0 to use DefaultTolerance.
func Derive(regions []layout.Region, segments []geom.Segment, canvas geom.Size, tolerance int) []Divider {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	var out []Divider
	for i, seg := range segments {
		var d Divider
		switch {
		case seg.IsVertical():
			if seg.X1 <= 0 || seg.X1 >= canvas.W {
				continue
			}
			lo, hi := seg.SpanY()
			d = Divider{
				Axis:        geom.Vertical,
				Position:    seg.X1,
				Span:        Span{Start: lo, End: hi},
				SourceIndex: i,
				Source:      seg,
			}
			for _, reg := range regions {
				if !d.Span.overlaps(reg.Rect.Y, reg.Rect.Bottom()) {
					continue
				}
				if geom.Abs(reg.Rect.Right()-d.Position) <= tolerance {
					d.Near = append(d.Near, reg.Name)
				} else if geom.Abs(reg.Rect.X-d.Position) <= tolerance {
					d.Far = append(d.Far, reg.Name)
				}
			}

		case seg.IsHorizontal():
			if seg.Y1 <= 0 || seg.Y1 >= canvas.H {
				continue
			}
			lo, hi := seg.SpanX()
			d = Divider{
				Axis:        geom.Horizontal,
				Position:    seg.Y1,
				Span:        Span{Start: lo, End: hi},
				SourceIndex: i,
				Source:      seg,
			}
			for _, reg := range regions {
				if !d.Span.overlaps(reg.Rect.X, reg.Rect.Right()) {
					continue
				}
				if geom.Abs(reg.Rect.Bottom()-d.Position) <= tolerance {
					d.Near = append(d.Near, reg.Name)
				} else if geom.Abs(reg.Rect.Y-d.Position) <= tolerance {
					d.Far = append(d.Far, reg.Name)
				}
			}

		default:
			// Point or diagonal segment, nothing to derive.
			continue
		}

		if len(d.Near) == 0 || len(d.Far) == 0 {
			continue
		}
		out = append(out, d)
	}
	return out
}

// At returns the first divider whose distance from p is at most tolerance,
// in derivation order. The second return is false when no divider is close
// enough.
func At(p geom.Point, dividers []Divider, tolerance int) (Divider, bool) {
	for _, d := range dividers {
		if d.DistanceTo(p) <= tolerance {
			return d, true
		}
	}
	return Divider{}, false
}

// DistanceTo returns the distance from p to the divider's line, measured
// perpendicular to its axis and including overshoot past the span ends.
func (d Divider) DistanceTo(p geom.Point) int {
	return d.line().DistanceTo(p)
}

// line returns the divider as a segment at its current position.
func (d Divider) line() geom.Segment {
	if d.Axis == geom.Vertical {
		return geom.Segment{X1: d.Position, Y1: d.Span.Start, X2: d.Position, Y2: d.Span.End}
	}
	return geom.Segment{X1: d.Span.Start, Y1: d.Position, X2: d.Span.End, Y2: d.Position}
}

// MoveSource returns a copy of the divider's source segment relocated to
// position. Cascade commits use it to write the new coordinate back into
// the segment slice so later derivations find the divider where it landed.
func (d Divider) MoveSource(position int) geom.Segment {
	seg := d.Source
	if d.Axis == geom.Vertical {
		seg.X1 = position
		seg.X2 = position
	} else {
		seg.Y1 = position
		seg.Y2 = position
	}
	return seg
}
