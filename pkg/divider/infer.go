package divider

import (
	"sort"

	"github.com/panekit/panekit/pkg/geom"
	"github.com/panekit/panekit/pkg/layout"
)

// InferSegments derives separator segments directly from shared region
// edges, for layouts that ship no explicit separator lines. For every pair
// of regions facing each other across a gap of at most maxGap units, with
// overlapping extents, it emits an axis-aligned segment in the middle of
// the gap spanning the shared extent. Segments at the same position are
// merged into one spanning all contributing pairs.
//
// The result feeds straight into Derive. Explicit segments remain the
// authoritative input where both are available; inference is the fallback.
func InferSegments(regions []layout.Region, maxGap int) []geom.Segment {
	if maxGap < 0 {
		maxGap = 0
	}

	type key struct {
		axis geom.Orientation
		pos  int
	}
	merged := make(map[key]*Span)
	order := make([]key, 0)

	add := func(axis geom.Orientation, pos, lo, hi int) {
		k := key{axis: axis, pos: pos}
		if span, ok := merged[k]; ok {
			if lo < span.Start {
				span.Start = lo
			}
			if hi > span.End {
				span.End = hi
			}
			return
		}
		merged[k] = &Span{Start: lo, End: hi}
		order = append(order, k)
	}

	for i := 0; i < len(regions); i++ {
		for j := 0; j < len(regions); j++ {
			if i == j {
				continue
			}
			a, b := regions[i].Rect, regions[j].Rect

			// a's right edge facing b's left edge.
			if gap := b.X - a.Right(); gap >= 0 && gap <= maxGap {
				lo := maxOf(a.Y, b.Y)
				hi := minOf(a.Bottom(), b.Bottom())
				if lo < hi {
					add(geom.Vertical, a.Right()+gap/2, lo, hi)
				}
			}

			// a's bottom edge facing b's top edge.
			if gap := b.Y - a.Bottom(); gap >= 0 && gap <= maxGap {
				lo := maxOf(a.X, b.X)
				hi := minOf(a.Right(), b.Right())
				if lo < hi {
					add(geom.Horizontal, a.Bottom()+gap/2, lo, hi)
				}
			}
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].axis != order[j].axis {
			return order[i].axis == geom.Vertical
		}
		return order[i].pos < order[j].pos
	})

	out := make([]geom.Segment, 0, len(order))
	for _, k := range order {
		span := merged[k]
		if k.axis == geom.Vertical {
			out = append(out, geom.Segment{X1: k.pos, Y1: span.Start, X2: k.pos, Y2: span.End})
		} else {
			out = append(out, geom.Segment{X1: span.Start, Y1: k.pos, X2: span.End, Y2: k.pos})
		}
	}
	return out
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minOf(a, b int) int {
	if a < b {
		return a
	}
	return b
}
