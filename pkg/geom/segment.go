package geom

// Orientation labels the direction of an axis-aligned segment or divider.
type Orientation string

// Segment orientations.
const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Segment is a line segment between two points in canvas coordinates.
// Divider inference only considers axis-aligned segments; callers may hold
// diagonal segments but they classify as neither horizontal nor vertical.
type Segment struct {
	X1, Y1, X2, Y2 int
}

// IsHorizontal reports whether the segment runs along a single row.
func (s Segment) IsHorizontal() bool { return s.Y1 == s.Y2 && s.X1 != s.X2 }

// IsVertical reports whether the segment runs along a single column.
func (s Segment) IsVertical() bool { return s.X1 == s.X2 && s.Y1 != s.Y2 }

// IsPoint reports whether both endpoints coincide.
func (s Segment) IsPoint() bool { return s.X1 == s.X2 && s.Y1 == s.Y2 }

// SpanX returns the segment's horizontal extent with lo <= hi.
func (s Segment) SpanX() (lo, hi int) {
	if s.X1 <= s.X2 {
		return s.X1, s.X2
	}
	return s.X2, s.X1
}

// SpanY returns the segment's vertical extent with lo <= hi.
func (s Segment) SpanY() (lo, hi int) {
	if s.Y1 <= s.Y2 {
		return s.Y1, s.Y2
	}
	return s.Y2, s.Y1
}

// DistanceTo returns the Chebyshev-style distance from p to the segment,
// measured as the larger of the perpendicular offset and the out-of-span
// overshoot. For axis-aligned segments this matches "within tolerance of the
// line and within tolerance of the span" when compared against a single
// threshold.
func (s Segment) DistanceTo(p Point) int {
	switch {
	case s.IsHorizontal():
		lo, hi := s.SpanX()
		return maxInt(Abs(p.Y-s.Y1), spanDistance(p.X, lo, hi))
	case s.IsVertical():
		lo, hi := s.SpanY()
		return maxInt(Abs(p.X-s.X1), spanDistance(p.Y, lo, hi))
	default:
		// Point or diagonal segment: fall back to endpoint distance.
		d1 := maxInt(Abs(p.X-s.X1), Abs(p.Y-s.Y1))
		d2 := maxInt(Abs(p.X-s.X2), Abs(p.Y-s.Y2))
		return minInt(d1, d2)
	}
}

func spanDistance(v, lo, hi int) int {
	if v < lo {
		return lo - v
	}
	if v > hi {
		return v - hi
	}
	return 0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
