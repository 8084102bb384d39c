// Package geom provides the integer geometry primitives shared across the
// layout engine: points, sizes, axis-aligned rectangles, and separator line
// segments.
//
// All coordinates are integers in canvas units. Rectangles are stored as
// origin plus extent ({x, y, w, h}) and marshal to the 4-element JSON arrays
// used by the layout document format. Containment is half-open: a rectangle
// contains its top and left edges but not its bottom and right edges, so two
// rectangles that merely share an edge never contain the same point and never
// overlap.
package geom

// Point is a position in canvas coordinates.
type Point struct {
	X, Y int
}

// Size holds canvas or rectangle dimensions.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool { return s.W == 0 && s.H == 0 }

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H int
}

// Right returns the exclusive right edge coordinate (x + w).
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the exclusive bottom edge coordinate (y + h).
func (r Rect) Bottom() int { return r.Y + r.H }

// CenterX returns the horizontal midpoint of the rectangle.
func (r Rect) CenterX() int { return r.X + r.W/2 }

// CenterY returns the vertical midpoint of the rectangle.
func (r Rect) CenterY() int { return r.Y + r.H/2 }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies inside r. The test is half-open:
// the left and top edges are inside, the right and bottom edges are not.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Overlaps reports whether r and o share interior area. Rectangles that
// touch along an edge or at a corner do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.Right() <= o.X || o.Right() <= r.X || r.Bottom() <= o.Y || o.Bottom() <= r.Y)
}

// Translated returns a copy of r moved by (dx, dy).
func (r Rect) Translated(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Clamp limits v to the inclusive range [lo, hi]. If lo > hi, lo wins.
func Clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Abs returns the absolute value of v.
func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
