package layout

import "github.com/panekit/panekit/pkg/geom"

// Collision is an unordered pair of region names whose rectangles overlap.
// A is always the region earlier in stacking order.
type Collision struct {
	A, B string
}

// Collisions reports every pair of regions whose rectangles share interior
// area. Overlap is strict: rectangles that merely touch along an edge or at
// a corner do not collide. Each pair is reported once, ordered by stacking.
func Collisions(regions []Region) []Collision {
	var out []Collision
	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			if regions[i].Rect.Overlaps(regions[j].Rect) {
				out = append(out, Collision{A: regions[i].Name, B: regions[j].Name})
			}
		}
	}
	return out
}

// Change records one region whose rectangle differs between a baseline and
// the current state. Added holds when the region exists only in current,
// Removed when it exists only in the baseline; From and To are zero rects
// for the missing side.
type Change struct {
	Name     string
	From, To geom.Rect
	Added    bool
	Removed  bool
}

// Diff compares current against baseline and returns one Change per region
// whose rectangle differs, omitting unchanged regions. Changed and added
// regions appear in current order, then removed regions in baseline order.
func Diff(baseline, current *Regions) []Change {
	var out []Change

	for _, reg := range current.All() {
		from, ok := baseline.Get(reg.Name)
		switch {
		case !ok:
			out = append(out, Change{Name: reg.Name, To: reg.Rect, Added: true})
		case from != reg.Rect:
			out = append(out, Change{Name: reg.Name, From: from, To: reg.Rect})
		}
	}

	for _, reg := range baseline.All() {
		if _, ok := current.Get(reg.Name); !ok {
			out = append(out, Change{Name: reg.Name, From: reg.Rect, Removed: true})
		}
	}

	return out
}
