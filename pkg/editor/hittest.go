package editor

import (
	"github.com/panekit/panekit/pkg/geom"
	"github.com/panekit/panekit/pkg/layout"
)

// Hit-test defaults.
const (
	// DefaultHandleMargin is the half-size of the square around each resize
	// handle that counts as hitting it.
	DefaultHandleMargin = 6

	// DefaultDividerTolerance is the maximum distance from a divider's line
	// at which a pointer press still grabs it.
	DefaultDividerTolerance = 6
)

// Handle identifies one of the eight resize handles of a region, named by
// compass direction. The empty value means no handle.
type Handle string

// Resize handles. Corner handles move two edges, edge handles one.
const (
	HandleNone Handle = ""
	HandleNW   Handle = "nw"
	HandleNE   Handle = "ne"
	HandleSE   Handle = "se"
	HandleSW   Handle = "sw"
	HandleN    Handle = "n"
	HandleE    Handle = "e"
	HandleS    Handle = "s"
	HandleW    Handle = "w"
)

// moves reports which edges the handle drags.
func (h Handle) moves() (left, top, right, bottom bool) {
	switch h {
	case HandleNW:
		return true, true, false, false
	case HandleNE:
		return false, true, true, false
	case HandleSE:
		return false, false, true, true
	case HandleSW:
		return true, false, false, true
	case HandleN:
		return false, true, false, false
	case HandleE:
		return false, false, true, false
	case HandleS:
		return false, false, false, true
	case HandleW:
		return true, false, false, false
	}
	return false, false, false, false
}

// RegionAt returns the topmost region containing p: regions are scanned in
// reverse stacking order, so the last-inserted region wins where rectangles
// overlap. Containment is half-open, matching geom.Rect.Contains.
func RegionAt(p geom.Point, regions []layout.Region) (string, bool) {
	for i := len(regions) - 1; i >= 0; i-- {
		if regions[i].Rect.Contains(p) {
			return regions[i].Name, true
		}
	}
	return "", false
}

// HandleAt returns the resize handle of r hit by p, or HandleNone. A handle
// is hit when p falls inside the square of half-size margin centered on it.
// The four corners are tested before the four edge midpoints, so a pointer
// near a short edge grabs the corner.
func HandleAt(p geom.Point, r geom.Rect, margin int) Handle {
	type spot struct {
		h    Handle
		x, y int
	}

	spots := []spot{
		{HandleNW, r.X, r.Y},
		{HandleNE, r.Right(), r.Y},
		{HandleSE, r.Right(), r.Bottom()},
		{HandleSW, r.X, r.Bottom()},
		{HandleN, r.CenterX(), r.Y},
		{HandleE, r.Right(), r.CenterY()},
		{HandleS, r.CenterX(), r.Bottom()},
		{HandleW, r.X, r.CenterY()},
	}

	for _, s := range spots {
		if geom.Abs(p.X-s.x) <= margin && geom.Abs(p.Y-s.y) <= margin {
			return s.h
		}
	}
	return HandleNone
}
