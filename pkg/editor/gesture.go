package editor

import (
	"fmt"

	"github.com/panekit/panekit/pkg/divider"
	"github.com/panekit/panekit/pkg/geom"
	"github.com/panekit/panekit/pkg/layout"
)

// GestureKind labels the active gesture of a session.
type GestureKind string

// Gesture kinds.
const (
	GestureIdle            GestureKind = "idle"
	GestureDraggingRegion  GestureKind = "dragging-region"
	GestureResizingRegion  GestureKind = "resizing-region"
	GestureDraggingDivider GestureKind = "dragging-divider"
)

// gesture holds the state captured at pointer-down: the starting
// rectangle(s) and pointer position every later frame is computed from.
type gesture struct {
	kind    GestureKind
	region  string
	handle  Handle
	div     divider.Divider
	anchors map[string]geom.Rect
	anchor  geom.Rect
	pointer geom.Point

	frames  int
	commits int
}

// target describes the gesture for instrumentation.
func (g *gesture) target() string {
	switch g.kind {
	case GestureDraggingRegion:
		return g.region
	case GestureResizingRegion:
		return fmt.Sprintf("%s/%s", g.region, g.handle)
	case GestureDraggingDivider:
		axis := "x"
		if g.div.Axis != geom.Vertical {
			axis = "y"
		}
		return fmt.Sprintf("%s=%d", axis, g.div.Position)
	}
	return ""
}

// hookKind maps the gesture to the hook event name.
func (g *gesture) hookKind() string {
	switch g.kind {
	case GestureDraggingRegion:
		return "drag"
	case GestureResizingRegion:
		return "resize"
	case GestureDraggingDivider:
		return "divider"
	}
	return ""
}

// snapTo rounds v to the nearest multiple of grid. A grid of 1 or less
// disables snapping.
func snapTo(v, grid int) int {
	if grid <= 1 {
		return v
	}
	half := grid / 2
	if v >= 0 {
		return (v + half) / grid * grid
	}
	return -((-v + half) / grid * grid)
}

// dragCandidate computes the rectangle for a region drag frame: the anchor
// origin shifted by the pointer delta, snapped, then clamped so the whole
// rectangle stays on the canvas. Width and height never change.
func dragCandidate(anchor geom.Rect, dx, dy int, snap func(int) int, canvas geom.Size) geom.Rect {
	r := anchor
	r.X = geom.Clamp(snap(anchor.X+dx), 0, canvas.W-anchor.W)
	r.Y = geom.Clamp(snap(anchor.Y+dy), 0, canvas.H-anchor.H)
	return r
}

// resizeCandidate computes the rectangle for a resize frame. The edges the
// handle drags move to the snapped pointer-shifted position; the opposite
// edges stay fixed. Minimum size is enforced first by pinning the moving
// edge, then the result is clamped into the canvas.
func resizeCandidate(anchor geom.Rect, handle Handle, dx, dy int, snap func(int) int, canvas geom.Size) geom.Rect {
	left, top, right, bottom := handle.moves()
	r := anchor

	if left {
		x := snap(anchor.X + dx)
		if anchor.Right()-x < layout.MinSize {
			x = anchor.Right() - layout.MinSize
		}
		if x < 0 {
			x = 0
		}
		r.X = x
		r.W = anchor.Right() - x
	}
	if right {
		edge := snap(anchor.Right() + dx)
		if edge-anchor.X < layout.MinSize {
			edge = anchor.X + layout.MinSize
		}
		if edge > canvas.W {
			edge = canvas.W
		}
		r.W = edge - anchor.X
	}
	if top {
		y := snap(anchor.Y + dy)
		if anchor.Bottom()-y < layout.MinSize {
			y = anchor.Bottom() - layout.MinSize
		}
		if y < 0 {
			y = 0
		}
		r.Y = y
		r.H = anchor.Bottom() - y
	}
	if bottom {
		edge := snap(anchor.Bottom() + dy)
		if edge-anchor.Y < layout.MinSize {
			edge = anchor.Y + layout.MinSize
		}
		if edge > canvas.H {
			edge = canvas.H
		}
		r.H = edge - anchor.Y
	}

	return r
}

// cascadeCandidates computes the rectangles for a divider drag frame from
// the anchors captured at gesture begin. Regions on the near side keep
// their origin and absorb the delta into their extent; regions on the far
// side shift their origin by the delta and give it back, so the combined
// extent across the divider is conserved.
func cascadeCandidates(d divider.Divider, anchors map[string]geom.Rect, delta int) map[string]geom.Rect {
	out := make(map[string]geom.Rect, len(anchors))

	for _, name := range d.Near {
		r := anchors[name]
		if d.Axis == geom.Vertical {
			r.W += delta
		} else {
			r.H += delta
		}
		out[name] = r
	}
	for _, name := range d.Far {
		r := anchors[name]
		if d.Axis == geom.Vertical {
			r.X += delta
			r.W -= delta
		} else {
			r.Y += delta
			r.H -= delta
		}
		out[name] = r
	}
	return out
}
