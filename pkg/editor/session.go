package editor

import (
	"context"

	"github.com/panekit/panekit/pkg/divider"
	"github.com/panekit/panekit/pkg/errors"
	"github.com/panekit/panekit/pkg/geom"
	"github.com/panekit/panekit/pkg/layout"
	"github.com/panekit/panekit/pkg/observe"
)

// Mode selects what the pointer interacts with.
type Mode string

// Editing modes.
const (
	ModeRegions  Mode = "regions"
	ModeDividers Mode = "dividers"
)

// Options configures a new session.
type Options struct {
	// Segments are the separator line segments dividers are derived from.
	// The session takes an independent copy.
	Segments []geom.Segment

	// DisableSnap starts the session with grid snapping off.
	DisableSnap bool

	// HandleMargin is the hit-test half-size around resize handles.
	// Zero or negative means DefaultHandleMargin.
	HandleMargin int

	// DividerTolerance is the grab distance for divider presses.
	// Zero or negative means DefaultDividerTolerance.
	DividerTolerance int

	// AdjacencyTolerance is the edge-to-separator matching distance for
	// divider derivation. Zero or negative means divider.DefaultTolerance.
	AdjacencyTolerance int

	// OnChange is invoked after every committed geometry mutation, with no
	// payload: observers re-read the session. May be nil.
	OnChange func()
}

// Session is the explicit state object composing the region store, the
// baseline snapshot, derived dividers, and the gesture state machine.
// It is not safe for concurrent use.
type Session struct {
	store    *layout.Store
	baseline *layout.Document
	segments []geom.Segment

	mode        Mode
	selection   string
	snapEnabled bool

	handleMargin int
	dividerTol   int
	adjacencyTol int

	g          gesture
	buttonDown bool

	onChange func()
}

// NewSession builds a session from an initial document. The document is
// validated as a self-contained layout; the session's baseline snapshot is
// taken from the resulting store state, with defaults applied, so a later
// ResetAll restores exactly this state. A previously saved override
// document is applied separately via Import, which validates it the same
// way and leaves the baseline untouched.
func NewSession(doc *layout.Document, opts Options) (*Session, error) {
	store, err := layout.NewStore(doc)
	if err != nil {
		return nil, err
	}

	s := &Session{
		store:        store,
		segments:     append([]geom.Segment(nil), opts.Segments...),
		mode:         ModeRegions,
		snapEnabled:  !opts.DisableSnap,
		handleMargin: opts.HandleMargin,
		dividerTol:   opts.DividerTolerance,
		adjacencyTol: opts.AdjacencyTolerance,
		g:            gesture{kind: GestureIdle},
		onChange:     opts.OnChange,
	}
	if s.handleMargin <= 0 {
		s.handleMargin = DefaultHandleMargin
	}
	if s.dividerTol <= 0 {
		s.dividerTol = DefaultDividerTolerance
	}
	if s.adjacencyTol <= 0 {
		s.adjacencyTol = divider.DefaultTolerance
	}
	s.baseline = store.Document()
	return s, nil
}

// Mode returns the current editing mode.
func (s *Session) Mode() Mode { return s.mode }

// SetMode switches the editing mode. An active gesture ends; committed
// geometry stays as it is.
func (s *Session) SetMode(mode Mode) {
	if mode != s.mode {
		s.endGesture()
		s.mode = mode
	}
}

// Selection returns the selected region name, if any.
func (s *Session) Selection() (string, bool) {
	return s.selection, s.selection != ""
}

// Select marks a region as selected without starting a gesture.
func (s *Session) Select(name string) error {
	if _, ok := s.store.Get(name); !ok {
		return errors.New(errors.ErrCodeRegionNotFound, "region %q not found", name)
	}
	s.selection = name
	return nil
}

// Deselect clears the selection.
func (s *Session) Deselect() { s.selection = "" }

// SnapEnabled reports whether grid snapping is on.
func (s *Session) SnapEnabled() bool { return s.snapEnabled }

// SetSnapEnabled toggles grid snapping. It affects the next gesture frame;
// anchors of an active gesture are unchanged.
func (s *Session) SetSnapEnabled(on bool) { s.snapEnabled = on }

// Canvas returns the canvas dimensions.
func (s *Session) Canvas() geom.Size { return s.store.Canvas() }

// GridSize returns the snap grid spacing.
func (s *Session) GridSize() int { return s.store.GridSize() }

// Gesture returns the kind of the active gesture.
func (s *Session) Gesture() GestureKind { return s.g.kind }

// Regions returns (name, rect) pairs in stacking order.
func (s *Session) Regions() []layout.Region { return s.store.All() }

// Region returns the rectangle for name and whether the region exists.
func (s *Session) Region(name string) (geom.Rect, bool) { return s.store.Get(name) }

// Segments returns a copy of the separator segments, reflecting any
// divider write-backs committed so far.
func (s *Session) Segments() []geom.Segment {
	return append([]geom.Segment(nil), s.segments...)
}

// SetSegments replaces the separator segments. An active divider gesture
// ends, since its captured source index would no longer be meaningful.
func (s *Session) SetSegments(segments []geom.Segment) {
	if s.g.kind == GestureDraggingDivider {
		s.endGesture()
	}
	s.segments = append([]geom.Segment(nil), segments...)
}

// Dividers derives the current dividers from the regions and segments.
// The result is computed fresh on every call and never cached, so it is
// always consistent with the store.
func (s *Session) Dividers() []divider.Divider {
	return divider.Derive(s.store.All(), s.segments, s.store.Canvas(), s.adjacencyTol)
}

// Collisions returns the overlapping region pairs in the current geometry.
func (s *Session) Collisions() []layout.Collision {
	return layout.Collisions(s.store.All())
}

// Diff returns the regions whose rectangles differ from the baseline.
func (s *Session) Diff() []layout.Change {
	return layout.Diff(s.baseline.Regions, s.store.Document().Regions)
}

// SetRegion applies an explicit one-shot edit to an existing region. The
// rectangle passes interactive validation; on failure the region is
// unchanged and the error carries the field-level failures as its cause.
func (s *Session) SetRegion(name string, rect geom.Rect) error {
	if _, ok := s.store.Get(name); !ok {
		return errors.New(errors.ErrCodeRegionNotFound, "region %q not found", name)
	}
	if err := s.store.Set(name, rect); err != nil {
		return err
	}
	s.notify()
	return nil
}

// Import replaces the current region map with the given document, after
// validating it against the session canvas. Canvas and grid size carry
// over from the current state when the document omits them. On failure the
// session is untouched and the error carries the field-level failures; on
// success the baseline stays as it was, so diff and reset still compare
// against the original state.
func (s *Session) Import(doc *layout.Document) error {
	err := s.store.Replace(doc)

	count := 0
	if doc.Regions != nil {
		count = doc.Regions.Len()
	}
	observe.Session().OnImport(context.Background(), count, err)

	if err != nil {
		return err
	}
	s.endGesture()
	s.fixSelection()
	s.notify()
	return nil
}

// Export returns the current document, independent of the session.
func (s *Session) Export() *layout.Document {
	doc := s.store.Document()
	observe.Session().OnExport(context.Background(), doc.Regions.Len())
	return doc
}

// Baseline returns a copy of the baseline snapshot.
func (s *Session) Baseline() *layout.Document { return s.baseline.Clone() }

// ResetRegion restores one region from the baseline. A region the baseline
// does not know returns REGION_NOT_FOUND; a region the current map lost to
// an import is re-created.
func (s *Session) ResetRegion(name string) error {
	rect, ok := s.baseline.Regions.Get(name)
	if !ok {
		return errors.New(errors.ErrCodeRegionNotFound, "region %q not in baseline", name)
	}
	if err := s.store.Restore(name, rect); err != nil {
		return err
	}
	observe.Session().OnReset(context.Background(), name)
	s.notify()
	return nil
}

// ResetAll restores the whole document, canvas and grid included, to the
// baseline snapshot.
func (s *Session) ResetAll() error {
	if err := s.store.Replace(s.baseline.Clone()); err != nil {
		return err
	}
	s.endGesture()
	s.fixSelection()
	observe.Session().OnReset(context.Background(), "document")
	s.notify()
	return nil
}

// HandlePointer processes one pointer sample. A press edge routes through
// hit-testing and may begin a gesture, movement with the button held feeds
// the active gesture one candidate frame, and a release edge ends it.
func (s *Session) HandlePointer(ev PointerEvent) {
	p := geom.Point{X: ev.X, Y: ev.Y}

	switch {
	case ev.PrimaryButtonDown && !s.buttonDown:
		s.buttonDown = true
		s.beginGesture(p)
	case ev.PrimaryButtonDown && s.buttonDown:
		if s.g.kind != GestureIdle {
			s.moveGesture(p)
		}
	case !ev.PrimaryButtonDown && s.buttonDown:
		s.buttonDown = false
		s.endGesture()
	}
}

// HandleKey processes one key press. Escape ends the active gesture and
// clears the selection. In regions mode with a selection, arrows nudge the
// region by one grid step (one unit when snapping is off); with shift held
// they grow or shrink it by one step along the arrow's axis, never below
// the minimum size. An invalid nudge is dropped silently, like a gesture
// frame. Dividers mode ignores arrows.
func (s *Session) HandleKey(ev KeyEvent) {
	if ev.Key == KeyEscape {
		s.endGesture()
		s.selection = ""
		return
	}

	if s.mode != ModeRegions || s.selection == "" {
		return
	}
	rect, ok := s.store.Get(s.selection)
	if !ok {
		return
	}

	var dx, dy int
	switch ev.Key {
	case KeyUp:
		dy = -1
	case KeyDown:
		dy = 1
	case KeyLeft:
		dx = -1
	case KeyRight:
		dx = 1
	default:
		return
	}

	step := 1
	if s.snapEnabled {
		if grid := s.store.GridSize(); grid > 1 {
			step = grid
		}
	}

	cand := rect
	if ev.ShiftHeld {
		cand.W += dx * step
		cand.H += dy * step
		if cand.W < layout.MinSize {
			cand.W = layout.MinSize
		}
		if cand.H < layout.MinSize {
			cand.H = layout.MinSize
		}
	} else {
		cand.X += dx * step
		cand.Y += dy * step
	}
	if cand == rect {
		return
	}

	if err := s.store.Set(s.selection, cand); err == nil {
		s.notify()
	}
}

// beginGesture routes a pointer press through hit-testing for the current
// mode and captures the gesture anchor.
func (s *Session) beginGesture(p geom.Point) {
	switch s.mode {
	case ModeDividers:
		d, ok := divider.At(p, s.Dividers(), s.dividerTol)
		if !ok {
			return
		}
		anchors := make(map[string]geom.Rect, len(d.Near)+len(d.Far))
		for _, name := range d.Near {
			anchors[name], _ = s.store.Get(name)
		}
		for _, name := range d.Far {
			anchors[name], _ = s.store.Get(name)
		}
		s.g = gesture{kind: GestureDraggingDivider, div: d, anchors: anchors, pointer: p}

	case ModeRegions:
		if s.selection != "" {
			if rect, ok := s.store.Get(s.selection); ok {
				if h := HandleAt(p, rect, s.handleMargin); h != HandleNone {
					s.g = gesture{kind: GestureResizingRegion, region: s.selection, handle: h, anchor: rect, pointer: p}
					break
				}
				if rect.Contains(p) {
					s.g = gesture{kind: GestureDraggingRegion, region: s.selection, anchor: rect, pointer: p}
					break
				}
			}
		}
		if name, ok := RegionAt(p, s.store.All()); ok {
			rect, _ := s.store.Get(name)
			s.selection = name
			s.g = gesture{kind: GestureDraggingRegion, region: name, anchor: rect, pointer: p}
			break
		}
		s.selection = ""
	}

	if s.g.kind != GestureIdle {
		observe.Session().OnGestureBegin(context.Background(), s.g.hookKind(), s.g.target())
	}
}

// moveGesture computes and commits one candidate frame. Invalid candidates
// are dropped without surfacing an error: the user is mid-interaction and
// the last committed state is still valid.
func (s *Session) moveGesture(p geom.Point) {
	s.g.frames++
	dx := p.X - s.g.pointer.X
	dy := p.Y - s.g.pointer.Y
	snap := s.snapFunc()
	canvas := s.store.Canvas()

	switch s.g.kind {
	case GestureDraggingRegion:
		cand := dragCandidate(s.g.anchor, dx, dy, snap, canvas)
		if s.store.Set(s.g.region, cand) == nil {
			s.g.commits++
			s.notify()
		}

	case GestureResizingRegion:
		cand := resizeCandidate(s.g.anchor, s.g.handle, dx, dy, snap, canvas)
		if s.store.Set(s.g.region, cand) == nil {
			s.g.commits++
			s.notify()
		}

	case GestureDraggingDivider:
		pos := snap(p.X)
		if s.g.div.Axis != geom.Vertical {
			pos = snap(p.Y)
		}
		delta := pos - s.g.div.Position

		cands := cascadeCandidates(s.g.div, s.g.anchors, delta)
		if s.store.SetAll(cands) == nil {
			if idx := s.g.div.SourceIndex; idx >= 0 && idx < len(s.segments) {
				s.segments[idx] = s.g.div.MoveSource(pos)
			}
			s.g.commits++
			s.notify()
		}
	}
}

// endGesture closes the active gesture. Live commits make this purely a
// bookkeeping step; nothing is rolled back or finalized.
func (s *Session) endGesture() {
	if s.g.kind == GestureIdle {
		return
	}
	observe.Session().OnGestureEnd(context.Background(), s.g.hookKind(), s.g.target(), s.g.frames, s.g.commits)
	s.g = gesture{kind: GestureIdle}
}

func (s *Session) snapFunc() func(int) int {
	if !s.snapEnabled {
		return func(v int) int { return v }
	}
	grid := s.store.GridSize()
	return func(v int) int { return snapTo(v, grid) }
}

func (s *Session) fixSelection() {
	if s.selection == "" {
		return
	}
	if _, ok := s.store.Get(s.selection); !ok {
		s.selection = ""
	}
}

func (s *Session) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}
