// Package editor implements the interactive editing session for a layout
// document: mode and selection state, pointer and key handling, and the
// drag, resize, and divider-cascade gestures that mutate the geometry.
//
// # Session
//
// A [Session] owns one validated region store, the pristine baseline
// snapshot taken at construction, and the separator segments dividers are
// derived from. Hosts feed it [PointerEvent] and [KeyEvent] values already
// translated into canvas coordinates and re-read the geometry whenever the
// change callback fires. All methods are synchronous and single-threaded:
// one event is fully processed before the next is accepted, and a
// multi-threaded host must serialize access to the whole session.
//
// # Modes
//
// In [ModeRegions] the pointer selects, drags, and resizes individual
// regions: a press on the selected region's handles starts a resize, on its
// body a drag; a press on another region selects it and immediately starts
// a drag; a press on empty space deselects. In [ModeDividers] only divider
// lines respond, and dragging one cascade-resizes every region touching it.
//
// # Commit Discipline
//
// Gestures capture an anchor at pointer-down and compute a fresh candidate
// from it on every move. Each candidate is validated and, when valid,
// committed live into the store; an invalid frame is dropped silently and
// the last committed state stays. There is consequently no cancel: the ways
// back are [Session.ResetRegion] and [Session.ResetAll], which restore from
// the baseline. Divider cascades validate all touched regions first and
// commit all or nothing, writing the divider's new position back into its
// source segment on success.
//
// One-shot edits ([Session.SetRegion], [Session.Import]) are different:
// their validation failures are returned as structured field-level error
// lists and block the mutation entirely.
package editor
