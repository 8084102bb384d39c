// Package workspace composes an editor session with a document store.
//
// A Workspace owns the storage and logging concerns around editing: it
// builds sessions from a baseline document, applies a previously saved
// override from the store when one exists, and writes exports back. Both
// CLI and API hosts use it to avoid duplicating persistence logic.
package workspace

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/panekit/panekit/pkg/editor"
	"github.com/panekit/panekit/pkg/errors"
	"github.com/panekit/panekit/pkg/geom"
	"github.com/panekit/panekit/pkg/layout"
	"github.com/panekit/panekit/pkg/store"
)

// Workspace encapsulates session lifecycle with persistence.
//
// The Workspace is stateless except for the store and logger - it doesn't
// track the sessions it created. Multiple goroutines can safely use the
// same Workspace, though each editor session remains single-threaded.
type Workspace struct {
	Store  store.Store
	Logger *log.Logger
}

// New creates a workspace with the given store.
// If st is nil, a NullStore is used (persistence disabled).
func New(st store.Store, logger *log.Logger) *Workspace {
	if st == nil {
		st = store.NewNullStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Workspace{
		Store:  st,
		Logger: logger,
	}
}

// Options configures session creation.
type Options struct {
	// Key is the store key for the override document and for saves.
	// Empty means the session is not persisted.
	Key string

	// Segments are the separator segments dividers derive from.
	Segments []geom.Segment

	// DisableSnap starts the session with grid snapping off.
	DisableSnap bool

	// HandleMargin, DividerTolerance, and AdjacencyTolerance tune
	// hit-testing and divider derivation. Zero means the editor defaults.
	HandleMargin       int
	DividerTolerance   int
	AdjacencyTolerance int

	// OnChange is forwarded to the editor session.
	OnChange func()
}

// Editing is a loaded session with its workspace bookkeeping.
type Editing struct {
	// ID identifies this editing session in logs and APIs.
	ID string

	// Key is the store key, empty when the session is unkeyed.
	Key string

	// Session is the live editor session.
	Session *editor.Session

	// OverrideApplied reports whether a stored override document was
	// found and applied over the baseline.
	OverrideApplied bool

	// CreatedAt is when the session was loaded.
	CreatedAt time.Time
}

// LoadSession builds an editor session from the baseline document and, when
// opts.Key names a stored override, applies it with import semantics. A
// missing, unreadable, or invalid override is logged and skipped: the
// session then starts from the pristine baseline, which is retained for
// reset and diff in every case.
func (w *Workspace) LoadSession(ctx context.Context, baseline *layout.Document, opts Options) (*Editing, error) {
	sess, err := editor.NewSession(baseline, editor.Options{
		Segments:           opts.Segments,
		DisableSnap:        opts.DisableSnap,
		HandleMargin:       opts.HandleMargin,
		DividerTolerance:   opts.DividerTolerance,
		AdjacencyTolerance: opts.AdjacencyTolerance,
		OnChange:           opts.OnChange,
	})
	if err != nil {
		return nil, err
	}

	ed := &Editing{
		ID:        uuid.New().String(),
		Key:       opts.Key,
		Session:   sess,
		CreatedAt: time.Now().UTC(),
	}

	if opts.Key != "" {
		data, found, err := w.Store.Get(ctx, opts.Key)
		switch {
		case err != nil:
			w.Logger.Warn("loading stored layout failed", "key", opts.Key, "err", err)
		case found:
			override, err := layout.ReadJSON(bytes.NewReader(data))
			if err != nil {
				w.Logger.Warn("stored layout is unreadable", "key", opts.Key, "err", err)
				break
			}
			if err := sess.Import(override); err != nil {
				w.Logger.Warn("stored layout is invalid", "key", opts.Key, "err", err)
				break
			}
			ed.OverrideApplied = true
		}
	}

	w.Logger.Info("session loaded",
		"session", ed.ID,
		"key", opts.Key,
		"regions", len(sess.Regions()),
		"override", ed.OverrideApplied)
	return ed, nil
}

// SaveSession exports the session's current document and writes it to the
// store under the session's key. Transient backend failures are retried.
func (w *Workspace) SaveSession(ctx context.Context, ed *Editing) error {
	if ed.Key == "" {
		return errors.New(errors.ErrCodeInvalidInput, "session has no store key")
	}

	var buf bytes.Buffer
	if err := layout.WriteJSON(ed.Session.Export(), &buf); err != nil {
		return err
	}
	data := buf.Bytes()

	err := store.RetryWithBackoff(ctx, func() error {
		return w.Store.Set(ctx, ed.Key, data)
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save layout %q", ed.Key)
	}

	w.Logger.Info("session saved",
		"session", ed.ID,
		"key", ed.Key,
		"bytes", len(data),
		"hash", store.Hash(data)[:12])
	return nil
}

// Close releases resources held by the workspace (primarily the store).
func (w *Workspace) Close() error {
	if w.Store != nil {
		return w.Store.Close()
	}
	return nil
}
