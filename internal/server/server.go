// Package server exposes one editor session over HTTP.
//
// The server is a host adapter for external collaborators: a renderer can
// poll the document and listen for change events, a dashboard can read
// collisions and diffs, and editing frontends can apply explicit edits and
// imports. It renders no pixels and speaks to no devices; it moves layout
// documents and geometry facts.
//
// The editor session is single-threaded, so every request that touches it
// holds the server's session mutex for its critical section. Event
// delivery to SSE subscribers happens outside the mutex and never blocks
// a commit.
package server

import (
	"bytes"
	"context"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/panekit/panekit/pkg/editor"
	"github.com/panekit/panekit/pkg/errors"
	"github.com/panekit/panekit/pkg/geom"
	"github.com/panekit/panekit/pkg/layout"
	"github.com/panekit/panekit/pkg/store"
	"github.com/panekit/panekit/pkg/workspace"
)

// Config assembles a server around one editing session.
type Config struct {
	// Workspace supplies persistence. Nil means an unpersisted workspace.
	Workspace *workspace.Workspace

	// Baseline is the initial layout document. Required.
	Baseline *layout.Document

	// Key is the store key for the override document and saves.
	Key string

	// Segments are the separator segments dividers derive from.
	Segments []geom.Segment

	// DisableSnap starts the session with grid snapping off.
	DisableSnap bool

	// Logger defaults to log.Default.
	Logger *log.Logger
}

// Server hosts one editor session behind an HTTP API.
type Server struct {
	mu     sync.Mutex
	ws     *workspace.Workspace
	ed     *workspace.Editing
	logger *log.Logger
	hub    *eventHub
}

// New loads the session through the workspace and builds the server.
// Geometry commits fan out to SSE subscribers via the session's change
// notification.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if cfg.Baseline == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "baseline document is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Workspace == nil {
		cfg.Workspace = workspace.New(nil, cfg.Logger)
	}

	s := &Server{
		ws:     cfg.Workspace,
		logger: cfg.Logger,
		hub:    newEventHub(),
	}

	ed, err := cfg.Workspace.LoadSession(ctx, cfg.Baseline, workspace.Options{
		Key:         cfg.Key,
		Segments:    cfg.Segments,
		DisableSnap: cfg.DisableSnap,
		OnChange:    s.hub.broadcast,
	})
	if err != nil {
		return nil, err
	}
	s.ed = ed
	return s, nil
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/session", s.handleSession)
		r.Get("/document", s.handleGetDocument)
		r.Put("/document", s.handlePutDocument)
		r.Get("/regions", s.handleRegions)
		r.Patch("/regions/{name}", s.handlePatchRegion)
		r.Post("/regions/{name}/reset", s.handleResetRegion)
		r.Post("/reset", s.handleResetAll)
		r.Post("/save", s.handleSave)
		r.Get("/collisions", s.handleCollisions)
		r.Get("/diff", s.handleDiff)
		r.Get("/dividers", s.handleDividers)
		r.Get("/events", s.handleEvents)
	})
	return r
}

// session returns the underlying editor session. Callers must hold s.mu.
func (s *Server) session() *editor.Session {
	return s.ed.Session
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	sess := s.session()
	selection, _ := sess.Selection()
	view := sessionView{
		ID:          s.ed.ID,
		Key:         s.ed.Key,
		Mode:        string(sess.Mode()),
		Selection:   selection,
		SnapEnabled: sess.SnapEnabled(),
		Canvas:      sess.Canvas(),
		GridSize:    sess.GridSize(),
		CreatedAt:   s.ed.CreatedAt,
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	var buf bytes.Buffer
	err := layout.WriteJSON(s.session().Export(), &buf)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	etag := `"` + store.Hash(buf.Bytes()) + `"`
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handlePutDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := layout.ReadJSON(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse document"))
		return
	}

	s.mu.Lock()
	err = s.session().Import(doc)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	s.logger.Info("document imported", "regions", doc.Regions.Len())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	regions := s.session().Regions()
	s.mu.Unlock()

	views := make([]regionView, len(regions))
	for i, reg := range regions {
		views[i] = regionView{Name: reg.Name, Rect: reg.Rect}
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handlePatchRegion(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var body struct {
		Rect *geom.Rect `json:"rect"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.Rect == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "rect is required"))
		return
	}

	s.mu.Lock()
	err := s.session().SetRegion(name, *body.Rect)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	s.logger.Info("region edited", "region", name, "rect", *body.Rect)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetRegion(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	s.mu.Lock()
	err := s.session().ResetRegion(name)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	s.logger.Info("region reset", "region", name)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetAll(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.session().ResetAll()
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	s.logger.Info("document reset")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.ws.SaveSession(r.Context(), s.ed)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCollisions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	collisions := s.session().Collisions()
	s.mu.Unlock()

	views := make([]collisionView, len(collisions))
	for i, c := range collisions {
		views[i] = collisionView{A: c.A, B: c.B}
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	changes := s.session().Diff()
	s.mu.Unlock()

	views := make([]changeView, len(changes))
	for i, c := range changes {
		views[i] = changeView{Name: c.Name, From: c.From, To: c.To, Added: c.Added, Removed: c.Removed}
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleDividers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	dividers := s.session().Dividers()
	s.mu.Unlock()

	views := make([]dividerView, len(dividers))
	for i, d := range dividers {
		views[i] = dividerView{
			Axis:     string(d.Axis),
			Position: d.Position,
			Span:     spanView{Start: d.Span.Start, End: d.Span.End},
			Near:     d.Near,
			Far:      d.Far,
		}
	}
	writeJSON(w, http.StatusOK, views)
}
