package server

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/panekit/panekit/pkg/geom"
	"github.com/panekit/panekit/pkg/layout"
	"github.com/panekit/panekit/pkg/store"
	"github.com/panekit/panekit/pkg/workspace"
)

func testBaseline() *layout.Document {
	doc := layout.NewDocument(geom.Size{W: 250, H: 122})
	doc.Regions.Set("a", geom.Rect{X: 6, Y: 36, W: 118, H: 28})
	doc.Regions.Set("b", geom.Rect{X: 131, Y: 36, W: 90, H: 28})
	return doc
}

func newTestServer(t *testing.T, st store.Store, key string) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})

	srv, err := New(context.Background(), Config{
		Workspace: workspace.New(st, logger),
		Baseline:  testBaseline(),
		Key:       key,
		Segments:  []geom.Segment{{X1: 125, Y1: 18, X2: 125, Y2: 95}},
		Logger:    logger,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("NewRequest error: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s error: %v", method, url, err)
	}
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	resp.Body.Close()
	return body
}

func getRegions(t *testing.T, ts *httptest.Server) []regionView {
	t.Helper()
	resp := do(t, http.MethodGet, ts.URL+"/api/regions", "")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/regions status = %d", resp.StatusCode)
	}
	var views []regionView
	if err := json.NewDecoder(resp.Body).Decode(&views); err != nil {
		t.Fatalf("decode regions: %v", err)
	}
	return views
}

func TestGetDocument(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore(), "")

	resp := do(t, http.MethodGet, ts.URL+"/api/document", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatal("response has no ETag")
	}

	doc, err := layout.ReadJSON(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("ReadJSON error: %v", err)
	}
	if doc.Canvas != (geom.Size{W: 250, H: 122}) {
		t.Errorf("canvas = %+v", doc.Canvas)
	}
	if names := doc.Regions.Names(); len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("region names = %v, want [a b]", names)
	}

	// Conditional request with the returned ETag
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/document", nil)
	req.Header.Set("If-None-Match", etag)
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("conditional GET error: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotModified {
		t.Errorf("conditional GET status = %d, want 304", resp2.StatusCode)
	}
}

func TestPutDocumentReplacesRegions(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore(), "")

	resp := do(t, http.MethodPut, ts.URL+"/api/document", `{"rects":{"solo":[10, 10, 40, 40]}}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("PUT status = %d, want 204", resp.StatusCode)
	}

	regions := getRegions(t, ts)
	if len(regions) != 1 || regions[0].Name != "solo" {
		t.Fatalf("regions after import = %+v, want [solo]", regions)
	}

	// The baseline survives the import: a full reset restores it.
	resp = do(t, http.MethodPost, ts.URL+"/api/reset", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("reset status = %d, want 204", resp.StatusCode)
	}
	regions = getRegions(t, ts)
	if len(regions) != 2 || regions[0].Name != "a" {
		t.Errorf("regions after reset = %+v, want baseline [a b]", regions)
	}
}

func TestPutDocumentValidationError(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore(), "")

	resp := do(t, http.MethodPut, ts.URL+"/api/document", `{"rects":{"off":[500, 0, 40, 40]}}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}

	body := decodeError(t, resp)
	if len(body.Error.Fields) == 0 {
		t.Fatal("error body carries no field list")
	}
	field := body.Error.Fields[0]
	if field.Region != "off" || field.Field != "w" {
		t.Errorf("field = %+v, want region off field w", field)
	}

	// Current state untouched
	if regions := getRegions(t, ts); len(regions) != 2 {
		t.Errorf("regions after rejected import = %d, want 2", len(regions))
	}
}

func TestPutDocumentMalformed(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore(), "")

	resp := do(t, http.MethodPut, ts.URL+"/api/document", `{not json`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestPatchRegion(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore(), "")

	resp := do(t, http.MethodPatch, ts.URL+"/api/regions/a", `{"rect":[10, 40, 118, 28]}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("PATCH status = %d, want 204", resp.StatusCode)
	}
	if regions := getRegions(t, ts); regions[0].Rect != (geom.Rect{X: 10, Y: 40, W: 118, H: 28}) {
		t.Errorf("region a = %+v after patch", regions[0].Rect)
	}

	// Unknown region
	resp = do(t, http.MethodPatch, ts.URL+"/api/regions/ghost", `{"rect":[0, 0, 10, 10]}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("PATCH ghost status = %d, want 404", resp.StatusCode)
	}

	// Field-level validation failure
	resp = do(t, http.MethodPatch, ts.URL+"/api/regions/a", `{"rect":[-1, 40, 118, 28]}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("PATCH invalid status = %d, want 422", resp.StatusCode)
	}
	body := decodeError(t, resp)
	if len(body.Error.Fields) == 0 || body.Error.Fields[0].Field != "x" {
		t.Errorf("fields = %+v, want x failure", body.Error.Fields)
	}
	if !strings.Contains(body.Error.Fields[0].Message, ">= 0") {
		t.Errorf("message %q should state the >= 0 constraint", body.Error.Fields[0].Message)
	}

	// Missing rect
	resp = do(t, http.MethodPatch, ts.URL+"/api/regions/a", `{}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("PATCH without rect status = %d, want 400", resp.StatusCode)
	}
}

func TestResetRegionEndpoint(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore(), "")

	resp := do(t, http.MethodPatch, ts.URL+"/api/regions/a", `{"rect":[40, 40, 118, 28]}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("PATCH status = %d", resp.StatusCode)
	}

	resp = do(t, http.MethodPost, ts.URL+"/api/regions/a/reset", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("reset status = %d, want 204", resp.StatusCode)
	}
	if regions := getRegions(t, ts); regions[0].Rect != (geom.Rect{X: 6, Y: 36, W: 118, H: 28}) {
		t.Errorf("region a = %+v after reset, want baseline", regions[0].Rect)
	}

	resp = do(t, http.MethodPost, ts.URL+"/api/regions/ghost/reset", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("reset ghost status = %d, want 404", resp.StatusCode)
	}
}

func TestCollisionsEndpoint(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore(), "")

	resp := do(t, http.MethodGet, ts.URL+"/api/collisions", "")
	var collisions []collisionView
	if err := json.NewDecoder(resp.Body).Decode(&collisions); err != nil {
		t.Fatalf("decode collisions: %v", err)
	}
	resp.Body.Close()
	if len(collisions) != 0 {
		t.Fatalf("baseline collisions = %+v, want none", collisions)
	}

	// Move b onto a
	resp = do(t, http.MethodPatch, ts.URL+"/api/regions/b", `{"rect":[100, 36, 90, 28]}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("PATCH status = %d", resp.StatusCode)
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/collisions", "")
	if err := json.NewDecoder(resp.Body).Decode(&collisions); err != nil {
		t.Fatalf("decode collisions: %v", err)
	}
	resp.Body.Close()
	if len(collisions) != 1 || collisions[0].A != "a" || collisions[0].B != "b" {
		t.Errorf("collisions = %+v, want [{a b}]", collisions)
	}
}

func TestDiffEndpoint(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore(), "")

	resp := do(t, http.MethodPatch, ts.URL+"/api/regions/a", `{"rect":[10, 36, 118, 28]}`)
	resp.Body.Close()

	resp = do(t, http.MethodGet, ts.URL+"/api/diff", "")
	var changes []changeView
	if err := json.NewDecoder(resp.Body).Decode(&changes); err != nil {
		t.Fatalf("decode diff: %v", err)
	}
	resp.Body.Close()

	if len(changes) != 1 {
		t.Fatalf("diff = %+v, want one change", changes)
	}
	c := changes[0]
	if c.Name != "a" || c.From.X != 6 || c.To.X != 10 || c.Added || c.Removed {
		t.Errorf("change = %+v, want a moved 6 to 10", c)
	}
}

func TestDividersEndpoint(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore(), "")

	resp := do(t, http.MethodGet, ts.URL+"/api/dividers", "")
	var dividers []dividerView
	if err := json.NewDecoder(resp.Body).Decode(&dividers); err != nil {
		t.Fatalf("decode dividers: %v", err)
	}
	resp.Body.Close()

	if len(dividers) != 1 {
		t.Fatalf("dividers = %+v, want one", dividers)
	}
	d := dividers[0]
	if d.Axis != "vertical" || d.Position != 125 {
		t.Errorf("divider = %+v, want vertical at 125", d)
	}
	if len(d.Near) != 1 || d.Near[0] != "a" || len(d.Far) != 1 || d.Far[0] != "b" {
		t.Errorf("divider sides = near %v far %v, want [a]/[b]", d.Near, d.Far)
	}
}

func TestSaveEndpoint(t *testing.T) {
	st := store.NewMemoryStore()
	ts := newTestServer(t, st, "main")

	resp := do(t, http.MethodPatch, ts.URL+"/api/regions/a", `{"rect":[40, 36, 118, 28]}`)
	resp.Body.Close()

	resp = do(t, http.MethodPost, ts.URL+"/api/save", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("save status = %d, want 204", resp.StatusCode)
	}

	data, found, err := st.Get(context.Background(), "main")
	if err != nil || !found {
		t.Fatalf("store.Get after save: found=%v err=%v", found, err)
	}
	saved, err := layout.ReadJSON(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("saved document unreadable: %v", err)
	}
	if rect, _ := saved.Regions.Get("a"); rect.X != 40 {
		t.Errorf("saved a.X = %d, want 40", rect.X)
	}
}

func TestSaveWithoutKey(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore(), "")

	resp := do(t, http.MethodPost, ts.URL+"/api/save", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("save without key status = %d, want 400", resp.StatusCode)
	}
}

func TestSessionEndpoint(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore(), "main")

	resp := do(t, http.MethodGet, ts.URL+"/api/session", "")
	var view sessionView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	resp.Body.Close()

	if _, err := uuid.Parse(view.ID); err != nil {
		t.Errorf("session id %q is not a uuid", view.ID)
	}
	if view.Key != "main" || view.Mode != "regions" || !view.SnapEnabled {
		t.Errorf("session view = %+v", view)
	}
	if view.Canvas != (geom.Size{W: 250, H: 122}) || view.GridSize != 4 {
		t.Errorf("session geometry = canvas %+v grid %d", view.Canvas, view.GridSize)
	}
}

func TestEventsStream(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore(), "")

	resp, err := http.Get(ts.URL + "/api/events")
	if err != nil {
		t.Fatalf("GET /api/events error: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type = %q", ct)
	}

	lines := make(chan string, 16)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	waitFor := func(want string) {
		t.Helper()
		deadline := time.After(2 * time.Second)
		for {
			select {
			case line, ok := <-lines:
				if !ok {
					t.Fatalf("stream closed before %q", want)
				}
				if line == want {
					return
				}
			case <-deadline:
				t.Fatalf("timed out waiting for %q", want)
			}
		}
	}

	waitFor(": connected")

	r := do(t, http.MethodPatch, ts.URL+"/api/regions/a", `{"rect":[10, 36, 118, 28]}`)
	r.Body.Close()

	waitFor("event: geometry-changed")
}
