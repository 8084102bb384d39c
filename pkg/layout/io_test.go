package layout

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleDoc = `{
  "canvas": {"w": 250, "h": 122},
  "gridSize": 4,
  "rects": {
    "clock": [6, 6, 118, 28],
    "status": [131, 6, 90, 28],
    "footer": [6, 90, 215, 24]
  }
}`

func TestReadJSON(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	if doc.Canvas.W != 250 || doc.Canvas.H != 122 {
		t.Errorf("Canvas = %+v, want 250x122", doc.Canvas)
	}
	if doc.GridSize != 4 {
		t.Errorf("GridSize = %d, want 4", doc.GridSize)
	}

	want := []string{"clock", "status", "footer"}
	if diff := cmp.Diff(want, doc.Regions.Names()); diff != "" {
		t.Errorf("region order mismatch (-want +got):\n%s", diff)
	}
}

func TestReadJSONWithoutCanvas(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(`{"rects": {"a": [0, 0, 10, 10]}}`))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if !doc.Canvas.IsZero() {
		t.Errorf("Canvas = %+v, want zero for absent canvas", doc.Canvas)
	}
	if doc.GridSize != 0 {
		t.Errorf("GridSize = %d, want 0 for absent gridSize", doc.GridSize)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"malformed", `{"rects": `},
		{"rect not array", `{"rects": {"a": "nope"}}`},
		{"rect wrong length", `{"rects": {"a": [1, 2, 3, 4, 5]}}`},
		{"duplicate region", `{"rects": {"a": [0,0,10,10], "a": [5,5,10,10]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.src)); err == nil {
				t.Errorf("ReadJSON(%s) succeeded, want error", tt.src)
			}
		})
	}
}

func TestImportExportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.json")

	doc, err := ReadJSON(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	if err := ExportJSON(doc, path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	again, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}

	if !doc.Equal(again) {
		t.Error("round trip changed the document")
	}
	if !doc.Regions.Equal(again.Regions) {
		t.Error("round trip changed the region map")
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Error("ImportJSON() on missing file succeeded, want error")
	}
}
