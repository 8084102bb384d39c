package layout

import (
	stderrors "errors"
	"testing"

	"github.com/panekit/panekit/pkg/errors"
	"github.com/panekit/panekit/pkg/geom"
)

func testDocument() *Document {
	doc := NewDocument(geom.Size{W: 250, H: 122})
	doc.Regions.Set("a", geom.Rect{X: 6, Y: 36, W: 118, H: 28})
	doc.Regions.Set("b", geom.Rect{X: 131, Y: 36, W: 90, H: 28})
	return doc
}

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(testDocument())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return s
}

func TestNewStoreRejectsInvalidDocument(t *testing.T) {
	doc := testDocument()
	doc.Regions.Set("bad", geom.Rect{X: -1, Y: 0, W: 10, H: 10})

	_, err := NewStore(doc)
	if err == nil {
		t.Fatal("NewStore() with invalid region succeeded, want error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidDocument)
	}

	var verrs ValidationErrors
	if !stderrors.As(err, &verrs) {
		t.Fatalf("error %v does not carry ValidationErrors", err)
	}
	if len(verrs) == 0 {
		t.Error("ValidationErrors is empty, want field errors")
	}
}

func TestStoreSet(t *testing.T) {
	s := testStore(t)

	if err := s.Set("a", geom.Rect{X: 10, Y: 36, W: 118, H: 28}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if rect, _ := s.Get("a"); rect.X != 10 {
		t.Errorf("Get(a).X = %d, want 10", rect.X)
	}
}

func TestStoreSetRejectsAndKeepsState(t *testing.T) {
	s := testStore(t)
	before, _ := s.Get("a")

	tests := []struct {
		name string
		rect geom.Rect
	}{
		{"negative x", geom.Rect{X: -1, Y: 36, W: 118, H: 28}},
		{"below min width", geom.Rect{X: 6, Y: 36, W: 7, H: 28}},
		{"below min height", geom.Rect{X: 6, Y: 36, W: 118, H: 7}},
		{"past right edge", geom.Rect{X: 200, Y: 36, W: 118, H: 28}},
		{"past bottom edge", geom.Rect{X: 6, Y: 100, W: 118, H: 28}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Set("a", tt.rect)
			if err == nil {
				t.Fatalf("Set(%+v) succeeded, want error", tt.rect)
			}
			if !errors.Is(err, errors.ErrCodeInvalidRect) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidRect)
			}
			if got, _ := s.Get("a"); got != before {
				t.Errorf("rect mutated to %+v after rejected Set, want %+v", got, before)
			}
		})
	}
}

func TestStoreSetNewRegionAppends(t *testing.T) {
	s := testStore(t)

	if err := s.Set("c", geom.Rect{X: 6, Y: 70, W: 50, H: 20}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	names := s.Names()
	if len(names) != 3 || names[2] != "c" {
		t.Errorf("Names() = %v, want c appended last", names)
	}
}

func TestStoreSetAllAtomic(t *testing.T) {
	s := testStore(t)
	beforeA, _ := s.Get("a")
	beforeB, _ := s.Get("b")

	// One valid and one invalid candidate: nothing may change.
	err := s.SetAll(map[string]geom.Rect{
		"a": {X: 6, Y: 36, W: 133, H: 28},
		"b": {X: 146, Y: 36, W: 5, H: 28},
	})
	if err == nil {
		t.Fatal("SetAll() with invalid candidate succeeded, want error")
	}
	if got, _ := s.Get("a"); got != beforeA {
		t.Errorf("region a mutated to %+v after rejected SetAll", got)
	}
	if got, _ := s.Get("b"); got != beforeB {
		t.Errorf("region b mutated to %+v after rejected SetAll", got)
	}

	// All-valid batch commits.
	err = s.SetAll(map[string]geom.Rect{
		"a": {X: 6, Y: 36, W: 133, H: 28},
		"b": {X: 146, Y: 36, W: 75, H: 28},
	})
	if err != nil {
		t.Fatalf("SetAll() error = %v", err)
	}
	if got, _ := s.Get("a"); got.W != 133 {
		t.Errorf("region a.W = %d, want 133", got.W)
	}
	if got, _ := s.Get("b"); got.X != 146 {
		t.Errorf("region b.X = %d, want 146", got.X)
	}
}

func TestStoreSetAllUnknownRegion(t *testing.T) {
	s := testStore(t)

	err := s.SetAll(map[string]geom.Rect{"ghost": {X: 0, Y: 0, W: 10, H: 10}})
	if err == nil {
		t.Fatal("SetAll() with unknown region succeeded, want error")
	}
	if !errors.Is(err, errors.ErrCodeRegionNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeRegionNotFound)
	}
}

func TestStoreRestoreAllowsSmallRects(t *testing.T) {
	s := testStore(t)

	// Interactive gate rejects a 4x4 rect, the restore path accepts it.
	if err := s.Set("a", geom.Rect{X: 0, Y: 0, W: 4, H: 4}); err == nil {
		t.Fatal("Set() with 4x4 rect succeeded, want error")
	}
	if err := s.Restore("a", geom.Rect{X: 0, Y: 0, W: 4, H: 4}); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if got, _ := s.Get("a"); got.W != 4 {
		t.Errorf("Get(a).W = %d, want 4", got.W)
	}
}

func TestStoreReplace(t *testing.T) {
	s := testStore(t)

	t.Run("keeps canvas and grid when absent", func(t *testing.T) {
		doc := &Document{Regions: NewRegions()}
		doc.Regions.Set("only", geom.Rect{X: 0, Y: 0, W: 40, H: 40})

		if err := s.Replace(doc); err != nil {
			t.Fatalf("Replace() error = %v", err)
		}
		if s.Canvas() != (geom.Size{W: 250, H: 122}) {
			t.Errorf("Canvas = %+v, want unchanged 250x122", s.Canvas())
		}
		if s.GridSize() != DefaultGridSize {
			t.Errorf("GridSize = %d, want unchanged %d", s.GridSize(), DefaultGridSize)
		}
		if names := s.Names(); len(names) != 1 || names[0] != "only" {
			t.Errorf("Names() = %v, want [only]", names)
		}
	})

	t.Run("applies canvas and grid when present", func(t *testing.T) {
		doc := NewDocument(geom.Size{W: 300, H: 200})
		doc.GridSize = 8
		doc.Regions.Set("wide", geom.Rect{X: 0, Y: 0, W: 280, H: 180})

		if err := s.Replace(doc); err != nil {
			t.Fatalf("Replace() error = %v", err)
		}
		if s.Canvas() != (geom.Size{W: 300, H: 200}) {
			t.Errorf("Canvas = %+v, want 300x200", s.Canvas())
		}
		if s.GridSize() != 8 {
			t.Errorf("GridSize = %d, want 8", s.GridSize())
		}
	})

	t.Run("invalid document leaves store untouched", func(t *testing.T) {
		before := s.Document()

		bad := &Document{Regions: NewRegions()}
		bad.Regions.Set("off", geom.Rect{X: 500, Y: 0, W: 40, H: 40})

		if err := s.Replace(bad); err == nil {
			t.Fatal("Replace() with out-of-bounds region succeeded, want error")
		}
		if !s.Document().Equal(before) {
			t.Error("store mutated after rejected Replace")
		}
	})
}

func TestStoreDocumentSnapshotIndependent(t *testing.T) {
	s := testStore(t)

	snap := s.Document()
	snap.Regions.Set("a", geom.Rect{X: 0, Y: 0, W: 99, H: 99})

	if got, _ := s.Get("a"); got.W == 99 {
		t.Error("mutating snapshot changed the store")
	}
}
