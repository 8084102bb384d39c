package editor

import (
	"testing"

	"github.com/panekit/panekit/pkg/geom"
	"github.com/panekit/panekit/pkg/layout"
)

func TestRegionAt(t *testing.T) {
	regions := []layout.Region{
		{Name: "bottom", Rect: geom.Rect{X: 0, Y: 0, W: 100, H: 100}},
		{Name: "top", Rect: geom.Rect{X: 40, Y: 40, W: 100, H: 100}},
	}

	tests := []struct {
		name    string
		p       geom.Point
		want    string
		wantHit bool
	}{
		{"only bottom", geom.Point{X: 10, Y: 10}, "bottom", true},
		{"overlap picks topmost", geom.Point{X: 50, Y: 50}, "top", true},
		{"only top", geom.Point{X: 120, Y: 120}, "top", true},
		{"outside everything", geom.Point{X: 200, Y: 10}, "", false},
		{"shared edge belongs to top", geom.Point{X: 40, Y: 50}, "top", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := RegionAt(tt.p, regions)
			if hit != tt.wantHit || got != tt.want {
				t.Errorf("RegionAt(%v) = %q, %v, want %q, %v", tt.p, got, hit, tt.want, tt.wantHit)
			}
		})
	}
}

func TestHandleAt(t *testing.T) {
	r := geom.Rect{X: 6, Y: 36, W: 118, H: 28}

	tests := []struct {
		name string
		p    geom.Point
		want Handle
	}{
		{"northwest corner", geom.Point{X: 6, Y: 36}, HandleNW},
		{"near northwest corner", geom.Point{X: 10, Y: 38}, HandleNW},
		{"northeast corner", geom.Point{X: 124, Y: 36}, HandleNE},
		{"southeast corner", geom.Point{X: 124, Y: 64}, HandleSE},
		{"southwest corner", geom.Point{X: 6, Y: 64}, HandleSW},
		{"north midpoint", geom.Point{X: 65, Y: 40}, HandleN},
		{"south midpoint", geom.Point{X: 65, Y: 62}, HandleS},
		{"west midpoint", geom.Point{X: 4, Y: 52}, HandleW},
		{"east midpoint", geom.Point{X: 126, Y: 48}, HandleE},
		{"center of region", geom.Point{X: 65, Y: 50}, HandleNone},
		{"beyond margin", geom.Point{X: 6, Y: 80}, HandleNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HandleAt(tt.p, r, DefaultHandleMargin); got != tt.want {
				t.Errorf("HandleAt(%v) = %q, want %q", tt.p, got, tt.want)
			}
		})
	}
}

func TestHandleAtCornerPriority(t *testing.T) {
	// A rect narrow enough that the corner and edge-midpoint boxes overlap:
	// points inside both must resolve to the corner.
	r := geom.Rect{X: 10, Y: 10, W: 12, H: 12}

	if got := HandleAt(geom.Point{X: 12, Y: 10}, r, DefaultHandleMargin); got != HandleNW {
		t.Errorf("HandleAt() = %q, want corner to beat edge midpoint", got)
	}
}

func TestHandleMoves(t *testing.T) {
	tests := []struct {
		h                        Handle
		left, top, right, bottom bool
	}{
		{HandleNW, true, true, false, false},
		{HandleNE, false, true, true, false},
		{HandleSE, false, false, true, true},
		{HandleSW, true, false, false, true},
		{HandleN, false, true, false, false},
		{HandleE, false, false, true, false},
		{HandleS, false, false, false, true},
		{HandleW, true, false, false, false},
		{HandleNone, false, false, false, false},
	}

	for _, tt := range tests {
		l, tp, r, b := tt.h.moves()
		if l != tt.left || tp != tt.top || r != tt.right || b != tt.bottom {
			t.Errorf("%q.moves() = %v %v %v %v, want %v %v %v %v",
				tt.h, l, tp, r, b, tt.left, tt.top, tt.right, tt.bottom)
		}
	}
}
