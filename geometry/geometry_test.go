package geometry

import (
	"math"
	"testing"

	"github.com/mikenye/geom2d/point"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircumcircle(t *testing.T) {
	tests := map[string]struct {
		a, b, c point.Point
		wantOk  bool
	}{
		"right triangle": {
			a:      point.New(0, 4),
			b:      point.New(4, 0),
			c:      point.New(0, 0),
			wantOk: true,
		},
		"collinear points produce no circle event": {
			a:      point.New(0, 0),
			b:      point.New(1, 0),
			c:      point.New(2, 0),
			wantOk: false,
		},
		// y grows downward, so (0,0) -> (4,0) -> (0,4) turns clockwise.
		"clockwise triplet produces no circle event": {
			a:      point.New(0, 0),
			b:      point.New(4, 0),
			c:      point.New(0, 4),
			wantOk: false,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			center, bottom, ok := Circumcircle(tc.a, tc.b, tc.c)
			require.Equal(t, tc.wantOk, ok)
			if !ok {
				return
			}
			// center must be equidistant from all three points
			da := center.DistanceToPoint(tc.a)
			db := center.DistanceToPoint(tc.b)
			dc := center.DistanceToPoint(tc.c)
			assert.InDelta(t, da, db, 1e-9)
			assert.InDelta(t, da, dc, 1e-9)
			assert.True(t, bottom >= center.Y()-1e-9, "bottom should be at or below circle center")
		})
	}
}

func TestBreakpointDegenerateCases(t *testing.T) {
	d := 5.0

	// a site whose focus lies exactly on the directrix collapses to a
	// vertical ray through its own x-coordinate.
	left := point.New(3, d)
	right := point.New(8, 2)
	got := LeftBreakpoint(left, true, right, d)
	assert.InDelta(t, 3.0, got, Epsilon)
}

func TestLeftBreakpointNoNeighbor(t *testing.T) {
	got := LeftBreakpoint(point.Point{}, false, point.New(1, 1), 5)
	assert.True(t, math.IsInf(got, -1))
}

func TestRightBreakpointNoNeighbor(t *testing.T) {
	got := RightBreakpoint(point.New(1, 1), point.Point{}, false, 5)
	assert.True(t, math.IsInf(got, 1))
}

func TestBisectorVertical(t *testing.T) {
	bi := NewBisector(point.New(1, 3), point.New(5, 3))
	assert.True(t, bi.Vertical)
	assert.InDelta(t, 3.0, bi.Mid.X(), Epsilon)
}

func TestBisectorSlope(t *testing.T) {
	bi := NewBisector(point.New(0, 0), point.New(4, 4))
	assert.False(t, bi.Vertical)
	// bisector of (0,0)-(4,4) passes through (2,2) with slope -1
	assert.InDelta(t, 2.0, bi.Y(2), Epsilon)
}
