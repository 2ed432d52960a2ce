package voronoi

import (
	"math"
	"time"

	"github.com/mikenye/geom2d/point"
	"github.com/mikenye/geom2d/rectangle"

	"github.com/mikenye/voronoi/halfedge"
)

// AssertionsEnabled gates the sweepline driver's internal consistency
// checks for cases that cannot occur in a correct sweep: a Locate that finds
// no arc on a non-empty beachline, and a collapsing run of arcs that lacks a
// boundary arc on either side. In release builds the branch is a silent
// no-op; tests may set this to true so the assertion panics instead,
// surfacing a bug immediately rather than producing silently wrong geometry.
var AssertionsEnabled = false

// Result is the output of Compute: every input site's cell, indexed
// parallel to the input, plus the deduplicated set of edges that bound
// them.
type Result struct {
	Cells    []*halfedge.Cell
	Edges    []*halfedge.Edge
	ExecTime time.Duration
}

// Compute runs Fortune's algorithm over points within bbox using a
// one-shot Engine. Callers that run many diagrams back-to-back should
// construct an *Engine with NewEngine instead, so the arc pool is reused
// across calls.
func Compute(points []point.Point, bbox rectangle.Rectangle, opts ...OptionFunc) (Result, error) {
	return NewEngine().Compute(points, bbox, opts...)
}

func validate(points []point.Point, bbox rectangle.Rectangle) error {
	if bbox.Width() <= 0 || bbox.Height() <= 0 {
		return wrapBounds("bounding box must have positive width and height")
	}
	for i, p := range points {
		x, y := p.Coordinates()
		if isNonFinite(x) || isNonFinite(y) {
			return wrapSite(i, "has a non-finite coordinate")
		}
	}
	return nil
}

func isNonFinite(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}
