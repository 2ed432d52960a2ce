// Package geometry implements the floating-point predicates the sweepline
// engine is built on: circumcircle centers, parabola break-points, and
// perpendicular bisectors, all under a fixed numeric tolerance.
package geometry

import (
	"math"

	"github.com/mikenye/geom2d/numeric"
	"github.com/mikenye/geom2d/point"
)

// Epsilon is the tolerance used for all geometric equality comparisons
// throughout the engine.
const Epsilon = 1e-9

// Epsilon2 is the looser tolerance used by the circumcircle orientation
// test, established empirically to avoid manufacturing circle events out of
// triplets that are only infinitesimally non-collinear.
const Epsilon2 = 2e-12

// Vertex is a point in the plane produced by the sweep: a breakpoint, a
// circumcircle center, or a clipped edge endpoint.
type Vertex = point.Point

// Eq reports whether two vertices coincide within Epsilon.
func Eq(a, b Vertex) bool {
	return numeric.FloatEquals(a.X(), b.X(), Epsilon) && numeric.FloatEquals(a.Y(), b.Y(), Epsilon)
}

// Circumcircle computes the center of the circle through a, b, c and
// reports whether the triplet actually produces a circle event.
//
// The computation translates the origin to a before solving, to keep the
// determinant well-conditioned. If the translated determinant
// d = 2*(bx*cy - by*cx) is not safely negative (a, b, c clockwise or
// collinear within Epsilon2), ok is false and center/bottom are zero-valued:
// no circle event should be produced for this triplet.
func Circumcircle(a, b, c point.Point) (center point.Point, bottom float64, ok bool) {
	bx := b.X() - a.X()
	by := b.Y() - a.Y()
	cx := c.X() - a.X()
	cy := c.Y() - a.Y()

	d := 2 * (bx*cy - by*cx)
	if d >= -Epsilon2 {
		return point.Point{}, 0, false
	}

	hb := bx*bx + by*by
	hc := cx*cx + cy*cy

	x := (cy*hb - by*hc) / d
	y := (bx*hc - cx*hb) / d

	center = point.New(x+a.X(), y+a.Y())
	bottom = center.Y() + math.Sqrt(x*x+y*y)
	return center, bottom, true
}

// focusAt reports whether site's y-coordinate coincides with the sweepline
// directrix d within Epsilon — i.e. its parabola has degenerated to a
// vertical ray through its own x-coordinate.
func focusAt(site point.Point, directrix float64) bool {
	return numeric.FloatEquals(site.Y(), directrix, Epsilon)
}

// FocusOnDirectrix reports whether site's focus lies exactly on directrix d,
// within Epsilon. Exported for the driver, which uses it to recognize a
// beachline still made entirely of degenerate, zero-curvature arcs (a run of
// sites sharing one y) rather than inspecting focusAt's private tolerance
// directly.
func FocusOnDirectrix(site point.Point, directrix float64) bool {
	return focusAt(site, directrix)
}

// BreakpointX returns the x-coordinate at which the parabolae focused at
// left and right (both above the directrix d, left.X() <= right.X()
// assumed by convention of caller) intersect — the break-point between two
// adjacent beachline arcs.
//
// Degenerate cases are handled before falling back to the general quadratic
// solution, matching the source's case analysis to minimize cancellation
// error near the directrix.
func BreakpointX(left, right point.Point, d float64) float64 {
	switch {
	case focusAt(left, d):
		return left.X()
	case focusAt(right, d):
		return right.X()
	}

	dpl := 2 * (left.Y() - d)
	dpr := 2 * (right.Y() - d)

	a := 1/dpl - 1/dpr
	if a == 0 {
		// Parabolae have identical directrix-distance; the break-point is
		// the midpoint of the two foci's x-coordinates.
		return (left.X() + right.X()) / 2
	}

	b := -2 * (left.X()/dpl - right.X()/dpr)
	c := (left.X()*left.X()+left.Y()*left.Y()-d*d)/dpl -
		(right.X()*right.X()+right.Y()*right.Y()-d*d)/dpr

	disc := b*b - 4*a*c
	sq := math.Sqrt(disc)
	x1 := (-b + sq) / (2 * a)
	x2 := (-b - sq) / (2 * a)

	// Of the quadratic's two roots, only one is the physically meaningful
	// break-point; which one depends on which focus is nearer the
	// directrix, matching the source's root-selection rule exactly.
	if left.Y() < right.Y() {
		return math.Max(x1, x2)
	}
	return math.Min(x1, x2)
}

// LeftBreakpoint returns the x-coordinate of the left break-point of arc
// site at directrix d, given its left neighbor's site. hasLeft reports
// whether a left neighbor exists; when it does not, LeftBreakpoint returns
// math.Inf(-1), matching the "no left neighbor" convention of the beachline.
func LeftBreakpoint(leftNeighbor point.Point, hasLeft bool, site point.Point, d float64) float64 {
	if !hasLeft {
		return math.Inf(-1)
	}
	if focusAt(site, d) {
		return site.X()
	}
	if focusAt(leftNeighbor, d) {
		return leftNeighbor.X()
	}
	return BreakpointX(leftNeighbor, site, d)
}

// RightBreakpoint returns the x-coordinate of the right break-point of arc
// site at directrix d, given its right neighbor's site. hasRight reports
// whether a right neighbor exists; when it does not, RightBreakpoint
// returns math.Inf(1).
func RightBreakpoint(site point.Point, rightNeighbor point.Point, hasRight bool, d float64) float64 {
	if !hasRight {
		return math.Inf(1)
	}
	if focusAt(rightNeighbor, d) {
		return rightNeighbor.X()
	}
	if focusAt(site, d) {
		return site.X()
	}
	return BreakpointX(site, rightNeighbor, d)
}

// Bisector describes the perpendicular bisector of two sites a and b as a
// point on the line plus its slope, matching the line y = slope*(x-mid.X)+mid.Y
// form the rest of the engine traces edges with. Vertical is true when the
// bisector cannot be expressed in that slope-intercept form (a.Y() == b.Y()),
// in which case Slope is meaningless and callers must special-case a
// vertical line through Mid.
type Bisector struct {
	Mid      point.Point
	Slope    float64
	Vertical bool
}

// NewBisector computes the perpendicular bisector of a and b.
func NewBisector(a, b point.Point) Bisector {
	mid := point.New((a.X()+b.X())/2, (a.Y()+b.Y())/2)
	if numeric.FloatEquals(a.Y(), b.Y(), Epsilon) {
		return Bisector{Mid: mid, Vertical: true}
	}
	slope := (a.X() - b.X()) / (b.Y() - a.Y())
	return Bisector{Mid: mid, Slope: slope}
}

// Y evaluates the bisector's line at x. Callers must not call this when
// Vertical is true.
func (bi Bisector) Y(x float64) float64 {
	return bi.Slope*(x-bi.Mid.X()) + bi.Mid.Y()
}
