// Package voronoi computes the Voronoi diagram of a set of points in the
// plane, clipped to a bounding rectangle, using Fortune's sweepline
// algorithm.
//
// The diagram is built by sweeping a horizontal line downward (increasing
// y) across the input sites, in screen/graphics convention rather than
// standard Cartesian: y grows downward, so the sweep visits sites in
// strictly ascending y. The line's leading edge maintains a "beachline" of
// parabolic arcs, one per site the sweep has already passed; the
// breakpoints between adjacent arcs trace out the Voronoi edges as the
// sweep progresses, and triplets of adjacent arcs that are about to squeeze
// an arc out of existence produce circle events, predicting the sweepline
// position of the next Voronoi vertex. The algorithm runs in
// O(n log n) time for n sites.
//
// # Coordinate System
//
// This package's y axis increases downward: a bounding rectangle's "top"
// (yt) is its smaller-y edge and its "bottom" (yb) its larger-y edge, and
// the sweep descends from yt toward yb. This is the opposite of the
// standard Cartesian, y-increases-upward convention [rectangle.Rectangle]
// and some other geom2d packages use for their own corner labels: the
// corner a Rectangle calls bottom-left is this package's top-left (xl, yt).
// Callers mixing this package with those should keep that in mind when
// building bounding rectangles.
//
// # Usage
//
// The package-level [Compute] function is the simplest entry point:
//
//	result, err := voronoi.Compute(points, bbox)
//
// Callers computing many diagrams back-to-back should construct one
// [Engine] with [NewEngine] and reuse it, so the arc allocator's free list
// is shared across calls instead of rebuilt each time:
//
//	engine := voronoi.NewEngine()
//	for _, frame := range frames {
//		result, err := engine.Compute(frame.Points, bbox)
//		...
//	}
//
// # Result Shape
//
// [Result.Cells] is indexed parallel to the input points: Cells[i] is the
// cell of points[i]. [Result.Edges] is the deduplicated set of edges
// bounding those cells, each carrying the (up to two) sites it separates
// and its (up to two) endpoints; an edge with only one site lies on the
// bounding rectangle's border rather than between two sites.
//
// # Degenerate Inputs
//
// A single site (or several, provided every pair is within the geometric
// tolerance of being coincident) produces one cell spanning the entire
// bounding rectangle. Coincident sites beyond the first occurrence of a
// given coordinate are skipped; their cell is left empty rather than
// erroring, since the external interface guarantees one cell slot per
// input site regardless of duplication. Sites lying exactly on the
// bounding rectangle's border are accepted and clipped like any other
// site, not rejected.
//
// # Precision
//
// Geometric comparisons throughout the sweep use a small fixed epsilon
// (see the geometry package), not a caller-tunable one; see DESIGN.md for
// why [WithEpsilon] exists on the option surface without yet changing that
// behavior.
package voronoi

func init() {
	logDebugf("debug logging enabled")
}
