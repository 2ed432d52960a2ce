package voronoi

import (
	"math"
	"sort"

	"github.com/mikenye/geom2d/point"
	"github.com/mikenye/geom2d/rectangle"

	"github.com/mikenye/voronoi/geometry"
	"github.com/mikenye/voronoi/halfedge"
)

// bounds extracts the viewport's extremes as plain floats, independent of
// which corner geom2d's Rectangle happens to label "top" or "bottom"
// internally — only the min/max values matter to the clip and close steps.
func bounds(bbox rectangle.Rectangle) (xl, xr, yt, yb float64) {
	bl, _, tr, _ := bbox.Contour()
	return bl.X(), tr.X(), bl.Y(), tr.Y()
}

// connectEdges gives every dangling or open edge its missing endpoint(s) by
// intersecting its bisector with the viewport. The direction the bisector
// is walked in — which side of the viewport it is extended toward — is
// inferred from the relative positions of the edge's two sites, per
// spec.md §4.6. An edge whose bisector cannot reach the viewport at all is
// marked Dead.
func connectEdges(s *halfedge.Store, bbox rectangle.Rectangle) {
	xl, xr, yt, yb := bounds(bbox)
	for _, e := range s.Edges {
		if e.Dead || (e.VaSet && e.VbSet) {
			continue
		}
		bi := geometry.NewBisector(e.Left.Point, e.Right.Point)
		if bi.Vertical {
			connectVertical(e, bi.Mid.X(), xl, xr, yt, yb)
			continue
		}
		connectSloped(e, bi, xl, xr, yt, yb)
	}
}

func connectVertical(e *halfedge.Edge, fx, xl, xr, yt, yb float64) {
	if fx < xl || fx > xr {
		e.Dead = true
		return
	}
	if e.Left.X() > e.Right.X() {
		if !e.VaSet {
			e.Va, e.VaSet = point.New(fx, yt), true
		} else if e.Va.Y() >= yb {
			e.Dead = true
			return
		}
		e.Vb, e.VbSet = point.New(fx, yb), true
	} else {
		if !e.VaSet {
			e.Va, e.VaSet = point.New(fx, yb), true
		} else if e.Va.Y() < yt {
			e.Dead = true
			return
		}
		e.Vb, e.VbSet = point.New(fx, yt), true
	}
}

func connectSloped(e *halfedge.Edge, bi geometry.Bisector, xl, xr, yt, yb float64) {
	fm := bi.Slope
	fb := bi.Mid.Y() - fm*bi.Mid.X()

	if fm < -1 || fm > 1 {
		if e.Left.X() > e.Right.X() {
			if !e.VaSet {
				e.Va, e.VaSet = point.New((yt-fb)/fm, yt), true
			} else if e.Va.Y() >= yb {
				e.Dead = true
				return
			}
			e.Vb, e.VbSet = point.New((yb-fb)/fm, yb), true
		} else {
			if !e.VaSet {
				e.Va, e.VaSet = point.New((yb-fb)/fm, yb), true
			} else if e.Va.Y() < yt {
				e.Dead = true
				return
			}
			e.Vb, e.VbSet = point.New((yt-fb)/fm, yt), true
		}
		return
	}

	if e.Left.Y() < e.Right.Y() {
		if !e.VaSet {
			e.Va, e.VaSet = point.New(xl, fm*xl+fb), true
		} else if e.Va.X() >= xr {
			e.Dead = true
			return
		}
		e.Vb, e.VbSet = point.New(xr, fm*xr+fb), true
	} else {
		if !e.VaSet {
			e.Va, e.VaSet = point.New(xr, fm*xr+fb), true
		} else if e.Va.X() < xl {
			e.Dead = true
			return
		}
		e.Vb, e.VbSet = point.New(xl, fm*xl+fb), true
	}
}

// clipEdges applies Liang-Barsky clipping to every live edge's segment
// against the viewport rectangle, replacing its endpoints with the clipped
// segment or marking it Dead if no part of it lies inside.
func clipEdges(s *halfedge.Store, bbox rectangle.Rectangle) {
	xl, xr, yt, yb := bounds(bbox)
	for _, e := range s.Edges {
		if e.Dead || !e.VaSet || !e.VbSet {
			continue
		}
		va, vb, ok := liangBarsky(e.Va, e.Vb, xl, xr, yt, yb)
		if !ok {
			e.Dead = true
			continue
		}
		e.Va, e.Vb = va, vb
	}
}

func liangBarsky(a, b point.Point, xmin, xmax, ymin, ymax float64) (point.Point, point.Point, bool) {
	dx := b.X() - a.X()
	dy := b.Y() - a.Y()
	t0, t1 := 0.0, 1.0

	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{a.X() - xmin, xmax - a.X(), a.Y() - ymin, ymax - a.Y()}

	for i := 0; i < 4; i++ {
		if p[i] == 0 {
			if q[i] < 0 {
				return point.Point{}, point.Point{}, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > t0 {
				t0 = t
			}
		} else if t < t1 {
			t1 = t
		}
	}
	if t0 > t1 {
		return point.Point{}, point.Point{}, false
	}
	return point.New(a.X()+t0*dx, a.Y()+t0*dy), point.New(a.X()+t1*dx, a.Y()+t1*dy), true
}

// pruneEdges discards every edge marked Dead by the connect/clip steps, and
// any edge whose two endpoints coincide within tolerance, compacting the
// store's deduplicated edge list in place.
func pruneEdges(s *halfedge.Store) {
	kept := s.Edges[:0]
	for _, e := range s.Edges {
		if e.Dead {
			continue
		}
		if !e.VaSet || !e.VbSet {
			e.Dead = true
			continue
		}
		if geometry.Eq(e.Va, e.Vb) {
			e.Dead = true
			continue
		}
		kept = append(kept, e)
	}
	s.Edges = kept
}

// closeCells finalizes every cell's half-edge ring: drop half-edges whose
// edge was pruned, sort the rest counter-clockwise by their precomputed
// angle, and walk the viewport border to bridge any gap between consecutive
// half-edges, synthesizing border edges as needed.
//
// A diagram with no surviving edges (one input site, or every site
// coincident with another within tolerance) never produces an interior
// edge, so its sole live cell is special-cased directly into the whole
// viewport, per the "only one site" case spec.md's closer left
// unimplemented.
func closeCells(s *halfedge.Store, bbox rectangle.Rectangle) {
	xl, xr, yt, yb := bounds(bbox)

	if len(s.Edges) == 0 {
		// No edge ever survived the sweep: either there was only one input
		// site, or every site coincided with another within tolerance and
		// the sweep never inserted more than one arc. Either way the whole
		// viewport belongs to a single cell; Cells[0] is as good a choice
		// as any other surviving site, since every site left standing
		// shares (within tolerance) the same coordinates. Every half-edge
		// still held by a cell refers to a pruned edge, so all are dropped.
		for _, cell := range s.Cells {
			cell.HalfEdges = nil
		}
		closeSingleSiteCell(s, s.Cells[0], xl, xr, yt, yb)
		return
	}

	for _, cell := range s.Cells {
		closeCell(s, cell, xl, xr, yt, yb)
	}
}

func closeSingleSiteCell(s *halfedge.Store, cell *halfedge.Cell, xl, xr, yt, yb float64) {
	topLeft := point.New(xl, yt)
	bottomLeft := point.New(xl, yb)
	bottomRight := point.New(xr, yb)
	topRight := point.New(xr, yt)

	s.CreateBorderEdge(cell.Site, topLeft, bottomLeft)
	s.CreateBorderEdge(cell.Site, bottomLeft, bottomRight)
	s.CreateBorderEdge(cell.Site, bottomRight, topRight)
	s.CreateBorderEdge(cell.Site, topRight, topLeft)
}

func closeCell(s *halfedge.Store, cell *halfedge.Cell, xl, xr, yt, yb float64) {
	live := make([]halfedge.HalfEdge, 0, len(cell.HalfEdges))
	for _, he := range cell.HalfEdges {
		if !he.Edge.Dead {
			live = append(live, he)
		}
	}
	if len(live) == 0 {
		cell.HalfEdges = live
		return
	}

	sort.Slice(live, func(i, j int) bool { return live[i].Angle > live[j].Angle })

	n := len(live)
	final := make([]halfedge.HalfEdge, 0, n+4)
	for i := 0; i < n; i++ {
		final = append(final, live[i])

		_, end := halfedgeEndpoints(live[i])
		start, _ := halfedgeEndpoints(live[(i+1)%n])
		if geometry.Eq(end, start) {
			continue
		}
		for _, seg := range bordersBetween(end, start, xl, xr, yt, yb) {
			s.CreateBorderEdge(cell.Site, seg.from, seg.to)
			final = append(final, cell.HalfEdges[len(cell.HalfEdges)-1])
		}
	}
	cell.HalfEdges = final
}

// halfedgeEndpoints returns he's start and end point as seen walking its
// owning cell's boundary: an edge's Va/Vb are oriented relative to its
// Left site, so a half-edge owned by the Right site walks it in reverse.
func halfedgeEndpoints(he halfedge.HalfEdge) (start, end point.Point) {
	if !he.Edge.RightSet || he.CellSite.Index == he.Edge.Left.Index {
		return he.Edge.Va, he.Edge.Vb
	}
	return he.Edge.Vb, he.Edge.Va
}

type borderSegment struct {
	from, to point.Point
}

type borderCorner struct {
	pos float64
	pt  point.Point
}

func borderCorners(xl, xr, yt, yb float64) []borderCorner {
	w := xr - xl
	h := yb - yt
	return []borderCorner{
		{0, point.New(xl, yt)},
		{h, point.New(xl, yb)},
		{h + w, point.New(xr, yb)},
		{2*h + w, point.New(xr, yt)},
	}
}

// perimeterPos maps a point known to lie on the viewport boundary to its
// distance along the border, walking counter-clockwise starting at the
// top-left corner: down the left side, right along the bottom, up the
// right side, left along the top, matching the walk order spec.md §4.6
// describes for closing a cell's gaps.
func perimeterPos(p point.Point, xl, xr, yt, yb float64) float64 {
	w := xr - xl
	h := yb - yt
	perim := 2 * (w + h)

	var pos float64
	switch {
	case math.Abs(p.X()-xl) <= geometry.Epsilon:
		pos = p.Y() - yt
	case math.Abs(p.Y()-yb) <= geometry.Epsilon:
		pos = h + (p.X() - xl)
	case math.Abs(p.X()-xr) <= geometry.Epsilon:
		pos = h + w + (yb - p.Y())
	default:
		pos = 2*h + w + (xr - p.X())
	}
	pos = math.Mod(pos, perim)
	if pos < 0 {
		pos += perim
	}
	return pos
}

// bordersBetween returns the sequence of border segments that connect from
// to to, walking the viewport boundary forward (with wraparound) and
// passing through however many corners lie in between.
func bordersBetween(from, to point.Point, xl, xr, yt, yb float64) []borderSegment {
	w := xr - xl
	h := yb - yt
	perim := 2 * (w + h)

	fromPos := perimeterPos(from, xl, xr, yt, yb)
	toPos := perimeterPos(to, xl, xr, yt, yb)
	toDist := math.Mod(toPos-fromPos+perim, perim)
	if toDist <= geometry.Epsilon {
		toDist = perim
	}

	type distPt struct {
		dist float64
		pt   point.Point
	}
	var between []distPt
	for _, c := range borderCorners(xl, xr, yt, yb) {
		d := math.Mod(c.pos-fromPos+perim, perim)
		if d > geometry.Epsilon && d < toDist-geometry.Epsilon {
			between = append(between, distPt{d, c.pt})
		}
	}
	sort.Slice(between, func(i, j int) bool { return between[i].dist < between[j].dist })

	segs := make([]borderSegment, 0, len(between)+1)
	prev := from
	for _, b := range between {
		segs = append(segs, borderSegment{prev, b.pt})
		prev = b.pt
	}
	segs = append(segs, borderSegment{prev, to})
	return segs
}
