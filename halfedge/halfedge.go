// Package halfedge owns the edges and cells produced by the sweep: each
// edge knows the (up to) two sites it separates and its (up to) two
// endpoints, and each cell owns an ordered sequence of half-edges that,
// once finalized, trace its boundary counter-clockwise.
package halfedge

import (
	"math"

	"github.com/mikenye/geom2d/point"

	"github.com/mikenye/voronoi/site"
)

// Edge is the segment of the perpendicular bisector of (Left, Right) that
// bounds the Voronoi cell of each. Right is the zero Site with RightSet
// false for a border edge, which lies on the viewport boundary instead of
// between two sites.
type Edge struct {
	Left     site.Site
	Right    site.Site
	RightSet bool

	Va, Vb       point.Point
	VaSet, VbSet bool

	// Dead marks an edge the closing pipeline determined cannot reach the
	// viewport (or collapsed to a point within tolerance); such edges are
	// dropped from the store and from every cell's half-edge list before
	// the result is returned.
	Dead bool
}

// Dangling reports whether exactly one endpoint of e is set.
func (e *Edge) Dangling() bool {
	return e.VaSet != e.VbSet
}

// Open reports whether neither endpoint of e is set.
func (e *Edge) Open() bool {
	return !e.VaSet && !e.VbSet
}

// HalfEdge associates an edge with one of its two cells and the angle used
// to sort that cell's boundary counter-clockwise.
type HalfEdge struct {
	CellSite site.Site
	Edge     *Edge
	Angle    float64
}

// newHalfEdge computes a half-edge of edge e as seen from cellSite's cell.
// The angle is computed from the owning cell's perspective: for an interior
// edge it's the direction from left site to right site when cellSite is the
// left site, and the reverse when cellSite is the right site; for a border
// edge it's the outward normal of the segment Va->Vb.
func newHalfEdge(cellSite site.Site, e *Edge) HalfEdge {
	he := HalfEdge{CellSite: cellSite, Edge: e}

	if !e.RightSet {
		// Border edge: angle is that of the outward normal to Va->Vb.
		dx := e.Vb.X() - e.Va.X()
		dy := e.Vb.Y() - e.Va.Y()
		he.Angle = math.Atan2(dx, -dy)
		return he
	}

	if cellSite.Index == e.Left.Index {
		he.Angle = math.Atan2(e.Right.Y()-e.Left.Y(), e.Right.X()-e.Left.X())
	} else {
		he.Angle = math.Atan2(e.Left.Y()-e.Right.Y(), e.Left.X()-e.Right.X())
	}
	return he
}

// Cell is the Voronoi cell of one site: an ordered sequence of half-edges
// which, once the diagram's cells have been closed against the viewport,
// trace the cell's boundary counter-clockwise.
type Cell struct {
	Site      site.Site
	HalfEdges []HalfEdge
}

// Store owns every edge and cell produced by a single Compute call.
type Store struct {
	Edges []*Edge
	Cells []*Cell
}

// NewStore returns a Store with one empty Cell per site, indexed parallel
// to sites, per the external-interface convention that every input site
// receives a cell at the same index.
func NewStore(sites []site.Site) *Store {
	cells := make([]*Cell, len(sites))
	for _, s := range sites {
		cells[s.Index] = &Cell{Site: s}
	}
	return &Store{Cells: cells}
}

// CreateEdge allocates a new interior edge between left and right, appends
// it to the store, sets whichever endpoints are supplied, and pushes one
// half-edge into each of the two cells involved.
func (s *Store) CreateEdge(left, right site.Site, va, vb *point.Point) *Edge {
	e := &Edge{Left: left, Right: right, RightSet: true}
	if va != nil {
		e.Va, e.VaSet = *va, true
	}
	if vb != nil {
		e.Vb, e.VbSet = *vb, true
	}
	s.Edges = append(s.Edges, e)
	s.attach(left, e)
	s.attach(right, e)
	return e
}

// CreateBorderEdge allocates a fully-specified edge lying on the viewport
// boundary: it has only a left site, and both endpoints are known
// immediately.
func (s *Store) CreateBorderEdge(left site.Site, va, vb point.Point) *Edge {
	e := &Edge{Left: left, Va: va, VaSet: true, Vb: vb, VbSet: true}
	s.Edges = append(s.Edges, e)
	s.attach(left, e)
	return e
}

func (s *Store) attach(owner site.Site, e *Edge) {
	cell := s.Cells[owner.Index]
	cell.HalfEdges = append(cell.HalfEdges, newHalfEdge(owner, e))
}

// SetEdgeStartpoint implements the orientation contract from the edge/cell
// store design: if e has no endpoints yet, it is freshly oriented so that
// left is its recorded Left site and vertex becomes its start (Va).
// Otherwise, if e.Left is actually right (this call arrives from the other
// cell's perspective), vertex is the end (Vb); otherwise it is the start.
func SetEdgeStartpoint(e *Edge, left, right site.Site, vertex point.Point) {
	if !e.VaSet && !e.VbSet {
		e.Left, e.Right, e.RightSet = left, right, true
		e.Va, e.VaSet = vertex, true
		return
	}
	if e.Left.Index == right.Index {
		e.Vb, e.VbSet = vertex, true
		return
	}
	e.Va, e.VaSet = vertex, true
}

// SetEdgeEndpoint is SetEdgeStartpoint with the site arguments swapped,
// preserving the same left-site-relative orientation convention.
func SetEdgeEndpoint(e *Edge, left, right site.Site, vertex point.Point) {
	SetEdgeStartpoint(e, right, left, vertex)
}
