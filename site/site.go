// Package site defines the input primitive to the sweepline engine: a
// generating point paired with the index it was supplied at, plus the
// ordering rule the sweep consumes sites in.
package site

import (
	"sort"

	"github.com/mikenye/geom2d/point"
)

// Site is one generating point of the diagram, tagged with the index it
// held in the caller's input slice. The index is preserved through sorting
// so that the engine's output (cells, in particular) can still be indexed
// back against the caller's original site order.
type Site struct {
	Point point.Point
	Index int
}

// New returns a Site at (x, y) carrying the given index.
func New(x, y float64, index int) Site {
	return Site{Point: point.New(x, y), Index: index}
}

// X returns the site's x-coordinate.
func (s Site) X() float64 { return s.Point.X() }

// Y returns the site's y-coordinate.
func (s Site) Y() float64 { return s.Point.Y() }

// Less reports whether site p must be processed before site q by the
// sweepline, which advances in strictly ascending y:
//
//	p before q  iff  p.y < q.y, or p.y == q.y and p.x < q.x
//
// This is the same (y, x) ascending order the circle-event queue sorts its
// own events by, so the two sub-queues stay comparable against each other.
func Less(p, q Site) bool {
	if p.Y() != q.Y() {
		return p.Y() < q.Y()
	}
	return p.X() < q.X()
}

// Sort orders sites into the sequence the sweepline must consume them in,
// in place, and returns the slice for convenience.
func Sort(sites []Site) []Site {
	sort.Slice(sites, func(i, j int) bool {
		return Less(sites[i], sites[j])
	})
	return sites
}
