package voronoi

import (
	"math"
	"time"

	"github.com/mikenye/geom2d/point"
	"github.com/mikenye/geom2d/rectangle"

	"github.com/mikenye/voronoi/beachline"
	"github.com/mikenye/voronoi/event"
	"github.com/mikenye/voronoi/geometry"
	"github.com/mikenye/voronoi/halfedge"
	"github.com/mikenye/voronoi/site"
)

// Engine drives Fortune's sweepline algorithm. Its beachline is allocated
// once and cleared at the start of every Compute call, while the event
// queues and the edge/cell store are allocated fresh by each call; only the
// beachline's arc free-list survives across calls, as a deliberate
// allocation optimization.
type Engine struct {
	bl      *beachline.Beachline
	circles *event.CircleQueue
	store   *halfedge.Store
	bbox    rectangle.Rectangle
	opts    Options
}

// NewEngine returns an Engine ready for repeated Compute calls. Reuse one
// Engine across many diagrams to amortize arc allocation; a fresh Engine
// per call is equivalent but forgoes that reuse.
func NewEngine() *Engine {
	return &Engine{bl: beachline.New()}
}

// Compute runs the sweep over points within bbox, returning the resulting
// cells (indexed parallel to points) and the deduplicated edge set.
func (e *Engine) Compute(points []point.Point, bbox rectangle.Rectangle, opts ...OptionFunc) (Result, error) {
	start := time.Now()

	if err := validate(points, bbox); err != nil {
		return Result{}, err
	}

	e.opts = ApplyOptions(Options{Epsilon: geometry.Epsilon}, opts...)
	e.bbox = bbox

	sites := make([]site.Site, len(points))
	for i, p := range points {
		x, y := p.Coordinates()
		sites[i] = site.New(x, y, i)
	}

	e.bl.Clear()
	e.circles = event.NewCircleQueue()
	e.store = halfedge.NewStore(sites)

	siteQ := event.NewSiteQueue(sites)

	var lastSite site.Site
	haveLastSite := false

	for {
		nextSite, haveSite := siteQ.Peek()
		nextCircle, haveCircle := e.circles.Peek()

		if !haveSite && !haveCircle {
			break
		}

		switch {
		case haveSite && (!haveCircle || siteBeforeCircle(nextSite, nextCircle)):
			siteQ.Pop()
			if haveLastSite && geometry.Eq(lastSite.Point, nextSite.Point) {
				logDebugf("skipping duplicate site %d at (%g, %g)", nextSite.Index, nextSite.X(), nextSite.Y())
				continue
			}
			lastSite, haveLastSite = nextSite, true
			e.handleSiteEvent(nextSite)
		default:
			e.circles.Pop()
			if !nextCircle.Valid {
				continue
			}
			e.handleCircleEvent(nextCircle)
		}

		e.circles.Sanitize(e.bl.Len())
	}

	result := e.finish()
	result.ExecTime = time.Since(start)
	return result, nil
}

// siteBeforeCircle reports whether s must be processed before c under the
// sweep's event ordering: the smaller of the two by (y, x), exactly as
// site.Less and circleComparator each order their own queue.
func siteBeforeCircle(s site.Site, c *event.CircleEvent) bool {
	if s.Y() != c.Y {
		return s.Y() < c.Y
	}
	return s.X() < c.X
}

// withinEpsilon reports whether a and b coincide within the engine's
// geometric tolerance.
func withinEpsilon(a, b float64) bool {
	return math.Abs(a-b) <= geometry.Epsilon
}

// handleSiteEvent implements the site-event handler: locate the arc above
// the new site, then pick whichever of the three insertion shapes applies —
// appending to a still-degenerate run of same-y arcs, slotting in exactly on
// an existing break-point with no split, or the generic split — and attempt
// new circle events for the arcs now adjacent to the inserted one.
func (e *Engine) handleSiteEvent(s site.Site) {
	e.bl.SetDirectrix(s.Y())

	if e.bl.IsEmpty() {
		e.bl.InsertAfter(nil, e.bl.NewArc(s))
		return
	}

	if tail, ok := e.bl.Last(); ok && geometry.FocusOnDirectrix(tail.Site.Point, s.Y()) {
		// Every arc reachable from the tail still has a focus sitting
		// exactly on the directrix — a horizontal run of sites sharing one
		// y — so its parabola is a vertical ray and there is nothing to
		// split: the new arc simply extends the run to the right.
		mid := e.bl.NewArc(s)
		mid.Edge = e.store.CreateEdge(tail.Site, mid.Site, nil, nil)
		e.bl.InsertAfter(tail, mid)
		e.addCircleEvent(tail)
		e.addCircleEvent(mid)
		return
	}

	above, found := e.bl.Locate(s.X())
	if !found {
		// Every arc's range is half-open and the tree always reports a
		// match once it is non-empty; this would be a bug in the
		// beachline's comparator.
		if AssertionsEnabled {
			panic("voronoi: Locate found nothing on a non-empty beachline")
		}
		return
	}

	if leftArc, hasLeft := above.Prev(); hasLeft && withinEpsilon(s.X(), e.bl.LeftBreak(above)) {
		e.insertBetweenNoSplit(leftArc, above, s)
		return
	}
	if rightArc, hasRight := above.Next(); hasRight && withinEpsilon(s.X(), e.bl.RightBreak(above)) {
		e.insertBetweenNoSplit(above, rightArc, s)
		return
	}

	if above.CircleEvent != nil {
		above.CircleEvent.Invalidate()
		e.circles.MarkInvalid()
		above.CircleEvent = nil
	}

	leftEdge := above.Edge

	left := e.bl.NewArc(above.Site)
	left.Edge = leftEdge

	right := e.bl.NewArc(above.Site)

	mid := e.bl.NewArc(s)

	e.bl.InsertAfter(above, left)
	e.bl.Remove(above)
	e.bl.InsertAfter(left, mid)
	e.bl.InsertAfter(mid, right)

	shared := e.store.CreateEdge(left.Site, mid.Site, nil, nil)
	mid.Edge = shared
	right.Edge = shared

	e.addCircleEvent(left)
	e.addCircleEvent(right)
}

// insertBetweenNoSplit handles a new site whose x-coordinate coincides
// exactly with the break-point currently separating left and right: rather
// than splitting either arc, the new arc is slotted directly between them.
// The edge that was tracing the left-right break-point is finalized at the
// coincidence vertex, exactly as if it had collapsed in a circle event, and
// one fresh edge is created on each side of the new arc.
func (e *Engine) insertBetweenNoSplit(left, right *beachline.Arc, s site.Site) {
	vertex := point.New(s.X(), s.Y())

	if left.CircleEvent != nil {
		left.CircleEvent.Invalidate()
		e.circles.MarkInvalid()
		left.CircleEvent = nil
	}
	if right.CircleEvent != nil {
		right.CircleEvent.Invalidate()
		e.circles.MarkInvalid()
		right.CircleEvent = nil
	}

	if right.Edge != nil {
		halfedge.SetEdgeStartpoint(right.Edge, left.Site, right.Site, vertex)
	}

	mid := e.bl.NewArc(s)
	mid.Edge = e.store.CreateEdge(left.Site, mid.Site, &vertex, nil)
	right.Edge = e.store.CreateEdge(mid.Site, right.Site, &vertex, nil)

	e.bl.InsertAfter(left, mid)

	e.addCircleEvent(left)
	e.addCircleEvent(mid)
	e.addCircleEvent(right)
}

// handleCircleEvent implements the circle-event handler: gather every arc
// collapsing at the same vertex (within epsilon), wire up the edges
// between the surviving boundary arcs, remove the collapsing arcs, and
// seed new circle events for the two arcs left adjacent.
func (e *Engine) handleCircleEvent(ce *event.CircleEvent) {
	e.bl.SetDirectrix(ce.Y)
	vertex := point.New(ce.X, ce.YCenter)

	collapsing := []*beachline.Arc{ce.Arc}

	for cur := ce.Arc; ; {
		prev, ok := cur.Prev()
		if !ok || !collapsesAt(prev, vertex) {
			break
		}
		collapsing = append([]*beachline.Arc{prev}, collapsing...)
		cur = prev
	}
	for cur := ce.Arc; ; {
		next, ok := cur.Next()
		if !ok || !collapsesAt(next, vertex) {
			break
		}
		collapsing = append(collapsing, next)
		cur = next
	}

	leftBoundary, hasLeft := collapsing[0].Prev()
	rightBoundary, hasRight := collapsing[len(collapsing)-1].Next()
	if !hasLeft || !hasRight {
		// Both boundary arcs must exist: the collapsing arc always has
		// two neighbors by the time it can produce a circle event.
		if AssertionsEnabled {
			panic("voronoi: circle event collapse missing a boundary arc")
		}
		return
	}

	all := append([]*beachline.Arc{leftBoundary}, collapsing...)
	all = append(all, rightBoundary)

	for _, a := range all {
		if a.CircleEvent != nil {
			a.CircleEvent.Invalidate()
			e.circles.MarkInvalid()
			a.CircleEvent = nil
		}
	}

	for i := 1; i < len(all); i++ {
		l, r := all[i-1], all[i]
		if r.Edge != nil {
			halfedge.SetEdgeStartpoint(r.Edge, l.Site, r.Site, vertex)
		}
	}

	for _, a := range collapsing {
		e.bl.Remove(a)
	}

	final := e.store.CreateEdge(leftBoundary.Site, rightBoundary.Site, &vertex, nil)
	rightBoundary.Edge = final

	e.addCircleEvent(leftBoundary)
	e.addCircleEvent(rightBoundary)
}

// collapsesAt reports whether a carries a live circle event predicting
// collapse at vertex, within the engine's geometric tolerance.
func collapsesAt(a *beachline.Arc, vertex point.Point) bool {
	ce, ok := a.CircleEvent.(*event.CircleEvent)
	if !ok || ce == nil || !ce.Valid {
		return false
	}
	return geometry.Eq(point.New(ce.X, ce.YCenter), vertex)
}

// addCircleEvent computes the circumcircle of arc's site and its two
// current neighbors and, if it predicts a genuine future collapse, pushes
// a new CircleEvent and attaches it to arc.
func (e *Engine) addCircleEvent(arc *beachline.Arc) {
	left, hasLeft := arc.Prev()
	right, hasRight := arc.Next()
	if !hasLeft || !hasRight {
		return
	}
	if left.Site.Index == right.Site.Index {
		return
	}

	center, bottom, ok := geometry.Circumcircle(left.Site.Point, arc.Site.Point, right.Site.Point)
	if !ok {
		return
	}

	ce := &event.CircleEvent{
		Arc:     arc,
		X:       center.X(),
		Y:       bottom,
		YCenter: center.Y(),
	}
	arc.CircleEvent = ce
	e.circles.Push(ce)
}

// finish runs the clip-and-close pipeline over the store's accumulated
// edges and cells, producing the final Result.
func (e *Engine) finish() Result {
	connectEdges(e.store, e.bbox)
	clipEdges(e.store, e.bbox)
	pruneEdges(e.store)
	closeCells(e.store, e.bbox)

	return Result{Cells: e.store.Cells, Edges: e.store.Edges}
}
