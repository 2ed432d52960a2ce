// Package event implements the sweepline's two event sub-queues: the
// immutable, once-sorted site-event sequence and the dynamically-ordered
// circle-event set with lazy invalidation and periodic compaction.
package event

import (
	rbt "github.com/emirpasic/gods/trees/redblacktree"

	"github.com/mikenye/voronoi/beachline"
	"github.com/mikenye/voronoi/site"
)

// SiteEvent is a site event: the sweepline reaching a site, which inserts a
// new arc into the beachline.
type SiteEvent struct {
	Site site.Site
}

// CircleEvent predicts that arc will collapse when the sweepline reaches Y,
// producing a Voronoi vertex at (X, YCenter). Valid distinguishes a live
// event from one whose arc has since been removed or changed extent; once
// cleared, the event is left in the queue to be dropped by the next
// Sanitize pass rather than removed immediately.
type CircleEvent struct {
	Arc     *beachline.Arc
	X       float64
	Y       float64
	YCenter float64
	Valid   bool

	seq int64 // tie-break for events sharing (Y, X), assigned on Push
}

// Invalidate marks e as no longer predicting a real collapse. It satisfies
// beachline.CircleEventRef so an Arc can void its own event without the
// beachline package needing to know anything about circle events.
func (e *CircleEvent) Invalidate() {
	e.Valid = false
}

// SiteQueue is the immutable, once-sorted sequence of site events. Sites
// are sorted at construction into sweep order (y ascending, x ascending), so
// Pop, which reads off the front, yields them in the order the sweep must
// consume them — the same (y, x) ascending order circleComparator uses for
// circle events, so the two queues compare directly against each other.
type SiteQueue struct {
	sites []site.Site
	pos   int
}

// NewSiteQueue sorts sites into sweep order and returns a queue over them.
// The input slice is not mutated; a sorted copy is taken.
func NewSiteQueue(sites []site.Site) *SiteQueue {
	sorted := make([]site.Site, len(sites))
	copy(sorted, sites)
	site.Sort(sorted)
	return &SiteQueue{sites: sorted}
}

// Peek returns the next site event without consuming it.
func (q *SiteQueue) Peek() (site.Site, bool) {
	if q.pos >= len(q.sites) {
		return site.Site{}, false
	}
	return q.sites[q.pos], true
}

// Pop returns and consumes the next site event in sweep order.
func (q *SiteQueue) Pop() (site.Site, bool) {
	s, ok := q.Peek()
	if ok {
		q.pos++
	}
	return s, ok
}

// IsEmpty reports whether every site event has been consumed.
func (q *SiteQueue) IsEmpty() bool {
	return q.pos >= len(q.sites)
}

// circleComparator orders circle events by (y ascending, x ascending) — the
// next event to fire is numerically smallest under this order — the same
// tie-break convention the site queue uses for its own events. Events that
// land on the identical (y, x), which genuinely happens for coincident
// circle events, fall back to insertion order so the tree's total order
// stays well-defined without merging distinct collapsing arcs into one
// entry.
func circleComparator(a, b interface{}) int {
	x := a.(*CircleEvent)
	y := b.(*CircleEvent)
	if x == y {
		return 0
	}
	switch {
	case x.Y < y.Y:
		return -1
	case x.Y > y.Y:
		return 1
	case x.X < y.X:
		return -1
	case x.X > y.X:
		return 1
	}
	if x.seq < y.seq {
		return -1
	}
	return 1
}

// CircleQueue is the dynamically-ordered set of live circle events.
type CircleQueue struct {
	tree    *rbt.Tree
	invalid int
	next    int64
}

// NewCircleQueue returns an empty circle-event queue.
func NewCircleQueue() *CircleQueue {
	return &CircleQueue{tree: rbt.NewWith(circleComparator)}
}

// IsEmpty reports whether the queue holds no entries, valid or otherwise.
func (q *CircleQueue) IsEmpty() bool {
	return q.tree.Empty()
}

// Push inserts a new, valid circle event.
func (q *CircleQueue) Push(e *CircleEvent) {
	e.Valid = true
	e.seq = q.next
	q.next++
	q.tree.Put(e, e)
}

// Peek returns the earliest valid circle event without removing it,
// transparently skipping (but not removing) invalidated entries in front
// of it.
func (q *CircleQueue) Peek() (*CircleEvent, bool) {
	it := q.tree.Iterator()
	for it.Next() {
		e := it.Key().(*CircleEvent)
		if e.Valid {
			return e, true
		}
	}
	return nil, false
}

// Pop removes and returns the earliest valid circle event, discarding any
// invalidated entries encountered ahead of it.
func (q *CircleQueue) Pop() (*CircleEvent, bool) {
	for {
		node := q.tree.Left()
		if node == nil {
			return nil, false
		}
		e := node.Key.(*CircleEvent)
		q.tree.Remove(e)
		if e.Valid {
			return e, true
		}
		q.invalid--
	}
}

// MarkInvalid records that a previously-pushed event has been invalidated
// in place (its Valid flag cleared by the caller via Invalidate), without
// removing it from the tree. This is the lazy half of the queue's
// invalidation discipline; Sanitize performs the eventual compaction.
func (q *CircleQueue) MarkInvalid() {
	q.invalid++
}

// Sanitize compacts the queue when the number of invalidated-but-still-
// present entries makes it worth paying for a sweep: once the queue's
// total length exceeds twice arcCount, invalid entries are removed
// starting from the back (the part farthest from the sweepline, where
// invalidations accumulate) until the queue shrinks back below arcCount or
// the back run of invalid entries is exhausted.
func (q *CircleQueue) Sanitize(arcCount int) {
	if q.tree.Size() <= 2*arcCount {
		return
	}
	for q.tree.Size() >= arcCount {
		node := q.tree.Right()
		if node == nil {
			return
		}
		e := node.Key.(*CircleEvent)
		if e.Valid {
			return
		}
		q.tree.Remove(e)
		q.invalid--
	}
}
