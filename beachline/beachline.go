// Package beachline implements the ordered set of parabolic arcs that forms
// Fortune's sweepline beachline: a balanced tree for locate-by-x, kept in
// strict lock-step with a doubly-linked neighbor chain so that adjacent-arc
// access stays O(1) regardless of tree depth.
package beachline

import (
	"math"

	rbt "github.com/emirpasic/gods/trees/redblacktree"

	"github.com/mikenye/voronoi/geometry"
	"github.com/mikenye/voronoi/halfedge"
	"github.com/mikenye/voronoi/site"
)

// CircleEventRef is the minimal contract an arc needs from the circle event
// it may be carrying. The beachline package never constructs or inspects
// circle events directly — that belongs to the event queue and the
// sweepline driver — it only needs to be able to void one when an arc it
// was predicting the collapse of is removed or changes extent.
type CircleEventRef interface {
	Invalidate()
}

// Arc is one parabolic arc (beachsection) currently on the beachline.
type Arc struct {
	Site site.Site

	// Edge is the edge whose right side is bounded by this arc's left
	// break-point — the bisector being traced out as the sweepline
	// descends between this arc and its left neighbor.
	Edge *halfedge.Edge

	// CircleEvent references the event that would collapse this arc, if
	// one has been scheduled. Nil when no such event is pending.
	CircleEvent CircleEventRef

	prev, next *Arc
	inTree     bool
}

// Prev returns the arc immediately to the left of a on the beachline, and
// whether one exists.
func (a *Arc) Prev() (*Arc, bool) {
	return a.prev, a.prev != nil
}

// Next returns the arc immediately to the right of a on the beachline, and
// whether one exists.
func (a *Arc) Next() (*Arc, bool) {
	return a.next, a.next != nil
}

type entryKind uint8

const (
	entryNormal entryKind = iota
	entryQuery
)

type arcEntry struct {
	kind  entryKind
	arc   *Arc
	query float64 // x-coordinate being located, when kind == entryQuery
}

// Beachline is the engine's live beachline: a red-black tree ordering arcs
// by their current x-extent at the sweepline, plus the neighbor chain used
// for O(1) traversal. Its ordering is dynamic — it depends on the current
// directrix position, set with SetDirectrix before every query this sweep
// step needs.
type Beachline struct {
	tree   *rbt.Tree
	head   *Arc
	tail   *Arc
	count  int
	sweepY float64

	pool []*Arc
}

// New returns an empty Beachline.
func New() *Beachline {
	bl := &Beachline{}
	bl.tree = rbt.NewWith(beachlineComparator(bl))
	return bl
}

// SetDirectrix updates the sweepline position the beachline's ordering and
// break-point computations are evaluated against. The driver calls this
// once per event before locating or inserting arcs.
func (bl *Beachline) SetDirectrix(y float64) {
	bl.sweepY = y
}

// Len returns the number of arcs currently on the beachline.
func (bl *Beachline) Len() int {
	return bl.count
}

// IsEmpty reports whether the beachline holds no arcs.
func (bl *Beachline) IsEmpty() bool {
	return bl.count == 0
}

// NewArc returns an Arc for s, reused from the free list when one is
// available. The arc pool is the only state this package retains across a
// Clear(); this is a deliberate allocation optimization, not a correctness
// requirement.
func (bl *Beachline) NewArc(s site.Site) *Arc {
	if n := len(bl.pool); n > 0 {
		a := bl.pool[n-1]
		bl.pool = bl.pool[:n-1]
		a.Site = s
		a.Edge = nil
		a.CircleEvent = nil
		a.prev = nil
		a.next = nil
		a.inTree = false
		return a
	}
	return &Arc{Site: s}
}

// Locate returns the arc whose range contains x at the current directrix,
// and false if the beachline is empty.
func (bl *Beachline) Locate(x float64) (*Arc, bool) {
	if bl.count == 0 {
		return nil, false
	}
	value, found := bl.tree.Get(arcEntry{kind: entryQuery, query: x})
	if !found {
		return nil, false
	}
	return value.(*Arc), true
}

// First returns the leftmost arc on the beachline.
func (bl *Beachline) First() (*Arc, bool) {
	return bl.head, bl.head != nil
}

// Last returns the rightmost arc on the beachline.
func (bl *Beachline) Last() (*Arc, bool) {
	return bl.tail, bl.tail != nil
}

// InsertAfter attaches newArc as the in-order successor of pred (or as the
// sole arc, when pred is nil and the beachline is empty), updating both the
// tree and the neighbor chain.
func (bl *Beachline) InsertAfter(pred *Arc, newArc *Arc) {
	if pred == nil {
		newArc.prev = nil
		newArc.next = bl.head
		if bl.head != nil {
			bl.head.prev = newArc
		} else {
			bl.tail = newArc
		}
		bl.head = newArc
	} else {
		succ := pred.next
		newArc.prev = pred
		newArc.next = succ
		pred.next = newArc
		if succ != nil {
			succ.prev = newArc
		} else {
			bl.tail = newArc
		}
	}
	newArc.inTree = true
	bl.count++
	bl.tree.Put(arcEntry{kind: entryNormal, arc: newArc}, newArc)
}

// Remove detaches arc from both the neighbor chain and the tree, and
// returns it to the free list. Any circle event it was carrying is left
// untouched here — callers must invalidate it first, since the beachline
// has no visibility into the event queue.
func (bl *Beachline) Remove(arc *Arc) {
	if !arc.inTree {
		return
	}
	bl.tree.Remove(arcEntry{kind: entryNormal, arc: arc})

	if arc.prev != nil {
		arc.prev.next = arc.next
	} else {
		bl.head = arc.next
	}
	if arc.next != nil {
		arc.next.prev = arc.prev
	} else {
		bl.tail = arc.prev
	}

	arc.inTree = false
	bl.count--
	bl.pool = append(bl.pool, arc)
}

// Clear removes every arc from the beachline, returning each to the free
// list for reuse by a subsequent Compute call.
func (bl *Beachline) Clear() {
	for a := bl.head; a != nil; {
		next := a.next
		a.prev = nil
		a.next = nil
		a.inTree = false
		bl.pool = append(bl.pool, a)
		a = next
	}
	bl.head = nil
	bl.tail = nil
	bl.count = 0
	bl.tree.Clear()
}

// LeftBreak returns a's left break-point at the current directrix.
func (bl *Beachline) LeftBreak(a *Arc) float64 {
	return bl.leftBreak(a)
}

// RightBreak returns a's right break-point at the current directrix.
func (bl *Beachline) RightBreak(a *Arc) float64 {
	return bl.rightBreak(a)
}

// leftBreak returns a's left break-point at the current directrix.
func (bl *Beachline) leftBreak(a *Arc) float64 {
	if a.prev == nil {
		return math.Inf(-1)
	}
	return geometry.LeftBreakpoint(a.prev.Site.Point, true, a.Site.Point, bl.sweepY)
}

// rightBreak returns a's right break-point at the current directrix.
func (bl *Beachline) rightBreak(a *Arc) float64 {
	if a.next == nil {
		return math.Inf(1)
	}
	return geometry.RightBreakpoint(a.Site.Point, a.next.Site.Point, true, bl.sweepY)
}

// beachlineComparator builds the dynamic comparator for bl's tree: arcs
// order by their current [leftBreak, rightBreak) range at bl.sweepY, and a
// query entry matches whichever arc's range contains it. This mirrors a
// dual-mode comparator closed over the structure it orders, the same shape
// used to order a sweepline status structure by a dynamic sweep position.
func beachlineComparator(bl *Beachline) func(a, b interface{}) int {
	return func(x, y interface{}) int {
		A := x.(arcEntry)
		B := y.(arcEntry)

		if A.kind == entryQuery {
			left := bl.leftBreak(B.arc)
			right := bl.rightBreak(B.arc)
			switch {
			case A.query < left:
				return -1
			case A.query >= right:
				return 1
			default:
				return 0
			}
		}
		if B.kind == entryQuery {
			left := bl.leftBreak(A.arc)
			right := bl.rightBreak(A.arc)
			switch {
			case B.query < left:
				return 1
			case B.query >= right:
				return -1
			default:
				return 0
			}
		}

		if A.arc == B.arc {
			return 0
		}
		aRight := bl.rightBreak(A.arc)
		bLeft := bl.leftBreak(B.arc)
		if aRight <= bLeft {
			return -1
		}
		bRight := bl.rightBreak(B.arc)
		aLeft := bl.leftBreak(A.arc)
		if bRight <= aLeft {
			return 1
		}
		// Ranges overlap: this should not happen once invariant 1 holds,
		// but arcs inserted in the same site event share a boundary at
		// the query point; fall back to site x ordering to keep the tree
		// total-order consistent.
		return int(math.Copysign(1, A.arc.Site.X()-B.arc.Site.X()))
	}
}
