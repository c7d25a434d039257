package libnet

import (
	"github.com/2x3systems/edgenet/edgenet"
	"github.com/emirpasic/gods/trees/redblacktree"
)

// Loop is a closed walk over net edges: Edges[i] connects Verts[i] to Verts[(i+1) % len(Verts)].
type Loop struct {
	Verts []edgenet.VtxID
	Edges []edgenet.EdgeID
}

// Reverse reverses the direction of this loop in place, keeping Verts[0] first.
func (L *Loop) Reverse() {
	N := len(L.Verts)
	for i, j := 1, N-1; i < j; i, j = i+1, j-1 {
		L.Verts[i], L.Verts[j] = L.Verts[j], L.Verts[i]
	}
	for i, j := 0, N-1; i < j; i, j = i+1, j-1 {
		L.Edges[i], L.Edges[j] = L.Edges[j], L.Edges[i]
	}
}

// Chain is an open walk over net edges that did not close into a loop.
type Chain struct {
	Verts []edgenet.VtxID
}

func edgeIDComparator(a, b interface{}) int {
	ea := a.(edgenet.EdgeID)
	eb := b.(edgenet.EdgeID)
	switch {
	case ea < eb:
		return -1
	case ea > eb:
		return 1
	}
	return 0
}

// LoopWalker consumes net edges into loops and residual chains.
//
// Every net edge is consumed exactly once.  Leaving a vertex, the walker takes the first unconsumed edge
// found stepping clockwise from the edge it arrived by, so it traces the face on the left of its walk.
//
// An edge can bound two faces, so at a dead end the walker may close its run back onto the path over an
// edge it already consumed, provided that edge still borders fewer than two faces counting the loops of this walk.
type LoopWalker struct {
	idx       *AdjacencyIndex
	remaining *redblacktree.Tree // unconsumed EdgeIDs
	path      []edgenet.VtxID
	pathEdges []edgenet.EdgeID
	onPath    map[edgenet.VtxID]int
	ref       edgenet.EdgeID // last edge consumed or peeled at the path tip
	pending   []edgenet.VtxID
	uses      map[edgenet.EdgeID]int // loops each edge bounds so far

	Loops  []Loop
	Chains []Chain
}

// NewLoopWalker returns a walker over every net edge of the given index.
func NewLoopWalker(idx *AdjacencyIndex) *LoopWalker {
	w := &LoopWalker{
		idx:       idx,
		remaining: redblacktree.NewWith(edgeIDComparator),
		onPath:    make(map[edgenet.VtxID]int),
		uses:      make(map[edgenet.EdgeID]int),
	}
	for _, e := range idx.Edges() {
		w.remaining.Put(e, nil)
	}
	return w
}

// NumRemaining returns the number of net edges not yet consumed.
func (w *LoopWalker) NumRemaining() int {
	return w.remaining.Size()
}

func (w *LoopWalker) isConsumed(e edgenet.EdgeID) bool {
	_, found := w.remaining.Get(e)
	return !found
}

// WalkAll walks from the lowest remaining edge until every net edge is consumed.
func (w *LoopWalker) WalkAll() {
	for !w.remaining.Empty() {
		seed := w.remaining.Left().Key.(edgenet.EdgeID)
		w.Walk(seed)
	}
}

// Walk consumes the given seed edge, walking from its V1 to V2, plus every edge reachable from it by the walk.
//
// Returns false if the seed was already consumed.
func (w *LoopWalker) Walk(seed edgenet.EdgeID) bool {
	if w.isConsumed(seed) {
		return false
	}

	ends := w.idx.edgeEnds(seed)
	v1, v2 := ends[0], ends[1]
	w.remaining.Remove(seed)

	w.path = append(w.path[:0], v1)
	w.pathEdges = w.pathEdges[:0]
	w.onPath[v1] = 0
	w.ref = seed
	w.advance(seed, v2)

	for {
		tip := w.path[len(w.path)-1]
		next := w.nextEdge(tip)
		if next != 0 {
			w.remaining.Remove(next)
			w.ref = next
			w.advance(next, w.otherEnd(tip, next))
			continue
		}
		if len(w.pathEdges) == 0 {
			break
		}
		if e := w.closingEdge(tip); e != 0 {
			w.ref = e
			w.advance(e, w.otherEnd(tip, e))
			continue
		}
		w.peel()
	}

	delete(w.onPath, w.path[0])
	w.flushPending()
	return true
}

func (w *LoopWalker) otherEnd(v edgenet.VtxID, e edgenet.EdgeID) edgenet.VtxID {
	ends := w.idx.edgeEnds(e)
	if ends[0] == v {
		return ends[1]
	}
	return ends[0]
}

// advance appends edge e to the path, arriving at vertex to, and splits off a loop if to is already on the path.
func (w *LoopWalker) advance(e edgenet.EdgeID, to edgenet.VtxID) {
	w.pathEdges = append(w.pathEdges, e)

	k, revisit := w.onPath[to]
	if !revisit {
		w.onPath[to] = len(w.path)
		w.path = append(w.path, to)
		return
	}

	// closed loop: path[k:] back to path[k]
	loop := Loop{
		Verts: append([]edgenet.VtxID(nil), w.path[k:]...),
		Edges: append([]edgenet.EdgeID(nil), w.pathEdges[k:]...),
	}
	w.Loops = append(w.Loops, loop)
	for _, ei := range loop.Edges {
		w.uses[ei]++
	}

	for _, vi := range w.path[k+1:] {
		delete(w.onPath, vi)
	}
	w.path = w.path[:k+1]
	w.pathEdges = w.pathEdges[:k]
}

// nextEdge returns the first unconsumed edge at v stepping clockwise from w.ref, or 0 if v is a dead end.
func (w *LoopWalker) nextEdge(v edgenet.VtxID) edgenet.EdgeID {
	ring := w.idx.Ring(v)
	N := len(ring)
	if N == 0 {
		return 0
	}

	// degree 2 is the common case: the only other edge
	if N == 2 {
		for _, slot := range ring {
			if !w.isConsumed(slot.Edge) {
				return slot.Edge
			}
		}
		return 0
	}

	at := w.idx.slotOf(v, w.ref)
	if at < 0 {
		for _, slot := range ring {
			if !w.isConsumed(slot.Edge) {
				return slot.Edge
			}
		}
		return 0
	}
	for step := 1; step < N; step++ {
		slot := ring[(at-step+N)%N]
		if !w.isConsumed(slot.Edge) {
			return slot.Edge
		}
	}
	return 0
}

// closingEdge returns a consumed edge at dead end v that leads back onto the path and can still bound
// another face, found stepping clockwise from w.ref, or 0 if there is none.
func (w *LoopWalker) closingEdge(v edgenet.VtxID) edgenet.EdgeID {
	arrival := w.pathEdges[len(w.pathEdges)-1]
	ring := w.idx.Ring(v)
	N := len(ring)

	at := w.idx.slotOf(v, w.ref)
	if at < 0 {
		at = 0
	}
	for step := 1; step <= N; step++ {
		slot := ring[(at-step+N)%N]
		if slot.Edge == arrival || !w.isConsumed(slot.Edge) {
			continue
		}
		if _, on := w.onPath[slot.To]; !on {
			continue
		}
		if w.idx.faceCount(slot.Edge)+w.uses[slot.Edge] < 2 {
			return slot.Edge
		}
	}
	return 0
}

func (w *LoopWalker) hasUnconsumed(v edgenet.VtxID) bool {
	for _, slot := range w.idx.Ring(v) {
		if !w.isConsumed(slot.Edge) {
			return true
		}
	}
	return false
}

// peel backs the path up from a dead end to the nearest vertex that still has unconsumed edges,
// emitting the backed-over run as a residual chain.
func (w *LoopWalker) peel() {
	tip := w.path[len(w.path)-1]
	chain := []edgenet.VtxID{tip}

	for len(w.pathEdges) > 0 {
		last := len(w.pathEdges) - 1
		w.ref = w.pathEdges[last]
		w.pathEdges = w.pathEdges[:last]
		delete(w.onPath, tip)
		w.path = w.path[:len(w.path)-1]
		tip = w.path[len(w.path)-1]
		chain = append(chain, tip)
		if w.hasUnconsumed(tip) {
			break
		}
	}

	// a chain peeled back to the walk's root may join up with another one leaving the root
	if len(w.pathEdges) > 0 {
		w.Chains = append(w.Chains, Chain{Verts: chain})
		return
	}
	if w.pending == nil {
		w.pending = chain
		return
	}
	joined := w.pending
	for i := len(chain) - 2; i >= 0; i-- {
		joined = append(joined, chain[i])
	}
	w.pending = nil
	w.Chains = append(w.Chains, Chain{Verts: joined})
}

func (w *LoopWalker) flushPending() {
	if w.pending != nil {
		w.Chains = append(w.Chains, Chain{Verts: w.pending})
		w.pending = nil
	}
}
