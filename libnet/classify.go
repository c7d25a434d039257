package libnet

import (
	"math"
	"sort"

	"github.com/2x3systems/edgenet/edgenet"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/plan-systems/klog"
	"gonum.org/v1/gonum/spatial/r3"
)

// LoopKind classifies a closed loop.
type LoopKind byte

const (
	LoopDegenerate LoopKind = iota // (near) zero area, dropped
	LoopOuter                      // counter-clockwise boundary at even nesting depth
	LoopHole                       // clockwise boundary at odd nesting depth, inside its parent
)

func (kind LoopKind) String() string {
	switch kind {
	case LoopOuter:
		return "outer"
	case LoopHole:
		return "hole"
	}
	return "degenerate"
}

type bounds struct {
	min, max xy
}

func (b *bounds) contains(o *bounds) bool {
	return o.min.X >= b.min.X && o.max.X <= b.max.X && o.min.Y >= b.min.Y && o.max.Y <= b.max.Y
}

func (b *bounds) diag2() float64 {
	dx := b.max.X - b.min.X
	dy := b.max.Y - b.min.Y
	return dx*dx + dy*dy
}

// ClassifiedLoop is a Loop plus its classification.
type ClassifiedLoop struct {
	Loop
	Kind     LoopKind
	Area     float64 // signed projected area; positive for counter-clockwise
	Parent   int     // index of the enclosing outer loop (holes only), otherwise -1
	Holes    []int   // indices of holes assigned to this loop (outer loops only)
	Promoted bool    // set if this loop was walked clockwise and nothing encloses it

	pts    []xy
	bounds bounds
}

func (L *ClassifiedLoop) reverse() {
	L.Loop.Reverse()
	N := len(L.pts)
	for i, j := 1, N-1; i < j; i, j = i+1, j-1 {
		L.pts[i], L.pts[j] = L.pts[j], L.pts[i]
	}
	L.Area = -L.Area
}

// Classification is the result of classifying and nesting a set of loops.
type Classification struct {
	Loops         []ClassifiedLoop
	ZeroArea      int
	HolesAssigned int
	Promoted      int
}

type areaKey struct {
	area float64
	idx  int
}

func areaKeyComparator(a, b interface{}) int {
	ka := a.(areaKey)
	kb := b.(areaKey)
	switch {
	case ka.area < kb.area:
		return -1
	case ka.area > kb.area:
		return 1
	case ka.idx < kb.idx:
		return -1
	case ka.idx > kb.idx:
		return 1
	}
	return 0
}

// ClassifyLoops computes the signed area of each loop, drops degenerate loops, and orients and nests
// the rest by containment.
//
// Loops are placed in order of decreasing |area|, each under the smallest placed loop that encloses it.
// A loop at even nesting depth is an outer loop and winds counter-clockwise; a loop at odd depth is a hole
// of its parent and winds clockwise.  Loops are reversed as needed, so how a loop was walked never decides
// what it becomes.  A clockwise loop that nothing encloses is counted as a promoted hole.
func ClassifyLoops(idx *AdjacencyIndex, m edgenet.Mesh, loops []Loop, areaEpsilon float64) Classification {
	if areaEpsilon <= 0 {
		areaEpsilon = edgenet.DefaultAreaEpsilon
	}

	cl := Classification{
		Loops: make([]ClassifiedLoop, len(loops)),
	}

	var live []int
	var posBuf []r3.Vec
	for i, loop := range loops {
		Li := &cl.Loops[i]
		Li.Loop = loop
		Li.Parent = -1

		if len(loop.Verts) < 3 {
			Li.Kind = LoopDegenerate
			cl.ZeroArea++
			klog.V(2).Infof("edgenet: dropping %d-vertex loop %v", len(loop.Verts), loop.Verts)
			continue
		}

		posBuf = posBuf[:0]
		Li.pts = make([]xy, len(loop.Verts))
		for j, vj := range loop.Verts {
			posBuf = append(posBuf, m.VertPos(vj))
			pt := idx.pos[vj-1]
			Li.pts[j] = pt
			if j == 0 {
				Li.bounds = bounds{min: pt, max: pt}
			} else {
				Li.bounds.min.X = math.Min(Li.bounds.min.X, pt.X)
				Li.bounds.min.Y = math.Min(Li.bounds.min.Y, pt.Y)
				Li.bounds.max.X = math.Max(Li.bounds.max.X, pt.X)
				Li.bounds.max.Y = math.Max(Li.bounds.max.Y, pt.Y)
			}
		}
		Li.Area = idx.plane.signedArea(posBuf)

		if math.Abs(Li.Area) <= areaEpsilon*Li.bounds.diag2() {
			Li.Kind = LoopDegenerate
			cl.ZeroArea++
			klog.V(2).Infof("edgenet: dropping zero-area loop %v (area %g)", loop.Verts, Li.Area)
			continue
		}
		live = append(live, i)
	}

	sort.SliceStable(live, func(a, b int) bool {
		return math.Abs(cl.Loops[live[a]].Area) > math.Abs(cl.Loops[live[b]].Area)
	})

	// loops placed so far, smallest |area| first
	placed := redblacktree.NewWith(areaKeyComparator)
	depth := make([]int, len(loops))

	for _, i := range live {
		L := &cl.Loops[i]
		absArea := math.Abs(L.Area)

		parent := -1
		it := placed.Iterator()
		for it.Next() {
			key := it.Key().(areaKey)
			if key.area <= absArea {
				continue
			}
			if cl.Loops[key.idx].encloses(L) {
				parent = key.idx
				break
			}
		}
		placed.Put(areaKey{absArea, i}, nil)
		if parent >= 0 {
			depth[i] = depth[parent] + 1
		}

		if depth[i]%2 == 0 {
			L.Kind = LoopOuter
			if L.Area < 0 {
				L.reverse()
				if parent < 0 {
					L.Promoted = true
					cl.Promoted++
					klog.V(2).Infof("edgenet: promoting unenclosed hole %v to outer loop", L.Verts)
				}
			}
			continue
		}

		L.Kind = LoopHole
		if L.Area > 0 {
			L.reverse()
		}
		L.Parent = parent
		P := &cl.Loops[parent]
		P.Holes = append(P.Holes, i)
		cl.HolesAssigned++
	}

	return cl
}

// encloses returns true if H lies within L: no vertex of H is outside L and at least one lies strictly inside.
//
// Vertices H shares with L, or that lie on L's boundary, decide nothing, so loops that only touch L are not within it.
func (L *ClassifiedLoop) encloses(H *ClassifiedLoop) bool {
	if !L.bounds.contains(&H.bounds) {
		return false
	}
	within := false
	for j, vj := range H.Verts {
		shared := false
		for _, vi := range L.Verts {
			if vi == vj {
				shared = true
				break
			}
		}
		if shared || onLoop(L.pts, H.pts[j]) {
			continue
		}
		if !pointInLoop(L.pts, H.pts[j]) {
			return false
		}
		within = true
	}
	return within
}

// onLoop returns true if p lies on the boundary of the given polygon.
func onLoop(poly []xy, p xy) bool {
	N := len(poly)
	for i, j := 0, N-1; i < N; j, i = i, i+1 {
		if onSegment(poly[i], poly[j], p) {
			return true
		}
	}
	return false
}

// pointInLoop returns true if p is inside the given polygon or on its boundary (even-odd rule).
func pointInLoop(poly []xy, p xy) bool {
	N := len(poly)
	inside := false
	for i, j := 0, N-1; i < N; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if onSegment(a, b, p) {
			return true
		}
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

func onSegment(a, b, p xy) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	len2 := (b.X-a.X)*(b.X-a.X) + (b.Y-a.Y)*(b.Y-a.Y)
	if cross*cross > 1e-18*len2*len2 {
		return false
	}
	return p.X >= math.Min(a.X, b.X) && p.X <= math.Max(a.X, b.X) &&
		p.Y >= math.Min(a.Y, b.Y) && p.Y <= math.Max(a.Y, b.Y)
}
