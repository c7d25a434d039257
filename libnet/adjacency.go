package libnet

import (
	"math"
	"sort"

	"github.com/2x3systems/edgenet/edgenet"
	"gonum.org/v1/gonum/spatial/r3"
)

// RingSlot is one net edge incident to a vertex, as seen from that vertex.
type RingSlot struct {
	Edge  edgenet.EdgeID
	To    edgenet.VtxID // opposite endpoint
	Angle float64       // direction of the edge leaving the vertex, in [0, 2π) (projected)
}

// AdjacencyIndex maps each vertex touched by a net edge to its incident net edges,
// ordered counter-clockwise by projected angle (ties by EdgeID).
//
// An AdjacencyIndex is built once per pass and is read-only thereafter.
type AdjacencyIndex struct {
	plane       netPlane
	rings       [][]RingSlot // indexed by VtxID-1; nil for vertices not in the net
	pos         []xy         // indexed by VtxID-1; projected positions of net vertices
	edges       []edgenet.EdgeID
	ends        map[edgenet.EdgeID][2]edgenet.VtxID
	bordered    map[edgenet.EdgeID]int // faces already bordering a net edge, when non-zero
	skippedFull int
}

// BuildAdjacencyIndex gathers the net edges of m and indexes them.
//
// When opts.UseEdgeTag is set, only tagged edges are part of the net.  Edges already bordered by two or more
// faces are never part of the net.
func BuildAdjacencyIndex(m edgenet.Mesh, opts edgenet.Opts) *AdjacencyIndex {
	Nv := m.NumVerts()
	Ne := m.NumEdges()

	idx := &AdjacencyIndex{
		rings:    make([][]RingSlot, Nv),
		pos:      make([]xy, Nv),
		ends:     make(map[edgenet.EdgeID][2]edgenet.VtxID),
		bordered: make(map[edgenet.EdgeID]int),
	}

	for ei := 1; ei <= Ne; ei++ {
		e := edgenet.EdgeID(ei)
		edge := m.Edge(e)
		if opts.UseEdgeTag && !edge.Tagged {
			continue
		}
		if edge.V1 == edge.V2 || edge.V1 == 0 || edge.V2 == 0 {
			continue
		}
		faces := m.EdgeFaceCount(e)
		if faces >= 2 {
			idx.skippedFull++
			continue
		}
		if faces > 0 {
			idx.bordered[e] = faces
		}
		idx.edges = append(idx.edges, e)
		idx.ends[e] = [2]edgenet.VtxID{edge.V1, edge.V2}
		idx.rings[edge.V1-1] = append(idx.rings[edge.V1-1], RingSlot{Edge: e, To: edge.V2})
		idx.rings[edge.V2-1] = append(idx.rings[edge.V2-1], RingSlot{Edge: e, To: edge.V1})
	}

	normal := opts.Normal
	if r3.Norm(normal) == 0 {
		var pts []r3.Vec
		for vi, ring := range idx.rings {
			if len(ring) > 0 {
				pts = append(pts, m.VertPos(edgenet.VtxID(vi+1)))
			}
		}
		normal = fitNormal(pts)
	}
	idx.plane = newNetPlane(normal)

	for vi, ring := range idx.rings {
		if len(ring) > 0 {
			idx.pos[vi] = idx.plane.project(m.VertPos(edgenet.VtxID(vi + 1)))
		}
	}

	for vi, ring := range idx.rings {
		if len(ring) == 0 {
			continue
		}
		p0 := idx.pos[vi]
		for j := range ring {
			pj := idx.pos[ring[j].To-1]
			angle := math.Atan2(pj.Y-p0.Y, pj.X-p0.X)
			if angle < 0 {
				angle += 2 * math.Pi
			}
			ring[j].Angle = angle
		}
		sort.Slice(ring, func(a, b int) bool {
			if ring[a].Angle != ring[b].Angle {
				return ring[a].Angle < ring[b].Angle
			}
			return ring[a].Edge < ring[b].Edge
		})
	}

	return idx
}

// Ring returns the net edges incident to the given vertex in counter-clockwise order.
func (idx *AdjacencyIndex) Ring(v edgenet.VtxID) []RingSlot {
	if v == 0 || int(v) > len(idx.rings) {
		return nil
	}
	return idx.rings[v-1]
}

// Degree returns the number of net edges incident to the given vertex.
func (idx *AdjacencyIndex) Degree(v edgenet.VtxID) int {
	return len(idx.Ring(v))
}

// Edges returns the net edges in ascending EdgeID order.
func (idx *AdjacencyIndex) Edges() []edgenet.EdgeID {
	return idx.edges
}

// Normal returns the unit normal of the plane the net is projected onto.
func (idx *AdjacencyIndex) Normal() r3.Vec {
	return idx.plane.normal
}

func (idx *AdjacencyIndex) slotOf(v edgenet.VtxID, e edgenet.EdgeID) int {
	for i, slot := range idx.rings[v-1] {
		if slot.Edge == e {
			return i
		}
	}
	return -1
}

// edgeEnds returns the V1, V2 endpoints of the given net edge.
func (idx *AdjacencyIndex) edgeEnds(e edgenet.EdgeID) [2]edgenet.VtxID {
	return idx.ends[e]
}

// faceCount returns how many existing faces border the given net edge.
func (idx *AdjacencyIndex) faceCount(e edgenet.EdgeID) int {
	return idx.bordered[e]
}
