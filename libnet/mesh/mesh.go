package mesh

import (
	"github.com/2x3systems/edgenet/edgenet"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// Face is a face boundary held by a Mesh: one outer loop plus zero or more hole loops.
type Face struct {
	Outer []edgenet.VtxID
	Holes [][]edgenet.VtxID
	Flags edgenet.FaceFlag
}

// NumVerts returns the total vertex count over the outer and hole loops.
func (f *Face) NumVerts() int {
	n := len(f.Outer)
	for _, hole := range f.Holes {
		n += len(hole)
	}
	return n
}

type edgeRec struct {
	edgenet.Edge
	fwd int32 // face runs V1 -> V2
	bwd int32 // face runs V2 -> V1
}

type vtxPair [2]edgenet.VtxID

func makeVtxPair(va, vb edgenet.VtxID) vtxPair {
	if va > vb {
		va, vb = vb, va
	}
	return vtxPair{va, vb}
}

// Mesh is an in-memory polygon mesh implementing edgenet.Mesh and edgenet.Builder.
//
// A Mesh is not safe for concurrent use.  Call Close() when done to release its face index.
type Mesh struct {
	verts   []r3.Vec
	edges   []edgeRec
	faces   []Face
	edgeMap map[vtxPair]edgenet.EdgeID
	index   faceIndex
	closed  bool
}

// New returns an empty Mesh.
func New() *Mesh {
	return &Mesh{
		edgeMap: make(map[vtxPair]edgenet.EdgeID),
	}
}

func (m *Mesh) Close() error {
	m.closed = true
	return m.index.Close()
}

func (m *Mesh) NumVerts() int { return len(m.verts) }
func (m *Mesh) NumEdges() int { return len(m.edges) }
func (m *Mesh) NumFaces() int { return len(m.faces) }

func (m *Mesh) AddVert(pos r3.Vec) edgenet.VtxID {
	m.verts = append(m.verts, pos)
	return edgenet.VtxID(len(m.verts))
}

func (m *Mesh) VertPos(v edgenet.VtxID) r3.Vec {
	return m.verts[v-1]
}

func (m *Mesh) validVtx(v edgenet.VtxID) bool {
	return v > 0 && int(v) <= len(m.verts)
}

// AddEdge adds an edge between two existing, distinct vertices.
func (m *Mesh) AddEdge(v1, v2 edgenet.VtxID, tagged bool) (edgenet.EdgeID, error) {
	if !m.validVtx(v1) || !m.validVtx(v2) {
		return 0, errors.Wrapf(edgenet.ErrBadVtxID, "edge %d-%d", v1, v2)
	}
	if v1 == v2 {
		return 0, errors.Wrapf(edgenet.ErrSelfEdge, "vertex %d", v1)
	}
	key := makeVtxPair(v1, v2)
	if existing := m.edgeMap[key]; existing != 0 {
		return existing, errors.Wrapf(edgenet.ErrDuplicateEdge, "edge %d-%d", v1, v2)
	}
	m.edges = append(m.edges, edgeRec{
		Edge: edgenet.Edge{V1: v1, V2: v2, Tagged: tagged},
	})
	id := edgenet.EdgeID(len(m.edges))
	m.edgeMap[key] = id
	return id, nil
}

// FindEdge returns the edge connecting the given vertices, or 0 if there isn't one.
func (m *Mesh) FindEdge(va, vb edgenet.VtxID) edgenet.EdgeID {
	return m.edgeMap[makeVtxPair(va, vb)]
}

func (m *Mesh) Edge(e edgenet.EdgeID) edgenet.Edge {
	return m.edges[e-1].Edge
}

// TagEdge sets or clears the net membership tag of the given edge.
func (m *Mesh) TagEdge(e edgenet.EdgeID, tagged bool) error {
	if e == 0 || int(e) > len(m.edges) {
		return errors.Wrapf(edgenet.ErrBadEdgeID, "edge %d", e)
	}
	m.edges[e-1].Tagged = tagged
	return nil
}

func (m *Mesh) EdgeFaceCount(e edgenet.EdgeID) int {
	rec := &m.edges[e-1]
	return int(rec.fwd + rec.bwd)
}

func (m *Mesh) EdgeWinding(e edgenet.EdgeID) int {
	rec := &m.edges[e-1]
	switch {
	case rec.fwd > 0 && rec.bwd == 0:
		return +1
	case rec.bwd > 0 && rec.fwd == 0:
		return -1
	}
	return 0
}

// Face returns the given face (read only).
func (m *Mesh) Face(f edgenet.FaceID) *Face {
	return &m.faces[f-1]
}

func (m *Mesh) SetFaceFlag(f edgenet.FaceID, flag edgenet.FaceFlag) {
	m.faces[f-1].Flags |= flag
}

// checkLoop verifies a face boundary loop and returns the edges it runs along.
func (m *Mesh) checkLoop(loop []edgenet.VtxID, edges []edgenet.EdgeID) ([]edgenet.EdgeID, error) {
	N := len(loop)
	if N < 3 {
		return nil, errors.Wrapf(edgenet.ErrBadLoop, "%d vertices", N)
	}
	for i, vi := range loop {
		if !m.validVtx(vi) {
			return nil, errors.Wrapf(edgenet.ErrBadVtxID, "loop vertex %d", vi)
		}
		for _, vj := range loop[:i] {
			if vi == vj {
				return nil, errors.Wrapf(edgenet.ErrBadLoop, "vertex %d repeats", vi)
			}
		}
	}
	for i, vi := range loop {
		vj := loop[(i+1)%N]
		e := m.FindEdge(vi, vj)
		if e == 0 {
			return nil, errors.Wrapf(edgenet.ErrMissingEdge, "%d-%d", vi, vj)
		}
		edges = append(edges, e)
	}
	return edges, nil
}

// CreateFace adds a face bounded by outer and the given holes, all of which must run along existing edges.
func (m *Mesh) CreateFace(outer []edgenet.VtxID, holes [][]edgenet.VtxID) (edgenet.FaceID, error) {
	if m.closed {
		return 0, edgenet.ErrMeshClosed
	}

	var edgesBuf [32]edgenet.EdgeID
	edges, err := m.checkLoop(outer, edgesBuf[:0])
	if err != nil {
		return 0, err
	}
	for _, hole := range holes {
		if edges, err = m.checkLoop(hole, edges); err != nil {
			return 0, err
		}
	}

	key := appendFaceKey(nil, outer, holes)
	existing, err := m.index.lookup(key)
	if err != nil {
		return 0, err
	}
	if existing != 0 {
		return existing, edgenet.ErrFaceExists
	}

	face := Face{
		Outer: append([]edgenet.VtxID(nil), outer...),
	}
	for _, hole := range holes {
		face.Holes = append(face.Holes, append([]edgenet.VtxID(nil), hole...))
	}
	m.faces = append(m.faces, face)
	id := edgenet.FaceID(len(m.faces))

	if err = m.index.insert(key, id); err != nil {
		m.faces = m.faces[:id-1]
		return 0, err
	}

	// tally the direction each boundary edge is run
	ei := 0
	tally := func(loop []edgenet.VtxID) {
		for _, vi := range loop {
			rec := &m.edges[edges[ei]-1]
			if rec.V1 == vi {
				rec.fwd++
			} else {
				rec.bwd++
			}
			ei++
		}
	}
	tally(outer)
	for _, hole := range holes {
		tally(hole)
	}

	return id, nil
}
