package edgenet

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// VtxID is a one-based index that identifies a vertex in a Mesh (0 denotes no vertex).
type VtxID uint32

// EdgeID is a one-based index that identifies an edge in a Mesh (0 denotes no edge).
type EdgeID uint32

// FaceID is a one-based index that identifies a face in a Mesh (0 denotes no face).
type FaceID uint32

// FaceFlag is an opaque caller-defined bitmask applied to every face a pass creates.
type FaceFlag uint32

// Edge is an unordered vertex pair plus its net membership tag.
//
// V1 and V2 are stored in creation order; that order is only used to pick the walk
// direction of a seed edge.
type Edge struct {
	V1, V2 VtxID
	Tagged bool
}

// Other returns the endpoint of this edge opposite v (or 0 if v is not an endpoint).
func (e Edge) Other(v VtxID) VtxID {
	switch v {
	case e.V1:
		return e.V2
	case e.V2:
		return e.V1
	}
	return 0
}

// Mesh is the mesh editing collaborator a net-resolution pass reads from and writes faces into.
//
// A pass requires exclusive access to a Mesh for its duration.
type Mesh interface {

	// NumVerts returns the number of vertices; valid VtxIDs are 1..NumVerts().
	NumVerts() int

	// VertPos returns the position of the given vertex.
	VertPos(v VtxID) r3.Vec

	// NumEdges returns the number of edges; valid EdgeIDs are 1..NumEdges().
	NumEdges() int

	// Edge returns the given edge.
	Edge(e EdgeID) Edge

	// EdgeFaceCount returns how many faces use the given edge as a boundary edge.
	EdgeFaceCount(e EdgeID) int

	// EdgeWinding reports the direction existing faces run the given edge:
	// +1 if they run V1 -> V2, -1 if V2 -> V1, 0 if no face uses it or faces disagree.
	EdgeWinding(e EdgeID) int

	// CreateFace adds a face bounded by the given outer loop and hole loops.
	// No vertices or edges are created: every consecutive loop pair must already share an edge.
	//
	// If an equivalent face already exists, its FaceID is returned along with ErrFaceExists.
	CreateFace(outer []VtxID, holes [][]VtxID) (FaceID, error)

	// SetFaceFlag ORs the given flag into the flags of the given face.
	SetFaceFlag(f FaceID, flag FaceFlag)
}

// Builder receives the elements of a mesh description, in order.
type Builder interface {
	AddVert(pos r3.Vec) VtxID
	AddEdge(v1, v2 VtxID, tagged bool) (EdgeID, error)
	CreateFace(outer []VtxID, holes [][]VtxID) (FaceID, error)
}

// Opts specifies how a net-resolution pass is run.
type Opts struct {
	UseEdgeTag   bool     // if set, only tagged edges form the net; otherwise every edge does
	FaceFlag     FaceFlag // OR'd into each newly created face (0 for none)
	Normal       r3.Vec   // projection normal; the zero vector selects the net's best-fit plane
	AreaEpsilon  float64  // loops with |area| below AreaEpsilon * (bounds diagonal)^2 are degenerate
	MatchWinding bool     // if set, orient new faces opposite to neighbouring faces across shared edges
}

// DefaultAreaEpsilon is the relative area below which a loop is treated as degenerate.
const DefaultAreaEpsilon = 1e-6

// DefaultOpts returns the options used by a plain edge-net pass.
func DefaultOpts() Opts {
	return Opts{
		UseEdgeTag:   true,
		AreaEpsilon:  DefaultAreaEpsilon,
		MatchWinding: true,
	}
}
