package edgenet

import "github.com/pkg/errors"

// Errors
var (
	ErrBadVtxID      = errors.New("bad vertex ID")
	ErrBadEdgeID     = errors.New("bad edge ID")
	ErrDuplicateEdge = errors.New("edge already exists")
	ErrSelfEdge      = errors.New("edge connects a vertex to itself")
	ErrMissingEdge   = errors.New("no edge between consecutive loop vertices")
	ErrBadLoop       = errors.New("loop has fewer than 3 vertices or repeats a vertex")
	ErrFaceExists    = errors.New("face already exists")
	ErrFaceRejected  = errors.New("face creation rejected")
	ErrMeshClosed    = errors.New("mesh closed")
)
