package libnet_test

import (
	"testing"

	"github.com/2x3systems/edgenet/edgenet"
	"github.com/2x3systems/edgenet/libnet/mesh"
	net_expr "github.com/2x3systems/edgenet/libnet/net-expr"
)

func buildMesh(t *testing.T, expr string) *mesh.Mesh {
	t.Helper()
	m, err := net_expr.BuildMesh(expr)
	if err != nil {
		t.Fatalf("bad net expr: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func vtxIDs(ids ...int) []edgenet.VtxID {
	out := make([]edgenet.VtxID, len(ids))
	for i, id := range ids {
		out[i] = edgenet.VtxID(id)
	}
	return out
}

func sameLoop(a, b []edgenet.VtxID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// isCCW returns true if the given loop winds counter-clockwise in the XY plane.
func isCCW(m edgenet.Mesh, loop []edgenet.VtxID) bool {
	area := 0.0
	N := len(loop)
	for i, vi := range loop {
		p, q := m.VertPos(vi), m.VertPos(loop[(i+1)%N])
		area += p.X*q.Y - q.X*p.Y
	}
	return area > 0
}

// runsEdge returns true if the given loop runs directly from va to vb.
func runsEdge(loop []edgenet.VtxID, va, vb edgenet.VtxID) bool {
	N := len(loop)
	for i, vi := range loop {
		if vi == va && loop[(i+1)%N] == vb {
			return true
		}
	}
	return false
}

const (
	unitSquare = `
v 0 0
v 1 0
v 1 1
v 0 1
e* 1 2 3 4 1
`

	squareWithHole = `
v 0 0; v 4 0; v 4 4; v 0 4
v 1 1; v 1 3; v 3 3; v 3 1
e* 1 2 3 4 1
e* 5 6 7 8 5   # clockwise
`

	// the same outline and hole, both written counter-clockwise
	squareWithCCWHole = `
v 0 0; v 4 0; v 4 4; v 0 4
v 1 1; v 3 1; v 3 3; v 1 3
e* 1 2 3 4 1
e* 5 6 7 8 5
`

	// two unit squares sharing edge 2-5
	domino = `
v 0 0; v 1 0; v 2 0
v 2 1; v 1 1; v 0 1
e* 1 2 3 4 5 6 1
e* 2 5
`

	// two triangles sharing vertex 1
	figureEight = `
v 0 0
v -2 -1; v -2 1
v 2 -1;  v 2 1
e* 1 2 3 1
e* 1 4 5 1
`
)
