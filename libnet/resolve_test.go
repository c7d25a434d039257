package libnet_test

import (
	"testing"

	"github.com/2x3systems/edgenet/edgenet"
	"github.com/2x3systems/edgenet/libnet"
	"github.com/2x3systems/edgenet/libnet/mesh"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestResolveSquare(t *testing.T) {
	m := buildMesh(t, unitSquare)
	report := libnet.ResolveEdgeNet(m, true, 0)

	if !report.Resolved() || report.FacesCreated != 1 || report.Loops != 1 {
		t.Fatalf("unexpected report: %v", &report)
	}
	if m.NumFaces() != 1 {
		t.Fatalf("expected 1 face, got %d", m.NumFaces())
	}
	face := m.Face(report.Faces[0])
	if !sameLoop(face.Outer, vtxIDs(1, 2, 3, 4)) || len(face.Holes) != 0 {
		t.Errorf("unexpected face %v", face)
	}
	if face.Flags != 0 {
		t.Errorf("expected no face flags, got %v", face.Flags)
	}
}

func TestResolveCWSquare(t *testing.T) {
	m := buildMesh(t, `
v 0 0; v 1 0; v 1 1; v 0 1
e* 1 4 3 2 1
`)
	report := libnet.ResolveEdgeNet(m, true, 0)

	if report.FacesCreated != 1 || report.HolesAssigned != 0 || !report.Resolved() {
		t.Fatalf("unexpected report: %v", &report)
	}
	face := m.Face(report.Faces[0])
	if !isCCW(m, face.Outer) || len(face.Holes) != 0 {
		t.Errorf("expected one counter-clockwise face, got %v", face)
	}
}

func TestResolveSquareWithHole(t *testing.T) {
	for _, tc := range []struct {
		name string
		expr string
		hole []edgenet.VtxID
	}{
		{"clockwise", squareWithHole, vtxIDs(5, 6, 7, 8)},
		{"counter-clockwise", squareWithCCWHole, vtxIDs(5, 8, 7, 6)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := buildMesh(t, tc.expr)
			report := libnet.ResolveEdgeNet(m, true, 0)

			if report.Loops != 2 || report.FacesCreated != 1 || report.HolesAssigned != 1 || report.PromotedHoles != 0 {
				t.Fatalf("unexpected report: %v", &report)
			}
			face := m.Face(report.Faces[0])
			if !sameLoop(face.Outer, vtxIDs(1, 2, 3, 4)) {
				t.Errorf("unexpected outer loop %v", face.Outer)
			}
			if len(face.Holes) != 1 || !sameLoop(face.Holes[0], tc.hole) {
				t.Errorf("unexpected holes %v", face.Holes)
			}
			if len(face.Holes) == 1 && isCCW(m, face.Holes[0]) {
				t.Errorf("hole %v should wind clockwise", face.Holes[0])
			}
		})
	}
}

func TestResolveFigureEight(t *testing.T) {
	m := buildMesh(t, figureEight)
	report := libnet.ResolveEdgeNet(m, true, 0)

	if report.FacesCreated != 2 || report.HolesAssigned != 0 || !report.Resolved() {
		t.Fatalf("unexpected report: %v", &report)
	}
	if f := m.Face(report.Faces[0]); !sameLoop(f.Outer, vtxIDs(1, 3, 2)) || !isCCW(m, f.Outer) {
		t.Errorf("unexpected first face %v", f.Outer)
	}
	if f := m.Face(report.Faces[1]); !sameLoop(f.Outer, vtxIDs(1, 4, 5)) || !isCCW(m, f.Outer) {
		t.Errorf("unexpected second face %v", f.Outer)
	}
}

func TestResolveDomino(t *testing.T) {
	m := buildMesh(t, domino)
	report := libnet.ResolveEdgeNet(m, true, 0)

	if report.FacesCreated != 2 || report.ResidualChains != 0 || !report.Resolved() {
		t.Fatalf("unexpected report: %v", &report)
	}
	if f := m.Face(report.Faces[0]); !sameLoop(f.Outer, vtxIDs(1, 2, 5, 6)) {
		t.Errorf("unexpected first face %v", f.Outer)
	}
	if f := m.Face(report.Faces[1]); !sameLoop(f.Outer, vtxIDs(2, 3, 4, 5)) {
		t.Errorf("unexpected second face %v", f.Outer)
	}

	shared := m.FindEdge(2, 5)
	if n := m.EdgeFaceCount(shared); n != 2 {
		t.Errorf("expected shared edge to border 2 faces, got %d", n)
	}
	if w := m.EdgeWinding(shared); w != 0 {
		t.Errorf("faces should run the shared edge in opposite directions, got winding %d", w)
	}
}

func TestResolveSplitSquare(t *testing.T) {
	m := buildMesh(t, `
v 0 0; v 1 0; v 1 1; v 0 1
e* 1 2 3 4 1
e* 1 3
`)
	report := libnet.ResolveEdgeNet(m, true, 0)

	if report.FacesCreated != 2 || report.HolesAssigned != 0 || !report.Resolved() {
		t.Fatalf("unexpected report: %v", &report)
	}
	for _, f := range report.Faces {
		if face := m.Face(f); len(face.Outer) != 3 || !isCCW(m, face.Outer) {
			t.Errorf("expected a counter-clockwise triangle, got %v", face.Outer)
		}
	}
}

func TestResolveNestedIsland(t *testing.T) {
	for _, tc := range []struct {
		name        string
		holeVerts   string
		islandVerts string
		hole        []edgenet.VtxID
		islandHole  []edgenet.VtxID
	}{
		{
			"alternating",
			"v 2 2;   v 2 8;    v 8 8;    v 8 2",
			"v 4.5 4.5; v 4.5 5.5; v 5.5 5.5; v 5.5 4.5",
			vtxIDs(5, 6, 7, 8),
			vtxIDs(13, 14, 15, 16),
		}, {
			"counter-clockwise",
			"v 2 2;   v 8 2;    v 8 8;    v 2 8",
			"v 4.5 4.5; v 5.5 4.5; v 5.5 5.5; v 4.5 5.5",
			vtxIDs(5, 8, 7, 6),
			vtxIDs(13, 16, 15, 14),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := buildMesh(t, `
v 0 0;   v 10 0;   v 10 10;  v 0 10
`+tc.holeVerts+`
v 4 4;   v 6 4;    v 6 6;    v 4 6
`+tc.islandVerts+`
e* 1 2 3 4 1
e* 5 6 7 8 5
e* 9 10 11 12 9
e* 13 14 15 16 13
`)
			report := libnet.ResolveEdgeNet(m, true, 0)

			if report.Loops != 4 || report.FacesCreated != 2 || report.HolesAssigned != 2 || report.PromotedHoles != 0 {
				t.Fatalf("unexpected report: %v", &report)
			}

			outer := m.Face(report.Faces[0])
			if !sameLoop(outer.Outer, vtxIDs(1, 2, 3, 4)) || len(outer.Holes) != 1 || !sameLoop(outer.Holes[0], tc.hole) {
				t.Errorf("unexpected outer face %v", outer)
			}
			island := m.Face(report.Faces[1])
			if !sameLoop(island.Outer, vtxIDs(9, 10, 11, 12)) || len(island.Holes) != 1 || !sameLoop(island.Holes[0], tc.islandHole) {
				t.Errorf("unexpected island face %v", island)
			}
		})
	}
}

func TestResolveLollipop(t *testing.T) {
	m := buildMesh(t, `
v 0 0; v 2 0; v 1 2; v 1 0.8
e* 1 2 3 1
e* 3 4
`)
	report := libnet.ResolveEdgeNet(m, true, 0)

	if report.FacesCreated != 1 || report.ResidualChains != 1 || report.Resolved() {
		t.Fatalf("unexpected report: %v", &report)
	}
	if !sameLoop(report.Residual[0], vtxIDs(4, 3)) {
		t.Errorf("unexpected residual chain %v", report.Residual[0])
	}
	if f := m.Face(report.Faces[0]); !sameLoop(f.Outer, vtxIDs(1, 2, 3)) {
		t.Errorf("unexpected face %v", f.Outer)
	}
}

func TestResolveZeroAreaLoop(t *testing.T) {
	m := buildMesh(t, `
v 0 0; v 1 0; v 2 0
e* 1 2 3 1
`)
	report := libnet.ResolveEdgeNet(m, true, 0)

	if report.Loops != 1 || report.ZeroAreaLoops != 1 || report.FacesCreated != 0 || report.Resolved() {
		t.Fatalf("unexpected report: %v", &report)
	}
	if m.NumFaces() != 0 {
		t.Errorf("expected no faces, got %d", m.NumFaces())
	}
}

func TestResolveEmptyNet(t *testing.T) {
	m := buildMesh(t, `
v 0 0; v 1 0; v 1 1; v 0 1
e 1 2 3 4 1
`)
	report := libnet.ResolveEdgeNet(m, true, 0)
	if !report.Resolved() || report.Loops != 0 || report.FacesCreated != 0 || report.Err() != nil {
		t.Fatalf("unexpected report: %v", &report)
	}

	// every edge forms the net when tags are ignored
	report = libnet.ResolveEdgeNet(m, false, 0)
	if !report.Resolved() || report.FacesCreated != 1 {
		t.Fatalf("unexpected report: %v", &report)
	}
}

func TestResolveIdempotent(t *testing.T) {
	m := buildMesh(t, unitSquare)
	first := libnet.ResolveEdgeNet(m, true, 0)
	if first.FacesCreated != 1 {
		t.Fatalf("unexpected first report: %v", &first)
	}

	second := libnet.ResolveEdgeNet(m, true, 0)
	if second.FacesCreated != 0 || second.FacesExisting != 1 || !second.Resolved() {
		t.Fatalf("unexpected second report: %v", &second)
	}
	if m.NumFaces() != 1 {
		t.Errorf("expected 1 face after two passes, got %d", m.NumFaces())
	}
}

func TestResolveSecondPass(t *testing.T) {
	for _, tc := range []struct {
		name string
		expr string
	}{
		{"hole", squareWithHole},
		{"ccw-hole", squareWithCCWHole},
		{"lollipop", `
v 0 0; v 2 0; v 1 2; v 1 0.8
e* 1 2 3 1
e* 3 4
`},
		{"figure-eight", figureEight},
		{"domino", domino},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := buildMesh(t, tc.expr)
			first := libnet.ResolveEdgeNet(m, true, 0)
			if first.FacesCreated == 0 {
				t.Fatalf("unexpected first report: %v", &first)
			}
			numFaces := m.NumFaces()

			second := libnet.ResolveEdgeNet(m, true, 0)
			if second.FacesCreated != 0 || len(second.Rejected) != 0 {
				t.Errorf("second pass created faces: %v", &second)
			}
			if second.FacesExisting == 0 {
				t.Errorf("second pass should find existing faces: %v", &second)
			}
			if second.ResidualChains != first.ResidualChains {
				t.Errorf("residual chains changed from %d to %d", first.ResidualChains, second.ResidualChains)
			}
			if m.NumFaces() != numFaces {
				t.Errorf("face count changed from %d to %d", numFaces, m.NumFaces())
			}
		})
	}
}

func TestResolveFaceFlag(t *testing.T) {
	const flag = edgenet.FaceFlag(1 << 2)

	m := buildMesh(t, squareWithHole)
	report := libnet.ResolveEdgeNet(m, true, flag)
	if report.FacesCreated != 1 {
		t.Fatalf("unexpected report: %v", &report)
	}
	if flags := m.Face(report.Faces[0]).Flags; flags != flag {
		t.Errorf("expected face flags %v, got %v", flag, flags)
	}

	// faces that already exist keep their flags
	report = libnet.ResolveEdgeNet(m, true, 1)
	if report.FacesExisting != 1 || report.FacesCreated != 0 {
		t.Fatalf("unexpected report: %v", &report)
	}
	if flags := m.Face(1).Flags; flags != flag {
		t.Errorf("existing face flags changed to %v", flags)
	}
}

// A square face sits left of a net that shares its right edge.
const besideFace = `
v 0 0; v 1 0; v 1 1; v 0 1
v 2 0; v 2 1
e 1 2 3 4 1
f 1 4 3 2
e* 2 5 6 3
`

func TestResolveMatchWinding(t *testing.T) {
	m := buildMesh(t, besideFace)
	if err := m.TagEdge(m.FindEdge(2, 3), true); err != nil {
		t.Fatal(err)
	}

	report := libnet.ResolveEdgeNet(m, true, 0)
	if report.FacesCreated != 1 {
		t.Fatalf("unexpected report: %v", &report)
	}

	// the existing face runs 3 -> 2, so the new one must run 2 -> 3
	face := m.Face(report.Faces[0])
	if !runsEdge(face.Outer, 2, 3) {
		t.Errorf("new face %v does not oppose its neighbour", face.Outer)
	}
	if n := m.EdgeFaceCount(m.FindEdge(2, 3)); n != 2 {
		t.Errorf("expected shared edge to border 2 faces, got %d", n)
	}
	if w := m.EdgeWinding(m.FindEdge(2, 3)); w != 0 {
		t.Errorf("expected mixed winding on shared edge, got %d", w)
	}
}

func TestResolveKeepWinding(t *testing.T) {
	m := buildMesh(t, besideFace)
	if err := m.TagEdge(m.FindEdge(2, 3), true); err != nil {
		t.Fatal(err)
	}

	opts := edgenet.DefaultOpts()
	opts.MatchWinding = false
	report := libnet.Resolve(m, opts)
	if report.FacesCreated != 1 {
		t.Fatalf("unexpected report: %v", &report)
	}
	face := m.Face(report.Faces[0])
	if !sameLoop(face.Outer, vtxIDs(2, 5, 6, 3)) {
		t.Errorf("unexpected face %v", face.Outer)
	}
}

func TestResolveTilted(t *testing.T) {
	m := buildMesh(t, `
v 0 0 0; v 1 0 0.5; v 1 1 0.5; v 0 1 0
e* 1 2 3 4 1
`)
	report := libnet.ResolveEdgeNet(m, true, 0)
	if report.FacesCreated != 1 || report.PromotedHoles != 0 {
		t.Fatalf("unexpected report: %v", &report)
	}
}

func TestResolveExplicitNormal(t *testing.T) {
	m := buildMesh(t, unitSquare)

	// seen from below, the square winds clockwise
	opts := edgenet.DefaultOpts()
	opts.Normal = r3.Vec{Z: -1}
	report := libnet.Resolve(m, opts)
	if report.FacesCreated != 1 || report.PromotedHoles != 1 {
		t.Fatalf("unexpected report: %v", &report)
	}
	if f := m.Face(report.Faces[0]); !sameLoop(f.Outer, vtxIDs(1, 4, 3, 2)) {
		t.Errorf("unexpected face %v", f.Outer)
	}
}

var errRejected = errors.New("rejected")

// rejectingMesh refuses any face that touches the given vertex.
type rejectingMesh struct {
	*mesh.Mesh
	reject edgenet.VtxID
}

func (m *rejectingMesh) CreateFace(outer []edgenet.VtxID, holes [][]edgenet.VtxID) (edgenet.FaceID, error) {
	for _, vi := range outer {
		if vi == m.reject {
			return 0, errRejected
		}
	}
	return m.Mesh.CreateFace(outer, holes)
}

func TestResolveRejectedFace(t *testing.T) {
	m := &rejectingMesh{
		Mesh: buildMesh(t, `
v 0 0; v 1 0; v 1 1; v 0 1
v 3 0; v 4 0; v 4 1; v 3 1
e* 1 2 3 4 1
e* 5 6 7 8 5
`),
		reject: 6,
	}

	report := libnet.ResolveEdgeNet(m, true, 0)
	if report.FacesCreated != 1 || len(report.Rejected) != 1 || report.Resolved() {
		t.Fatalf("unexpected report: %v", &report)
	}
	if err := report.Err(); !errors.Is(err, errRejected) {
		t.Errorf("expected rejection error, got %v", err)
	}
	if f := m.Face(report.Faces[0]); !sameLoop(f.Outer, vtxIDs(1, 2, 3, 4)) {
		t.Errorf("unexpected face %v", f.Outer)
	}
}
