package libnet

import (
	"github.com/2x3systems/edgenet/edgenet"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// FaceMaterializer writes each classified outer loop, along with its holes, into a mesh as a face.
type FaceMaterializer struct {
	Mesh         edgenet.Mesh
	FaceFlag     edgenet.FaceFlag
	MatchWinding bool
}

// Materialize creates a face for every outer loop in cl, tallying results into report.
//
// A rejected face is recorded in report.Rejected and the remaining loops still materialize.
func (fm *FaceMaterializer) Materialize(cl *Classification, report *edgenet.Report) {
	for i := range cl.Loops {
		L := &cl.Loops[i]
		if L.Kind != LoopOuter {
			continue
		}

		if fm.coveredByFaces(&L.Loop) {
			report.FacesExisting++
			klog.V(2).Infof("edgenet: loop %v is already covered by faces", L.Verts)
			continue
		}

		outer := append([]edgenet.VtxID(nil), L.Verts...)
		var holes [][]edgenet.VtxID
		for _, hi := range L.Holes {
			holes = append(holes, append([]edgenet.VtxID(nil), cl.Loops[hi].Verts...))
		}

		if fm.MatchWinding && fm.runsWithNeighbour(&L.Loop) {
			reverseVerts(outer)
			for _, hole := range holes {
				reverseVerts(hole)
			}
		}

		face, err := fm.Mesh.CreateFace(outer, holes)
		if errors.Is(err, edgenet.ErrFaceExists) {
			report.FacesExisting++
			klog.V(2).Infof("edgenet: loop %v already has face %d", outer, face)
			continue
		}
		if err != nil {
			err = errors.Wrapf(err, "face over loop %v", outer)
			report.Rejected = append(report.Rejected, err)
			klog.Warningf("edgenet: %v", err)
			continue
		}

		if fm.FaceFlag != 0 {
			fm.Mesh.SetFaceFlag(face, fm.FaceFlag)
		}
		report.Faces = append(report.Faces, face)
		report.FacesCreated++
	}
}

// runsWithNeighbour returns true if the first edge of L that is used by existing faces is run by them
// in the same direction as L, meaning a face over L would face the opposite way to its neighbour.
func (fm *FaceMaterializer) runsWithNeighbour(L *Loop) bool {
	for i, e := range L.Edges {
		winding := fm.Mesh.EdgeWinding(e)
		if winding == 0 {
			continue
		}
		dir := -1
		if fm.Mesh.Edge(e).V1 == L.Verts[i] {
			dir = +1
		}
		return dir == winding
	}
	return false
}

// coveredByFaces returns true if existing faces run every edge of L in the same direction as L,
// so they already fill the inside of L.
func (fm *FaceMaterializer) coveredByFaces(L *Loop) bool {
	for i, e := range L.Edges {
		winding := fm.Mesh.EdgeWinding(e)
		if winding == 0 {
			return false
		}
		dir := -1
		if fm.Mesh.Edge(e).V1 == L.Verts[i] {
			dir = +1
		}
		if dir != winding {
			return false
		}
	}
	return len(L.Edges) > 0
}

func reverseVerts(loop []edgenet.VtxID) {
	for i, j := 0, len(loop)-1; i < j; i, j = i+1, j-1 {
		loop[i], loop[j] = loop[j], loop[i]
	}
}
