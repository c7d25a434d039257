package edgenet

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Report summarizes what a net-resolution pass did and what it could not resolve into faces.
type Report struct {
	Faces          []FaceID  // faces created this pass, in creation order
	FacesCreated   int       // len(Faces)
	FacesExisting  int       // loops whose face, or faces covering it, were already present in the mesh
	Loops          int       // closed loops found by the walk (before classification)
	HolesAssigned  int       // hole loops nested under an outer loop
	PromotedHoles  int       // clockwise-walked loops that nothing encloses, reoriented to outer
	ZeroAreaLoops  int       // closed loops dropped for having (near) zero area
	ResidualChains int       // open chains that never closed into a loop
	Residual       [][]VtxID // vertex runs of each residual chain
	Rejected       []error   // per-loop face creation failures
}

// Resolved returns true if every net edge ended up bounding a face.
func (r *Report) Resolved() bool {
	return r.ResidualChains == 0 && r.ZeroAreaLoops == 0 && len(r.Rejected) == 0
}

// Err folds any face rejections into a single error, or returns nil if there were none.
func (r *Report) Err() error {
	switch len(r.Rejected) {
	case 0:
		return nil
	case 1:
		return r.Rejected[0]
	}
	msgs := make([]string, len(r.Rejected))
	for i, err := range r.Rejected {
		msgs[i] = err.Error()
	}
	return errors.Wrapf(ErrFaceRejected, "%d loops: %s", len(r.Rejected), strings.Join(msgs, "; "))
}

func (r *Report) String() string {
	return fmt.Sprintf("faces=%d,existing=%d,loops=%d,holes=%d,promoted=%d,zero-area=%d,residual=%d,rejected=%d",
		r.FacesCreated, r.FacesExisting, r.Loops, r.HolesAssigned, r.PromotedHoles, r.ZeroAreaLoops, r.ResidualChains, len(r.Rejected))
}
