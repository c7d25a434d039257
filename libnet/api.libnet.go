package libnet

import (
	"github.com/2x3systems/edgenet/edgenet"
)

// ResolveEdgeNet finds the closed loops implied by the mesh's net edges and adds a face for each outer loop
// (with its nested holes), OR-ing faceFlag into every face created.
//
// If useEdgeTag is set, only tagged edges form the net; otherwise every edge of the mesh does.
// The pass always consumes every net edge and terminates; whatever could not be made into a face is summarized in the returned Report.
func ResolveEdgeNet(m edgenet.Mesh, useEdgeTag bool, faceFlag edgenet.FaceFlag) edgenet.Report {
	opts := edgenet.DefaultOpts()
	opts.UseEdgeTag = useEdgeTag
	opts.FaceFlag = faceFlag
	return Resolve(m, opts)
}

// Resolve is ResolveEdgeNet with explicit options.
//
// Resolve is re-entrant across independent meshes but m must not be accessed elsewhere while it runs.
func Resolve(m edgenet.Mesh, opts edgenet.Opts) edgenet.Report {
	var res resolver
	res.run(m, opts)
	return res.report
}
