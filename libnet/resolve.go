package libnet

import (
	"github.com/2x3systems/edgenet/edgenet"
	"github.com/plan-systems/klog"
)

// resolver runs one net-resolution pass:
//
//	index net edges -> walk every edge into loops & chains -> classify & nest loops -> materialize faces
type resolver struct {
	idx    *AdjacencyIndex
	walker *LoopWalker
	report edgenet.Report
}

func (res *resolver) run(m edgenet.Mesh, opts edgenet.Opts) {
	res.idx = BuildAdjacencyIndex(m, opts)
	if res.idx.skippedFull > 0 {
		klog.V(2).Infof("edgenet: skipping %d edges already bordered by 2+ faces", res.idx.skippedFull)
	}
	if len(res.idx.Edges()) == 0 {
		return
	}

	res.walker = NewLoopWalker(res.idx)
	res.walker.WalkAll()

	report := &res.report
	report.Loops = len(res.walker.Loops)
	for _, chain := range res.walker.Chains {
		report.Residual = append(report.Residual, chain.Verts)
		klog.V(2).Infof("edgenet: residual chain %v", chain.Verts)
	}
	report.ResidualChains = len(res.walker.Chains)

	cl := ClassifyLoops(res.idx, m, res.walker.Loops, opts.AreaEpsilon)
	report.ZeroAreaLoops = cl.ZeroArea
	report.HolesAssigned = cl.HolesAssigned
	report.PromotedHoles = cl.Promoted

	fm := FaceMaterializer{
		Mesh:         m,
		FaceFlag:     opts.FaceFlag,
		MatchWinding: opts.MatchWinding,
	}
	fm.Materialize(&cl, report)

	klog.V(2).Infof("edgenet: %d net edges -> %v", len(res.idx.Edges()), report)
}
