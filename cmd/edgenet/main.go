package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/2x3systems/edgenet/edgenet"
	"github.com/2x3systems/edgenet/libnet"
	"github.com/2x3systems/edgenet/libnet/mesh"
	net_expr "github.com/2x3systems/edgenet/libnet/net-expr"
	"github.com/fatih/color"
	"github.com/plan-systems/klog"
)

func main() {
	klog.InitFlags(nil)
	flag.Set("logtostderr", "true")
	flag.Set("v", "1")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	// klog's flags (-v for verbosity) are bound to the command line alongside these
	allEdges := flag.Bool("all", false, "resolve every edge, not just tagged (e*) edges")
	faceFlag := flag.Uint("flag", 0, "flag bits OR'd into each created face")
	areaEps := flag.Float64("eps", edgenet.DefaultAreaEpsilon, "relative area below which a loop is degenerate")
	keepWinding := flag.Bool("keep-winding", false, "don't orient new faces to match neighbouring faces")
	flag.Parse()

	err := run(flag.Arg(0), os.Stdout, edgenet.Opts{
		UseEdgeTag:   !*allEdges,
		FaceFlag:     edgenet.FaceFlag(*faceFlag),
		AreaEpsilon:  *areaEps,
		MatchWinding: !*keepWinding,
	})
	if err != nil {
		klog.Error(err)
		klog.Flush()
		os.Exit(1)
	}

	klog.Flush()
}

func run(pathname string, out io.Writer, opts edgenet.Opts) error {
	var in io.Reader = os.Stdin
	if pathname != "" && pathname != "-" {
		file, err := os.Open(pathname)
		if err != nil {
			return err
		}
		defer file.Close()
		in = file
	}

	X, err := net_expr.ReadNetExpr(pathname, in)
	if err != nil {
		return err
	}

	m := mesh.New()
	defer m.Close()
	if err = X.Build(m); err != nil {
		return err
	}

	report := libnet.Resolve(m, opts)
	klog.V(1).Infof("%s: %v", pathname, &report)

	if !report.Resolved() {
		warn := color.New(color.FgYellow)
		warn.Fprintf(os.Stderr, "edgenet: unresolved: %d residual chains, %d zero-area loops, %d rejected faces\n",
			report.ResidualChains, report.ZeroAreaLoops, len(report.Rejected))
		for _, chain := range report.Residual {
			warn.Fprintf(os.Stderr, "  residual chain %v\n", chain)
		}
		if err := report.Err(); err != nil {
			warn.Fprintf(os.Stderr, "  %v\n", err)
		}
	}

	if err = net_expr.WriteMesh(out, m); err != nil {
		return err
	}
	fmt.Fprintf(out, "# %v\n", &report)
	return nil
}
