package net_expr

import (
	"bufio"
	"io"
	"strconv"

	"github.com/2x3systems/edgenet/edgenet"
	"github.com/2x3systems/edgenet/libnet/mesh"
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

var sNetLexer = lexer.MustSimple([]lexer.SimpleRule{
	{"comment", `#[^\n]*`},
	{"Number", `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{"Ident", `[a-z]+`},
	{"Punct", `[*/]`},
	{"EOL", `[\n;]+`},
	{"whitespace", `[ \t\r]+`},
})

var sParseNetExpr = participle.MustBuild[NetExpr](
	participle.Lexer(sNetLexer),
)

// ParseNetExpr parses the given net expression.
func ParseNetExpr(expr string) (*NetExpr, error) {
	return sParseNetExpr.ParseString("", expr)
}

// ReadNetExpr parses a net expression from the given reader.
func ReadNetExpr(filename string, r io.Reader) (*NetExpr, error) {
	return sParseNetExpr.Parse(filename, r)
}

// Build adds the vertices, edges and faces of this expression to dst, in order.
func (X *NetExpr) Build(dst edgenet.Builder) error {
	var verts []edgenet.VtxID

	vtxAt := func(pos lexer.Position, idx int) (edgenet.VtxID, error) {
		if idx < 1 || idx > len(verts) {
			return 0, errors.Wrapf(edgenet.ErrBadVtxID, "%v: vertex %d", pos, idx)
		}
		return verts[idx-1], nil
	}

	loopAt := func(pos lexer.Position, idxs []int) ([]edgenet.VtxID, error) {
		loop := make([]edgenet.VtxID, len(idxs))
		for i, idx := range idxs {
			v, err := vtxAt(pos, idx)
			if err != nil {
				return nil, err
			}
			loop[i] = v
		}
		return loop, nil
	}

	for _, stmt := range X.Stmts {
		switch {
		case stmt.Vert != nil:
			pos := r3.Vec{X: stmt.Vert.X, Y: stmt.Vert.Y}
			if stmt.Vert.Z != nil {
				pos.Z = *stmt.Vert.Z
			}
			verts = append(verts, dst.AddVert(pos))

		case stmt.Edge != nil:
			path, err := loopAt(stmt.Pos, stmt.Edge.Path)
			if err != nil {
				return err
			}
			for i := 1; i < len(path); i++ {
				if _, err = dst.AddEdge(path[i-1], path[i], stmt.Edge.Tagged); err != nil {
					return errors.Wrapf(err, "%v", stmt.Pos)
				}
			}

		case stmt.Face != nil:
			outer, err := loopAt(stmt.Pos, stmt.Face.Outer)
			if err != nil {
				return err
			}
			var holes [][]edgenet.VtxID
			for _, hole := range stmt.Face.Holes {
				loop, err := loopAt(stmt.Pos, hole.Verts)
				if err != nil {
					return err
				}
				holes = append(holes, loop)
			}
			if _, err = dst.CreateFace(outer, holes); err != nil {
				return errors.Wrapf(err, "%v", stmt.Pos)
			}
		}
	}
	return nil
}

// BuildMesh parses the given net expression into a new Mesh.
func BuildMesh(expr string) (*mesh.Mesh, error) {
	X, err := ParseNetExpr(expr)
	if err != nil {
		return nil, err
	}
	m := mesh.New()
	if err = X.Build(m); err != nil {
		m.Close()
		return nil, err
	}
	return m, nil
}

// WriteMesh writes m as a net expression that Build reproduces.
func WriteMesh(out io.Writer, m *mesh.Mesh) error {
	// w holds on to the first write error and Flush returns it, so individual writes go unchecked
	w := bufio.NewWriter(out)
	var buf [64]byte

	for vi := 1; vi <= m.NumVerts(); vi++ {
		pos := m.VertPos(edgenet.VtxID(vi))
		line := append(buf[:0], 'v')
		for _, c := range [3]float64{pos.X, pos.Y, pos.Z} {
			line = append(line, ' ')
			line = strconv.AppendFloat(line, c, 'g', -1, 64)
		}
		line = append(line, '\n')
		w.Write(line)
	}

	for ei := 1; ei <= m.NumEdges(); ei++ {
		edge := m.Edge(edgenet.EdgeID(ei))
		line := append(buf[:0], 'e')
		if edge.Tagged {
			line = append(line, '*')
		}
		line = append(line, ' ')
		line = strconv.AppendUint(line, uint64(edge.V1), 10)
		line = append(line, ' ')
		line = strconv.AppendUint(line, uint64(edge.V2), 10)
		line = append(line, '\n')
		w.Write(line)
	}

	appendLoop := func(line []byte, loop []edgenet.VtxID) []byte {
		for _, vi := range loop {
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(vi), 10)
		}
		return line
	}

	for fi := 1; fi <= m.NumFaces(); fi++ {
		face := m.Face(edgenet.FaceID(fi))
		line := appendLoop(append(buf[:0], 'f'), face.Outer)
		for _, hole := range face.Holes {
			line = appendLoop(append(line, ' ', '/'), hole)
		}
		line = append(line, '\n')
		w.Write(line)
	}

	return w.Flush()
}
