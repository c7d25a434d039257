package net_expr

import "github.com/alecthomas/participle/v2/lexer"

// NetExpr is a parsed net expression: a line-oriented description of vertices, edges and faces.
//
//	# a unit square net with a dangling edge
//	v 0 0        # vertex 1 (z defaults to 0)
//	v 1 0
//	v 1 1
//	v 0 1 0
//	v 2 2
//	e* 1 2 3 4 1 # tagged edges 1-2, 2-3, 3-4, 4-1
//	e 3 5        # untagged edge
//	f 1 2 3 4    # face over the square (edges must already exist)
//
// Vertex indices are one-based, in order of appearance.  A face's hole loops follow its outer loop, each
// introduced by '/'.  Statements are separated by newlines or ';'.
type NetExpr struct {
	Stmts []*Stmt `( EOL | @@ )*`
}

type Stmt struct {
	Pos lexer.Position

	Vert *VertStmt `  "v" @@`
	Edge *EdgeStmt `| "e" @@`
	Face *FaceStmt `| "f" @@`
}

type VertStmt struct {
	X float64  `@Number`
	Y float64  `@Number`
	Z *float64 `@Number?`
}

type EdgeStmt struct {
	Tagged bool  `@"*"?`
	Path   []int `@Number @Number+`
}

type FaceStmt struct {
	Outer []int       `@Number @Number @Number+`
	Holes []*HoleLoop `( "/" @@ )*`
}

type HoleLoop struct {
	Verts []int `@Number @Number @Number+`
}
