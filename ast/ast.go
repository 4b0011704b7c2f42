// Package ast holds the parsed syntax tree of a source file and the
// queries the backend runs over it.
package ast

//go:generate sh -c "cd ../tool && go run . ../ast/nodes.adt ../ast/nodes_gen.go ast"

import (
	"math/big"

	"github.com/pontaoski/coral/intern"
	"github.com/pontaoski/coral/source"
)

// ModuleDecl is `module name { ... }`. Reopening a module adds to it.
type ModuleDecl struct {
	Pos  source.Location
	Name intern.Str
	Body []TopLevel
}

// ImportDecl is `import path;`, where path may be dotted and may start with
// '.' to resolve from the root.
type ImportDecl struct {
	Pos  source.Location
	Path string
}

// LetDecl is `let name: type = value;`. Type is the canonical spelling of
// the declared type.
type LetDecl struct {
	Pos   source.Location
	Name  intern.Str
	Type  string
	Value Expr
}

// FnDecl is an external function declaration `fn name(types...): type;`.
// An empty Returns means the function returns null.
type FnDecl struct {
	Pos     source.Location
	Name    intern.Str
	Params  []string
	Returns string
}

type IntLiteral struct {
	Pos   source.Location
	Value *big.Int
}

type FloatLiteral struct {
	Pos   source.Location
	Value float64
}

// TextLiteral holds the decoded bytes of a string or character literal.
type TextLiteral struct {
	Pos   source.Location
	Value string
}

// Path is a possibly dotted name.
type Path struct {
	Pos  source.Location
	Name string
}

type UnaryExpr struct {
	Pos source.Location
	Op  string
	X   Expr
}

type BinaryExpr struct {
	Pos  source.Location
	Op   string
	L, R Expr
}

type CallExpr struct {
	Pos  source.Location
	Fn   Expr
	Args []Expr
}

type SubscriptExpr struct {
	Pos   source.Location
	X     Expr
	Index []Expr
}

func PosOf(n interface{}) source.Location {
	switch v := n.(type) {
	case Module:
		return v.Pos
	case Import:
		return v.Pos
	case Let:
		return v.Pos
	case Fn:
		return v.Pos
	case IntLit:
		return v.Pos
	case FloatLit:
		return v.Pos
	case StrLit:
		return v.Pos
	case CharLit:
		return v.Pos
	case Ref:
		return v.Pos
	case Unary:
		return v.Pos
	case Binary:
		return v.Pos
	case Call:
		return v.Pos
	case Subscript:
		return v.Pos
	}
	return source.Location{}
}
