// Package ast defines the trimmed syntax tree internal/lower walks to
// produce bytecode debug information: function declarations, blocks,
// if/while/return, assignment, and the expression forms needed to
// write realistic multi-scope source fixtures.
package ast

import "github.com/arclang/arcvm/internal/token"

// Node is any syntax-tree node with a known source location.
type Node interface {
	Pos() token.Position
	Span() token.Span
}

// Statement is an executable node.
type Statement interface {
	Node
	stmtNode()
}

// Expression produces a value.
type Expression interface {
	Node
	exprNode()
}

// Region is embedded by every concrete node to satisfy Node, so each
// node type only declares the fields that are actually specific to it.
type Region struct {
	Start token.Position
	End   token.Position
}

// NewRegion starts a Region covering a single position; callers widen
// it with Extend once the rest of the node has been parsed.
func NewRegion(at token.Position) Region {
	return Region{Start: at, End: at}
}

func (r Region) Pos() token.Position { return r.Start }
func (r Region) Span() token.Span    { return token.Span{Start: r.Start, End: r.End} }

// Extend moves the region's end out to to.
func (r *Region) Extend(to token.Position) { r.End = to }

// Program is the root node. It has no Region of its own; its span is
// whatever its statements collectively cover.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) == 0 {
		return token.Position{}
	}
	return p.Statements[0].Pos()
}

func (p *Program) Span() token.Span {
	if len(p.Statements) == 0 {
		return token.Span{}
	}
	return token.Span{Start: p.Statements[0].Pos(), End: p.Statements[len(p.Statements)-1].Span().End}
}

// Statements

type BlockStmt struct {
	Region
	Statements []Statement
}

func (*BlockStmt) stmtNode() {}

type ExprStmt struct {
	Region
	Expression Expression
}

func (*ExprStmt) stmtNode() {}

type ReturnStmt struct {
	Region
	Value Expression
}

func (*ReturnStmt) stmtNode() {}

type IfStmt struct {
	Region
	Condition Expression
	Conseq    *BlockStmt
	Alt       *BlockStmt
}

func (*IfStmt) stmtNode() {}

type WhileStmt struct {
	Region
	Condition Expression
	Body      *BlockStmt
}

func (*WhileStmt) stmtNode() {}

type FuncDecl struct {
	Region
	Name    string
	NamePos token.Position
	Params  []Param
	Body    *BlockStmt
}

func (*FuncDecl) stmtNode() {}

// Expressions

type Identifier struct {
	Region
	Name string
}

func (*Identifier) exprNode() {}

type NumberLiteral struct {
	Region
	Value string
}

func (*NumberLiteral) exprNode() {}

type StringLiteral struct {
	Region
	Value string
}

func (*StringLiteral) exprNode() {}

type BoolLiteral struct {
	Region
	Value bool
}

func (*BoolLiteral) exprNode() {}

type NullLiteral struct {
	Region
}

func (*NullLiteral) exprNode() {}

type CallExpr struct {
	Region
	Callee    Expression
	Arguments []Expression
}

func (*CallExpr) exprNode() {}

type AssignExpr struct {
	Region
	Left     Expression
	Value    Expression
	Operator token.Kind
}

func (*AssignExpr) exprNode() {}

type BinaryExpr struct {
	Region
	Left     Expression
	Operator token.Kind
	Right    Expression
}

func (*BinaryExpr) exprNode() {}

type UnaryExpr struct {
	Region
	Operator token.Kind
	Right    Expression
}

func (*UnaryExpr) exprNode() {}

// Param is a function parameter name; it isn't a Node since nothing
// needs to report a span for it on its own.
type Param struct {
	Name string
	Pos  token.Position
}
