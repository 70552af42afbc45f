// Package parser is a hand-written recursive-descent parser over the
// trimmed grammar internal/ast describes: function declarations,
// blocks, if/while, return, assignment, and a standard arithmetic/
// logical/call expression ladder. Each precedence level gets its own
// function rather than a Pratt-style prefix/infix dispatch table,
// since there are few enough operators that the ladder reads linearly
// and needs no precedence map to maintain.
package parser

import (
	"fmt"

	"github.com/arclang/arcvm/internal/ast"
	"github.com/arclang/arcvm/internal/lexer"
	"github.com/arclang/arcvm/internal/token"
)

// Parser consumes tokens from a Lexer one at a time. Every production
// in this grammar can be decided from the current token alone, so
// unlike a Pratt parser there is no need to carry a second token of
// lookahead.
type Parser struct {
	l   *lexer.Lexer
	cur token.Token

	errors []string
}

// New returns a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.advance()
	return p
}

// Errors returns every parse error collected so far.
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) advance() {
	p.cur = p.l.NextToken()
}

func (p *Parser) fail(pos token.Position, format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf("%d:%d: %s", pos.Line, pos.Column, fmt.Sprintf(format, args...)))
}

// expect advances past cur if it has kind, recording an error and
// leaving the cursor in place otherwise.
func (p *Parser) expect(kind token.Kind) bool {
	if p.cur.Kind == kind {
		p.advance()
		return true
	}
	p.fail(p.cur.Pos, "expected %s, got %s", kind, p.cur.Kind)
	return false
}

// ParseProgram parses a full source file as a sequence of statements.
// Any statement form is accepted at the top level; restricting it to
// function declarations is left to internal/lower.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.cur.Kind != token.EOF {
		if stmt := p.parseStatement(); stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		} else {
			// parseStatement already recorded an error; skip the
			// offending token so the loop makes progress.
			p.advance()
		}
	}
	return prog
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case token.Func:
		return p.parseFuncDecl()
	case token.Return:
		return p.parseReturn()
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.LBrace:
		return p.parseBlock()
	default:
		return p.parseExprStatement()
	}
}

func (p *Parser) parseBlock() *ast.BlockStmt {
	block := &ast.BlockStmt{Region: ast.NewRegion(p.cur.Pos)}
	p.expect(token.LBrace)
	for p.cur.Kind != token.RBrace && p.cur.Kind != token.EOF {
		stmt := p.parseStatement()
		if stmt == nil {
			p.advance()
			continue
		}
		block.Statements = append(block.Statements, stmt)
	}
	block.Extend(p.cur.Pos)
	p.expect(token.RBrace)
	return block
}

func (p *Parser) parseReturn() ast.Statement {
	stmt := &ast.ReturnStmt{Region: ast.NewRegion(p.cur.Pos)}
	p.advance()
	if !p.atBlockBoundary() {
		stmt.Value = p.parseExpression()
		if stmt.Value != nil {
			stmt.Extend(stmt.Value.Span().End)
		}
	}
	return stmt
}

func (p *Parser) parseIf() ast.Statement {
	stmt := &ast.IfStmt{Region: ast.NewRegion(p.cur.Pos)}
	p.advance()
	if !p.expect(token.LParen) {
		return stmt
	}
	stmt.Condition = p.parseExpression()
	p.expect(token.RParen)
	stmt.Conseq = p.parseBlock()
	stmt.Extend(stmt.Conseq.Span().End)

	if p.cur.Kind == token.Else {
		p.advance()
		stmt.Alt = p.parseBlock()
		stmt.Extend(stmt.Alt.Span().End)
	}
	return stmt
}

func (p *Parser) parseWhile() ast.Statement {
	stmt := &ast.WhileStmt{Region: ast.NewRegion(p.cur.Pos)}
	p.advance()
	if !p.expect(token.LParen) {
		return stmt
	}
	stmt.Condition = p.parseExpression()
	p.expect(token.RParen)
	stmt.Body = p.parseBlock()
	stmt.Extend(stmt.Body.Span().End)
	return stmt
}

func (p *Parser) parseFuncDecl() ast.Statement {
	decl := &ast.FuncDecl{Region: ast.NewRegion(p.cur.Pos)}
	p.advance()
	if p.cur.Kind == token.Ident {
		decl.Name = p.cur.Literal
		decl.NamePos = p.cur.Pos
		p.advance()
	} else {
		p.fail(p.cur.Pos, "expected function name, got %s", p.cur.Kind)
	}
	if p.expect(token.LParen) {
		decl.Params = p.parseParams()
		p.expect(token.RParen)
	}
	decl.Body = p.parseBlock()
	decl.Extend(decl.Body.Span().End)
	return decl
}

func (p *Parser) parseParams() []ast.Param {
	var params []ast.Param
	if p.cur.Kind == token.RParen {
		return params
	}
	for {
		if p.cur.Kind != token.Ident {
			p.fail(p.cur.Pos, "expected parameter name, got %s", p.cur.Kind)
			return params
		}
		params = append(params, ast.Param{Name: p.cur.Literal, Pos: p.cur.Pos})
		p.advance()
		if p.cur.Kind != token.Comma {
			return params
		}
		p.advance()
		if p.cur.Kind == token.RParen {
			p.fail(p.cur.Pos, "expected parameter after ','")
			return params
		}
	}
}

func (p *Parser) parseExprStatement() ast.Statement {
	start := p.cur.Pos
	expr := p.parseExpression()
	stmt := &ast.ExprStmt{Region: ast.NewRegion(start), Expression: expr}
	if expr != nil {
		stmt.Extend(expr.Span().End)
	}
	return stmt
}

// atBlockBoundary reports whether cur can't possibly start an
// expression, i.e. a return with no value is about to end.
func (p *Parser) atBlockBoundary() bool {
	switch p.cur.Kind {
	case token.RBrace, token.EOF:
		return true
	default:
		return false
	}
}

// The expression ladder: each level parses its own operators and
// recurses into the level below for operands, from loosest (logical
// or) to tightest (call/primary). Assignment sits above all of them
// since its right-hand side is itself a full expression.

func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expression {
	left := p.parseLogicalOr()
	if left == nil || p.cur.Kind != token.Assign {
		return left
	}
	expr := &ast.AssignExpr{Region: ast.NewRegion(left.Pos()), Left: left, Operator: p.cur.Kind}
	p.advance()
	expr.Value = p.parseAssignment()
	if expr.Value != nil {
		expr.Extend(expr.Value.Span().End)
	}
	return expr
}

func (p *Parser) parseLogicalOr() ast.Expression {
	left := p.parseLogicalAnd()
	for left != nil && p.cur.Kind == token.OrOr {
		left = p.parseBinary(left, p.parseLogicalAnd)
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	left := p.parseEquality()
	for left != nil && p.cur.Kind == token.AndAnd {
		left = p.parseBinary(left, p.parseEquality)
	}
	return left
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseComparison()
	for left != nil && (p.cur.Kind == token.Equal || p.cur.Kind == token.NotEqual) {
		left = p.parseBinary(left, p.parseComparison)
	}
	return left
}

func (p *Parser) parseComparison() ast.Expression {
	left := p.parseAdditive()
	for left != nil && isComparison(p.cur.Kind) {
		left = p.parseBinary(left, p.parseAdditive)
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for left != nil && (p.cur.Kind == token.Plus || p.cur.Kind == token.Minus) {
		left = p.parseBinary(left, p.parseMultiplicative)
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for left != nil && (p.cur.Kind == token.Star || p.cur.Kind == token.Slash) {
		left = p.parseBinary(left, p.parseUnary)
	}
	return left
}

// parseBinary consumes cur as the operator of a BinaryExpr whose left
// operand is already parsed and whose right operand comes from
// operand, the next level down.
func (p *Parser) parseBinary(left ast.Expression, operand func() ast.Expression) ast.Expression {
	op := p.cur.Kind
	p.advance()
	right := operand()
	if right == nil {
		return nil
	}
	return &ast.BinaryExpr{
		Region:   ast.Region{Start: left.Pos(), End: right.Span().End},
		Left:     left,
		Operator: op,
		Right:    right,
	}
}

func (p *Parser) parseUnary() ast.Expression {
	if p.cur.Kind == token.Bang || p.cur.Kind == token.Minus || p.cur.Kind == token.Plus {
		pos := p.cur.Pos
		op := p.cur.Kind
		p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.UnaryExpr{Region: ast.Region{Start: pos, End: operand.Span().End}, Operator: op, Right: operand}
	}
	return p.parseCall()
}

func (p *Parser) parseCall() ast.Expression {
	expr := p.parsePrimary()
	for expr != nil && p.cur.Kind == token.LParen {
		expr = p.finishCall(expr)
	}
	return expr
}

func (p *Parser) finishCall(callee ast.Expression) ast.Expression {
	p.advance() // '('
	args, end := p.parseArguments()
	return &ast.CallExpr{Region: ast.Region{Start: callee.Pos(), End: end}, Callee: callee, Arguments: args}
}

func (p *Parser) parseArguments() ([]ast.Expression, token.Position) {
	var args []ast.Expression
	if p.cur.Kind == token.RParen {
		end := p.cur.Pos
		p.advance()
		return args, end
	}
	for {
		arg := p.parseExpression()
		if arg == nil {
			break
		}
		args = append(args, arg)
		if p.cur.Kind != token.Comma {
			break
		}
		p.advance()
		if p.cur.Kind == token.RParen {
			p.fail(p.cur.Pos, "expected expression after ','")
			break
		}
	}
	end := p.cur.Pos
	if !p.expect(token.RParen) {
		return args, end
	}
	return args, end
}

func (p *Parser) parsePrimary() ast.Expression {
	pos := p.cur.Pos
	switch p.cur.Kind {
	case token.Ident:
		lit := p.cur.Literal
		p.advance()
		return &ast.Identifier{Region: ast.NewRegion(pos), Name: lit}
	case token.Number:
		lit := p.cur.Literal
		p.advance()
		return &ast.NumberLiteral{Region: ast.NewRegion(pos), Value: lit}
	case token.String:
		lit := p.cur.Literal
		p.advance()
		return &ast.StringLiteral{Region: ast.NewRegion(pos), Value: lit}
	case token.True:
		p.advance()
		return &ast.BoolLiteral{Region: ast.NewRegion(pos), Value: true}
	case token.False:
		p.advance()
		return &ast.BoolLiteral{Region: ast.NewRegion(pos), Value: false}
	case token.Null:
		p.advance()
		return &ast.NullLiteral{Region: ast.NewRegion(pos)}
	case token.LParen:
		p.advance()
		inner := p.parseExpression()
		p.expect(token.RParen)
		return inner
	default:
		p.fail(pos, "unexpected token %s", p.cur.Kind)
		p.advance()
		return nil
	}
}

func isComparison(kind token.Kind) bool {
	switch kind {
	case token.Less, token.LessEqual, token.Greater, token.GreaterEqual:
		return true
	default:
		return false
	}
}
