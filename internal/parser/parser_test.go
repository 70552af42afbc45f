package parser

import (
	"testing"

	"github.com/arclang/arcvm/internal/ast"
	"github.com/arclang/arcvm/internal/lexer"
	"github.com/arclang/arcvm/internal/token"
)

func TestParseReturnAndExpr(t *testing.T) {
	input := `return 5
a = 10 + 2`

	p := New(lexer.New(input))
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("parser errors: %v", p.Errors())
	}
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
	_, ok := prog.Statements[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected ReturnStmt, got %T", prog.Statements[0])
	}
	if _, ok := prog.Statements[1].(*ast.ExprStmt); !ok {
		t.Fatalf("expected ExprStmt, got %T", prog.Statements[1])
	}
}

func TestParseWhileLoop(t *testing.T) {
	input := `while (a < 10) {
  a = a + 1
}`
	p := New(lexer.New(input))
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("parser errors: %v", p.Errors())
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	stmt, ok := prog.Statements[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected WhileStmt, got %T", prog.Statements[0])
	}
	if stmt.Condition == nil || stmt.Body == nil {
		t.Fatalf("missing condition or body")
	}
}

func TestParseFunctionDecl(t *testing.T) {
	input := `func add(a, b) {
  return a + b
}`
	p := New(lexer.New(input))
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("parser errors: %v", p.Errors())
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	fn, ok := prog.Statements[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected FuncDecl, got %T", prog.Statements[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected func signature: %s %d params", fn.Name, len(fn.Params))
	}
	if fn.Body == nil || len(fn.Body.Statements) != 1 {
		t.Fatalf("unexpected body")
	}
}

func TestParseIfElseCallCondition(t *testing.T) {
	input := `if (compute(1, 2) > 2) { return 1 } else { return 0 }`
	p := New(lexer.New(input))
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("parser errors: %v", p.Errors())
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	stmt, ok := prog.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected IfStmt, got %T", prog.Statements[0])
	}
	if stmt.Condition == nil || stmt.Alt == nil {
		t.Fatalf("expected condition and else branch")
	}
	cond, ok := stmt.Condition.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected BinaryExpr condition, got %T", stmt.Condition)
	}
	if cond.Operator != token.Greater {
		t.Fatalf("expected '>' operator, got %v", cond.Operator)
	}
	call, ok := cond.Left.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected call on left, got %T", cond.Left)
	}
	ident, ok := call.Callee.(*ast.Identifier)
	if !ok || ident.Name != "compute" {
		t.Fatalf("expected callee compute, got %T (%v)", call.Callee, ident)
	}
	if len(call.Arguments) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Arguments))
	}
	if _, ok := cond.Right.(*ast.NumberLiteral); !ok {
		t.Fatalf("expected number literal on right, got %T", cond.Right)
	}
}

func TestParseInvalidToken(t *testing.T) {
	input := `func bad(c) { c->clear() }`
	p := New(lexer.New(input))
	_ = p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected parser errors")
	}
}

func TestParseCallMissingRParen(t *testing.T) {
	input := `func bad(c) { inc(1, 2 }`
	p := New(lexer.New(input))
	_ = p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected parser errors")
	}
}

func TestParseCallTrailingComma(t *testing.T) {
	input := `func bad(c) { inc(1,) }`
	p := New(lexer.New(input))
	_ = p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected parser errors")
	}
}
