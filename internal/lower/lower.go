// Package lower walks a parsed program and produces both the module's
// function layout (internal/bytecode) and its debug information
// (pkg/debuginfo) in one pass. There is no opcode emission: a
// function's "instructions" here are one synthetic byte per lowered
// statement, just enough to give every location a distinct address to
// record against.
package lower

import (
	"fmt"

	"github.com/arclang/arcvm/internal/ast"
	"github.com/arclang/arcvm/internal/bytecode"
	"github.com/arclang/arcvm/pkg/debuginfo"
	"github.com/arclang/arcvm/pkg/strtab"
)

// Result is what lowering a program produces: the function layout and
// the debug info recorded against it.
type Result struct {
	Module    *bytecode.Module
	DebugInfo *debuginfo.DebugInfo
}

// Lower compiles prog's top-level func declarations into a Module and
// records a SourceLocation stream plus a lexical-scope record for each
// one. filename is interned into filenames and used as every location's
// FilenameID; filenames is the table the caller will hand to callers of
// the resulting DebugInfo's queries.
func Lower(prog *ast.Program, filenames *strtab.Table, filename string) (*Result, error) {
	l := &lowerer{
		generator:  debuginfo.NewGenerator(filenames),
		module:     bytecode.NewModule(),
		filenameID: filenames.Intern(filename),
		source:     filename,
	}

	for _, stmt := range prog.Statements {
		fn, ok := stmt.(*ast.FuncDecl)
		if !ok {
			return nil, fmt.Errorf("lower: top-level statements other than func are not supported, got %T", stmt)
		}
		if _, err := l.lowerFunction(fn, nil); err != nil {
			return nil, err
		}
	}

	return &Result{Module: l.module, DebugInfo: l.generator.SerializeWithMove()}, nil
}

type lowerer struct {
	generator  *debuginfo.Generator
	module     *bytecode.Module
	filenameID uint32
	source     string
	codeCursor uint32
}

// funcLowerer walks a single function's body, accumulating the
// SourceLocation records that follow the function's start location and
// the set of names bound to locals (parameters and assignment targets)
// for the lexical-scope record.
type funcLowerer struct {
	l           *lowerer
	index       uint32
	parentIndex uint32
	hasParent   bool
	names       []string
	declared    map[string]bool
	addr        int32
	statement   int32
	locations   []debuginfo.SourceLocation
}

func (l *lowerer) lowerFunction(fn *ast.FuncDecl, parent *funcLowerer) (uint32, error) {
	index := l.module.AddFunction(&bytecode.Prototype{
		Name:      fn.Name,
		Source:    l.source,
		NumParams: len(fn.Params),
	})

	fnL := &funcLowerer{
		l:        l,
		index:    index,
		declared: make(map[string]bool),
	}
	if parent != nil {
		fnL.hasParent = true
		fnL.parentIndex = parent.index
	}
	for _, p := range fn.Params {
		fnL.declareLocal(p.Name)
	}

	start := debuginfo.SourceLocation{
		Address:    0,
		Line:       int64(fn.Pos().Line),
		Column:     int32(fn.Pos().Column),
		Statement:  0,
		FilenameID: l.filenameID,
	}

	if err := fnL.lowerBlock(fn.Body); err != nil {
		return 0, err
	}

	debugOffset := l.generator.AppendSourceLocations(start, index, fnL.locations)
	lexicalOffset := l.generator.AppendLexicalData(fnL.parentIndex, fnL.hasParent, fnL.names)

	codeLen := uint32(fnL.addr)
	l.module.Functions[index] = &bytecode.Prototype{
		Name:          fn.Name,
		Source:        l.source,
		NumParams:     len(fn.Params),
		Chunk:         &bytecode.Chunk{Code: make([]byte, codeLen)},
		StartOffset:   l.codeCursor,
		DebugOffset:   debugOffset,
		LexicalOffset: lexicalOffset,
	}
	l.codeCursor += codeLen

	return index, nil
}

func (fn *funcLowerer) declareLocal(name string) {
	if fn.declared[name] {
		return
	}
	fn.declared[name] = true
	fn.names = append(fn.names, name)
}

func (fn *funcLowerer) lowerBlock(block *ast.BlockStmt) error {
	for _, stmt := range block.Statements {
		fn.statement++
		fn.addr++
		pos := stmt.Pos()
		fn.locations = append(fn.locations, debuginfo.SourceLocation{
			Address:    fn.addr,
			Line:       int64(pos.Line),
			Column:     int32(pos.Column),
			Statement:  fn.statement,
			FilenameID: fn.l.filenameID,
		})

		switch s := stmt.(type) {
		case *ast.ExprStmt:
			if assign, ok := s.Expression.(*ast.AssignExpr); ok {
				if ident, ok := assign.Left.(*ast.Identifier); ok {
					fn.declareLocal(ident.Name)
				}
			}
		case *ast.ReturnStmt:
			// nothing to recurse into
		case *ast.IfStmt:
			if err := fn.lowerBlock(s.Conseq); err != nil {
				return err
			}
			if s.Alt != nil {
				if err := fn.lowerBlock(s.Alt); err != nil {
					return err
				}
			}
		case *ast.WhileStmt:
			if err := fn.lowerBlock(s.Body); err != nil {
				return err
			}
		case *ast.FuncDecl:
			if _, err := fn.l.lowerFunction(s, fn); err != nil {
				return err
			}
		default:
			return fmt.Errorf("lower: unsupported statement type %T", stmt)
		}
	}
	return nil
}
