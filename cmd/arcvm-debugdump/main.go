// Command arcvm-debugdump compiles a source file down to its debug
// information, prints the filename, function, and lexical-data tables,
// optionally runs a batch of address/location queries from a YAML
// fixture, and prints the resulting source map.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/arclang/arcvm/internal/config"
	"github.com/arclang/arcvm/internal/lexer"
	"github.com/arclang/arcvm/internal/lower"
	"github.com/arclang/arcvm/internal/parser"
	"github.com/arclang/arcvm/pkg/debuginfo"
	"github.com/arclang/arcvm/pkg/sourcemap"
	"github.com/arclang/arcvm/pkg/strtab"
)

func main() {
	sourcePath := flag.String("source", "", "path to the source file to compile")
	fixturePath := flag.String("fixture", "", "optional path to a query fixture YAML file")
	flag.Parse()

	if *sourcePath == "" {
		fmt.Fprintln(os.Stderr, "usage: arcvm-debugdump -source <file> [-fixture <file>]")
		os.Exit(1)
	}

	if err := run(*sourcePath, *fixturePath); err != nil {
		fmt.Fprintln(os.Stderr, "arcvm-debugdump:", err)
		os.Exit(1)
	}
}

func run(sourcePath, fixturePath string) error {
	src, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", sourcePath, err)
	}

	p := parser.New(lexer.New(string(src)))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		return fmt.Errorf("parse %s: %v", sourcePath, errs)
	}

	filenames := strtab.New()
	result, err := lower.Lower(prog, filenames, sourcePath)
	if err != nil {
		return fmt.Errorf("lower %s: %w", sourcePath, err)
	}

	dumpTables(result)

	if fixturePath != "" {
		if err := runFixture(result, filenames, fixturePath); err != nil {
			return err
		}
	}

	dumpSourceMap(result)
	return nil
}

func dumpTables(result *lower.Result) {
	disasm := debuginfo.NewDisassembler(os.Stdout)
	disasm.DisassembleFilenames(result.DebugInfo)
	disasm.DisassembleFilesAndOffsets(result.DebugInfo, result.Module.FunctionHeaderOffsets())
	for _, fn := range result.Module.Functions {
		disasm.DisassembleLexicalData(result.DebugInfo, fn.LexicalOffset)
	}
}

func runFixture(result *lower.Result, filenames *strtab.Table, fixturePath string) error {
	fixture, err := config.LoadFixture(fixturePath)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Queries:")
	for _, q := range fixture.Addresses {
		idx, ok := result.Module.FunctionIndex(q.Function)
		if !ok {
			fmt.Printf("  address %s+%d: unknown function\n", q.Function, q.Offset)
			continue
		}
		fn := result.Module.Functions[idx]
		loc, ok := result.DebugInfo.GetLocationForAddress(fn.DebugOffset, q.Offset)
		if !ok {
			fmt.Printf("  address %s+%d: not found\n", q.Function, q.Offset)
			continue
		}
		filename, _ := result.DebugInfo.LookupFilename(loc.FilenameID)
		fmt.Printf("  address %s+%d: %s:%d:%d\n", q.Function, q.Offset, filename, loc.Line, loc.Column)
	}
	for _, q := range fixture.Locations {
		filenameID := filenames.Intern(q.Filename)
		functionIndex, loc, ok := result.DebugInfo.GetAddressForLocation(filenameID, q.Line, q.Column, q.Column != 0)
		if !ok {
			fmt.Printf("  location %s:%d: not found\n", q.Filename, q.Line)
			continue
		}
		fmt.Printf("  location %s:%d: function %d address %d\n", q.Filename, q.Line, functionIndex, loc.Address)
	}
	return nil
}

func dumpSourceMap(result *lower.Result) {
	sink := sourcemap.New()
	result.DebugInfo.PopulateSourceMap(sink, result.Module.FunctionOffsets(), 0)

	fmt.Println()
	fmt.Println("Source map:")
	fmt.Println("  sources:", sink.Sources())
	fmt.Println("  mappings:", sink.Mappings())
}
