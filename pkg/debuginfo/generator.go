package debuginfo

import (
	"github.com/arclang/arcvm/pkg/leb128"
	"github.com/arclang/arcvm/pkg/strtab"
)

// Generator is the write-side, mutable builder for a module's debug
// info. It is strictly single-writer: function-local appends may arrive
// in any order across functions, but each function's own locations must
// arrive address-sorted with absolute values — the Generator computes
// deltas itself. SerializeWithMove consumes the Generator exactly once;
// calling any append method afterward panics.
type Generator struct {
	filenames   *strtab.Table
	sourcesData []byte
	lexicalData []byte
	files       []FileRegion
	moved       bool
}

// NewGenerator returns a Generator with the lexical blob's shared empty
// record already written at EmptyLexicalDataOffset (Invariant 5).
// filenames resolves the FilenameID values later queries will need to
// turn back into bytes; the codec itself never validates or interprets
// them (spec §1's "string-storage component" is an external
// collaborator, here a *strtab.Table the caller owns and fills as it
// interns filenames).
func NewGenerator(filenames *strtab.Table) *Generator {
	g := &Generator{filenames: filenames}
	g.lexicalData = leb128.AppendSigned(g.lexicalData, sentinel) // parent function: none
	g.lexicalData = leb128.AppendSigned(g.lexicalData, 0)        // name count
	return g
}

func (g *Generator) checkNotMoved() {
	if g.moved {
		panic("debuginfo: Generator used after SerializeWithMove")
	}
}

// AppendSourceLocations encodes one function's location stream into the
// sources blob and returns the byte offset at which it begins. start
// must have Statement == 0 (Invariant 1: every function starts at
// statement 0) — violating this is an encoder-misuse panic, not a
// recoverable error, since the caller (the compiler front end) is
// expected to preserve the invariant.
//
// If rest is empty the function emits nothing and AppendSourceLocations
// returns the current size of the sources blob (spec §4.3, scenario 1).
func (g *Generator) AppendSourceLocations(start SourceLocation, functionIndex uint32, rest []SourceLocation) uint32 {
	g.checkNotMoved()
	if start.Statement != 0 {
		panic("debuginfo: function must start at statement 0")
	}

	startOffset := uint32(len(g.sourcesData))
	if len(rest) == 0 {
		return startOffset
	}

	if len(g.files) == 0 || g.files[len(g.files)-1].FilenameID != start.FilenameID {
		g.files = append(g.files, FileRegion{
			FromAddress:        startOffset,
			FilenameID:         start.FilenameID,
			SourceMappingURLID: start.SourceMappingURLID,
		})
	}

	g.sourcesData = leb128.AppendSigned(g.sourcesData, int64(functionIndex))
	g.sourcesData = leb128.AppendSigned(g.sourcesData, start.Line)
	g.sourcesData = leb128.AppendSigned(g.sourcesData, int64(start.Column))

	previous := start
	for _, next := range rest {
		if next.FilenameID != previous.FilenameID {
			g.files = append(g.files, FileRegion{
				FromAddress:        uint32(len(g.sourcesData)),
				FilenameID:         next.FilenameID,
				SourceMappingURLID: start.SourceMappingURLID, // deliberate: reuse start's, see spec §9
			})
		}

		aDelta := int64(next.Address - previous.Address)
		lDelta := next.Line - previous.Line
		cDelta := int64(next.Column - previous.Column)
		sDelta := int64(next.Statement - previous.Statement)

		// Steal the low bit of the line delta to record whether a
		// statement delta follows; line changes are common and
		// usually small, so this keeps the hot path at three LEB128
		// ints instead of a dedicated presence byte (spec §4.3).
		taggedLine := lDelta << 1
		if sDelta != 0 {
			taggedLine |= 1
		}

		g.sourcesData = leb128.AppendSigned(g.sourcesData, aDelta)
		g.sourcesData = leb128.AppendSigned(g.sourcesData, taggedLine)
		g.sourcesData = leb128.AppendSigned(g.sourcesData, cDelta)
		if sDelta != 0 {
			g.sourcesData = leb128.AppendSigned(g.sourcesData, sDelta)
		}
		previous = next
	}
	g.sourcesData = leb128.AppendSigned(g.sourcesData, sentinel)

	return startOffset
}

// AppendLexicalData records a lexical scope's parent function id (none
// if parentFunc is not ok) and variable names, returning the scope's
// byte offset in the lexical blob. If parentFunc is absent and names is
// empty, it returns the shared EmptyLexicalDataOffset without writing
// anything new (Invariant 5, spec §4.4).
func (g *Generator) AppendLexicalData(parentFunc uint32, hasParent bool, names []string) uint32 {
	g.checkNotMoved()
	if !hasParent && len(names) == 0 {
		return kEmptyLexicalDataOffset
	}

	startOffset := uint32(len(g.lexicalData))
	parent := sentinel
	if hasParent {
		parent = int64(parentFunc)
	}
	g.lexicalData = leb128.AppendSigned(g.lexicalData, parent)
	g.lexicalData = leb128.AppendSigned(g.lexicalData, int64(len(names)))
	for _, name := range names {
		g.lexicalData = appendString(g.lexicalData, name)
	}
	return startOffset
}

// SerializeWithMove consumes the Generator, concatenating the lexical
// blob after the sources blob into one buffer, and returns the
// resulting immutable DebugInfo. Calling it a second time, or appending
// to the Generator afterward, panics.
func (g *Generator) SerializeWithMove() *DebugInfo {
	g.checkNotMoved()
	g.moved = true

	lexicalDataOffset := uint32(len(g.sourcesData))
	combined := make([]byte, 0, len(g.sourcesData)+len(g.lexicalData))
	combined = append(combined, g.sourcesData...)
	combined = append(combined, g.lexicalData...)

	return &DebugInfo{
		data:              combined,
		lexicalDataOffset: lexicalDataOffset,
		files:             g.files,
		filenames:         g.filenames,
	}
}
