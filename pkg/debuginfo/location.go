// Package debuginfo implements the bytecode debug-information codec: a
// delta-encoded, LEB128-packed representation of the mapping from
// bytecode addresses to source positions, plus a parallel lexical-scope
// table, and the query engine stack-trace formatters, debuggers, and
// source-map emitters use to read both back.
//
// Writing is strictly single-writer: build up a Module's debug info with
// a Generator, then call SerializeWithMove exactly once to obtain an
// immutable DebugInfo. Reads on a DebugInfo never allocate the backing
// blob and may run concurrently; there is no mutation after
// serialization.
package debuginfo

// SourceLocation is the in-memory representation of one recorded
// position; it is never serialized as-is — the wire format only ever
// carries deltas between consecutive locations (see generator.go).
type SourceLocation struct {
	// Address is the byte offset within the owning function's
	// bytecode. 0 at function entry.
	Address int32
	// Line and Column are 1-based source coordinates. The codec treats
	// them as opaque signed integers; deltas between locations may be
	// negative.
	Line   int64
	Column int32
	// Statement is a monotonically-assigned statement number. It is 0
	// at function entry by contract (Invariant 1).
	Statement int32
	// FilenameID indexes into the filename string table.
	FilenameID uint32
	// SourceMappingURLID optionally indexes into the same or a parallel
	// table. It is only ever recorded in the file-regions table (see
	// fileregion.go); the wire format has no per-location slot for it.
	SourceMappingURLID uint32
}

// kEmptyLexicalDataOffset is the fixed offset of the lexical blob's
// shared "empty" record (parent=none, no names), written once at
// Generator construction (Invariant 5).
const kEmptyLexicalDataOffset uint32 = 0

// EmptyLexicalDataOffset exposes kEmptyLexicalDataOffset to callers that
// need the constant without constructing a Generator.
const EmptyLexicalDataOffset = kEmptyLexicalDataOffset

// sentinel is the address-delta value marking end-of-function
// in the sources blob, and the "no parent" sentinel in the lexical blob.
const sentinel int64 = -1
