// Package bytecode holds the minimal compiled-module substrate that
// debug info is recorded against: named functions, each with a
// contiguous byte range inside the module's address space. There is no
// opcode set and nothing here executes — addresses exist only so that
// pkg/debuginfo has real offsets to encode and query against.
package bytecode

// Chunk is a function's synthetic instruction stream. Only its length
// matters: internal/lower advances through it one byte per statement it
// lowers, which is what stands in for "instruction address" here.
type Chunk struct {
	Code []byte
}

// Prototype is a compiled function: its synthetic code and the address
// at which that code begins within the owning Module.
type Prototype struct {
	Name        string
	Source      string
	NumParams   int
	Chunk       *Chunk
	StartOffset   uint32
	DebugOffset   uint32
	LexicalOffset uint32
}

// Module is the compiled form of a program: an ordered list of function
// prototypes. Order is function index order — the same indexing
// debuginfo.SourceLocation and the query engine use.
type Module struct {
	Functions []*Prototype
	byName    map[string]int
}

// NewModule returns an empty module.
func NewModule() *Module {
	return &Module{byName: make(map[string]int)}
}

// AddFunction appends proto and records its function index, returning
// that index.
func (m *Module) AddFunction(proto *Prototype) uint32 {
	index := uint32(len(m.Functions))
	m.Functions = append(m.Functions, proto)
	m.byName[proto.Name] = int(index)
	return index
}

// FunctionIndex returns the function index for name, if present.
func (m *Module) FunctionIndex(name string) (uint32, bool) {
	idx, ok := m.byName[name]
	return uint32(idx), ok
}

// FunctionOffsets returns each function's StartOffset indexed by
// function index, the shape debuginfo.DebugInfo.PopulateSourceMap wants.
func (m *Module) FunctionOffsets() []uint32 {
	offsets := make([]uint32, len(m.Functions))
	for i, fn := range m.Functions {
		offsets[i] = fn.StartOffset
	}
	return offsets
}

// FunctionHeaderOffsets returns each function's DebugOffset indexed by
// function index: the byte offset of that function's header inside the
// debug-info sources blob.
func (m *Module) FunctionHeaderOffsets() []uint32 {
	offsets := make([]uint32, len(m.Functions))
	for i, fn := range m.Functions {
		offsets[i] = fn.DebugOffset
	}
	return offsets
}
