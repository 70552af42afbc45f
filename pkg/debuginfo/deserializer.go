package debuginfo

import "github.com/arclang/arcvm/pkg/leb128"

// functionDeserializer is a single-pass cursor over a function's record
// stream within the sources blob. Constructed at a function's header
// offset, it decodes the header immediately, then yields one location
// at a time via next() until the terminator is reached. It holds only a
// borrowed slice and a byte offset — it is not shared across threads,
// but independent cursors over the same blob may run concurrently.
type functionDeserializer struct {
	data   []byte
	offset uint32

	functionIndex uint32
	current       SourceLocation
}

// newFunctionDeserializer constructs a deserializer positioned at
// offset, which must point at a function header. The header's three
// ints are decoded immediately into current, with Address and
// Statement starting at 0 (spec §4.6).
func newFunctionDeserializer(data []byte, offset uint32) *functionDeserializer {
	d := &functionDeserializer{data: data, offset: offset}
	d.functionIndex = uint32(d.decode1Int())
	d.current.Line = d.decode1Int()
	d.current.Column = int32(d.decode1Int())
	return d
}

func (d *functionDeserializer) decode1Int() int64 {
	v, n, ok := leb128.ReadSigned(d.data, d.offset)
	if !ok {
		panic("debuginfo: truncated source-locations record")
	}
	d.offset += n
	return v
}

// next decodes one delta record and returns the new current location.
// ok is false once the terminator (address delta -1) is read, in which
// case the cursor is left on the byte past the terminator — the start
// of the next function's header, if any.
func (d *functionDeserializer) next() (SourceLocation, bool) {
	aDelta := d.decode1Int()
	if aDelta == sentinel {
		return SourceLocation{}, false
	}

	taggedLine := d.decode1Int()
	cDelta := d.decode1Int()
	var sDelta int64
	if taggedLine&1 != 0 {
		sDelta = d.decode1Int()
	}
	// Arithmetic right shift that preserves sign: Go's >> on a signed
	// int64 is defined to do exactly this, unlike languages where
	// signed right shift is implementation-defined (spec's Design Note
	// about rounding toward negative infinity doesn't apply here).
	lDelta := taggedLine >> 1

	d.current.Address += int32(aDelta)
	d.current.Line += lDelta
	d.current.Column += int32(cDelta)
	d.current.Statement += int32(sDelta)
	return d.current, true
}

// getOffset returns the cursor's byte position after the most recently
// decoded record (or the header, if next() hasn't been called yet).
func (d *functionDeserializer) getOffset() uint32 {
	return d.offset
}
