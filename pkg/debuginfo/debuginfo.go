package debuginfo

import (
	"github.com/arclang/arcvm/pkg/leb128"
	"github.com/arclang/arcvm/pkg/sourcemap"
	"github.com/arclang/arcvm/pkg/strtab"
)

// DebugInfo is the immutable, read-only result of serializing a
// Generator. It owns the combined byte blob (sources followed by
// lexical data), the file-regions table, and the filename string table
// the FilenameID values on SourceLocation resolve through. Every query
// method is safe for concurrent use.
type DebugInfo struct {
	data              []byte
	lexicalDataOffset uint32
	files             []FileRegion
	filenames         *strtab.Table
}

// sourcesData returns the sub-slice of data holding only function
// location records, excluding the lexical blob.
func (d *DebugInfo) sourcesData() []byte {
	return d.data[:d.lexicalDataOffset]
}

// lexicalBlob returns the sub-slice of data holding only lexical scope
// records.
func (d *DebugInfo) lexicalBlob() []byte {
	return d.data[d.lexicalDataOffset:]
}

// GetFilenameForAddress resolves the filename interned at debugOffset
// (a byte offset into the sources blob) by looking up the file-regions
// table, then turning the resolved FilenameID into a string via the
// owned strtab.Table.
func (d *DebugInfo) GetFilenameForAddress(debugOffset uint32) (string, bool) {
	id, ok := filenameForAddress(d.files, debugOffset)
	if !ok {
		return "", false
	}
	return d.filenames.Lookup(id)
}

// LookupFilename turns a FilenameID carried on a SourceLocation (as
// returned by GetLocationForAddress) back into its string, without going
// through the file-regions table. The location GetAddressForLocation
// returns does not have its FilenameID filled in.
func (d *DebugInfo) LookupFilename(id uint32) (string, bool) {
	return d.filenames.Lookup(id)
}

// GetLocationForAddress finds the recorded location at or immediately
// before offsetInFunction within the function whose record starts at
// debugOffset, and returns it with Address and FilenameID overwritten
// to reflect the query (spec §4.6).
//
// The filename is resolved from the file-regions table using the
// offset of the *matched* location record (lastLocationOffset), not the
// original debugOffset passed in: a mid-function filename change (spec
// §4.3's per-location file-region insert) only takes effect once the
// deserializer has actually walked past the record that introduced it,
// so resolving against debugOffset would report the function's
// starting filename even after the walk has moved past a later change.
func (d *DebugInfo) GetLocationForAddress(debugOffset, offsetInFunction uint32) (SourceLocation, bool) {
	des := newFunctionDeserializer(d.sourcesData(), debugOffset)

	last := des.current
	lastOffset := debugOffset

	for {
		nextOffset := des.getOffset()
		loc, ok := des.next()
		if !ok {
			break
		}
		if loc.Address > int32(offsetInFunction) {
			break
		}
		last = loc
		lastOffset = nextOffset
	}

	filenameID, ok := filenameForAddress(d.files, lastOffset)
	if !ok {
		return SourceLocation{}, false
	}
	last.Address = int32(offsetInFunction)
	last.FilenameID = filenameID
	return last, true
}

// GetAddressForLocation performs the inverse query: given a filename
// and a target line (and, optionally, column), it finds the first file
// region recorded for that filename, bounds the search by the next
// region's FromAddress (or the end of the sources blob if there is no
// next region), and scans every function record in that span for the
// first location matching the target.
//
// The header of each function record is never itself a match candidate
// — only the delta records yielded by next() are compared, matching the
// original query's contract (spec §4.7). When a function's terminator
// is reached before the span ends, a fresh deserializer is constructed
// at the cursor's new position, which is the next function's header.
func (d *DebugInfo) GetAddressForLocation(filenameID uint32, targetLine int64, targetColumn int32, hasTargetColumn bool) (functionIndex uint32, location SourceLocation, ok bool) {
	sources := d.sourcesData()

	var start, end uint32
	foundFile := false
	for _, region := range d.files {
		if foundFile {
			end = region.FromAddress
			break
		}
		if region.FilenameID == filenameID {
			foundFile = true
			start = region.FromAddress
			end = uint32(len(sources))
		}
	}
	if !foundFile {
		return 0, SourceLocation{}, false
	}

	offset := start
	for offset < end {
		des := newFunctionDeserializer(sources, offset)
		for {
			loc, more := des.next()
			if !more {
				break
			}
			if loc.Line == targetLine && (!hasTargetColumn || loc.Column == targetColumn) {
				return des.functionIndex, loc, true
			}
		}
		offset = des.getOffset()
	}

	return 0, SourceLocation{}, false
}

// GetVariableNames returns the names recorded in the lexical scope at
// offset, in declaration order. offset must be a valid lexical-blob
// offset (EmptyLexicalDataOffset is always valid and yields an empty
// slice).
func (d *DebugInfo) GetVariableNames(offset uint32) []string {
	blob := d.lexicalBlob()
	cur := offset

	// Skip the parent-function field.
	_, n, ok := leb128.ReadSigned(blob, cur)
	if !ok {
		panic("debuginfo: truncated lexical record")
	}
	cur += n

	count, n, ok := leb128.ReadSigned(blob, cur)
	if !ok {
		panic("debuginfo: truncated lexical record")
	}
	cur += n
	if count < 0 {
		panic("debuginfo: negative name count")
	}

	names := make([]string, 0, count)
	for i := int64(0); i < count; i++ {
		names = append(names, decodeString(&cur, blob))
	}
	return names
}

// GetParentFunctionID returns the parent function index recorded in
// the lexical scope at offset, or ok=false if that scope has no parent
// (the sentinel value, including the shared empty record).
func (d *DebugInfo) GetParentFunctionID(offset uint32) (uint32, bool) {
	blob := d.lexicalBlob()
	parent, _, ok := leb128.ReadSigned(blob, offset)
	if !ok {
		panic("debuginfo: truncated lexical record")
	}
	if parent == sentinel {
		return 0, false
	}
	return uint32(parent), true
}

// SourceMapSink is the minimal collaborator PopulateSourceMap needs: a
// place to intern filenames into stable indices and a place to append
// one mapping line's worth of segments. *sourcemap.Generator implements
// it.
type SourceMapSink interface {
	GetSourceIndex(filename string) uint32
	AddMappingsLine(segments []sourcemap.Segment, lineOffset uint32)
}

// PopulateSourceMap walks every function's location records in address
// order and emits one segment per location into sink, using
// functionOffsets (indexed by function index) to know where each
// function's bytecode begins within the module.
//
// Every location within a function resolves its filename via that
// function's *debug-info header* offset — captured once per function
// and reused for every location in it, including ones recorded after a
// mid-function filename change (spec §4.3) — rather than via each
// location's own byte offset. This loses the more precise per-location
// resolution the query APIs provide, and spec §9 flags it as suspicious,
// but it mirrors the original exactly and is preserved for
// bit-compatibility rather than fixed.
//
// functionOffsets gives each function's bytecode starting address
// within the module, indexed by function index; generatedColumn is
// computed as the location's address plus that starting address, since
// the bytecode module itself is represented as a single source-map line
// (identified by cjsModuleOffset) with addresses as column offsets —
// the module has no natural "line" structure of its own.
func (d *DebugInfo) PopulateSourceMap(sink SourceMapSink, functionOffsets []uint32, cjsModuleOffset uint32) {
	sources := d.sourcesData()

	var segments []sourcemap.Segment
	segmentFor := func(loc SourceLocation, offsetInFile, headerOffset uint32) sourcemap.Segment {
		filenameID, _ := filenameForAddress(d.files, headerOffset)
		filename, _ := d.filenames.Lookup(filenameID)
		return sourcemap.Segment{
			GeneratedColumn:   uint32(loc.Address) + offsetInFile,
			SourceIndex:       sink.GetSourceIndex(filename),
			RepresentedLine:   loc.Line,
			RepresentedColumn: loc.Column,
		}
	}

	offset := uint32(0)
	for offset < uint32(len(sources)) {
		des := newFunctionDeserializer(sources, offset)
		offsetInFile := functionOffsets[des.functionIndex]
		segments = append(segments, segmentFor(des.current, offsetInFile, offset))
		for {
			loc, more := des.next()
			if !more {
				break
			}
			segments = append(segments, segmentFor(loc, offsetInFile, offset))
		}
		offset = des.getOffset()
	}

	sink.AddMappingsLine(segments, cjsModuleOffset)
}
