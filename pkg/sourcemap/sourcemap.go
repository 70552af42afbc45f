// Package sourcemap is the thin "segment-append" collaborator the
// debug-info codec's PopulateSourceMap query writes into. The codec
// does not need a full source-map generator: it only needs somewhere
// to append one Segment per recorded location and a way to resolve a
// filename to a stable source index, so that is all this package
// provides, plus enough of the Source Map v3 Base64-VLQ shape to turn
// accumulated segments into the standard "mappings" wire string.
package sourcemap

import "strings"

// Segment is one entry of a source map line: a generated-code column
// mapped back to a source file, line, and column.
type Segment struct {
	GeneratedColumn    uint32
	SourceIndex        uint32
	RepresentedLine    int64
	RepresentedColumn  int32
}

// Generator accumulates mapping lines and the source file table they
// reference.
type Generator struct {
	sources   []string
	sourceIDs map[string]uint32
	lines     map[uint32][]Segment
	lineOrder []uint32
}

// New returns an empty Generator.
func New() *Generator {
	return &Generator{sourceIDs: make(map[string]uint32), lines: make(map[uint32][]Segment)}
}

// GetSourceIndex returns a stable index for filename, interning it if
// this is the first time it's been seen.
func (g *Generator) GetSourceIndex(filename string) uint32 {
	if id, ok := g.sourceIDs[filename]; ok {
		return id
	}
	id := uint32(len(g.sources))
	g.sources = append(g.sources, filename)
	g.sourceIDs[filename] = id
	return id
}

// AddMappingsLine appends segments as the mapping line identified by
// lineOffset. Segments within a line need not be sorted by generated
// column — the encoder below sorts before delta-encoding.
func (g *Generator) AddMappingsLine(segments []Segment, lineOffset uint32) {
	if _, ok := g.lines[lineOffset]; !ok {
		g.lineOrder = append(g.lineOrder, lineOffset)
	}
	g.lines[lineOffset] = append(g.lines[lineOffset], segments...)
}

// Sources returns the interned source file table in index order.
func (g *Generator) Sources() []string {
	return g.sources
}

// Mappings encodes every accumulated line into the Source Map v3
// "mappings" string: lines are separated by ';', segments within a line
// by ',', and each segment's fields are delta-encoded relative to the
// previous segment in VLQ Base64 (generated column delta is relative to
// the previous segment in the same line; source index, line, and
// column deltas are relative to the previous segment anywhere in the
// map, per the v3 spec).
func (g *Generator) Mappings() string {
	var out strings.Builder
	var prevSource, prevLine, prevColumn int64
	for i, lineOffset := range g.lineOrder {
		if i > 0 {
			out.WriteByte(';')
		}
		segments := append([]Segment(nil), g.lines[lineOffset]...)
		sortSegments(segments)
		var prevGenCol int64
		for j, seg := range segments {
			if j > 0 {
				out.WriteByte(',')
			}
			out.WriteString(encodeVLQ(int64(seg.GeneratedColumn) - prevGenCol))
			out.WriteString(encodeVLQ(int64(seg.SourceIndex) - prevSource))
			out.WriteString(encodeVLQ(seg.RepresentedLine - prevLine))
			out.WriteString(encodeVLQ(int64(seg.RepresentedColumn) - prevColumn))
			prevGenCol = int64(seg.GeneratedColumn)
			prevSource = int64(seg.SourceIndex)
			prevLine = seg.RepresentedLine
			prevColumn = int64(seg.RepresentedColumn)
		}
	}
	return out.String()
}

func sortSegments(segments []Segment) {
	// Small n in practice (one bytecode module's worth of locations per
	// line); insertion sort keeps this dependency-free and avoids
	// pulling in sort for what's usually a handful of elements.
	for i := 1; i < len(segments); i++ {
		for j := i; j > 0 && segments[j-1].GeneratedColumn > segments[j].GeneratedColumn; j-- {
			segments[j-1], segments[j] = segments[j], segments[j-1]
		}
	}
}

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

const (
	vlqBaseShift       = 5
	vlqBase            = 1 << vlqBaseShift
	vlqBaseMask        = vlqBase - 1
	vlqContinuationBit = vlqBase
)

// encodeVLQ encodes a signed integer as a VLQ Base64 string, per the
// Source Map v3 spec: sign in the low bit, magnitude shifted up by one,
// five bits per character, high bit of each character a continuation
// flag.
func encodeVLQ(value int64) string {
	var vlq uint64
	if value < 0 {
		vlq = uint64(-value)<<1 | 1
	} else {
		vlq = uint64(value) << 1
	}

	var buf strings.Builder
	for {
		digit := vlq & vlqBaseMask
		vlq >>= vlqBaseShift
		if vlq > 0 {
			digit |= vlqContinuationBit
		}
		buf.WriteByte(base64Alphabet[digit])
		if vlq == 0 {
			break
		}
	}
	return buf.String()
}
