package debuginfo

import "github.com/arclang/arcvm/pkg/leb128"

// appendString writes bytes as a LEB128-encoded length followed by the
// raw bytes, into the lexical blob only (the sources blob never carries
// strings). See spec §4.2.
func appendString(buf []byte, s string) []byte {
	buf = leb128.AppendSigned(buf, int64(len(s)))
	return append(buf, s...)
}

// decodeString reads a length-prefixed string from data at *offset,
// advancing *offset past the bytes, and returns a view into data. The
// length must be non-negative and offset+len must not overflow or
// exceed len(data); violating either is a corrupt blob, which is a
// programmer bug on well-formed input (spec §4.2, §7) — we panic rather
// than return an error, matching the encoder/decoder's assert-level
// failure semantics.
func decodeString(offset *uint32, data []byte) string {
	length, n, ok := leb128.ReadSigned(data, *offset)
	if !ok {
		panic("debuginfo: truncated string length")
	}
	*offset += n
	if length < 0 {
		panic("debuginfo: negative string length")
	}
	start := *offset
	end := start + uint32(length)
	if end < start || int(end) > len(data) {
		panic("debuginfo: string length out of range")
	}
	*offset = end
	return string(data[start:end])
}
