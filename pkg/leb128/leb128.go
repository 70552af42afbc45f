// Package leb128 implements signed LEB128, the variable-length integer
// encoding used throughout the debug-info blob: seven payload bits per
// byte, the high bit marking "more bytes follow", and the final byte
// sign-extended from its bit 6.
//
// This is not the zigzag varint Go's encoding/binary package uses for
// Protobuf-style wire formats — callers that need that shape should
// reach for encoding/binary directly. The debug-info format requires
// the classic DWARF/WebAssembly-style signed LEB128 so that small
// negative deltas (a line number moving backwards, the -1 terminator)
// encode just as compactly as small positive ones.
package leb128

// AppendSigned encodes v as signed LEB128 and appends the bytes to buf,
// returning the extended slice. Append is append-only: it never
// rewrites a previously written byte.
func AppendSigned(buf []byte, v int64) []byte {
	more := true
	for more {
		b := byte(v & 0x7f)
		v >>= 7
		// Sign bit of the remaining value, reflected into the payload
		// byte we just peeled off, tells us whether we're done: once
		// the remaining bits are all the sign extension of what we
		// already emitted, one more byte finishes the encoding.
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			more = false
		} else {
			b |= 0x80
		}
		buf = append(buf, b)
	}
	return buf
}

// ReadSigned decodes a signed LEB128 integer from data starting at
// offset, returning the decoded value and the number of bytes consumed.
// ok is false if data ends before a terminating byte is found; callers
// must treat that as a corrupt blob, never as "more to come" — the
// encoder guarantees it never produces such a prefix.
func ReadSigned(data []byte, offset uint32) (value int64, bytesConsumed uint32, ok bool) {
	var result int64
	var shift uint
	var b byte
	pos := offset
	for {
		if int(pos) >= len(data) {
			return 0, 0, false
		}
		b = data[pos]
		pos++
		result |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}
	// Sign-extend from bit 6 of the final byte.
	if shift < 64 && b&0x40 != 0 {
		result |= -1 << shift
	}
	return result, pos - offset, true
}
