package sourcemap

import "testing"

func TestGetSourceIndexDedupes(t *testing.T) {
	g := New()
	a := g.GetSourceIndex("one.js")
	b := g.GetSourceIndex("two.js")
	c := g.GetSourceIndex("one.js")
	if a != c {
		t.Fatalf("expected repeated filename to reuse its index, got %d and %d", a, c)
	}
	if a == b {
		t.Fatalf("expected distinct filenames to get distinct indices")
	}
	if got := g.Sources(); len(got) != 2 || got[0] != "one.js" || got[1] != "two.js" {
		t.Fatalf("Sources() = %v, want [one.js two.js]", got)
	}
}

func TestMappingsEncodesDeltasAndSeparators(t *testing.T) {
	g := New()
	src := g.GetSourceIndex("a.js")
	g.AddMappingsLine([]Segment{
		{GeneratedColumn: 0, SourceIndex: src, RepresentedLine: 10, RepresentedColumn: 5},
		{GeneratedColumn: 5, SourceIndex: src, RepresentedLine: 10, RepresentedColumn: 9},
	}, 0)
	g.AddMappingsLine([]Segment{
		{GeneratedColumn: 2, SourceIndex: src, RepresentedLine: 11, RepresentedColumn: 1},
	}, 1)

	mappings := g.Mappings()
	if mappings == "" {
		t.Fatalf("expected non-empty mappings string")
	}
	// Two lines separated by ';'; the first has two segments separated by ','.
	semiCount := 0
	for _, r := range mappings {
		if r == ';' {
			semiCount++
		}
	}
	if semiCount != 1 {
		t.Fatalf("expected 1 line separator, got %d in %q", semiCount, mappings)
	}
	// Line 0: (0,0,10,5) then deltas (5,0,0,4); line 1 resets only the
	// generated column: (2,0,1,-8).
	if want := "AAUK,KAAI;EACR"; mappings != want {
		t.Fatalf("mappings = %q, want %q", mappings, want)
	}
}

func TestEncodeVLQRoundTripShape(t *testing.T) {
	cases := []int64{0, 1, -1, 15, -15, 16, -16, 1000000, -1000000}
	for _, v := range cases {
		s := encodeVLQ(v)
		if s == "" {
			t.Fatalf("encodeVLQ(%d) returned empty string", v)
		}
		decoded, ok := decodeVLQForTest(s)
		if !ok {
			t.Fatalf("failed to decode %q", s)
		}
		if decoded != v {
			t.Fatalf("round trip: encodeVLQ(%d) -> %q -> %d", v, s, decoded)
		}
	}
}

// decodeVLQForTest is a test-only inverse of encodeVLQ, independent of
// the production decoder (this package has no decoder — mappings are
// write-only) so the round trip test has something to check against.
func decodeVLQForTest(s string) (int64, bool) {
	var result uint64
	var shift uint
	for i := 0; i < len(s); i++ {
		idx := indexOf(base64Alphabet, s[i])
		if idx < 0 {
			return 0, false
		}
		digit := uint64(idx) & vlqBaseMask
		result |= digit << shift
		if uint64(idx)&vlqContinuationBit == 0 {
			negative := result&1 != 0
			magnitude := int64(result >> 1)
			if negative {
				return -magnitude, true
			}
			return magnitude, true
		}
		shift += vlqBaseShift
	}
	return 0, false
}

func indexOf(alphabet string, b byte) int {
	for i := 0; i < len(alphabet); i++ {
		if alphabet[i] == b {
			return i
		}
	}
	return -1
}
