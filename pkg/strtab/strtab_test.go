package strtab

import "testing"

func TestInternDedupes(t *testing.T) {
	tbl := New()
	a := tbl.Intern("foo.js")
	b := tbl.Intern("bar.js")
	c := tbl.Intern("foo.js")
	if a != c {
		t.Fatalf("expected repeated intern to return same id: %d != %d", a, c)
	}
	if a == b {
		t.Fatalf("expected distinct strings to get distinct ids")
	}
	if tbl.Len() != 2 {
		t.Fatalf("len=%d want=2", tbl.Len())
	}
}

func TestLookup(t *testing.T) {
	tbl := New()
	id := tbl.Intern("main.js")
	got, ok := tbl.Lookup(id)
	if !ok || got != "main.js" {
		t.Fatalf("got=%q ok=%v", got, ok)
	}
	if _, ok := tbl.Lookup(999); ok {
		t.Fatalf("expected out-of-range lookup to fail")
	}
}
