// Package strtab is a minimal uniquing string table standing in for the
// "string-storage component that resolves filename identifiers to
// bytes" that the debug-info codec treats as an external collaborator.
// This is the same idea reduced to what the codec actually needs from
// it: stable small integer ids for filenames, and byte-for-byte lookup
// in the other direction. No UTF validation is performed; bytes are
// preserved verbatim, matching the codec's own non-goal.
package strtab

// Table uniques byte strings and assigns each a stable, monotonically
// increasing id starting at 0.
type Table struct {
	strings []string
	ids     map[string]uint32
}

// New returns an empty table.
func New() *Table {
	return &Table{ids: make(map[string]uint32)}
}

// Intern returns the id for s, assigning a new one if s hasn't been
// seen before.
func (t *Table) Intern(s string) uint32 {
	if id, ok := t.ids[s]; ok {
		return id
	}
	id := uint32(len(t.strings))
	t.strings = append(t.strings, s)
	t.ids[s] = id
	return id
}

// Lookup returns the bytes for id, and whether id is in range.
func (t *Table) Lookup(id uint32) (string, bool) {
	if int(id) >= len(t.strings) {
		return "", false
	}
	return t.strings[id], true
}

// Len returns the number of distinct strings interned so far.
func (t *Table) Len() int {
	return len(t.strings)
}
