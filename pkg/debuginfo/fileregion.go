package debuginfo

// FileRegion marks that, starting at FromAddress (a byte offset into the
// sources blob, not a bytecode address), subsequent locations belong to
// FilenameID. The table is append-only and strictly non-decreasing in
// FromAddress (Invariant 4).
type FileRegion struct {
	FromAddress        uint32
	FilenameID         uint32
	SourceMappingURLID uint32
}

// filenameForAddress returns the FilenameID of the last region whose
// FromAddress is <= debugOffset, or ok=false if no region precedes it.
//
// Binary search would be correct since the table is sorted, but real
// workloads almost always carry zero or one region, so a linear scan is
// both simpler and, in practice, no slower (spec §4.5).
func filenameForAddress(regions []FileRegion, debugOffset uint32) (uint32, bool) {
	found := false
	var filenameID uint32
	for _, r := range regions {
		if r.FromAddress <= debugOffset {
			filenameID = r.FilenameID
			found = true
		} else {
			break
		}
	}
	return filenameID, found
}
