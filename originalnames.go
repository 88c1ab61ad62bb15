package mfs32

// OriginalNames retains the 11-byte names observed for each of the 16 root
// directory entries at image-open time, so Undel can restore a tombstoned
// entry's first name byte (spec.md §4.7).
//
// original_source/mfs.c captures this by copying entry 0's name into every
// one of the 16 slots, which makes undel a no-op for all but the first
// entry. This is corrected here: slot i always captures entry i's own name
// (SPEC_FULL.md §7).
type OriginalNames struct {
	names [entriesPerSector][11]byte
}

// CaptureOriginalNames snapshots the names currently in dc.
func CaptureOriginalNames(dc *DirectoryCache) OriginalNames {
	var on OriginalNames
	for i, e := range dc.Entries() {
		on.names[i] = e.Name
	}
	return on
}

// At returns the originally-captured name for slot i.
func (on OriginalNames) At(i int) [11]byte {
	return on.names[i]
}
