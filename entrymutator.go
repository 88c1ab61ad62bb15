package mfs32

// Del tombstones the entry matching name in dc (first name byte -> 0xE5)
// and flushes the whole cache back to the offset it was loaded from
// (spec.md §4.7; the write-back target is corrected per spec.md §9 /
// SPEC_FULL.md §7 instead of always targeting the root cluster).
func Del(dc *DirectoryCache, w writerAt, name string) error {
	i := dc.Find(name)
	if i == -1 {
		return ErrNotFound
	}

	dc.entries[i].Name[0] = tombstoneByte
	return dc.WriteBack(w)
}

// Undel restores the first name byte of every cached entry whose original
// name (captured at open time) matches name and whose attribute is one of
// {read-only, directory, archive}, then flushes the cache back
// (spec.md §4.7). Reports ErrNotFound if nothing was restored.
func Undel(dc *DirectoryCache, w writerAt, on OriginalNames, name string) error {
	restored := false

	for i, e := range dc.entries {
		if !isListable(e.Attr) {
			continue
		}
		original := on.At(i)
		if !matchesName(name, original) {
			continue
		}
		dc.entries[i].Name[0] = original[0]
		restored = true
	}

	if !restored {
		return ErrNotFound
	}
	return dc.WriteBack(w)
}
