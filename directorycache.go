package mfs32

import (
	"bytes"
	"encoding/binary"

	"github.com/mfsutil/mfs32/checkpoint"
)

// DirEntry is the decoded form of a single 32-byte directory record.
type DirEntry struct {
	Name             [11]byte
	Attr             byte
	FirstClusterHigh uint16
	FirstClusterLow  uint16
	FileSize         uint32
}

// IsTombstone reports whether this entry has been soft-deleted.
func (e DirEntry) IsTombstone() bool {
	return e.Name[0] == tombstoneByte
}

// Cluster resolves the entry's first cluster, combining both cluster-number
// halves (spec.md §9's documented correction; ClusterLow gives the faithful
// low-16-bits-only value some callers still want).
func (e DirEntry) Cluster() int {
	return int(e.FirstClusterHigh)<<16 | int(e.FirstClusterLow)
}

// ClusterLow returns only the low 16 bits of the entry's first cluster, the
// value original_source/mfs.c's cd() faithfully (and incompletely) uses.
func (e DirEntry) ClusterLow() int {
	return int(e.FirstClusterLow)
}

// DirectoryCache holds the entriesPerSector directory entries of the
// currently visited directory, plus the on-disk offset they were loaded
// from so mutations flush back to the right place (spec.md §3, §9).
type DirectoryCache struct {
	entries  [entriesPerSector]DirEntry
	loadedAt int64
}

// LoadDirectory reads entriesPerSector entries starting at offset into a
// fresh DirectoryCache.
func LoadDirectory(r readerAt, offset int64) (*DirectoryCache, error) {
	buf := make([]byte, dirEntrySize*entriesPerSector)
	if _, err := r.ReadAt(buf, offset); err != nil {
		return nil, checkpoint.Wrap(err, ErrImageNotFound)
	}

	dc := &DirectoryCache{loadedAt: offset}
	for i := range dc.entries {
		rec := buf[i*dirEntrySize : (i+1)*dirEntrySize]

		var raw rawDirEntry
		if err := binary.Read(bytes.NewReader(rec), binary.LittleEndian, &raw); err != nil {
			return nil, checkpoint.Wrap(err, ErrImageNotFound)
		}

		dc.entries[i] = DirEntry{
			Name:             raw.Name,
			Attr:             raw.Attr,
			FirstClusterHigh: raw.FirstClusterHigh,
			FirstClusterLow:  raw.FirstClusterLow,
			FileSize:         raw.FileSize,
		}
	}
	return dc, nil
}

// Entries returns the cached directory entries in on-disk order.
func (dc *DirectoryCache) Entries() [entriesPerSector]DirEntry {
	return dc.entries
}

// LoadedAt returns the byte offset this cache's sector was loaded from.
func (dc *DirectoryCache) LoadedAt() int64 {
	return dc.loadedAt
}

// Find locates the entry matching name (spec.md §4.4/§4.5/§4.9), returning
// its index or -1.
func (dc *DirectoryCache) Find(name string) int {
	for i, e := range dc.entries {
		if matchesName(name, e.Name) {
			return i
		}
	}
	return -1
}

// List returns the indices of entries ls should print: attribute in
// {read-only, directory, archive} and not a tombstone (spec.md §4.8).
func (dc *DirectoryCache) List() []int {
	var out []int
	for i, e := range dc.entries {
		if !isListable(e.Attr) {
			continue
		}
		if e.IsTombstone() {
			continue
		}
		out = append(out, i)
	}
	return out
}

func isListable(attr byte) bool {
	return attr == AttrReadOnly || attr == AttrDirectory || attr == AttrArchive
}

// WriteBack serializes all entriesPerSector entries back to loadedAt.
func (dc *DirectoryCache) WriteBack(w writerAt) error {
	var buf bytes.Buffer
	for _, e := range dc.entries {
		raw := rawDirEntry{
			Name:             e.Name,
			Attr:             e.Attr,
			FirstClusterHigh: e.FirstClusterHigh,
			FirstClusterLow:  e.FirstClusterLow,
			FileSize:         e.FileSize,
		}
		if err := binary.Write(&buf, binary.LittleEndian, &raw); err != nil {
			return checkpoint.Wrap(err, ErrImageNotFound)
		}
	}
	if _, err := w.WriteAt(buf.Bytes(), dc.loadedAt); err != nil {
		return checkpoint.Wrap(err, ErrImageNotFound)
	}
	return nil
}

// writerAt is the narrow slice of ImageHandle's surface mutation needs.
type writerAt interface {
	WriteAt(buf []byte, offset int64) (int, error)
}
