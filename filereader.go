package mfs32

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/mfsutil/mfs32/checkpoint"
)

// Get resolves name in dc, then streams its full content from the image
// into a same-named file created (truncated if present) on hostFS, one
// sector per cluster-chain hop (spec.md §4.6). As spec.md §9 notes, this
// steps by sector while chaining by cluster, which is only exact when
// sectors-per-cluster == 1 — preserved as documented behavior.
func Get(dc *DirectoryCache, g Geometry, r readerAt, hostFS afero.Fs, name string) error {
	i := dc.Find(name)
	if i == -1 {
		return ErrNotFound
	}
	entry := dc.entries[i]

	out, err := hostFS.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return checkpoint.Wrap(err)
	}
	defer out.Close()

	remaining := int64(entry.FileSize)
	cluster := entry.Cluster()
	sectorSize := int64(g.BytesPerSector)
	buf := make([]byte, sectorSize)

	for remaining > sectorSize {
		if _, err := r.ReadAt(buf, g.LBAToOffset(cluster)); err != nil {
			return checkpoint.Wrap(err)
		}
		if _, err := out.Write(buf); err != nil {
			return checkpoint.Wrap(err)
		}
		remaining -= sectorSize

		next, err := g.NextCluster(r, cluster)
		if err != nil {
			return err
		}
		cluster = int(next)
	}

	tail := buf[:remaining]
	if _, err := r.ReadAt(tail, g.LBAToOffset(cluster)); err != nil {
		return checkpoint.Wrap(err)
	}
	if _, err := out.Write(tail); err != nil {
		return checkpoint.Wrap(err)
	}
	return nil
}

// Read resolves name in dc, skips whole sectors until offset falls inside
// the current sector, then emits exactly length bytes to w as raw
// characters, crossing sector boundaries by advancing the cluster chain
// (spec.md §4.6). No bounds check against fileSize is performed, matching
// the documented behavior.
func Read(dc *DirectoryCache, g Geometry, r readerAt, w io.Writer, name string, offset, length int64) error {
	idx := dc.Find(name)
	if idx == -1 {
		return ErrNotFound
	}
	entry := dc.entries[idx]

	cluster := entry.Cluster()
	sectorSize := int64(g.BytesPerSector)

	for offset >= sectorSize {
		offset -= sectorSize
		next, err := g.NextCluster(r, cluster)
		if err != nil {
			return err
		}
		cluster = int(next)
	}

	pos := offset
	base := g.LBAToOffset(cluster)

	out := make([]byte, 0, length)
	one := make([]byte, 1)
	for i := int64(0); i < length; i++ {
		if pos == sectorSize {
			pos = 0
			next, err := g.NextCluster(r, cluster)
			if err != nil {
				return err
			}
			cluster = int(next)
			base = g.LBAToOffset(cluster)
		}

		if _, err := r.ReadAt(one, base+pos); err != nil {
			return checkpoint.Wrap(err)
		}
		out = append(out, one[0])
		pos++
	}

	if _, err := fmt.Fprintf(w, "%s\n", out); err != nil {
		return checkpoint.Wrap(err)
	}
	return nil
}
