package mfs32

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/mfsutil/mfs32/checkpoint"
)

// Geometry holds the decoded BPB fields needed to translate cluster and FAT
// indices into byte offsets (spec.md §3, §4.2).
type Geometry struct {
	OEMName             [8]byte
	BytesPerSector      int
	SectorsPerCluster   int
	ReservedSectorCount int
	NumFATs             int
	RootEntryCount      int
	FATSize32           int
	RootCluster         int
	VolumeLabel         [11]byte
}

// ReadGeometry decodes a BPB from the first rawBPBSize bytes returned by r.
func ReadGeometry(r readerAt) (Geometry, error) {
	buf := make([]byte, rawBPBSize)
	if _, err := r.ReadAt(buf, 0); err != nil {
		return Geometry{}, checkpoint.Wrap(err, ErrImageNotFound)
	}

	var raw rawBPB
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &raw); err != nil {
		return Geometry{}, checkpoint.Wrap(err, ErrImageNotFound)
	}

	return Geometry{
		OEMName:             raw.OEMName,
		BytesPerSector:      int(raw.BytesPerSector),
		SectorsPerCluster:   int(raw.SectorsPerCluster),
		ReservedSectorCount: int(raw.ReservedSectorCount),
		NumFATs:             int(raw.NumFATs),
		RootEntryCount:      int(raw.RootEntryCount),
		FATSize32:           int(raw.FATSize32),
		RootCluster:         int(raw.RootCluster),
		VolumeLabel:         raw.VolumeLabel,
	}, nil
}

// readerAt is the narrow slice of ImageHandle's surface Geometry depends on.
type readerAt interface {
	ReadAt(buf []byte, offset int64) (int, error)
}

// LBAToOffset computes the first byte of the data region occupied by
// cluster. Cluster 0 means "root" and is rewritten to RootCluster first
// (spec.md §3).
func (g Geometry) LBAToOffset(cluster int) int64 {
	if cluster == 0 {
		cluster = g.RootCluster
	}
	return int64(cluster-2)*int64(g.BytesPerSector) +
		int64(g.ReservedSectorCount)*int64(g.BytesPerSector) +
		int64(g.NumFATs)*int64(g.FATSize32)*int64(g.BytesPerSector)
}

// FATAddress computes the byte offset of cluster's 32-bit FAT entry.
func (g Geometry) FATAddress(cluster int) int64 {
	return int64(g.ReservedSectorCount)*int64(g.BytesPerSector) + int64(cluster)*4
}

// Info renders the subset of BPB fields spec.md §4.2 requires, in both
// hexadecimal and decimal, matching original_source/mfs.c's
// printFat32Info column layout.
func (g Geometry) Info() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "--BPB_BytsPerSec:      hex: %-#10x  base10: %d\n", g.BytesPerSector, g.BytesPerSector)
	fmt.Fprintf(&b, "--BPB_SecPerClus:      hex: %-#10x  base10: %d\n", g.SectorsPerCluster, g.SectorsPerCluster)
	fmt.Fprintf(&b, "--BPB_RsvdSecCnt:      hex: %-#10x  base10: %d\n", g.ReservedSectorCount, g.ReservedSectorCount)
	fmt.Fprintf(&b, "--BPB_NumFATS:         hex: %-#10x  base10: %d\n", g.NumFATs, g.NumFATs)
	fmt.Fprintf(&b, "--BPB_FATSz32:         hex: %-#10x  base10: %d\n", g.FATSize32, g.FATSize32)
	return b.String()
}
