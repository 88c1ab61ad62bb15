package mfs32

import (
	"encoding/binary"

	"github.com/mfsutil/mfs32/checkpoint"
)

// NextCluster reads the faithful 16-bit FAT entry at cluster's FAT address
// and returns it as a signed 16-bit value, exactly as
// original_source/mfs.c:NextLB does. Callers treat values whose unsigned
// 16-bit interpretation is >= endOfChain16 as end-of-chain (spec.md §4.3,
// §9 — this is a documented shortcoming preserved for faithful behavior).
func (g Geometry) NextCluster(r readerAt, cluster int) (int16, error) {
	addr := g.FATAddress(cluster)
	buf := make([]byte, 2)
	if _, err := r.ReadAt(buf, addr); err != nil {
		return 0, checkpoint.Wrap(err, ErrImageNotFound)
	}
	return int16(binary.LittleEndian.Uint16(buf)), nil
}

// IsEndOfChain16 reports whether a value returned by NextCluster marks the
// end of a chain.
func IsEndOfChain16(v int16) bool {
	return uint16(v) >= endOfChain16
}

// NextClusterCorrected reads the full 32-bit FAT entry, masked to 28 bits,
// the behavior spec.md §9 documents as correct for FAT32. It is provided
// alongside NextCluster so the discrepancy between the faithful and
// corrected algorithms is explicit and testable (SPEC_FULL.md §7).
func (g Geometry) NextClusterCorrected(r readerAt, cluster int) (uint32, error) {
	addr := g.FATAddress(cluster)
	buf := make([]byte, 4)
	if _, err := r.ReadAt(buf, addr); err != nil {
		return 0, checkpoint.Wrap(err, ErrImageNotFound)
	}
	return binary.LittleEndian.Uint32(buf) & fat32Mask, nil
}

// IsEndOfChain32 reports whether a value returned by NextClusterCorrected
// marks the end of a chain.
func IsEndOfChain32(v uint32) bool {
	return v >= endOfChain32
}
