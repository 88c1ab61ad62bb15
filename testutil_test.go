package mfs32

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/spf13/afero"
)

// testGeometry is the fixed BPB used by every synthetic image this package's
// tests build: 512-byte sectors, one sector per cluster (so the
// cluster-vs-sector conflation spec.md §9 documents never matters for test
// data), 32 reserved sectors, a single one-sector FAT, root at cluster 2.
func testGeometry() Geometry {
	return Geometry{
		BytesPerSector:      512,
		SectorsPerCluster:   1,
		ReservedSectorCount: 32,
		NumFATs:             1,
		RootEntryCount:      16,
		FATSize32:           1,
		RootCluster:         2,
	}
}

// testEntry is a convenient, readable stand-in for a rawDirEntry used to
// build synthetic root directories.
type testEntry struct {
	name     string // exactly 11 bytes, e.g. "FOO     TXT"
	attr     byte
	cluster  uint32
	fileSize uint32
}

// testImageBuilder accumulates FAT entries and cluster payloads for a
// synthetic FAT32 image, then serializes them into one byte slice matching
// testGeometry's layout.
type testImageBuilder struct {
	geom    Geometry
	entries []testEntry
	fat     map[int]uint32
	data    map[int][]byte
}

func newTestImageBuilder() *testImageBuilder {
	return &testImageBuilder{
		geom: testGeometry(),
		fat:  make(map[int]uint32),
		data: make(map[int][]byte),
	}
}

func (b *testImageBuilder) withRoot(entries ...testEntry) *testImageBuilder {
	b.entries = entries
	return b
}

// withChain records that cluster's FAT entry points at next (use
// endOfChain32 for the final hop) and that its sector holds content.
func (b *testImageBuilder) withChain(cluster int, next uint32, content []byte) *testImageBuilder {
	b.fat[cluster] = next
	sector := make([]byte, b.geom.BytesPerSector)
	copy(sector, content)
	b.data[cluster] = sector
	return b
}

// withDirAt stores a secondary 16-entry directory (for cd targets) at
// cluster, wiring its FAT entry to endOfChain32.
func (b *testImageBuilder) withDirAt(cluster int, entries ...testEntry) *testImageBuilder {
	b.fat[cluster] = endOfChain32
	b.data[cluster] = encodeDirSector(entries)
	return b
}

func encodeDirSector(entries []testEntry) []byte {
	var buf bytes.Buffer
	for i := 0; i < entriesPerSector; i++ {
		var e testEntry
		if i < len(entries) {
			e = entries[i]
		}
		raw := rawDirEntry{
			Attr:             e.attr,
			FirstClusterHigh: uint16(e.cluster >> 16),
			FirstClusterLow:  uint16(e.cluster & 0xFFFF),
			FileSize:         e.fileSize,
		}
		for j := range raw.Name {
			raw.Name[j] = ' '
		}
		copy(raw.Name[:], e.name)
		if i >= len(entries) {
			raw.Name[0] = terminatorByte
		}
		if err := binary.Write(&buf, binary.LittleEndian, &raw); err != nil {
			panic(err)
		}
	}
	return buf.Bytes()
}

// maxDataCluster reports the highest cluster number this builder writes to,
// so build() can size the backing buffer.
func (b *testImageBuilder) maxDataCluster() int {
	max := b.geom.RootCluster
	for c := range b.data {
		if c > max {
			max = c
		}
	}
	return max
}

// build serializes the BPB, FAT region and every recorded cluster (root
// directory plus any chained clusters) into one image byte slice.
func (b *testImageBuilder) build() []byte {
	g := b.geom

	rootBytes := encodeDirSector(b.entries)
	b.data[g.RootCluster] = rootBytes

	dataBase := int(g.LBAToOffset(g.RootCluster))
	totalSectors := (b.maxDataCluster() - g.RootCluster + 1)
	size := dataBase + totalSectors*g.BytesPerSector
	img := make([]byte, size)

	var bpbBuf bytes.Buffer
	raw := rawBPB{
		BytesPerSector:      uint16(g.BytesPerSector),
		SectorsPerCluster:   byte(g.SectorsPerCluster),
		ReservedSectorCount: uint16(g.ReservedSectorCount),
		NumFATs:             byte(g.NumFATs),
		RootEntryCount:      uint16(g.RootEntryCount),
		FATSize32:           uint32(g.FATSize32),
		RootCluster:         uint32(g.RootCluster),
	}
	copy(raw.OEMName[:], "MFSUTIL ")
	copy(raw.VolumeLabel[:], "NO NAME    ")
	if err := binary.Write(&bpbBuf, binary.LittleEndian, &raw); err != nil {
		panic(err)
	}
	copy(img, bpbBuf.Bytes())

	for cluster, next := range b.fat {
		addr := g.FATAddress(cluster)
		binary.LittleEndian.PutUint32(img[addr:addr+4], next)
	}

	for cluster, content := range b.data {
		offset := int(g.LBAToOffset(cluster))
		copy(img[offset:offset+g.BytesPerSector], content)
	}

	return img
}

// newMemFs returns an empty in-memory filesystem, for tests exercising
// error paths where no image has been seeded.
func newMemFs() afero.Fs {
	return afero.NewMemMapFs()
}

// openTestSession writes img to an in-memory filesystem as "disk.img" and
// returns an already-Open session backed by it.
func openTestSession(t *testing.T, img []byte) *Session {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "disk.img", img, 0o644); err != nil {
		t.Fatalf("seed image: %v", err)
	}

	s := NewSession(fs, nil)
	if err := s.Open("disk.img"); err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}
