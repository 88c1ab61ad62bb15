package mfs32

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// State is the Closed/Open state machine spec.md §5/§4.10 describes.
type State int

const (
	Closed State = iota
	Open
)

// Session ties the Image Handle, Geometry, Directory Cache and
// Original-Name Memory together behind the small set of operations the
// command dispatcher drives (spec.md §4.10).
type Session struct {
	state State

	image *ImageHandle
	geom  Geometry
	dir   *DirectoryCache
	orig  OriginalNames

	hostFS afero.Fs
	log    *logrus.Logger
}

// NewSession constructs a Closed session. hostFS backs both the opened
// image and files written by Get; log receives Debug-level lifecycle and
// mutation events (SPEC_FULL.md §3) and may be nil to discard them.
func NewSession(hostFS afero.Fs, log *logrus.Logger) *Session {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Session{state: Closed, hostFS: hostFS, log: log}
}

// State reports whether the session currently has an image open.
func (s *Session) State() State {
	return s.state
}

// Open opens path as a FAT32 image and bootstraps Geometry, the root
// DirectoryCache and OriginalNames (spec.md §4.2, §4.4, §4.9). Fails with
// ErrAlreadyOpen if a session is already open.
func (s *Session) Open(path string) error {
	if s.state == Open {
		return ErrAlreadyOpen
	}

	image, err := OpenImage(s.hostFS, path)
	if err != nil {
		return err
	}

	geom, err := ReadGeometry(image)
	if err != nil {
		image.Close()
		return err
	}

	dc, err := LoadDirectory(image, geom.LBAToOffset(geom.RootCluster))
	if err != nil {
		image.Close()
		return err
	}

	s.image = image
	s.geom = geom
	s.dir = dc
	s.orig = CaptureOriginalNames(dc)
	s.state = Open

	s.log.WithField("path", path).Debug("image opened")
	return nil
}

// Close releases the image handle and returns the session to Closed.
// Fails with ErrNotOpen if no image is open.
func (s *Session) Close() error {
	if s.state != Open {
		return ErrNotOpen
	}
	err := s.image.Close()
	s.image = nil
	s.dir = nil
	s.state = Closed
	s.log.Debug("image closed")
	return err
}

// Info renders the BPB summary (spec.md §4.2).
func (s *Session) Info() string {
	return s.geom.Info()
}

// Stat resolves name and returns its decoded entry.
func (s *Session) Stat(name string) (DirEntry, error) {
	i := s.dir.Find(name)
	if i == -1 {
		return DirEntry{}, ErrNotFound
	}
	return s.dir.entries[i], nil
}

// Ls returns the entries ls should print, in on-disk order (spec.md §4.8).
func (s *Session) Ls() []DirEntry {
	indices := s.dir.List()
	out := make([]DirEntry, len(indices))
	for i, idx := range indices {
		out[i] = s.dir.entries[idx]
	}
	return out
}

// Cd resolves name to a subdirectory and loads its first sector's worth of
// entries into the cache (spec.md §4.4).
func (s *Session) Cd(name string) error {
	i := s.dir.Find(name)
	if i == -1 {
		return ErrNotFound
	}
	entry := s.dir.entries[i]
	if entry.Attr != AttrDirectory {
		return ErrNotADirectory
	}

	cluster := entry.Cluster()
	if cluster == 0 {
		cluster = s.geom.RootCluster
	}

	dc, err := LoadDirectory(s.image, s.geom.LBAToOffset(cluster))
	if err != nil {
		return err
	}
	s.dir = dc
	return nil
}

// Get extracts name to the host filesystem (spec.md §4.6).
func (s *Session) Get(name string) error {
	return Get(s.dir, s.geom, s.image, s.hostFS, name)
}

// Read emits length bytes of name starting at offset to w (spec.md §4.6).
func (s *Session) Read(w io.Writer, name string, offset, length int64) error {
	return Read(s.dir, s.geom, s.image, w, name, offset, length)
}

// Del tombstones name (spec.md §4.7).
func (s *Session) Del(name string) error {
	if err := Del(s.dir, s.image, name); err != nil {
		return err
	}
	s.log.WithField("name", name).Debug("entry tombstoned")
	return nil
}

// Undel restores name (spec.md §4.7).
func (s *Session) Undel(name string) error {
	if err := Undel(s.dir, s.image, s.orig, name); err != nil {
		return err
	}
	s.log.WithField("name", name).Debug("entry recovered")
	return nil
}
