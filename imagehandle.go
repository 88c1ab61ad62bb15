package mfs32

import (
	"os"

	"github.com/spf13/afero"

	"github.com/mfsutil/mfs32/checkpoint"
)

// ImageHandle owns the single open image file for a session and provides
// byte-addressed read/write primitives (spec.md §4.1). It is backed by an
// afero.Fs so production code can point at the real host filesystem while
// tests build synthetic images entirely in memory.
type ImageHandle struct {
	fs   afero.Fs
	file afero.File
	path string
}

// OpenImage opens path for read+write through fs. Returns ErrImageNotFound
// if the open fails.
func OpenImage(fs afero.Fs, path string) (*ImageHandle, error) {
	f, err := fs.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrImageNotFound)
	}
	return &ImageHandle{fs: fs, file: f, path: path}, nil
}

// ReadAt reads len(buf) bytes starting at offset.
func (h *ImageHandle) ReadAt(buf []byte, offset int64) (int, error) {
	n, err := h.file.ReadAt(buf, offset)
	if err != nil {
		return n, checkpoint.Wrap(err, ErrImageNotFound)
	}
	return n, nil
}

// WriteAt writes buf starting at offset.
func (h *ImageHandle) WriteAt(buf []byte, offset int64) (int, error) {
	n, err := h.file.WriteAt(buf, offset)
	if err != nil {
		return n, checkpoint.Wrap(err, ErrImageNotFound)
	}
	return n, nil
}

// Close releases the underlying file. A session's ImageHandle is always
// scoped to the Open->Close interval (spec.md §5).
func (h *ImageHandle) Close() error {
	return h.file.Close()
}
