package identify

import (
	"io"
	"os"

	"github.com/lcalzada-xor/filesig/internal/core/ports"
)

var _ ports.PrefixSource = (*fileSource)(nil)

// fileSource supplies bounded byte windows from a file on disk. It
// implements ports.PrefixSource: the initial read covers at most limit
// bytes, and at most one additional bounded read is performed when a
// signature declares a verification beyond the prefix. The full file is
// never loaded.
type fileSource struct {
	path  string
	limit int
}

func newFileSource(path string, limit int) *fileSource {
	return &fileSource{path: path, limit: limit}
}

// Prefix reads up to limit leading bytes. A file shorter than the limit
// yields whatever bytes exist; a short read is not an error, the matcher
// simply treats out-of-range signatures as non-matching.
func (s *fileSource) Prefix() ([]byte, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, s.limit)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}

// ReadRange performs a single bounded read at offset. Reads past the end of
// the file yield the available bytes, mirroring Prefix.
func (s *fileSource) ReadRange(offset int64, n int) ([]byte, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := f.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return buf[:read], nil
}
