package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Source is a file-like byte source supporting offset reads and a size query.
// *bytes.Reader, *strings.Reader and *io.SectionReader all satisfy it.
type Source interface {
	io.ReaderAt
	Size() int64
}

// FromBytes returns a Source over b.
func FromBytes(b []byte) Source {
	return bytes.NewReader(b)
}

// FromString returns a Source over s.
func FromString(s string) Source {
	return strings.NewReader(s)
}

// FileSource is a Source backed by an open file.
type FileSource struct {
	*io.SectionReader
	name string
	file *os.File
}

// OpenFile opens path for chunked reading. The caller must Close it.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sequence file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat sequence file: %w", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%s is a directory, not a file", path)
	}

	return &FileSource{
		SectionReader: io.NewSectionReader(f, 0, info.Size()),
		name:          filepath.Base(path),
		file:          f,
	}, nil
}

// Name returns the base name of the underlying file.
func (fs *FileSource) Name() string {
	return fs.name
}

// Close closes the underlying file.
func (fs *FileSource) Close() error {
	return fs.file.Close()
}
