package store

import (
	"fmt"
	"io"
	"os"
)

// Source is a seekable point file.
type Source interface {
	io.ReadSeeker
	// Size returns the file size in bytes.
	Size() int64
	// Bytes returns the whole file as []byte, or nil if not mapped.
	Bytes() []byte
	// Close releases resources (e.g. unmaps the file).
	Close() error
}

// FileSource is a Source backed by an *os.File.
type FileSource struct {
	*os.File
	size int64
}

// OpenFile opens path for block reads through the OS file cursor.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open point file: %w", err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat point file: %w", err)
	}
	return &FileSource{File: f, size: fi.Size()}, nil
}

// Size returns the file size at open time.
func (s *FileSource) Size() int64 { return s.size }

// Bytes returns nil; file sources are not mapped.
func (s *FileSource) Bytes() []byte { return nil }

// Open opens path as an mmap source when useMmap is set, otherwise as a file source.
func Open(path string, useMmap bool) (Source, error) {
	if useMmap {
		s, err := OpenMmap(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	s, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	return s, nil
}
