package store

import (
	"bytes"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// MmapSource is a Source backed by a read-only mmap of the whole file.
type MmapSource struct {
	*bytes.Reader
	f    *os.File
	data mmap.MMap
}

// OpenMmap maps path read-only. Empty files are not mapped.
func OpenMmap(path string) (*MmapSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open point file: %w", err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat point file: %w", err)
	}
	s := &MmapSource{f: f}
	if fi.Size() > 0 {
		m, err := mmap.Map(f, mmap.RDONLY, 0)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("mmap point file: %w", err)
		}
		s.data = m
	}
	s.Reader = bytes.NewReader(s.data)
	return s, nil
}

// Bytes returns the full mapped file. The slice is valid until Close; callers must not modify it.
func (s *MmapSource) Bytes() []byte {
	return s.data
}

// Close unmaps the file and closes it.
func (s *MmapSource) Close() error {
	if s.data != nil {
		if err := s.data.Unmap(); err != nil {
			return err
		}
		s.data = nil
		s.Reader.Reset(nil)
	}
	if s.f != nil {
		err := s.f.Close()
		s.f = nil
		return err
	}
	return nil
}
