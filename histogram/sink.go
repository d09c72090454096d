package histogram

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"go.uber.org/multierr"
)

// Codec selects the compression applied to histogram output.
type Codec string

const (
	CodecNone Codec = ""
	CodecZstd Codec = "zstd"
	CodecLZ4  Codec = "lz4"
)

// CodecFor picks the codec from a file extension (.zst, .zstd, .lz4).
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CodecZstd
	case ".lz4":
		return CodecLZ4
	}
	return CodecNone
}

// NewWriter wraps w with the given codec. Closing the result flushes the
// compressor but does not close w.
func NewWriter(w io.Writer, c Codec) (io.WriteCloser, error) {
	switch c {
	case CodecNone:
		return nopCloser{w}, nil
	case CodecZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, err
		}
		return enc, nil
	case CodecLZ4:
		return lz4.NewWriter(w), nil
	}
	return nil, fmt.Errorf("unknown codec %q", c)
}

// NewReader is the inverse of NewWriter.
func NewReader(r io.Reader, c Codec) (io.ReadCloser, error) {
	switch c {
	case CodecNone:
		return io.NopCloser(r), nil
	case CodecZstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	case CodecLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	}
	return nil, fmt.Errorf("unknown codec %q", c)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// Sink is a histogram destination: stdout or a file, optionally compressed.
type Sink struct {
	io.Writer
	enc  io.WriteCloser
	file *os.File
}

// Create opens the output for path. An empty path or "-" writes to stdout
// uncompressed; otherwise the codec follows the file extension.
func Create(path string) (*Sink, error) {
	if path == "" || path == "-" {
		return &Sink{Writer: os.Stdout, enc: nopCloser{os.Stdout}}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	enc, err := NewWriter(f, CodecFor(path))
	if err != nil {
		return nil, multierr.Append(err, f.Close())
	}
	return &Sink{Writer: enc, enc: enc, file: f}, nil
}

// Close flushes the compressor and closes the file.
func (s *Sink) Close() error {
	err := s.enc.Close()
	if s.file != nil {
		err = multierr.Append(err, s.file.Close())
	}
	return err
}
