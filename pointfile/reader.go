package pointfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

const readBufferSize = 64 << 10

// Reader decodes blocks of records from a seekable point file.
// The buffered reader is allocated once and reused for every block.
type Reader struct {
	src io.ReadSeeker
	br  *bufio.Reader
}

// NewReader returns a Reader over src with a 64 KiB read buffer. The Reader
// owns src's cursor.
func NewReader(src io.ReadSeeker) *Reader {
	return &Reader{src: src, br: bufio.NewReaderSize(src, readBufferSize)}
}

// NewBlockReader returns a Reader whose buffer is sized for blocks of capacity
// points, so a block load reads about capacity*RecordWidth bytes past its offset.
func NewBlockReader(src io.ReadSeeker, capacity int) *Reader {
	return &Reader{src: src, br: bufio.NewReaderSize(src, blockBufferSize(capacity))}
}

// blockBufferSize is capacity records, at most readBufferSize and at least
// one record plus a byte.
func blockBufferSize(capacity int) int {
	if capacity <= 0 || capacity > readBufferSize/RecordWidth {
		return readBufferSize
	}
	return max(capacity*RecordWidth, RecordWidth+1)
}

// ReadBlock seeks to offset and decodes up to capacity records into blk.
// Lines rejected by DecodeRecord are skipped without using a slot.
// It returns the number of points decoded and the byte offset right after the
// last decoded record (offset itself if none). blk.Len() is set to n.
// A seek failure yields n == 0 and a non-nil error; a read failure yields the
// points decoded so far and a non-nil error.
func (r *Reader) ReadBlock(offset int64, blk Block, capacity int) (n int, end int64, err error) {
	blk.SetLen(0)
	end = offset
	if _, err := r.src.Seek(offset, io.SeekStart); err != nil {
		return 0, offset, fmt.Errorf("seek to %d: %w", offset, err)
	}
	r.br.Reset(r.src)
	capacity = min(capacity, blk.Cap())
	pos := offset
	for n < capacity {
		line, rerr := r.br.ReadSlice('\n')
		pos += int64(len(line))
		if errors.Is(rerr, bufio.ErrBufferFull) {
			// overlong line: drain it, it cannot be a record
			for errors.Is(rerr, bufio.ErrBufferFull) {
				line, rerr = r.br.ReadSlice('\n')
				pos += int64(len(line))
			}
		} else if p, ok := DecodeRecord(line); ok {
			blk.Set(n, p)
			n++
			end = pos
		}
		if rerr != nil {
			if !errors.Is(rerr, io.EOF) {
				err = fmt.Errorf("read at %d: %w", pos, rerr)
			}
			break
		}
	}
	blk.SetLen(n)
	return n, end, err
}
