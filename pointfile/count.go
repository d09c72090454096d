package pointfile

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minCountChunk keeps parallel pre-scan chunks large enough to amortise goroutine start-up.
const minCountChunk = 1 << 20

// Count returns the number of lines in r accepted by DecodeRecord.
func Count(r io.Reader) (uint64, error) {
	br := bufio.NewReaderSize(r, readBufferSize)
	var n uint64
	for {
		line, err := br.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			for errors.Is(err, bufio.ErrBufferFull) {
				_, err = br.ReadSlice('\n')
			}
		} else if _, ok := DecodeRecord(line); ok {
			n++
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return n, nil
			}
			return n, err
		}
	}
}

// CountBytes counts valid records in data (typically an mmap'd point file)
// by splitting it into chunks scanned in parallel by up to workers goroutines.
// A line belongs to the chunk holding its first byte, so the total equals Count.
func CountBytes(data []byte, workers int) (uint64, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	chunk := max(len(data)/workers+1, minCountChunk)
	nChunks := (len(data) + chunk - 1) / chunk
	counts := make([]uint64, nChunks)

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range nChunks {
		lo := i * chunk
		hi := min(lo+chunk, len(data))
		g.Go(func() error {
			counts[i] = countRange(data, lo, hi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	var total uint64
	for _, c := range counts {
		total += c
	}
	return total, nil
}

// countRange counts records whose line starts in data[lo:hi].
func countRange(data []byte, lo, hi int) uint64 {
	pos := lo
	if lo > 0 {
		idx := bytes.IndexByte(data[lo-1:], '\n')
		if idx < 0 {
			return 0
		}
		pos = lo + idx
	}
	var n uint64
	for pos < hi {
		end := len(data)
		if j := bytes.IndexByte(data[pos:], '\n'); j >= 0 {
			end = pos + j + 1
		}
		if _, ok := DecodeRecord(data[pos:end]); ok {
			n++
		}
		pos = end
	}
	return n
}
