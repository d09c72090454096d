// Package histogram holds the binned pair-distance counts and their text output.
package histogram

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"strconv"

	"github.com/zeebo/xxh3"

	"github.com/ic-timon/pairdist/pointfile"
)

const (
	// BinsPerUnit is the number of bins per distance unit (bin width 0.01).
	BinsPerUnit = 100

	// MaxBin bounds the bin index: distances 0.00 to 34.64 for coordinates in [-10, 10].
	MaxBin = 3465
)

// Histogram maps a bin index to its pair count.
type Histogram [MaxBin]uint64

// Bin maps a squared fixed-point distance to its bin: round(sqrt(sq)/Scale*BinsPerUnit),
// rounding half away from zero. It reports false when the bin is outside [0, MaxBin).
func Bin(sq float64) (int, bool) {
	d := math.Sqrt(sq) / pointfile.Scale
	b := math.Round(d * BinsPerUnit)
	if !(b >= 0 && b < MaxBin) {
		return -1, false
	}
	return int(b), true
}

// Add adds o into h bin by bin.
func (h *Histogram) Add(o *Histogram) {
	for i := range h {
		h[i] += o[i]
	}
}

// Reset zeroes every bin.
func (h *Histogram) Reset() {
	*h = Histogram{}
}

// Total returns the sum of all bins.
func (h *Histogram) Total() uint64 {
	var sum uint64
	for _, c := range h {
		sum += c
	}
	return sum
}

// NonZero returns the number of bins with a non-zero count.
func (h *Histogram) NonZero() int {
	n := 0
	for _, c := range h {
		if c != 0 {
			n++
		}
	}
	return n
}

// Digest returns an xxh3 fingerprint of the counts, used to compare runs.
func (h *Histogram) Digest() uint64 {
	buf := make([]byte, 0, MaxBin*8)
	for _, c := range h {
		buf = binary.LittleEndian.AppendUint64(buf, c)
	}
	return xxh3.Hash(buf)
}

// Label formats the lower bound of a bin as WW.FF.
func Label(bin int) string {
	return string(appendLabel(nil, bin))
}

func appendLabel(dst []byte, bin int) []byte {
	whole, frac := bin/BinsPerUnit, bin%BinsPerUnit
	if whole < 10 {
		dst = append(dst, '0')
	}
	dst = strconv.AppendInt(dst, int64(whole), 10)
	dst = append(dst, '.', byte('0'+frac/10), byte('0'+frac%10))
	return dst
}

// WriteTo writes one "WW.FF COUNT" line per non-zero bin in increasing bin order.
func (h *Histogram) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64
	line := make([]byte, 0, 32)
	for bin, c := range h {
		if c == 0 {
			continue
		}
		line = appendLabel(line[:0], bin)
		line = append(line, ' ')
		line = strconv.AppendUint(line, c, 10)
		line = append(line, '\n')
		n, err := bw.Write(line)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, bw.Flush()
}
