package histogram

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBin(t *testing.T) {
	for _, tc := range []struct {
		dist float64 // fixed-point distance, 1000 = 1.0
		bin  int
	}{
		{0, 0},
		{1000, 100},
		{2000, 200},
		{4, 0},
		{6, 1},
		// exact half-bin values round away from zero
		{5, 1},
		{15, 2},
		{25, 3},
		// 1.005 is not representable; the computed distance*100 lands just below 100.5
		{1005, 100},
		{1015, 101},
		{34640, 3464},
	} {
		got, ok := Bin(tc.dist * tc.dist)
		require.True(t, ok, "dist=%v", tc.dist)
		assert.Equal(t, tc.bin, got, "dist=%v", tc.dist)
	}
}

func TestBin_OutOfRange(t *testing.T) {
	for _, dist := range []float64{34650, 40000, 113500} {
		_, ok := Bin(dist * dist)
		assert.False(t, ok, "dist=%v", dist)
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "00.00", Label(0))
	assert.Equal(t, "00.05", Label(5))
	assert.Equal(t, "01.00", Label(100))
	assert.Equal(t, "12.34", Label(1234))
	assert.Equal(t, "34.64", Label(3464))
}

func TestWriteTo(t *testing.T) {
	var h Histogram
	h[100] = 2
	h[200] = 1
	h[3464] = 1 << 40

	var buf bytes.Buffer
	n, err := h.WriteTo(&buf)
	require.NoError(t, err)
	want := "01.00 2\n02.00 1\n34.64 1099511627776\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, int64(len(want)), n)
}

func TestWriteTo_Empty(t *testing.T) {
	var h Histogram
	var buf bytes.Buffer
	_, err := h.WriteTo(&buf)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestAddTotalDigest(t *testing.T) {
	var a, b Histogram
	a[1], a[10] = 3, 4
	b[10], b[20] = 1, 2
	d := a.Digest()
	a.Add(&b)
	assert.Equal(t, uint64(10), a.Total())
	assert.Equal(t, 3, a.NonZero())
	assert.NotEqual(t, d, a.Digest())

	var c Histogram
	c[1], c[10], c[20] = 3, 5, 2
	assert.Equal(t, c.Digest(), a.Digest())

	a.Reset()
	assert.Equal(t, uint64(0), a.Total())
	assert.Equal(t, (&Histogram{}).Digest(), a.Digest())
}

func TestSink_Codecs(t *testing.T) {
	var h Histogram
	h[7], h[123], h[3000] = 1, 22, 333
	var plain bytes.Buffer
	_, err := h.WriteTo(&plain)
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"out.txt", "out.zst", "out.lz4"} {
		path := filepath.Join(dir, name)
		s, err := Create(path)
		require.NoError(t, err)
		_, err = h.WriteTo(s)
		require.NoError(t, err)
		require.NoError(t, s.Close())

		f, err := os.Open(path)
		require.NoError(t, err)
		r, err := NewReader(f, CodecFor(path))
		require.NoError(t, err)
		got, err := io.ReadAll(r)
		require.NoError(t, err)
		require.NoError(t, r.Close())
		require.NoError(t, f.Close())
		assert.Equal(t, plain.String(), string(got), name)
	}
}

func TestCodecFor(t *testing.T) {
	assert.Equal(t, CodecNone, CodecFor("hist.txt"))
	assert.Equal(t, CodecZstd, CodecFor("hist.ZST"))
	assert.Equal(t, CodecZstd, CodecFor("hist.zstd"))
	assert.Equal(t, CodecLZ4, CodecFor("a/b/hist.lz4"))
	_, err := NewWriter(io.Discard, Codec("snappy"))
	assert.Error(t, err)
}
