package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ic-timon/pairdist/histogram"
	"github.com/ic-timon/pairdist/pointfile"
)

func randomPoints(n int, seed int64) []pointfile.Point {
	rng := rand.New(rand.NewSource(seed))
	out := make([]pointfile.Point, n)
	for i := range out {
		out[i] = pointfile.Point{
			X: int16(rng.Intn(20001) - 10000),
			Y: int16(rng.Intn(20001) - 10000),
			Z: int16(rng.Intn(20001) - 10000),
		}
	}
	return out
}

func blockOf(pts []pointfile.Point) *pointfile.DataBlock {
	b := pointfile.NewDataBlock(len(pts))
	for i, p := range pts {
		b.Set(i, p)
	}
	b.SetLen(len(pts))
	return b
}

// bruteForce bins every unordered pair of pts with scalar arithmetic.
func bruteForce(pts []pointfile.Point) (h histogram.Histogram, dropped uint64) {
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			dx := int64(pts[i].X) - int64(pts[j].X)
			dy := int64(pts[i].Y) - int64(pts[j].Y)
			dz := int64(pts[i].Z) - int64(pts[j].Z)
			d := math.Sqrt(float64(dx*dx+dy*dy+dz*dz)) / pointfile.Scale
			bin := int(math.Round(d * 100))
			if bin >= 0 && bin < histogram.MaxBin {
				h[bin]++
			} else {
				dropped++
			}
		}
	}
	return h, dropped
}

func TestKernel_ThreePoints(t *testing.T) {
	pts := []pointfile.Point{{X: 0}, {X: 1000}, {X: 2000}}
	k := NewKernel(2, 3, 1)
	defer k.Close()

	var h histogram.Histogram
	blk := blockOf(pts)
	st := k.Accumulate(blk, blk, &h)
	assert.True(t, st.Self)
	assert.Equal(t, uint64(3), st.Pairs)
	assert.Equal(t, uint64(2), h[100])
	assert.Equal(t, uint64(1), h[200])
	assert.Equal(t, uint64(3), h.Total())
}

func TestKernel_SelfEqualsBruteForce(t *testing.T) {
	pts := randomPoints(777, 11)
	want, _ := bruteForce(pts)
	blk := blockOf(pts)
	for _, workers := range []int{1, 2, 5, 16} {
		k := NewKernel(workers, len(pts), 7)
		var h histogram.Histogram
		st := k.Accumulate(blk, blk, &h)
		k.Close()
		require.Equal(t, want, h, "workers=%d", workers)
		assert.Equal(t, uint64(777*776/2), st.Pairs)
	}
}

func TestKernel_CrossEqualsBruteForce(t *testing.T) {
	pts := randomPoints(600, 12)
	a, b := pts[:250], pts[250:]
	want, _ := bruteForce(pts)
	wantA, _ := bruteForce(a)
	wantB, _ := bruteForce(b)

	k := NewKernel(4, 350, 3)
	defer k.Close()
	blkA, blkB := blockOf(a), blockOf(b)
	var h histogram.Histogram
	st := k.Accumulate(blkA, blkB, &h)
	assert.False(t, st.Self)
	assert.Equal(t, uint64(250*350), st.Pairs)
	k.Accumulate(blkA, blkA, &h)
	k.Accumulate(blkB, blkB, &h)
	require.Equal(t, want, h)

	var hSelf histogram.Histogram
	k.Accumulate(blkA, blkA, &hSelf)
	k.Accumulate(blkB, blkB, &hSelf)
	wantA.Add(&wantB)
	assert.Equal(t, wantA, hSelf)
}

func TestKernel_EqualContentsAreNotSelf(t *testing.T) {
	pts := randomPoints(10, 13)
	a, b := blockOf(pts), blockOf(pts)
	k := NewKernel(2, 10, 4)
	defer k.Close()

	var h histogram.Histogram
	st := k.Accumulate(a, b, &h)
	assert.False(t, st.Self)
	assert.Equal(t, uint64(100), st.Pairs)
	assert.Equal(t, uint64(10), h[0])
}

func TestKernel_DropsOutOfRange(t *testing.T) {
	pts := []pointfile.Point{
		{X: -pointfile.MaxCoord, Y: -pointfile.MaxCoord, Z: -pointfile.MaxCoord},
		{X: pointfile.MaxCoord, Y: pointfile.MaxCoord, Z: pointfile.MaxCoord},
		{X: pointfile.MaxCoord, Y: pointfile.MaxCoord, Z: pointfile.MaxCoord - 10},
	}
	k := NewKernel(3, 3, 1)
	defer k.Close()

	var h histogram.Histogram
	blk := blockOf(pts)
	st := k.Accumulate(blk, blk, &h)
	assert.Equal(t, uint64(3), st.Pairs)
	assert.Equal(t, uint64(2), st.Dropped)
	assert.Equal(t, uint64(1), st.Binned)
	assert.Equal(t, uint64(1), h[1])
}

func TestKernel_EmptyBlocks(t *testing.T) {
	k := NewKernel(2, 4, 1)
	defer k.Close()
	var h histogram.Histogram
	empty := pointfile.NewDataBlock(4)
	full := blockOf(randomPoints(4, 14))
	assert.Equal(t, uint64(0), k.Accumulate(empty, empty, &h).Pairs)
	assert.Equal(t, uint64(0), k.Accumulate(full, empty, &h).Pairs)
	single := blockOf(randomPoints(1, 15))
	assert.Equal(t, uint64(0), k.Accumulate(single, single, &h).Pairs)
	assert.Equal(t, uint64(0), h.Total())
}

func TestKernel_GrowsBuffersForLargerBlocks(t *testing.T) {
	pts := randomPoints(300, 16)
	want, _ := bruteForce(pts)
	k := NewKernel(2, 10, 8)
	defer k.Close()
	var h histogram.Histogram
	blk := blockOf(pts)
	k.Accumulate(blk, blk, &h)
	assert.Equal(t, want, h)
}

func BenchmarkKernel_Self(b *testing.B) {
	blk := blockOf(randomPoints(2000, 1))
	k := NewKernel(4, 2000, defaultRowChunk)
	defer k.Close()
	var h histogram.Histogram
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k.Accumulate(blk, blk, &h)
	}
}
