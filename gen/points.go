// Package gen 生成压测和测试用的随机点文件
package gen

import (
	"bufio"
	"io"
	"math/rand"

	"github.com/ic-timon/pairdist/pointfile"
)

// Lo and Hi bound generated coordinates: each axis is uniform in [Lo, Hi).
const (
	Lo = -10.0
	Hi = 10.0
)

const writeBufferSize = 1 << 20

func coord(rng *rand.Rand) float64 {
	return Lo + rng.Float64()*(Hi-Lo)
}

// Points 生成 n 个随机点（已转为定点），同一 seed 结果一致
func Points(n int, seed int64) []pointfile.Point {
	rng := rand.New(rand.NewSource(seed))
	out := make([]pointfile.Point, n)
	for i := range out {
		out[i] = randomPoint(rng)
	}
	return out
}

func randomPoint(rng *rand.Rand) pointfile.Point {
	var p pointfile.Point
	// [Lo, Hi) 全部落在 int16 定点范围内，不会出错
	p.X, _ = pointfile.FixedPoint(coord(rng))
	p.Y, _ = pointfile.FixedPoint(coord(rng))
	p.Z, _ = pointfile.FixedPoint(coord(rng))
	return p
}

// Write streams n random records to w. The output is a valid point file whose
// i-th record equals Points(n, seed)[i].
func Write(w io.Writer, n uint64, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	bw := bufio.NewWriterSize(w, writeBufferSize)
	rec := make([]byte, 0, pointfile.RecordWidth)
	for i := uint64(0); i < n; i++ {
		rec = pointfile.AppendPoint(rec[:0], randomPoint(rng))
		if _, err := bw.Write(rec); err != nil {
			return err
		}
	}
	return bw.Flush()
}
