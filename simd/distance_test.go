package simd

import (
	"math"
	"math/rand"
	"testing"
)

const benchN = 10000

func initColumns(n int, seed int64) (xs, ys, zs []int16) {
	rng := rand.New(rand.NewSource(seed))
	xs = make([]int16, n)
	ys = make([]int16, n)
	zs = make([]int16, n)
	for i := 0; i < n; i++ {
		xs[i] = int16(rng.Intn(2*math.MaxInt16+1) - math.MaxInt16)
		ys[i] = int16(rng.Intn(2*math.MaxInt16+1) - math.MaxInt16)
		zs[i] = int16(rng.Intn(2*math.MaxInt16+1) - math.MaxInt16)
	}
	return xs, ys, zs
}

func TestSquaredDistances_MatchesGo(t *testing.T) {
	xs, ys, zs := initColumns(1027, 42)
	want := make([]float64, len(xs))
	got := make([]float64, len(xs))
	for _, p := range [][3]int16{{0, 0, 0}, {math.MaxInt16, -math.MaxInt16, 1}, {-1330, 9035, -3489}} {
		squaredDistancesGo(p[0], p[1], p[2], xs, ys, zs, want)
		n := SquaredDistances(p[0], p[1], p[2], xs, ys, zs, got)
		if n != len(xs) {
			t.Fatalf("count: got %d want %d", n, len(xs))
		}
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("%s: p=%v j=%d got %v want %v", Desc(), p, j, got[j], want[j])
			}
		}
	}
}

func TestSquaredDistances_Exact(t *testing.T) {
	xs := []int16{math.MaxInt16, 0, 1000, 2000, 0}
	ys := []int16{math.MaxInt16, 0, 0, 0, 0}
	zs := []int16{math.MaxInt16, 0, 0, 0, 3}
	dst := make([]float64, len(xs))
	SquaredDistances(-math.MaxInt16, -math.MaxInt16, -math.MaxInt16, xs[:1], ys[:1], zs[:1], dst)
	if want := 3 * 65534.0 * 65534.0; dst[0] != want {
		t.Errorf("extreme: got %v want %v", dst[0], want)
	}
	SquaredDistances(0, 0, 0, xs[1:], ys[1:], zs[1:], dst)
	for i, want := range []float64{0, 1e6, 4e6, 9} {
		if dst[i] != want {
			t.Errorf("dst[%d]: got %v want %v", i, dst[i], want)
		}
	}
}

func TestSquaredDistances_ShortestSlice(t *testing.T) {
	xs, ys, zs := initColumns(10, 1)
	dst := make([]float64, 3)
	if n := SquaredDistances(0, 0, 0, xs, ys, zs, dst); n != 3 {
		t.Errorf("got %d want 3", n)
	}
	if n := SquaredDistances(0, 0, 0, xs, ys[:0], zs, dst); n != 0 {
		t.Errorf("got %d want 0", n)
	}
}

func BenchmarkSquaredDistances_Go(b *testing.B) {
	xs, ys, zs := initColumns(benchN, 42)
	dst := make([]float64, benchN)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		squaredDistancesGo(1, 2, 3, xs, ys, zs, dst)
	}
}

func BenchmarkSquaredDistances_Auto(b *testing.B) {
	xs, ys, zs := initColumns(benchN, 42)
	dst := make([]float64, benchN)
	b.Logf("implementation: %s", Desc())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SquaredDistances(1, 2, 3, xs, ys, zs, dst)
	}
}
