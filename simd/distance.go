// Package simd provides AVX2 and NEON accelerated squared Euclidean distances
// between one fixed-point 3D point and a column-stored block of points.
// Automatically selects the best implementation based on GOARCH and CGO availability.
//
// Every implementation produces bit-identical results: coordinates are int16,
// so each squared distance is an integer below 2^35 and is exact in float64.
package simd

var (
	squaredDistancesImpl     func(px, py, pz int16, xs, ys, zs []int16, dst []float64)
	squaredDistancesImplDesc string
)

func init() {
	// Default; dispatch files override in init() based on GOARCH and CGO.
	if squaredDistancesImpl == nil {
		squaredDistancesImpl = squaredDistancesGo
		squaredDistancesImplDesc = "Go"
	}
}

// SquaredDistances writes (xs[j]-px)²+(ys[j]-py)²+(zs[j]-pz)² into dst[j] for
// every j below the shortest of the four slices, and returns that count.
func SquaredDistances(px, py, pz int16, xs, ys, zs []int16, dst []float64) int {
	n := min(len(xs), len(ys), len(zs), len(dst))
	if n == 0 {
		return 0
	}
	squaredDistancesImpl(px, py, pz, xs[:n], ys[:n], zs[:n], dst[:n])
	return n
}

// Desc returns a description of the current implementation (for logging).
func Desc() string {
	if squaredDistancesImplDesc != "" {
		return squaredDistancesImplDesc
	}
	return "Go"
}

// squaredDistancesGo is the pure Go implementation (2-way unroll).
func squaredDistancesGo(px, py, pz int16, xs, ys, zs []int16, dst []float64) {
	ax, ay, az := int64(px), int64(py), int64(pz)
	n := len(dst)
	xs, ys, zs = xs[:n], ys[:n], zs[:n]
	j := 0
	for ; j+2 <= n; j += 2 {
		dx0, dy0, dz0 := int64(xs[j])-ax, int64(ys[j])-ay, int64(zs[j])-az
		dx1, dy1, dz1 := int64(xs[j+1])-ax, int64(ys[j+1])-ay, int64(zs[j+1])-az
		dst[j] = float64(dx0*dx0 + dy0*dy0 + dz0*dz0)
		dst[j+1] = float64(dx1*dx1 + dy1*dy1 + dz1*dz1)
	}
	for ; j < n; j++ {
		dx, dy, dz := int64(xs[j])-ax, int64(ys[j])-ay, int64(zs[j])-az
		dst[j] = float64(dx*dx + dy*dy + dz*dz)
	}
}
