//go:build amd64 && cgo

package simd

/*
#cgo CFLAGS: -mavx2 -O3
#include <immintrin.h>
#include <stddef.h>
#include <stdint.h>

static inline __m256d load4_pd(const int16_t* p) {
	__m128i v16 = _mm_loadl_epi64((const __m128i*)p);
	return _mm256_cvtepi32_pd(_mm_cvtepi16_epi32(v16));
}

static void SquaredDistancesAVX2(int16_t px, int16_t py, int16_t pz,
		const int16_t* xs, const int16_t* ys, const int16_t* zs,
		double* dst, size_t n) {
	__m256d ax = _mm256_set1_pd((double)px);
	__m256d ay = _mm256_set1_pd((double)py);
	__m256d az = _mm256_set1_pd((double)pz);
	size_t i = 0;
	for (; i + 4 <= n; i += 4) {
		__m256d dx = _mm256_sub_pd(load4_pd(xs + i), ax);
		__m256d dy = _mm256_sub_pd(load4_pd(ys + i), ay);
		__m256d dz = _mm256_sub_pd(load4_pd(zs + i), az);
		__m256d s = _mm256_add_pd(_mm256_mul_pd(dx, dx), _mm256_mul_pd(dy, dy));
		s = _mm256_add_pd(s, _mm256_mul_pd(dz, dz));
		_mm256_storeu_pd(dst + i, s);
	}
	for (; i < n; i++) {
		double dx = (double)xs[i] - px;
		double dy = (double)ys[i] - py;
		double dz = (double)zs[i] - pz;
		dst[i] = dx * dx + dy * dy + dz * dz;
	}
}
*/
import "C"

import "unsafe"

func squaredDistancesAVX2(px, py, pz int16, xs, ys, zs []int16, dst []float64) {
	n := len(dst)
	if n == 0 {
		return
	}
	C.SquaredDistancesAVX2(
		C.int16_t(px), C.int16_t(py), C.int16_t(pz),
		(*C.int16_t)(unsafe.Pointer(&xs[0])),
		(*C.int16_t)(unsafe.Pointer(&ys[0])),
		(*C.int16_t)(unsafe.Pointer(&zs[0])),
		(*C.double)(unsafe.Pointer(&dst[0])),
		C.size_t(n),
	)
}
