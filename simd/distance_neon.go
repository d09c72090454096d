//go:build arm64 && cgo

package simd

/*
#cgo CFLAGS: -O3
#include <arm_neon.h>
#include <stddef.h>
#include <stdint.h>

static void SquaredDistancesNEON(int16_t px, int16_t py, int16_t pz,
		const int16_t* xs, const int16_t* ys, const int16_t* zs,
		double* dst, size_t n) {
	int32x4_t ax = vdupq_n_s32(px);
	int32x4_t ay = vdupq_n_s32(py);
	int32x4_t az = vdupq_n_s32(pz);
	size_t i = 0;
	for (; i + 4 <= n; i += 4) {
		int32x4_t dx = vsubq_s32(vmovl_s16(vld1_s16(xs + i)), ax);
		int32x4_t dy = vsubq_s32(vmovl_s16(vld1_s16(ys + i)), ay);
		int32x4_t dz = vsubq_s32(vmovl_s16(vld1_s16(zs + i)), az);
		int64x2_t lo = vmull_s32(vget_low_s32(dx), vget_low_s32(dx));
		int64x2_t hi = vmull_high_s32(dx, dx);
		lo = vmlal_s32(lo, vget_low_s32(dy), vget_low_s32(dy));
		hi = vmlal_high_s32(hi, dy, dy);
		lo = vmlal_s32(lo, vget_low_s32(dz), vget_low_s32(dz));
		hi = vmlal_high_s32(hi, dz, dz);
		vst1q_f64(dst + i, vcvtq_f64_s64(lo));
		vst1q_f64(dst + i + 2, vcvtq_f64_s64(hi));
	}
	for (; i < n; i++) {
		int64_t dx = (int64_t)xs[i] - px;
		int64_t dy = (int64_t)ys[i] - py;
		int64_t dz = (int64_t)zs[i] - pz;
		dst[i] = (double)(dx * dx + dy * dy + dz * dz);
	}
}
*/
import "C"

import "unsafe"

func squaredDistancesNEON(px, py, pz int16, xs, ys, zs []int16, dst []float64) {
	n := len(dst)
	if n == 0 {
		return
	}
	C.SquaredDistancesNEON(
		C.int16_t(px), C.int16_t(py), C.int16_t(pz),
		(*C.int16_t)(unsafe.Pointer(&xs[0])),
		(*C.int16_t)(unsafe.Pointer(&ys[0])),
		(*C.int16_t)(unsafe.Pointer(&zs[0])),
		(*C.double)(unsafe.Pointer(&dst[0])),
		C.size_t(n),
	)
}
