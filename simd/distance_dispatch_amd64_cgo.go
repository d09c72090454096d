//go:build amd64 && cgo

package simd

import "golang.org/x/sys/cpu"

func init() {
	if cpu.X86.HasAVX2 {
		squaredDistancesImpl = squaredDistancesAVX2
		squaredDistancesImplDesc = "AVX2"
	} else {
		squaredDistancesImpl = squaredDistancesGo
		squaredDistancesImplDesc = "Go"
	}
}
