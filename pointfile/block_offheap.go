//go:build cgo

package pointfile

/*
#include <stdlib.h>
*/
import "C"

import "unsafe"

// DataBlockOffheap is an off-heap block allocated with C.malloc, keeping large blocks out of the GC heap.
type DataBlockOffheap struct {
	columns
	ptr unsafe.Pointer
}

// NewDataBlockOffheap creates an off-heap block able to hold capacity points.
// Returns nil if the allocation fails.
func NewDataBlockOffheap(capacity int) *DataBlockOffheap {
	if capacity <= 0 {
		return nil
	}
	ptr := C.malloc(C.size_t(capacity * PointSize))
	if ptr == nil {
		return nil
	}
	data := unsafe.Slice((*int16)(ptr), 3*capacity)
	return &DataBlockOffheap{
		columns: columns{
			xs: data[:capacity:capacity],
			ys: data[capacity : 2*capacity : 2*capacity],
			zs: data[2*capacity:],
		},
		ptr: ptr,
	}
}

// Close frees the C.malloc-allocated memory.
func (b *DataBlockOffheap) Close() {
	if b.ptr != nil {
		C.free(b.ptr)
		b.ptr = nil
		b.columns = columns{}
	}
}

// allocBlockOffheap allocates an off-heap block (only present in CGO builds).
func allocBlockOffheap(capacity int) Block {
	if b := NewDataBlockOffheap(capacity); b != nil {
		return b
	}
	return nil
}
