//go:build !cgo

package pointfile

// allocBlockOffheap returns nil when CGO is disabled, falling back to heap blocks.
func allocBlockOffheap(capacity int) Block {
	return nil
}
