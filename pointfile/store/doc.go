// Package store opens point files for the block reader.
//
// Two sources are provided: a plain OS file whose cursor is repositioned for
// every block, and a read-only mmap of the whole file whose bytes can also be
// handed to the parallel pre-scan.
package store
