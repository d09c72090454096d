// Package pointfile reads and writes the fixed-width point file.
//
// Each point is one 24-byte record:
//
//	+01.330 -09.035 +03.489\n
//
// Coordinates are held as int16 fixed-point values scaled by Scale. Blocks of
// points are decoded from arbitrary byte offsets by a Reader and stored in
// reusable Blocks allocated from a Pool.
package pointfile
