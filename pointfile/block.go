package pointfile

// Block is the block interface, supporting both heap and off-heap implementations.
// Points are kept as three int16 columns so the distance kernel can stream them.
type Block interface {
	// Cap returns the maximum number of points the block can hold.
	Cap() int
	// Len returns the number of points currently loaded.
	Len() int
	// SetLen sets the number of loaded points, clamped to [0, Cap()].
	SetLen(n int)
	// Columns returns the loaded x, y and z columns, each of length Len().
	Columns() (xs, ys, zs []int16)
	// Set writes p at slot i (0-based). Out-of-range slots are ignored.
	Set(i int, p Point)
	// At returns the point at slot i.
	At(i int) Point
	// Close releases resources; no-op for heap blocks, C.free for off-heap.
	Close()
}

// columns is the shared column bookkeeping for every Block implementation.
type columns struct {
	xs, ys, zs []int16
	n          int
}

func (c *columns) Cap() int { return len(c.xs) }

func (c *columns) Len() int { return c.n }

func (c *columns) SetLen(n int) {
	c.n = min(max(n, 0), len(c.xs))
}

func (c *columns) Columns() (xs, ys, zs []int16) {
	return c.xs[:c.n], c.ys[:c.n], c.zs[:c.n]
}

func (c *columns) Set(i int, p Point) {
	if i < 0 || i >= len(c.xs) {
		return
	}
	c.xs[i], c.ys[i], c.zs[i] = p.X, p.Y, p.Z
}

func (c *columns) At(i int) Point {
	return Point{X: c.xs[i], Y: c.ys[i], Z: c.zs[i]}
}

// DataBlock stores points in heap memory.
type DataBlock struct {
	columns
}

// NewDataBlock creates a heap block able to hold capacity points.
func NewDataBlock(capacity int) *DataBlock {
	if capacity < 0 {
		capacity = 0
	}
	data := make([]int16, 3*capacity)
	return &DataBlock{columns{
		xs: data[:capacity:capacity],
		ys: data[capacity : 2*capacity : 2*capacity],
		zs: data[2*capacity:],
	}}
}

// Close is a no-op for heap blocks.
func (b *DataBlock) Close() {}

// PointSize is the in-memory size of one point in bytes.
const PointSize = 6
