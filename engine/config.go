package engine

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/ic-timon/pairdist/pointfile"
)

const (
	// MaxPoints is the largest point count a run accepts.
	MaxPoints = 1 << 32

	defaultBlockSize        = 10000
	defaultMemoryBudget     = 8 << 20
	defaultRowChunk         = 16
	defaultProgressInterval = time.Second
)

// Config holds run parameters. Zero fields take their defaults in OrDefault.
type Config struct {
	Workers          int           // kernel worker goroutines, default runtime.NumCPU()
	BlockSize        int           // points per block, default 10000
	MemoryBudget     int64         // bytes allowed for the two point blocks, default 8 MiB
	RowChunk         int           // rows of block A handed to a worker at a time, default 16
	UseOffheap       bool          // use C.malloc for blocks (requires CGO)
	ProgressInterval time.Duration // minimum time between progress log lines, default 1s
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Workers:          runtime.NumCPU(),
		BlockSize:        defaultBlockSize,
		MemoryBudget:     defaultMemoryBudget,
		RowChunk:         defaultRowChunk,
		ProgressInterval: defaultProgressInterval,
	}
}

// OrDefault returns DefaultConfig if c is nil, otherwise fills zero fields of c.
// Negative values are left for Validate to reject.
func (c *Config) OrDefault() *Config {
	if c == nil {
		return DefaultConfig()
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.BlockSize == 0 {
		c.BlockSize = defaultBlockSize
	}
	if c.MemoryBudget == 0 {
		c.MemoryBudget = defaultMemoryBudget
	}
	if c.RowChunk <= 0 {
		c.RowChunk = defaultRowChunk
	}
	if c.ProgressInterval <= 0 {
		c.ProgressInterval = defaultProgressInterval
	}
	return c
}

// BlockBytes returns the memory held by the two point blocks, saturating at math.MaxInt64.
func (c *Config) BlockBytes() int64 {
	if int64(c.BlockSize) > math.MaxInt64/(2*pointfile.PointSize) {
		return math.MaxInt64
	}
	return 2 * int64(c.BlockSize) * pointfile.PointSize
}

// Validate reports configuration errors. All returned errors match ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	if err := CheckBlockSize(c.BlockSize); err != nil {
		return err
	}
	if c.MemoryBudget <= 0 {
		return fmt.Errorf("%w: memory budget must be positive, got %d", ErrInvalidConfig, c.MemoryBudget)
	}
	if need := c.BlockBytes(); need > c.MemoryBudget {
		return &BlockBudgetError{BlockSize: c.BlockSize, Need: need, Budget: c.MemoryBudget}
	}
	return nil
}

// CheckBlockSize rejects block capacities below one point. Callers that take a
// block size from the user use it before OrDefault, which treats 0 as unset.
func CheckBlockSize(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: block size must be positive, got %d", ErrInvalidConfig, n)
	}
	return nil
}

// CheckPoints rejects point counts beyond MaxPoints.
func CheckPoints(n uint64) error {
	if n > MaxPoints {
		return &TooManyPointsError{Points: n, Max: MaxPoints}
	}
	return nil
}
