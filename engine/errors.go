package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig matches every configuration error; no computation is performed after it.
var ErrInvalidConfig = errors.New("invalid configuration")

// BlockBudgetError indicates that two blocks of BlockSize points exceed the memory budget.
type BlockBudgetError struct {
	BlockSize int
	Need      int64
	Budget    int64
}

func (e *BlockBudgetError) Error() string {
	return fmt.Sprintf("block size %d needs %d bytes for two blocks, budget is %d", e.BlockSize, e.Need, e.Budget)
}

// Is makes BlockBudgetError match ErrInvalidConfig.
func (e *BlockBudgetError) Is(target error) bool { return target == ErrInvalidConfig }

// TooManyPointsError indicates a point count beyond the representable range.
type TooManyPointsError struct {
	Points uint64
	Max    uint64
}

func (e *TooManyPointsError) Error() string {
	return fmt.Sprintf("too many points: %d exceeds %d", e.Points, e.Max)
}

// Is makes TooManyPointsError match ErrInvalidConfig.
func (e *TooManyPointsError) Is(target error) bool { return target == ErrInvalidConfig }
