package fit

import (
	"errors"
	"fmt"
)

var (
	ErrNoFittingSize = errors.New("no font size fits the canvas")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// NoFitError is returned when every size in the range was rejected.
type NoFitError struct {
	MinSize int
	MaxSize int
}

func (e *NoFitError) Error() string {
	return fmt.Sprintf("%s: tried sizes %d..%d", ErrNoFittingSize, e.MinSize, e.MaxSize)
}

func (e *NoFitError) Unwrap() error {
	return ErrNoFittingSize
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
