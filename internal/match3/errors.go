package match3

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is matched by *OutOfBoundsError.
	ErrOutOfBounds = errors.New("match3: position out of bounds")

	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("match3: invalid config")

	// ErrNotReady is returned when the session state forbids the operation.
	ErrNotReady = errors.New("match3: session not ready")
)

// OutOfBoundsError is the panic value for board access outside the grid.
// Correct callers never trigger it.
type OutOfBoundsError struct {
	Pos  Pos
	Rows int
	Cols int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("match3: position %s out of bounds for %dx%d board", e.Pos, e.Rows, e.Cols)
}

// Is makes errors.Is(err, ErrOutOfBounds) true.
func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
