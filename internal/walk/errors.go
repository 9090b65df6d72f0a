package walk

import (
	"errors"
	"fmt"
)

// Input validation errors.
var (
	// ErrInvalidStepCount indicates a step count that is not a non-negative integer.
	ErrInvalidStepCount = errors.New("walk: invalid step count")

	// ErrInvalidStepLength indicates a negative or non-finite maximum step length.
	ErrInvalidStepLength = errors.New("walk: invalid maximum step length")
)

// ParamError wraps a validation error with the offending input.
type ParamError struct {
	Field string
	Value string
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%v: %s=%q", e.Err, e.Field, e.Value)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}
