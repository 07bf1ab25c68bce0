package compare

import (
	"errors"
	"fmt"
)

// ErrInvalidComparisonInput is matched by every InvalidInputError.
var ErrInvalidComparisonInput = errors.New("invalid comparison input")

// InvalidInputError reports a comparison requested with a candidate count other than two.
type InvalidInputError struct {
	Count int
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: select exactly 2 candidates to compare, got %d", ErrInvalidComparisonInput, e.Count)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidComparisonInput
}
