package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the only error kind raised by the calculators. Callers match it
// with errors.Is; the wrapped message names the violated constraint.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputf wraps ErrInvalidInput with a formatted constraint description
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
