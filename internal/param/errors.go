package param

import (
	"errors"
	"fmt"
)

var (
	// ErrParse marks input that is not a finite number (or a known option).
	ErrParse = errors.New("not a valid number")

	// ErrOutOfRange marks a parsed value outside the declared range.
	ErrOutOfRange = errors.New("out of range")

	ErrUnknownParam = errors.New("unknown parameter")
)

// InputError is the user-visible rejection of one raw value.
type InputError struct {
	Spec Spec
	Raw  string
	Err  error
}

func (e *InputError) Error() string {
	switch {
	case errors.Is(e.Err, ErrOutOfRange):
		return fmt.Sprintf("%s must be %s", e.Spec.name(), e.Spec.Range())
	case e.Spec.IsChoice():
		return fmt.Sprintf("%s: %q is not %s", e.Spec.name(), e.Raw, e.Spec.Range())
	default:
		return fmt.Sprintf("%s: %q is %v", e.Spec.name(), e.Raw, e.Err)
	}
}

func (e *InputError) Unwrap() error { return e.Err }
