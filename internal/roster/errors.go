package roster

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("invalid player input")
	// ErrPersist wraps backend write failures. The mutation that triggered
	// the write has been rolled back when it is returned.
	ErrPersist = errors.New("persist roster")
)

// ValidationError reports user-correctable input on create/update.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is lets callers match with errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
