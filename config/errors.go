package config

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrMissingField is matched by every MissingFieldError.
var ErrMissingField = errors.New("missing required field")

// MissingFieldError is returned when a required field is absent or null.
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: required field not found", e.Path)
}

// Is reports whether target is ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// FieldTypeError is returned when a field holds a value of the wrong shape.
type FieldTypeError struct {
	Path string
	Want string
	Got  string
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Path, e.Want, e.Got)
}
