package helper

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidReview    = errors.New("review rating must be between 1 and 5")
	ErrInvalidImageKind = errors.New("image kind must be avatar or banner")
)

// UnknownFieldError is returned when an update names a field helpers do not have
// or one that is maintained by the directory itself.
type UnknownFieldError struct {
	Field string
}

func (e UnknownFieldError) Error() string {
	return fmt.Sprintf("field %q cannot be updated", e.Field)
}
