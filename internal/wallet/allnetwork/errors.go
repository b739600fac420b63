package allnetwork

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidParams = errors.New("invalid discovery params")
)

// ValidationError names the identifier a discovery mode requires but did not get.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s is required", ErrInvalidParams.Error(), e.Field)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidParams
}

func required(field string) error {
	return errors.WithStack(&ValidationError{Field: field})
}
