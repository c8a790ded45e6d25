package catalog

import (
	"errors"
	"fmt"
)

// ErrUserInput is matched by every error caused by a bad user entry.
// Such errors abort the operation without changing any state.
var ErrUserInput = errors.New("invalid user input")

// InvalidNameError is returned when saving under an empty name.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid preset name %q", e.Name)
}

func (e *InvalidNameError) Is(target error) bool { return target == ErrUserInput }

// DuplicateNameError is returned when saving under a name already in use.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("preset %q already exists", e.Name)
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrUserInput }

// NotFoundError is returned when applying an unknown preset.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no preset named %q", e.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrUserInput }
