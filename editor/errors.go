package editor

import (
	"errors"

	"github.com/benoitkugler/svgstyler/catalog"
)

// userInputError is an error reported to the user as a blocking
// notification; the triggering operation changed nothing.
type userInputError struct{ msg string }

func (e *userInputError) Error() string { return e.msg }

func (e *userInputError) Is(target error) bool { return target == catalog.ErrUserInput }

var (
	// ErrNoFile is returned when a load is requested without a file.
	ErrNoFile error = &userInputError{"no file chosen"}
	// ErrNoPresetSelected is returned when applying without a selected preset.
	ErrNoPresetSelected error = &userInputError{"please select a valid style"}

	// ErrNoDocument is returned by operations which need a loaded document.
	ErrNoDocument = errors.New("no document loaded")
	// ErrUnknownShape is returned when clicking an index with no listener.
	ErrUnknownShape = errors.New("no such shape")
	// ErrStaleLoad is returned for a load superseded by a newer one,
	// under the last-initiated policy.
	ErrStaleLoad = errors.New("load superseded by a newer one")
	// ErrClosed is returned once the event loop has stopped.
	ErrClosed = errors.New("editor is closed")
)

// IsUserInput reports whether err should be shown to the user
// as a notification rather than treated as a failure.
func IsUserInput(err error) bool {
	return errors.Is(err, catalog.ErrUserInput)
}
