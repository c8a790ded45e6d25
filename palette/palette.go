// Package palette holds the active color used for manual recoloring
// and the bank of saved swatches.
package palette

import (
	"fmt"
	"slices"

	"github.com/benoitkugler/svgstyler/catalog"
	"github.com/benoitkugler/svgstyler/svgdoc"
)

// DefaultColor is the initial active color.
const DefaultColor = "#000000"

// InvalidColorError is returned for a value that is not an SVG color.
type InvalidColorError struct {
	Value string
	Err   error
}

func (e *InvalidColorError) Error() string {
	return fmt.Sprintf("invalid color %q: %v", e.Value, e.Err)
}

func (e *InvalidColorError) Unwrap() error { return e.Err }

func (e *InvalidColorError) Is(target error) bool { return target == catalog.ErrUserInput }

// SwatchError is returned when selecting a swatch which does not exist.
type SwatchError struct {
	Index, Len int
}

func (e *SwatchError) Error() string {
	return fmt.Sprintf("no swatch at index %d (bank has %d)", e.Index, e.Len)
}

func (e *SwatchError) Is(target error) bool { return target == catalog.ErrUserInput }

// State is the active color and the color bank.
// The bank is append only and keeps duplicates.
type State struct {
	active string
	bank   []string
}

// New returns a state whose active color is initial,
// or DefaultColor if initial is empty.
func New(initial string) *State {
	if initial == "" {
		initial = DefaultColor
	}
	return &State{active: initial}
}

// Active returns the current color.
func (s *State) Active() string { return s.active }

// SetActive changes the active color, after validating it.
// The state is unchanged on error.
func (s *State) SetActive(color string) error {
	if _, err := svgdoc.ParseColor(color); err != nil {
		return &InvalidColorError{Value: color, Err: err}
	}
	s.active = color
	return nil
}

// AddToBank appends the active color to the bank and returns
// the new swatch index.
func (s *State) AddToBank() int {
	s.bank = append(s.bank, s.active)
	return len(s.bank) - 1
}

// SelectSwatch makes bank entry i the active color.
func (s *State) SelectSwatch(i int) error {
	if i < 0 || i >= len(s.bank) {
		return &SwatchError{Index: i, Len: len(s.bank)}
	}
	s.active = s.bank[i]
	return nil
}

// Bank returns a copy of the saved swatches, oldest first.
func (s *State) Bank() []string { return slices.Clone(s.bank) }
