package ring

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/padring/pkg/layout"
)

var (
	// ErrNoArea is returned by Layout when the die size was never declared.
	ErrNoArea = errors.New("ring: die area not declared")
	// ErrInvalidArea rejects a die with a non-positive dimension.
	ErrInvalidArea = errors.New("ring: die area must be positive")
	// ErrInvalidGrid rejects a non-positive placement grid.
	ErrInvalidGrid = errors.New("ring: grid must be positive")
	// ErrInvalidSpace rejects a negative fixed space.
	ErrInvalidSpace = errors.New("ring: space must not be negative")
	// ErrNotLaidOut is returned by Fill before a successful Layout.
	ErrNotLaidOut = errors.New("ring: layout has not run")
)

// UnknownCellError reports a pad, corner or filler naming a cell the
// library does not define.
type UnknownCellError struct {
	Instance string
	Cell     string
}

func (e *UnknownCellError) Error() string {
	if e.Instance == "" {
		return fmt.Sprintf("ring: unknown cell %s", e.Cell)
	}
	return fmt.Sprintf("ring: %s: unknown cell %s", e.Instance, e.Cell)
}

// FillError reports a gap that the filler catalog cannot cover.
type FillError struct {
	Edge      layout.Location
	Position  float64 // running coordinate where the gap starts
	Width     float64
	Remaining float64
	Err       error
}

func (e *FillError) Error() string {
	return fmt.Sprintf("ring: %s edge gap at %g (width %g): %g left uncovered: %v",
		e.Edge, e.Position, e.Width, e.Remaining, e.Err)
}

func (e *FillError) Unwrap() error { return e.Err }
