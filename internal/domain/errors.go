package domain

import (
	"errors"
	"fmt"
)

// Domain errors surfaced by the projection and simulation engine.
var (
	// ErrInvalidSchedule indicates phase ages that are not strictly increasing
	// or that do not line up with the per-phase settings.
	ErrInvalidSchedule = errors.New("portfolio: invalid phase schedule")

	// ErrInvalidParameter indicates a value outside its valid range.
	ErrInvalidParameter = errors.New("portfolio: invalid parameter")

	// ErrNoValidRoot indicates the annualized-return polynomial has no real root.
	ErrNoValidRoot = errors.New("portfolio: no valid root found")
)

// InvalidScheduleError describes a rejected age schedule.
type InvalidScheduleError struct {
	Ages   []int
	Reason string
}

func (e *InvalidScheduleError) Error() string {
	return fmt.Sprintf("%s: %s (ages %v)", ErrInvalidSchedule, e.Reason, e.Ages)
}

func (e *InvalidScheduleError) Unwrap() error {
	return ErrInvalidSchedule
}

// InvalidParameterError describes a single rejected input field.
type InvalidParameterError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: %s = %v: %s", ErrInvalidParameter, e.Field, e.Value, e.Reason)
}

func (e *InvalidParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// NoValidRootError is returned when every root of a cash-flow polynomial has
// an imaginary part above tolerance.
type NoValidRootError struct {
	Degree int
	Roots  []complex128
}

func (e *NoValidRootError) Error() string {
	return fmt.Sprintf("%s (degree %d, %d complex roots)", ErrNoValidRoot, e.Degree, len(e.Roots))
}

func (e *NoValidRootError) Unwrap() error {
	return ErrNoValidRoot
}

func invalidParameter(field string, value any, reason string) error {
	return &InvalidParameterError{Field: field, Value: value, Reason: reason}
}
