package service

import (
	"errors"
	"fmt"

	"github.com/UnknownOlympus/waypoint/internal/geocoding"
)

var (
	// ErrForbidden is returned when the route does not belong to the requesting user.
	ErrForbidden = errors.New("route is not owned by the user")
	// ErrNotFound is returned by read operations for missing or foreign routes.
	ErrNotFound = errors.New("route not found")
	// ErrPrecondition matches every PreconditionError.
	ErrPrecondition = errors.New("route precondition failed")
	// ErrRouteChanged is returned when the route was modified while it was being optimized.
	ErrRouteChanged = errors.New("route changed during optimization")
	// ErrInvalidStatus is returned for unknown route status values.
	ErrInvalidStatus = errors.New("invalid route status")
)

// PreconditionError describes input the user has to fix before retrying.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return "precondition failed: " + e.Reason
}

// Is makes every PreconditionError match ErrPrecondition.
func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}

func preconditionf(format string, args ...any) error {
	return &PreconditionError{Reason: fmt.Sprintf(format, args...)}
}

// GeocodeError carries the address whose lookup aborted an optimization attempt.
type GeocodeError struct {
	Address string
	Err     error
}

func (e *GeocodeError) Error() string {
	return fmt.Sprintf("failed to geocode %q: %v", e.Address, e.Err)
}

func (e *GeocodeError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the provider had no match, as opposed to failing.
func (e *GeocodeError) NotFound() bool {
	return errors.Is(e.Err, geocoding.ErrNotFound) || errors.Is(e.Err, geocoding.ErrEmptyAddress)
}
