// Package optimization builds trip-optimization requests, calls the external
// optimization service and maps its answer back onto stop records.
package optimization

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/waypoint/internal/models"
)

// Optimizer computes a visiting order for a coordinate sequence whose first and last
// entries are fixed as source and destination.
type Optimizer interface {
	Optimize(ctx context.Context, sequence []models.Coordinates) (*models.OptimizationResult, error)
	// MaxCoordinates is the largest sequence length the service accepts.
	MaxCoordinates() int
}

var (
	// ErrServiceFailure matches every failure of the optimization service call.
	ErrServiceFailure = errors.New("optimization service failure")
	// ErrReconciliation marks an internal invariant violation while mapping waypoints to stops.
	ErrReconciliation = errors.New("waypoint reconciliation failed")
	// ErrSequenceTooShort is returned when fewer than three coordinates are submitted.
	ErrSequenceTooShort = errors.New("coordinate sequence needs a start, at least one stop and an end")
)

// ServiceError is a non-success status reported by the optimization service itself.
type ServiceError struct {
	StatusCode int    // HTTP status of the response
	Code       string // Service status code, e.g. "NoTrips" or "InvalidInput"
	Message    string // Human readable message from the service
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("optimization service returned %s", e.Code)
	}

	return fmt.Sprintf("optimization service returned %s: %s", e.Code, e.Message)
}

// Is makes every ServiceError match ErrServiceFailure.
func (e *ServiceError) Is(target error) bool {
	return target == ErrServiceFailure
}
