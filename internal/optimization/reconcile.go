package optimization

import (
	"fmt"

	"github.com/UnknownOlympus/waypoint/internal/models"
)

// Reconcile attaches the visiting rank of every non-sentinel waypoint to the stop that was
// submitted at the same input position. stops and coords must be in the order used to build
// the sequence. Ranks are returned as reported by the service, so with the start fixed at
// rank 0 the stops receive 1..N.
func Reconcile(
	stops []models.Stop,
	coords []models.Coordinates,
	waypoints []models.Waypoint,
) ([]models.StopPlacement, error) {
	stopCount := len(stops)
	if len(coords) != stopCount {
		return nil, fmt.Errorf("%w: %d stops but %d coordinates", ErrReconciliation, stopCount, len(coords))
	}
	if len(waypoints) != stopCount+2 {
		return nil, fmt.Errorf(
			"%w: expected %d waypoints, got %d", ErrReconciliation, stopCount+2, len(waypoints),
		)
	}

	lastIndex := stopCount + 1
	placements := make([]models.StopPlacement, stopCount)
	assigned := make([]bool, stopCount)
	ranks := make(map[int]int, stopCount)

	for _, wp := range waypoints {
		if wp.InputIndex == 0 || wp.InputIndex == lastIndex {
			continue
		}
		if wp.InputIndex < 0 || wp.InputIndex > lastIndex {
			return nil, fmt.Errorf("%w: waypoint input index %d out of range", ErrReconciliation, wp.InputIndex)
		}

		pos := wp.InputIndex - 1
		if assigned[pos] {
			return nil, fmt.Errorf("%w: input index %d reported twice", ErrReconciliation, wp.InputIndex)
		}
		if wp.VisitOrder < 1 || wp.VisitOrder > stopCount {
			return nil, fmt.Errorf(
				"%w: visit order %d for input index %d outside 1..%d",
				ErrReconciliation, wp.VisitOrder, wp.InputIndex, stopCount,
			)
		}
		if other, dup := ranks[wp.VisitOrder]; dup {
			return nil, fmt.Errorf(
				"%w: visit order %d assigned to input indexes %d and %d",
				ErrReconciliation, wp.VisitOrder, other, wp.InputIndex,
			)
		}

		ranks[wp.VisitOrder] = wp.InputIndex
		assigned[pos] = true
		placements[pos] = models.StopPlacement{
			StopID:      stops[pos].ID,
			Order:       wp.VisitOrder,
			Coordinates: coords[pos],
		}
	}

	for pos, ok := range assigned {
		if !ok {
			return nil, fmt.Errorf("%w: stop %d has no waypoint", ErrReconciliation, stops[pos].ID)
		}
	}

	return placements, nil
}
