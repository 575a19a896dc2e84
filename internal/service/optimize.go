package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/UnknownOlympus/waypoint/internal/geocoding"
	"github.com/UnknownOlympus/waypoint/internal/models"
	"github.com/UnknownOlympus/waypoint/internal/optimization"
	"github.com/UnknownOlympus/waypoint/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Stage is the last state an optimization attempt reached.
type Stage string

const (
	StageStarted               Stage = "started"
	StageOwnershipVerified     Stage = "ownership_verified"
	StageGeocoded              Stage = "geocoded"
	StageOptimizationRequested Stage = "optimization_requested"
	StageReconciled            Stage = "reconciled"
	StageCommitted             Stage = "committed"
)

// attempt tracks one run of the pipeline for logging and metrics.
type attempt struct {
	id    string
	stage Stage
	log   *slog.Logger
}

func (a *attempt) advance(ctx context.Context, next Stage) {
	a.stage = next
	a.log.DebugContext(ctx, "Optimization stage reached", "stage", next)
}

// Optimize runs the whole pipeline for one route: ownership guard, geocoding of the start
// point and every stop, trip optimization, reconciliation and a single transactional write.
// Nothing is written unless every step succeeds.
func (rs *RouteService) Optimize(ctx context.Context, routeID, userID int64) (*models.OptimizationSummary, error) {
	run := &attempt{id: uuid.NewString(), stage: StageStarted}
	run.log = rs.log.With("attempt", run.id, "route", routeID, "user", userID)

	rs.metrics.OptimizationsRunning.Inc()
	defer rs.metrics.OptimizationsRunning.Dec()

	if rs.optimizeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rs.optimizeTimeout)
		defer cancel()
	}

	summary, err := rs.optimize(ctx, run, routeID, userID)
	if err != nil {
		rs.metrics.OptimizationAttempts.WithLabelValues("aborted", string(run.stage)).Inc()
		if errors.Is(err, optimization.ErrReconciliation) {
			run.log.ErrorContext(ctx, "Optimization aborted: waypoint reconciliation invariant violated",
				"stage", run.stage, "error", err)
		} else {
			run.log.WarnContext(ctx, "Optimization aborted", "stage", run.stage, "error", err)
		}
		return nil, err
	}

	rs.metrics.OptimizationAttempts.WithLabelValues("committed", string(run.stage)).Inc()
	run.log.InfoContext(ctx, "Route optimized",
		"distance_km", summary.TotalDistanceKm, "duration_min", summary.TotalDurationMin)

	return summary, nil
}

func (rs *RouteService) optimize(
	ctx context.Context,
	run *attempt,
	routeID, userID int64,
) (*models.OptimizationSummary, error) {
	if err := rs.ensureOwner(ctx, routeID, userID); err != nil {
		return nil, err
	}
	run.advance(ctx, StageOwnershipVerified)

	route, stops, err := rs.loadSnapshot(ctx, routeID, userID)
	if err != nil {
		return nil, err
	}

	start, stopCoords, err := rs.geocodeAll(ctx, route.StartAddress, stops)
	if err != nil {
		return nil, err
	}
	run.advance(ctx, StageGeocoded)

	sequence := optimization.BuildSequence(start, stopCoords)
	result, err := rs.requestTrip(ctx, sequence)
	if err != nil {
		return nil, err
	}
	run.advance(ctx, StageOptimizationRequested)

	placements, err := optimization.Reconcile(stops, stopCoords, result.Waypoints)
	if err != nil {
		return nil, err
	}
	run.advance(ctx, StageReconciled)

	err = rs.repo.WithinTx(ctx, func(tx repository.RouteTx) error {
		return rs.persist(ctx, tx, route, stops, start, result.Trip, placements)
	})
	if err != nil {
		return nil, err
	}
	run.advance(ctx, StageCommitted)

	const (
		metersPerKm   = 1000
		secondsPerMin = 60
	)

	return &models.OptimizationSummary{
		RouteID:          routeID,
		TotalDistanceKm:  result.Trip.DistanceMeters / metersPerKm,
		TotalDurationMin: int(math.Round(result.Trip.DurationSeconds / secondsPerMin)),
	}, nil
}

// loadSnapshot reads the route and its stops and checks the optimization preconditions.
func (rs *RouteService) loadSnapshot(
	ctx context.Context,
	routeID, userID int64,
) (*models.Route, []models.Stop, error) {
	route, err := rs.repo.GetRoute(ctx, routeID, userID)
	if errors.Is(err, repository.ErrRouteNotFound) {
		return nil, nil, ErrForbidden
	}
	if err != nil {
		return nil, nil, err
	}

	if strings.TrimSpace(route.StartAddress) == "" {
		return nil, nil, preconditionf("start point is not set")
	}

	stops, err := rs.repo.ListStops(ctx, routeID)
	if err != nil {
		return nil, nil, err
	}
	if len(stops) == 0 {
		return nil, nil, preconditionf("route has no stops")
	}

	if limit := rs.optimizer.MaxCoordinates() - 2; len(stops) > limit {
		return nil, nil, preconditionf("route has %d stops, at most %d can be optimized at once", len(stops), limit)
	}

	return route, stops, nil
}

// geocodeAll resolves the start address and every stop address concurrently.
// The first failure cancels the remaining lookups.
func (rs *RouteService) geocodeAll(
	ctx context.Context,
	startAddress string,
	stops []models.Stop,
) (models.Coordinates, []models.Coordinates, error) {
	addresses := make([]string, 0, len(stops)+1)
	addresses = append(addresses, startAddress)
	for _, stop := range stops {
		addresses = append(addresses, stop.AddressText)
	}

	coords := make([]models.Coordinates, len(addresses))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(rs.geocodeWorkers)

	for i, address := range addresses {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return &GeocodeError{Address: address, Err: fmt.Errorf("%w: %w", geocoding.ErrServiceFailure, err)}
			}
			resolved, err := rs.geocode(groupCtx, address)
			if err != nil {
				return &GeocodeError{Address: address, Err: err}
			}
			coords[i] = *resolved
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return models.Coordinates{}, nil, err
	}

	return coords[0], coords[1:], nil
}

func (rs *RouteService) geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	start := time.Now()
	coords, err := rs.geocoder.Geocode(ctx, address)
	rs.metrics.RequestSeconds.WithLabelValues("geocoder").Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		rs.metrics.GeocodeRequests.WithLabelValues("success").Inc()
	case errors.Is(err, geocoding.ErrNotFound):
		rs.metrics.GeocodeRequests.WithLabelValues("not_found").Inc()
	default:
		rs.metrics.GeocodeRequests.WithLabelValues("failure").Inc()
		rs.metrics.APIErrors.WithLabelValues("geocoder").Inc()
	}

	return coords, err
}

func (rs *RouteService) requestTrip(
	ctx context.Context,
	sequence []models.Coordinates,
) (*models.OptimizationResult, error) {
	start := time.Now()
	result, err := rs.optimizer.Optimize(ctx, sequence)
	rs.metrics.RequestSeconds.WithLabelValues("optimizer").Observe(time.Since(start).Seconds())
	if err != nil {
		rs.metrics.APIErrors.WithLabelValues("optimizer").Inc()
		return nil, fmt.Errorf("failed to optimize trip: %w", err)
	}

	return result, nil
}

// persist re-checks the route under lock and writes the trip and every stop placement.
// Statements run one after another on the single transaction.
func (rs *RouteService) persist(
	ctx context.Context,
	tx repository.RouteTx,
	snapshot *models.Route,
	stops []models.Stop,
	start models.Coordinates,
	trip models.Trip,
	placements []models.StopPlacement,
) error {
	locked, err := tx.LockRoute(ctx, snapshot.ID, snapshot.UserID)
	if errors.Is(err, repository.ErrRouteNotFound) {
		return ErrForbidden
	}
	if err != nil {
		return err
	}

	if strings.TrimSpace(locked.StartAddress) == "" {
		return preconditionf("start point is not set")
	}
	if locked.StartAddress != snapshot.StartAddress {
		return fmt.Errorf("%w: start point was replaced", ErrRouteChanged)
	}

	current, err := tx.ListStops(ctx, snapshot.ID)
	if err != nil {
		return err
	}
	if len(current) == 0 {
		return preconditionf("route has no stops")
	}
	if !sameStops(current, stops) {
		return fmt.Errorf("%w: stop list changed", ErrRouteChanged)
	}

	if err = tx.UpdateRouteTrip(ctx, snapshot.ID, trip, start); err != nil {
		return err
	}

	for _, placement := range placements {
		if err = tx.UpdateStopPlacement(ctx, snapshot.ID, placement); err != nil {
			if errors.Is(err, repository.ErrStopNotUpdated) {
				return fmt.Errorf("%w: %w", optimization.ErrReconciliation, err)
			}
			return err
		}
	}

	return nil
}

// sameStops reports whether both lists hold the same stop ids with the same addresses.
func sameStops(current, snapshot []models.Stop) bool {
	if len(current) != len(snapshot) {
		return false
	}

	addresses := make(map[int64]string, len(snapshot))
	for _, stop := range snapshot {
		addresses[stop.ID] = stop.AddressText
	}

	for _, stop := range current {
		address, ok := addresses[stop.ID]
		if !ok || address != stop.AddressText {
			return false
		}
	}

	return true
}
