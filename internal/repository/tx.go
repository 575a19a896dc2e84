package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/waypoint/internal/models"
	"github.com/jackc/pgx/v5"
)

// ErrStopNotUpdated is returned when a stop placement does not match exactly one stop row of the route.
var ErrStopNotUpdated = errors.New("stop placement did not update exactly one row")

const (
	advisoryLockQuery = `SELECT pg_advisory_xact_lock($1);`

	lockRouteQuery = `
		SELECT id, user_id, COALESCE(start_address, ''), route_status
		FROM routes
		WHERE id = $1 AND user_id = $2
		FOR UPDATE;
	`

	updateRouteTripQuery = `
		UPDATE routes
		SET
			overview_polyline = $1,
			total_distance_meters = $2,
			total_duration_seconds = $3,
			start_lat = $4,
			start_lng = $5
		WHERE id = $6;
	`

	updateStopPlacementQuery = `
		UPDATE stops
		SET
			optimized_order = $1,
			lat = $2,
			lng = $3
		WHERE id = $4 AND route_id = $5;
	`
)

// WithinTx runs fn inside one database transaction. The transaction commits only when fn
// returns nil and ctx is still alive; any error, panic or cancellation rolls it back.
func (r *Repository) WithinTx(ctx context.Context, fn func(tx RouteTx) error) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		// Rollback must reach the server even when ctx is already cancelled.
		if errRollback := tx.Rollback(context.WithoutCancel(ctx)); errRollback != nil &&
			!errors.Is(errRollback, pgx.ErrTxClosed) {
			r.log.ErrorContext(ctx, "Failed to roll back transaction", "error", errRollback)
		}
	}()

	if err = fn(&txRepository{tx: tx, log: r.log}); err != nil {
		return err
	}

	if err = ctx.Err(); err != nil {
		return fmt.Errorf("transaction abandoned before commit: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true

	return nil
}

type txRepository struct {
	tx  pgx.Tx
	log *slog.Logger
}

// LockRoute serializes optimization attempts on the route and re-reads it under a row lock.
func (t *txRepository) LockRoute(ctx context.Context, routeID, userID int64) (*models.Route, error) {
	if _, err := t.tx.Exec(ctx, advisoryLockQuery, routeID); err != nil {
		return nil, fmt.Errorf("failed to acquire route lock: %w", err)
	}

	var route models.Route
	err := t.tx.QueryRow(ctx, lockRouteQuery, routeID, userID).Scan(
		&route.ID, &route.UserID, &route.StartAddress, &route.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRouteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock route: %w", err)
	}

	t.log.DebugContext(ctx, "Route locked for update", "route", routeID)

	return &route, nil
}

// ListStops returns the stops of a route in storage order as seen by the transaction.
func (t *txRepository) ListStops(ctx context.Context, routeID int64) ([]models.Stop, error) {
	return listStops(ctx, t.tx, listStopsQuery, routeID)
}

// UpdateRouteTrip writes the aggregate trip metrics and the resolved start coordinates.
func (t *txRepository) UpdateRouteTrip(
	ctx context.Context,
	routeID int64,
	trip models.Trip,
	start models.Coordinates,
) error {
	_, err := t.tx.Exec(ctx, updateRouteTripQuery,
		trip.Geometry, trip.DistanceMeters, trip.DurationSeconds, start.Latitude, start.Longitude, routeID,
	)
	if err != nil {
		return fmt.Errorf("failed to update route trip: %w", err)
	}

	return nil
}

// UpdateStopPlacement writes the rank and coordinates of one stop of the route.
func (t *txRepository) UpdateStopPlacement(
	ctx context.Context,
	routeID int64,
	placement models.StopPlacement,
) error {
	tag, err := t.tx.Exec(ctx, updateStopPlacementQuery,
		placement.Order,
		placement.Coordinates.Latitude,
		placement.Coordinates.Longitude,
		placement.StopID,
		routeID,
	)
	if err != nil {
		return fmt.Errorf("failed to update stop %d: %w", placement.StopID, err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("%w: stop %d", ErrStopNotUpdated, placement.StopID)
	}

	return nil
}
