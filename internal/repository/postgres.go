package repository

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/UnknownOlympus/waypoint/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	isRouteOwnerQuery = `SELECT EXISTS (SELECT 1 FROM routes WHERE id = $1 AND user_id = $2);`

	getRouteQuery = `
		SELECT id, user_id, route_name, COALESCE(start_address, ''), start_lat, start_lng,
			overview_polyline, total_distance_meters, total_duration_seconds, route_status, created_at
		FROM routes
		WHERE id = $1 AND user_id = $2;
	`

	listStopsQuery = `
		SELECT id, route_id, address_text, lat, lng, optimized_order, stop_status
		FROM stops
		WHERE route_id = $1
		ORDER BY id ASC;
	`

	listStopsByOrderQuery = `
		SELECT id, route_id, address_text, lat, lng, optimized_order, stop_status
		FROM stops
		WHERE route_id = $1
		ORDER BY optimized_order ASC NULLS LAST, id ASC;
	`

	updateStartPointQuery = `UPDATE routes SET start_address = $1, start_lat = $2, start_lng = $3 WHERE id = $4;`

	updateRouteStatusQuery = `UPDATE routes SET route_status = $1 WHERE id = $2;`
)

// NewDatabase opens a pgx connection pool and verifies it with a ping.
// The pool is owned by the caller and must be closed on shutdown.
func NewDatabase(ctx context.Context, host, port, user, password, name string) (*pgxpool.Pool, error) {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     net.JoinHostPort(host, port),
		Path:     name,
		RawQuery: "sslmode=disable",
	}

	pool, err := pgxpool.New(ctx, dsn.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// IsRouteOwner reports whether the route exists and belongs to the user.
func (r *Repository) IsRouteOwner(ctx context.Context, routeID, userID int64) (bool, error) {
	var owns bool
	if err := r.db.QueryRow(ctx, isRouteOwnerQuery, routeID, userID).Scan(&owns); err != nil {
		return false, fmt.Errorf("failed to check route ownership: %w", err)
	}

	return owns, nil
}

// GetRoute loads the route header owned by the user. Stops are not populated.
func (r *Repository) GetRoute(ctx context.Context, routeID, userID int64) (*models.Route, error) {
	var route models.Route
	err := r.db.QueryRow(ctx, getRouteQuery, routeID, userID).Scan(
		&route.ID,
		&route.UserID,
		&route.Name,
		&route.StartAddress,
		&route.StartLat,
		&route.StartLng,
		&route.OverviewPolyline,
		&route.TotalDistanceMeters,
		&route.TotalDurationSeconds,
		&route.Status,
		&route.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRouteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get route: %w", err)
	}

	return &route, nil
}

// ListStops returns the stops of a route in storage order.
func (r *Repository) ListStops(ctx context.Context, routeID int64) ([]models.Stop, error) {
	return listStops(ctx, r.db, listStopsQuery, routeID)
}

// ListStopsByOrder returns the stops sorted by their optimized visiting rank;
// stops that were never optimized come last.
func (r *Repository) ListStopsByOrder(ctx context.Context, routeID int64) ([]models.Stop, error) {
	return listStops(ctx, r.db, listStopsByOrderQuery, routeID)
}

// UpdateStartPoint stores the start address. Coordinates are optional and cleared when nil.
func (r *Repository) UpdateStartPoint(
	ctx context.Context,
	routeID int64,
	address string,
	coords *models.Coordinates,
) error {
	var lat, lng *float64
	if coords != nil {
		lat, lng = &coords.Latitude, &coords.Longitude
	}

	tag, err := r.db.Exec(ctx, updateStartPointQuery, address, lat, lng, routeID)
	if err != nil {
		return fmt.Errorf("failed to update start point: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRouteNotFound
	}

	return nil
}

// UpdateRouteStatus changes the delivery status of a route.
func (r *Repository) UpdateRouteStatus(ctx context.Context, routeID int64, status models.RouteStatus) error {
	tag, err := r.db.Exec(ctx, updateRouteStatusQuery, string(status), routeID)
	if err != nil {
		return fmt.Errorf("failed to update route status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRouteNotFound
	}

	return nil
}

func listStops(ctx context.Context, q Querier, query string, routeID int64) ([]models.Stop, error) {
	rows, err := q.Query(ctx, query, routeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stops: %w", err)
	}
	defer rows.Close()

	stops := []models.Stop{}
	for rows.Next() {
		var stop models.Stop
		if errScan := rows.Scan(
			&stop.ID,
			&stop.RouteID,
			&stop.AddressText,
			&stop.Latitude,
			&stop.Longitude,
			&stop.OptimizedOrder,
			&stop.Status,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan stop: %w", errScan)
		}
		stops = append(stops, stop)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return stops, nil
}
