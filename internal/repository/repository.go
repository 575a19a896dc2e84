package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/UnknownOlympus/waypoint/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrRouteNotFound is returned when a route does not exist or belongs to another user.
var ErrRouteNotFound = errors.New("route not found")

// Querier is the statement surface shared by the pool and an open transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Database is implemented by *pgxpool.Pool and by pgxmock pools in tests.
type Database interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository struct {
	db  Database
	log *slog.Logger
}

// Interface lists the route and stop operations used by the services.
type Interface interface {
	IsRouteOwner(ctx context.Context, routeID, userID int64) (bool, error)
	GetRoute(ctx context.Context, routeID, userID int64) (*models.Route, error)
	ListStops(ctx context.Context, routeID int64) ([]models.Stop, error)
	ListStopsByOrder(ctx context.Context, routeID int64) ([]models.Stop, error)
	UpdateStartPoint(ctx context.Context, routeID int64, address string, coords *models.Coordinates) error
	UpdateRouteStatus(ctx context.Context, routeID int64, status models.RouteStatus) error
	WithinTx(ctx context.Context, fn func(tx RouteTx) error) error

	FetchStopsForGeocoding(ctx context.Context, limit int) ([]models.StopTask, error)
	UpdateStopCoordinates(ctx context.Context, stopID int64, coords models.Coordinates) error
	IncrementFailureCount(ctx context.Context, stopID int64, errMsg string) error
}

// RouteTx is the set of statements the persistence step issues inside one transaction.
// Implementations are not safe for concurrent use; statements run one after another.
type RouteTx interface {
	LockRoute(ctx context.Context, routeID, userID int64) (*models.Route, error)
	ListStops(ctx context.Context, routeID int64) ([]models.Stop, error)
	UpdateRouteTrip(ctx context.Context, routeID int64, trip models.Trip, start models.Coordinates) error
	UpdateStopPlacement(ctx context.Context, routeID int64, placement models.StopPlacement) error
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
