package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/UnknownOlympus/waypoint/internal/geocoding"
	"github.com/UnknownOlympus/waypoint/internal/metrics"
	"github.com/UnknownOlympus/waypoint/internal/models"
	"github.com/UnknownOlympus/waypoint/internal/optimization"
	"github.com/UnknownOlympus/waypoint/internal/repository"
)

// RouteService provides the route operations exposed over HTTP, including the
// optimization pipeline.
type RouteService struct {
	log             *slog.Logger           // Logger for logging service activities
	repo            repository.Interface   // Route and stop storage
	geocoder        geocoding.Provider     // Resolves addresses to coordinates
	suggester       geocoding.Suggester    // Optional autocomplete, nil when unsupported
	optimizer       optimization.Optimizer // External trip optimization
	metrics         *metrics.Metrics       // Metrics for tracking service performance
	geocodeWorkers  int                    // Concurrent lookups per optimization attempt
	optimizeTimeout time.Duration          // Upper bound of one optimization attempt
}

// NewRouteService creates a new RouteService. The geocoder is also used for place
// suggestions when it implements geocoding.Suggester.
func NewRouteService(
	log *slog.Logger,
	repo repository.Interface,
	geocoder geocoding.Provider,
	optimizer optimization.Optimizer,
	metrics *metrics.Metrics,
	geocodeWorkers int,
	optimizeTimeout time.Duration,
) *RouteService {
	if geocodeWorkers <= 0 {
		geocodeWorkers = 1
	}

	suggester, _ := geocoder.(geocoding.Suggester)

	return &RouteService{
		log:             log,
		repo:            repo,
		geocoder:        geocoder,
		suggester:       suggester,
		optimizer:       optimizer,
		metrics:         metrics,
		geocodeWorkers:  geocodeWorkers,
		optimizeTimeout: optimizeTimeout,
	}
}

// ensureOwner is the ownership guard; it runs before anything that costs money.
func (rs *RouteService) ensureOwner(ctx context.Context, routeID, userID int64) error {
	owns, err := rs.repo.IsRouteOwner(ctx, routeID, userID)
	if err != nil {
		return err
	}
	if !owns {
		return ErrForbidden
	}

	return nil
}

// SetStartPoint stores the start address of a route. Coordinates are optional.
func (rs *RouteService) SetStartPoint(
	ctx context.Context,
	routeID, userID int64,
	address string,
	coords *models.Coordinates,
) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return preconditionf("addressText is required")
	}

	if err := rs.ensureOwner(ctx, routeID, userID); err != nil {
		return err
	}

	if err := rs.repo.UpdateStartPoint(ctx, routeID, address, coords); err != nil {
		if errors.Is(err, repository.ErrRouteNotFound) {
			return ErrForbidden
		}
		return err
	}

	rs.log.InfoContext(ctx, "Start point updated", "route", routeID, "user", userID)

	return nil
}

// GetRoute returns the route with its stops sorted by optimized rank.
func (rs *RouteService) GetRoute(ctx context.Context, routeID, userID int64) (*models.Route, error) {
	route, err := rs.repo.GetRoute(ctx, routeID, userID)
	if errors.Is(err, repository.ErrRouteNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	stops, err := rs.repo.ListStopsByOrder(ctx, routeID)
	if err != nil {
		return nil, err
	}
	route.Stops = stops

	return route, nil
}

// UpdateStatus changes the delivery status of an owned route.
func (rs *RouteService) UpdateStatus(ctx context.Context, routeID, userID int64, status models.RouteStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	if err := rs.ensureOwner(ctx, routeID, userID); err != nil {
		return err
	}

	if err := rs.repo.UpdateRouteStatus(ctx, routeID, status); err != nil {
		if errors.Is(err, repository.ErrRouteNotFound) {
			return ErrForbidden
		}
		return err
	}

	return nil
}

// SearchPlaces returns autocomplete suggestions from the geocoder.
func (rs *RouteService) SearchPlaces(
	ctx context.Context,
	query string,
	proximity *models.Coordinates,
) ([]models.PlaceSuggestion, error) {
	if strings.TrimSpace(query) == "" {
		return nil, preconditionf("search query is required")
	}
	if rs.suggester == nil {
		return nil, geocoding.ErrSuggestUnsupported
	}

	start := time.Now()
	suggestions, err := rs.suggester.Suggest(ctx, query, proximity)
	rs.metrics.RequestSeconds.WithLabelValues("suggest").Observe(time.Since(start).Seconds())
	if err != nil {
		rs.metrics.APIErrors.WithLabelValues("suggest").Inc()
		return nil, fmt.Errorf("failed to search places: %w", err)
	}

	return suggestions, nil
}
