// Package api exposes the route operations over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/waypoint/internal/geocoding"
	"github.com/UnknownOlympus/waypoint/internal/metrics"
	"github.com/UnknownOlympus/waypoint/internal/models"
	"github.com/UnknownOlympus/waypoint/internal/optimization"
	"github.com/UnknownOlympus/waypoint/internal/service"
	"github.com/gin-gonic/gin"
)

// RouteService is implemented by *service.RouteService.
type RouteService interface {
	SetStartPoint(ctx context.Context, routeID, userID int64, address string, coords *models.Coordinates) error
	Optimize(ctx context.Context, routeID, userID int64) (*models.OptimizationSummary, error)
	GetRoute(ctx context.Context, routeID, userID int64) (*models.Route, error)
	UpdateStatus(ctx context.Context, routeID, userID int64, status models.RouteStatus) error
	SearchPlaces(ctx context.Context, query string, proximity *models.Coordinates) ([]models.PlaceSuggestion, error)
}

type Handler struct {
	log    *slog.Logger
	routes RouteService
}

type startPointRequest struct {
	AddressText string   `json:"addressText"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
}

type statusRequest struct {
	Status models.RouteStatus `json:"status"`
}

// NewRouter builds the gin engine serving /api/routes behind bearer authentication.
func NewRouter(log *slog.Logger, routes RouteService, jwtSecret []byte, m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log), Instrument(m))

	h := &Handler{log: log, routes: routes}

	api := router.Group("/api/routes", Authenticate(jwtSecret, log))
	api.GET("/search", h.searchPlaces)
	api.GET("/:routeId", h.getRoute)
	api.PUT("/:routeId/start-point", h.setStartPoint)
	api.POST("/:routeId/optimize", h.optimize)
	api.PATCH("/:routeId/status", h.updateStatus)

	return router
}

func (h *Handler) setStartPoint(c *gin.Context) {
	routeID, userID, ok := h.identify(c)
	if !ok {
		return
	}

	var req startPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var coords *models.Coordinates
	if req.Lat != nil && req.Lng != nil {
		coords = &models.Coordinates{Latitude: *req.Lat, Longitude: *req.Lng}
	}

	if err := h.routes.SetStartPoint(c.Request.Context(), routeID, userID, req.AddressText, coords); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Start point updated",
		"routeId":      routeID,
		"startAddress": req.AddressText,
	})
}

func (h *Handler) optimize(c *gin.Context) {
	routeID, userID, ok := h.identify(c)
	if !ok {
		return
	}

	summary, err := h.routes.Optimize(c.Request.Context(), routeID, userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) getRoute(c *gin.Context) {
	routeID, userID, ok := h.identify(c)
	if !ok {
		return
	}

	route, err := h.routes.GetRoute(c.Request.Context(), routeID, userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, route)
}

func (h *Handler) updateStatus(c *gin.Context) {
	routeID, userID, ok := h.identify(c)
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.routes.UpdateStatus(c.Request.Context(), routeID, userID, req.Status); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Route status updated", "newStatus": req.Status})
}

func (h *Handler) searchPlaces(c *gin.Context) {
	var proximity *models.Coordinates

	if rawLat, rawLng := c.Query("userLat"), c.Query("userLng"); rawLat != "" && rawLng != "" {
		lat, errLat := strconv.ParseFloat(rawLat, 64)
		lng, errLng := strconv.ParseFloat(rawLng, 64)
		if errLat != nil || errLng != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userLat and userLng must be numbers"})
			return
		}
		proximity = &models.Coordinates{Latitude: lat, Longitude: lng}
	}

	suggestions, err := h.routes.SearchPlaces(c.Request.Context(), c.Query("q"), proximity)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

// identify extracts the route id path parameter and the authenticated user.
func (h *Handler) identify(c *gin.Context) (int64, int64, bool) {
	routeID, err := strconv.ParseInt(c.Param("routeId"), 10, 64)
	if err != nil || routeID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid route id"})
		return 0, 0, false
	}

	userID, ok := UserID(c)
	if !ok {
		abortUnauthorized(c, "Unauthorized")
		return 0, 0, false
	}

	return routeID, userID, true
}

// writeError maps service errors onto status codes. Internal causes are logged, never returned.
func (h *Handler) writeError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var (
		precondition *service.PreconditionError
		geocodeErr   *service.GeocodeError
		serviceErr   *optimization.ServiceError
	)

	switch {
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	case errors.As(err, &precondition):
		c.JSON(http.StatusBadRequest, gin.H{"error": precondition.Reason})
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid route status"})
	case errors.Is(err, service.ErrRouteChanged):
		c.JSON(http.StatusConflict, gin.H{"error": "route changed during optimization, please retry"})
	case errors.Is(err, geocoding.ErrSuggestUnsupported):
		c.JSON(http.StatusNotImplemented, gin.H{"error": "place search is not available"})
	case errors.As(err, &geocodeErr):
		h.log.WarnContext(ctx, "Geocoding failed", "address", geocodeErr.Address, "error", err)
		details := fmt.Sprintf("geocoding service failed for address %q", geocodeErr.Address)
		if geocodeErr.NotFound() {
			details = fmt.Sprintf("address %q could not be found", geocodeErr.Address)
		}
		internalError(c, details)
	case errors.Is(err, optimization.ErrReconciliation):
		h.log.ErrorContext(ctx, "Optimization result could not be applied", "error", err)
		internalError(c, "optimization result could not be applied")
	case errors.As(err, &serviceErr):
		h.log.WarnContext(ctx, "Optimization service rejected the request", "error", err)
		details := "optimization service returned " + serviceErr.Code
		if message := strings.TrimSpace(serviceErr.Message); message != "" {
			details += ": " + message
		}
		internalError(c, details)
	case errors.Is(err, optimization.ErrServiceFailure):
		h.log.WarnContext(ctx, "Optimization service failed", "error", err)
		internalError(c, "optimization service is unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		h.log.WarnContext(ctx, "Request timed out", "error", err)
		internalError(c, "request timed out")
	default:
		h.log.ErrorContext(ctx, "Request failed", "error", err)
		internalError(c, "")
	}
}

func internalError(c *gin.Context, details string) {
	body := gin.H{"error": "internal server error"}
	if details != "" {
		body["details"] = details
	}
	c.JSON(http.StatusInternalServerError, body)
}
