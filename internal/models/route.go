package models

import "time"

// RouteStatus is the delivery progress of a whole route.
type RouteStatus string

const (
	RouteStatusPending    RouteStatus = "pending"
	RouteStatusInProgress RouteStatus = "in_progress"
	RouteStatusCompleted  RouteStatus = "completed"
)

// Valid reports whether the status is one of the known route states.
func (s RouteStatus) Valid() bool {
	switch s {
	case RouteStatusPending, RouteStatusInProgress, RouteStatusCompleted:
		return true
	default:
		return false
	}
}

// StopStatus is the delivery outcome of a single stop.
type StopStatus string

const (
	StopStatusPending   StopStatus = "pending"
	StopStatusDelivered StopStatus = "delivered"
	StopStatusFailed    StopStatus = "failed"
)

// Route is a delivery route owned by exactly one user.
// Nullable columns stay nil until the start point is set or the route is optimized.
type Route struct {
	ID                   int64       `json:"id"`
	UserID               int64       `json:"user_id"`
	Name                 string      `json:"route_name"`
	StartAddress         string      `json:"start_address"`
	StartLat             *float64    `json:"start_lat"`
	StartLng             *float64    `json:"start_lng"`
	OverviewPolyline     *string     `json:"overview_polyline"`
	TotalDistanceMeters  *float64    `json:"total_distance_meters"`
	TotalDurationSeconds *float64    `json:"total_duration_seconds"`
	Status               RouteStatus `json:"route_status"`
	CreatedAt            time.Time   `json:"created_at"`
	Stops                []Stop      `json:"stops,omitempty"`
}

// Stop is a single delivery address that belongs to one route.
type Stop struct {
	ID             int64      `json:"id"`
	RouteID        int64      `json:"route_id"`
	AddressText    string     `json:"address_text"`
	Latitude       *float64   `json:"lat"`
	Longitude      *float64   `json:"lng"`
	OptimizedOrder *int       `json:"optimized_order"`
	Status         StopStatus `json:"stop_status"`
}
