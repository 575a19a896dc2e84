package models

// Trip holds the aggregate metrics of the trip chosen by the optimization service.
type Trip struct {
	DistanceMeters  float64 // Total driving distance in meters.
	DurationSeconds float64 // Total driving duration in seconds.
	Geometry        string  // Encoded polyline of the whole trip.
}

// Waypoint links a position of the input coordinate sequence to its visiting rank.
type Waypoint struct {
	InputIndex int // Position in the coordinate sequence sent to the service.
	VisitOrder int // Rank at which the optimized trip visits this position.
}

// OptimizationResult is the validated answer of the trip-optimization service.
type OptimizationResult struct {
	Trip      Trip
	Waypoints []Waypoint
}

// StopPlacement is the reconciled outcome for one stop row.
type StopPlacement struct {
	StopID      int64
	Order       int
	Coordinates Coordinates
}

// OptimizationSummary is returned to the caller after a committed optimization.
type OptimizationSummary struct {
	RouteID          int64   `json:"routeId"`
	TotalDistanceKm  float64 `json:"totalDistanceKm"`
	TotalDurationMin int     `json:"totalDurationMin"`
}

// StopTask is a stop whose coordinates have not been resolved yet.
type StopTask struct {
	ID      int64  // ID of the stop row.
	Address string // Address is the location to be geocoded.
}

// PlaceSuggestion is an autocomplete candidate returned by the geocoder.
type PlaceSuggestion struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Center Coordinates `json:"center"`
}
