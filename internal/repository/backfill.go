package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/waypoint/internal/models"
)

// maxGeocodingAttempts bounds how often the backfill worker retries one stop.
const maxGeocodingAttempts = 5

const (
	fetchStopsForGeocodingQuery = `
		SELECT id, address_text
		FROM stops
		WHERE
			lat IS NULL
			AND geocoding_attempts < $1
			AND address_text <> ''
		ORDER BY id ASC
		LIMIT $2;
	`

	updateStopCoordinatesQuery = `
		UPDATE stops
		SET
			lat = $1,
			lng = $2,
			geocoding_error = NULL
		WHERE
			id = $3
			AND lat IS NULL;
	`

	incrementFailureCountQuery = `
		UPDATE stops
		SET
			geocoding_attempts = geocoding_attempts + 1,
			geocoding_error = $1
		WHERE id = $2;
	`
)

// FetchStopsForGeocoding retrieves stops that still have no coordinates.
// Stops that failed maxGeocodingAttempts times are skipped. The results are ordered by id
// and limited to the specified count.
func (r *Repository) FetchStopsForGeocoding(ctx context.Context, limit int) ([]models.StopTask, error) {
	var tasks []models.StopTask

	rows, err := r.db.Query(ctx, fetchStopsForGeocodingQuery, maxGeocodingAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query stops without coordinates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var task models.StopTask
		if errScan := rows.Scan(&task.ID, &task.Address); errScan != nil {
			return nil, fmt.Errorf("failed to scan stop without coordinates: %w", errScan)
		}
		r.log.DebugContext(ctx, "A stop without coordinates has been received.",
			"ID", task.ID, "Address", task.Address)
		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return tasks, nil
}

// UpdateStopCoordinates stores backfilled coordinates unless an optimization already set them.
func (r *Repository) UpdateStopCoordinates(ctx context.Context, stopID int64, coords models.Coordinates) error {
	_, err := r.db.Exec(ctx, updateStopCoordinatesQuery, coords.Latitude, coords.Longitude, stopID)
	if err != nil {
		return fmt.Errorf("failed to update stop coordinates: %w", err)
	}

	return nil
}

// IncrementFailureCount increments the geocoding attempt count of a stop
// and records the last error message.
func (r *Repository) IncrementFailureCount(ctx context.Context, stopID int64, errMsg string) error {
	_, err := r.db.Exec(ctx, incrementFailureCountQuery, errMsg, stopID)
	if err != nil {
		return fmt.Errorf("failed to update geocoding error and number of attempts: %w", err)
	}

	return nil
}
