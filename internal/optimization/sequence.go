package optimization

import "github.com/UnknownOlympus/waypoint/internal/models"

// BuildSequence returns [start, stops..., start]. The trailing start is the explicit
// return-to-origin entry; positions 0 and len(stops)+1 never refer to a stop row.
func BuildSequence(start models.Coordinates, stops []models.Coordinates) []models.Coordinates {
	sequence := make([]models.Coordinates, 0, len(stops)+2)
	sequence = append(sequence, start)
	sequence = append(sequence, stops...)

	return append(sequence, start)
}
