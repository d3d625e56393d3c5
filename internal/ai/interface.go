package ai

import (
	"context"
	"time"
)

// TripParser turns a free-text travel request into a structured search.
type TripParser interface {
	// ParseTripRequest extracts origin, destination and date. locations is the closed
	// list the model must pick from; today anchors relative dates like "tomorrow".
	ParseTripRequest(ctx context.Context, query string, locations []string, today time.Time) (*TripRequest, error)
}
