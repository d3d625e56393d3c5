// README: Trip planner turns natural-language bus requests into validated searches.
package tripplanner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"lagosride/internal/ai"
)

var (
	ErrAssistantUnavailable = errors.New("trip assistant is not configured")
	ErrAssistantFailed      = errors.New("trip assistant could not parse the request")
	ErrBadRequest           = errors.New("bad request")
)

// Quota meters assistant calls per client.
type Quota interface {
	UseRequest(ctx context.Context, clientID string) error
}

type TripRequest struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
	Date string `json:"date,omitempty"`
}

type ParseCommand struct {
	ClientID string
	Query    string
}

type Service struct {
	parser    ai.TripParser
	quota     Quota
	locations []string
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

// NewService wires the planner. A nil parser leaves the assistant disabled.
func NewService(parser ai.TripParser, quota Quota, locations []string, loc *time.Location, logger *zap.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		parser:    parser,
		quota:     quota,
		locations: append([]string(nil), locations...),
		loc:       loc,
		now:       time.Now,
		logger:    logger.Named("tripplanner"),
	}
}

// Parse keeps only what the model returned that is usable: known locations and a
// well-formed date.
func (s *Service) Parse(ctx context.Context, cmd ParseCommand) (TripRequest, error) {
	if s.parser == nil {
		return TripRequest{}, ErrAssistantUnavailable
	}
	query := strings.TrimSpace(cmd.Query)
	if query == "" {
		return TripRequest{}, ErrBadRequest
	}
	if s.quota != nil {
		if err := s.quota.UseRequest(ctx, cmd.ClientID); err != nil {
			return TripRequest{}, err
		}
	}

	raw, err := s.parser.ParseTripRequest(ctx, query, s.locations, s.now().In(s.loc))
	if err != nil {
		s.logger.Warn("trip parse failed", zap.Error(err))
		return TripRequest{}, fmt.Errorf("%w: %v", ErrAssistantFailed, err)
	}

	var out TripRequest
	if slices.Contains(s.locations, raw.From) {
		out.From = raw.From
	}
	if slices.Contains(s.locations, raw.To) {
		out.To = raw.To
	}
	if _, err := time.Parse(time.DateOnly, raw.Date); err == nil {
		out.Date = raw.Date
	}
	return out, nil
}
