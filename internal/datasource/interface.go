package datasource

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// StandingsSource defines the interface for fetching league tables from external providers
type StandingsSource interface {
	// FetchStandings retrieves the current table for one league
	FetchStandings(ctx context.Context, country, league string) ([]TeamStanding, error)

	// Name returns the name of the data source
	Name() string

	// IsEnabled returns whether this data source is currently enabled
	IsEnabled() bool
}

// TeamStanding represents one normalized league-table row from any provider
type TeamStanding struct {
	Team           string          `json:"team"`            // Team name as the provider reports it
	Country        string          `json:"country"`         // Country code (e.g., "ENG")
	League         string          `json:"league"`          // League name (e.g., "Premier League")
	Position       int             `json:"position"`        // Current table position, 1-based
	Played         int             `json:"played"`          // Matches played
	Points         int             `json:"points"`          // Points accumulated
	GoalDifference int             `json:"goal_difference"` // Goals for minus goals against
	PointsPerGame  decimal.Decimal `json:"points_per_game"` // Points / Played, zero when unplayed
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeUnknown              = "unknown"
)

// Error constructors
var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("standings not found")
	ErrInvalidData          = errors.New("invalid data format")
	ErrNetworkError         = errors.New("network error")
	ErrServerError          = errors.New("server error")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
