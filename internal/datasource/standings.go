package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

const standingsSourceName = "standings_api"

// StandingsClient fetches league tables from the configured standings provider
type StandingsClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	enabled    bool
	logger     *log.Logger
}

// NewStandingsClient creates a new standings API client
func NewStandingsClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, enabled bool, logger *log.Logger) *StandingsClient {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &StandingsClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		enabled:    enabled,
		logger:     logger,
	}
}

// Name returns the data source name
func (c *StandingsClient) Name() string {
	return standingsSourceName
}

// IsEnabled returns whether this source is enabled
func (c *StandingsClient) IsEnabled() bool {
	return c.enabled
}

// standingsResponse is the provider's wire format
type standingsResponse struct {
	Country string `json:"country"`
	League  string `json:"league"`
	Table   []struct {
		Team         string `json:"team"`
		Position     int    `json:"position"`
		Played       int    `json:"played"`
		Won          int    `json:"won"`
		Drawn        int    `json:"drawn"`
		Lost         int    `json:"lost"`
		GoalsFor     int    `json:"goals_for"`
		GoalsAgainst int    `json:"goals_against"`
		Points       int    `json:"points"`
	} `json:"table"`
}

// FetchStandings retrieves the current league table for one country/league pair
func (c *StandingsClient) FetchStandings(ctx context.Context, country, league string) ([]TeamStanding, error) {
	if !c.enabled {
		return nil, NewDataSourceError(standingsSourceName, ErrCodeUnknown, "data source is disabled", nil)
	}

	endpoint := fmt.Sprintf("%s/standings?country=%s&league=%s",
		c.baseURL, url.QueryEscape(country), url.QueryEscape(league))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewDataSourceError(standingsSourceName, ErrCodeUnknown, "failed to build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError(standingsSourceName, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	var payload standingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, NewDataSourceError(standingsSourceName, ErrCodeInvalidData, "failed to decode response", err)
	}

	standings := make([]TeamStanding, 0, len(payload.Table))
	for _, row := range payload.Table {
		if row.Team == "" || row.Position < 1 {
			c.logger.Printf("Skipping invalid standings row for %s %s: %+v", country, league, row)
			continue
		}

		ppg := decimal.Zero
		if row.Played > 0 {
			ppg = decimal.NewFromInt(int64(row.Points)).
				Div(decimal.NewFromInt(int64(row.Played))).
				Round(2)
		}

		standings = append(standings, TeamStanding{
			Team:           row.Team,
			Country:        payload.Country,
			League:         payload.League,
			Position:       row.Position,
			Played:         row.Played,
			Points:         row.Points,
			GoalDifference: row.GoalsFor - row.GoalsAgainst,
			PointsPerGame:  ppg,
		})
	}

	if len(standings) == 0 {
		return nil, NewDataSourceError(standingsSourceName, ErrCodeNotFound,
			fmt.Sprintf("no standings for %s %s", country, league), nil)
	}

	return standings, nil
}

// checkStatus maps HTTP status codes to data source errors
func (c *StandingsClient) checkStatus(status int) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return NewDataSourceError(standingsSourceName, ErrCodeAuthenticationFailed, "authentication failed", ErrAuthenticationFailed)
	case status == http.StatusNotFound:
		return NewDataSourceError(standingsSourceName, ErrCodeNotFound, "league not found", ErrNotFound)
	case status == http.StatusTooManyRequests:
		return NewDataSourceError(standingsSourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", ErrRateLimitExceeded)
	case status >= 500:
		return NewDataSourceError(standingsSourceName, ErrCodeServerError, fmt.Sprintf("server error: %d", status), ErrServerError)
	default:
		return NewDataSourceError(standingsSourceName, ErrCodeUnknown, fmt.Sprintf("unexpected status: %d", status), nil)
	}
}
