package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bet-insight/internal/config"
	"github.com/yourusername/bet-insight/internal/datasource"
	"github.com/yourusername/bet-insight/internal/models"
)

type fakeStandingsSource struct {
	enabled   bool
	standings map[string][]datasource.TeamStanding
	err       error
	calls     int
}

func (f *fakeStandingsSource) FetchStandings(ctx context.Context, country, league string) ([]datasource.TeamStanding, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.standings[country+"/"+league], nil
}

func (f *fakeStandingsSource) Name() string    { return "fake" }
func (f *fakeStandingsSource) IsEnabled() bool { return f.enabled }

func TestSyncAllAppliesPositions(t *testing.T) {
	repos, records, _, _ := fakeRepositories()
	require.NoError(t, records.Create(context.Background(), &models.HistoricalRecord{
		Team:    "Arsenal",
		Country: "ENG",
		League:  "Premier League",
		Result:  models.BetResultPending,
	}))

	source := &fakeStandingsSource{
		enabled: true,
		standings: map[string][]datasource.TeamStanding{
			"ENG/Premier League": {
				{Team: "Arsenal", Country: "ENG", League: "Premier League", Position: 3},
			},
		},
	}

	leagues := []config.LeagueConfig{{Country: "ENG", League: "Premier League", Enabled: true}}
	svc := NewStandingsService(source, repos.Record, leagues, nil)

	require.NoError(t, svc.SyncAll(context.Background()))

	require.NotNil(t, records.records[0].LeaguePosition)
	assert.Equal(t, 3, *records.records[0].LeaguePosition)
}

func TestSyncAllSkipsDisabledLeagues(t *testing.T) {
	repos, _, _, _ := fakeRepositories()
	source := &fakeStandingsSource{enabled: true}

	leagues := []config.LeagueConfig{
		{Country: "ENG", League: "Premier League", Enabled: false},
		{Country: "ESP", League: "La Liga", Enabled: false},
	}
	svc := NewStandingsService(source, repos.Record, leagues, nil)

	require.NoError(t, svc.SyncAll(context.Background()))
	assert.Zero(t, source.calls, "disabled leagues must not be fetched")
}

func TestSyncAllSkipsDisabledSource(t *testing.T) {
	repos, _, _, _ := fakeRepositories()
	source := &fakeStandingsSource{enabled: false}

	leagues := []config.LeagueConfig{{Country: "ENG", League: "Premier League", Enabled: true}}
	svc := NewStandingsService(source, repos.Record, leagues, nil)

	require.NoError(t, svc.SyncAll(context.Background()))
	assert.Zero(t, source.calls)
}

func TestSyncAllReportsFailedLeagues(t *testing.T) {
	repos, _, _, _ := fakeRepositories()
	source := &fakeStandingsSource{enabled: true, err: errors.New("provider down")}

	leagues := []config.LeagueConfig{
		{Country: "ENG", League: "Premier League", Enabled: true},
		{Country: "ESP", League: "La Liga", Enabled: true},
	}
	svc := NewStandingsService(source, repos.Record, leagues, nil)

	err := svc.SyncAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 league(s)")
	assert.Equal(t, 2, source.calls, "one failing league must not abort the rest")
}
