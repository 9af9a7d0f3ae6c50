package ncaa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-madness/internal/platform/logging"
	"github.com/riskibarqy/fantasy-madness/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-madness/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boxScoreBody = `{
  "gameID": "6300001",
  "teams": [
    {"name": "Duke", "players": [
      {"id": "1", "name": "Cooper Flagg", "points": "22"},
      {"id": "2", "name": "Tyrese Proctor", "points": 9},
      {"id": "3", "name": "", "points": 4}
    ]},
    {"nameShort": "Houston", "players": [
      {"firstName": "LJ", "lastName": "Cryer", "points": "17"},
      {"firstName": "Emanuel", "lastName": "Sharp", "points": "DNP"}
    ]}
  ]
}`

func newTestClient(t *testing.T, handler http.Handler, breaker resilience.BreakerConfig) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		BaseURL:        server.URL,
		Timeout:        2 * time.Second,
		MaxRetries:     1,
		RetryBackoff:   time.Millisecond,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
	})
}

func TestClient_BoxScoreTranslatesBothTeams(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /game/{id}/boxscore", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "6300001", r.PathValue("id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(boxScoreBody))
	})
	client := newTestClient(t, mux, resilience.BreakerConfig{})

	lines, err := client.BoxScore(context.Background(), "6300001")
	require.NoError(t, err)
	require.Len(t, lines, 4)

	assert.Equal(t, usecase.ProposedGame{
		ExternalGameID: "6300001",
		PlayerName:     "Cooper Flagg",
		SourceTeam:     "Duke",
		Opponent:       "Houston",
		PointsScored:   22,
	}, lines[0])
	assert.Equal(t, 9, lines[1].PointsScored)
	assert.Equal(t, "LJ Cryer", lines[2].PlayerName)
	assert.Equal(t, "Duke", lines[2].Opponent)
	assert.Equal(t, 17, lines[2].PointsScored)
	assert.Equal(t, 0, lines[3].PointsScored)
}

func TestClient_ScoreboardFetchesFinalGamesOnly(t *testing.T) {
	t.Parallel()

	var boxScoreHits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /scoreboard/basketball-men/d1/2025/03/21", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"games": [
			{"game": {"gameID": "6300001", "gameState": "final", "startTimeEpoch": "1742580000"}},
			{"game": {"gameID": "6300002", "gameState": "live"}},
			{"game": {"gameID": "6300001", "gameState": "final"}}
		]}`))
	})
	mux.HandleFunc("GET /game/{id}/boxscore", func(w http.ResponseWriter, r *http.Request) {
		boxScoreHits.Add(1)
		assert.Equal(t, "6300001", r.PathValue("id"))
		_, _ = w.Write([]byte(boxScoreBody))
	})
	client := newTestClient(t, mux, resilience.BreakerConfig{})

	lines, err := client.Scoreboard(context.Background(), time.Date(2025, time.March, 21, 18, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, lines, 4)
	assert.EqualValues(t, 1, boxScoreHits.Load())
	for _, line := range lines {
		assert.Equal(t, time.Unix(1742580000, 0).UTC(), line.PlayedAt)
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(boxScoreBody))
	})
	client := newTestClient(t, handler, resilience.BreakerConfig{})

	lines, err := client.BoxScore(context.Background(), "6300001")
	require.NoError(t, err)
	assert.Len(t, lines, 4)
	assert.EqualValues(t, 2, hits.Load())
}

func TestClient_NotFoundIsNotRetried(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		http.NotFound(w, nil)
	})
	client := newTestClient(t, handler, resilience.BreakerConfig{})

	_, err := client.BoxScore(context.Background(), "missing")
	require.ErrorIs(t, err, usecase.ErrNotFound)
	assert.EqualValues(t, 1, hits.Load())
}

func TestClient_CircuitOpensAfterTransientFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})
	client := newTestClient(t, handler, resilience.BreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenProbes:   1,
	})

	_, err := client.BoxScore(context.Background(), "6300001")
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	assert.EqualValues(t, 2, hits.Load())

	_, err = client.BoxScore(context.Background(), "6300001")
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	assert.EqualValues(t, 2, hits.Load())
	assert.Equal(t, resilience.CircuitStateOpen, client.breaker.State())
}

func TestClient_RejectsBlankInput(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Logger: logging.NewNop()})
	_, err := client.BoxScore(context.Background(), " ")
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
	_, err = client.Scoreboard(context.Background(), time.Time{})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
}
