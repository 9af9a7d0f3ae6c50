package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fantasy-madness/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/fantasy-madness/internal/platform/id"
	"github.com/riskibarqy/fantasy-madness/internal/platform/logging"
)

var testNow = time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC)

// harness wires every service over one in-memory store.
type harness struct {
	store     *memory.Store
	leagues   *LeagueService
	players   *PlayerService
	drafts    *DraftService
	scoring   *ScoringService
	standings *StandingService
}

func newHarness(t *testing.T, defaultRounds int) harness {
	t.Helper()

	store := memory.NewStore()
	leagueRepo := memory.NewLeagueRepository(store)
	teamRepo := memory.NewTeamRepository(store)
	playerRepo := memory.NewPlayerRepository(store)
	gameRepo := memory.NewGameRepository(store)
	draftRepo := memory.NewDraftRepository(store)
	standingRepo := memory.NewStandingRepository(store)
	ids := idgen.NewUUIDGenerator()
	logger := logging.NewNop()

	h := harness{
		store:     store,
		leagues:   NewLeagueService(leagueRepo, teamRepo, ids, logger),
		players:   NewPlayerService(playerRepo, teamRepo, ids, logger),
		drafts:    NewDraftService(leagueRepo, teamRepo, playerRepo, draftRepo, ids, defaultRounds, logger),
		scoring:   NewScoringService(playerRepo, gameRepo, ids, logger),
		standings: NewStandingService(leagueRepo, teamRepo, playerRepo, standingRepo, logger),
	}

	// Join order comes from CreatedAt, so the clock must move forward.
	var mu sync.Mutex
	tick := testNow
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick = tick.Add(time.Second)
		return tick
	}
	h.leagues.now = clock
	h.drafts.now = clock
	h.scoring.now = clock
	h.standings.now = clock
	return h
}

type seededLeague struct {
	leagueID  string
	teamIDs   []string
	playerIDs []string
}

func (h harness) seedLeague(t *testing.T, teamNames []string, playerNames []string) seededLeague {
	t.Helper()
	ctx := context.Background()

	l, err := h.leagues.CreateLeague(ctx, CreateLeagueInput{Name: "Bracket Pool"})
	require.NoError(t, err)

	out := seededLeague{leagueID: l.ID}
	for _, name := range teamNames {
		created, err := h.leagues.CreateTeam(ctx, CreateTeamInput{LeagueID: l.ID, Name: name, Owner: name + " owner"})
		require.NoError(t, err)
		out.teamIDs = append(out.teamIDs, created.ID)
	}

	inputs := make([]PoolPlayerInput, 0, len(playerNames))
	for i, name := range playerNames {
		seed := i + 1
		inputs = append(inputs, PoolPlayerInput{Name: name, SourceTeam: "School " + name, Seed: &seed})
	}
	if len(inputs) > 0 {
		pool, err := h.players.AddToPool(ctx, inputs)
		require.NoError(t, err)
		for _, p := range pool {
			out.playerIDs = append(out.playerIDs, p.ID)
		}
	}
	return out
}
