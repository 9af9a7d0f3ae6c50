package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fantasy-madness/internal/domain/draft"
	"github.com/riskibarqy/fantasy-madness/internal/domain/game"
	"github.com/riskibarqy/fantasy-madness/internal/domain/league"
	"github.com/riskibarqy/fantasy-madness/internal/domain/player"
	"github.com/riskibarqy/fantasy-madness/internal/domain/team"
)

var now = time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store   *Store
	leagues *LeagueRepository
	teams   *TeamRepository
	players *PlayerRepository
	games   *GameRepository
	drafts  *DraftRepository
}

func newFixture(t *testing.T, teamIDs []string, playerIDs []string) fixture {
	t.Helper()

	store := NewStore()
	f := fixture{
		store:   store,
		leagues: NewLeagueRepository(store),
		teams:   NewTeamRepository(store),
		players: NewPlayerRepository(store),
		games:   NewGameRepository(store),
		drafts:  NewDraftRepository(store),
	}

	ctx := context.Background()
	require.NoError(t, f.leagues.Create(ctx, league.League{ID: "L1", Name: "League", CreatedAt: now}))
	for i, id := range teamIDs {
		require.NoError(t, f.teams.Create(ctx, team.Team{ID: id, LeagueID: "L1", Name: id, CreatedAt: now.Add(time.Duration(i) * time.Second)}))
	}
	pool := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		pool = append(pool, player.Player{ID: id, Name: id})
	}
	require.NoError(t, f.players.CreateMany(ctx, pool))
	return f
}

func (f fixture) startDraft(t *testing.T, teamIDs []string, rounds int) draft.State {
	t.Helper()
	state, err := draft.NewState("S1", "L1", teamIDs, rounds, now)
	require.NoError(t, err)
	require.NoError(t, f.drafts.Save(context.Background(), state))
	return state
}

func commitFor(state draft.State, playerID string) draft.Commit {
	picker, _ := state.CurrentPicker()
	return draft.Commit{
		LeagueID:      state.LeagueID,
		ExpectedIndex: state.PickIndex,
		Assignment: draft.Assignment{
			SessionID:  state.ID,
			PlayerID:   playerID,
			TeamID:     picker,
			PickNumber: state.PickIndex + 1,
			PickedAt:   now,
		},
	}
}

func TestGameRepository_RecordGameResumsTeam(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, []string{"T1", "T2"}, []string{"P1", "P2", "P3", "P4"})
	state := f.startDraft(t, []string{"T1", "T2"}, 2)

	// snake order T1, T2, T2, T1
	for _, playerID := range []string{"P1", "P3", "P4", "P2"} {
		require.NoError(t, f.drafts.CommitPick(ctx, commitFor(state, playerID)))
		state, _, _ = f.drafts.GetByLeague(ctx, "L1")
	}

	_, err := f.games.RecordGame(ctx, game.Game{ID: "g1", PlayerID: "P1", Opponent: "A", PointsScored: 10, PlayedAt: now})
	require.NoError(t, err)
	_, err = f.games.RecordGame(ctx, game.Game{ID: "g2", PlayerID: "P2", Opponent: "B", PointsScored: 15, PlayedAt: now})
	require.NoError(t, err)

	// T1 holds P1 (10) and P2 (15).
	res, err := f.games.RecordGame(ctx, game.Game{ID: "g3", PlayerID: "P1", Opponent: "Opp", PointsScored: 5, PlayedAt: now})
	require.NoError(t, err)
	assert.Equal(t, 15, res.Player.TotalPoints)
	assert.Equal(t, 2, res.Player.GamesPlayed)
	require.NotNil(t, res.Team)
	assert.Equal(t, "T1", res.Team.ID)
	assert.Equal(t, 30, res.Team.TotalPoints)

	games, err := f.games.ListByPlayer(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "g3", games[0].ID)
}

func TestGameRepository_UnassignedAndUnknownPlayer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, []string{"T1"}, []string{"P1"})

	res, err := f.games.RecordGame(ctx, game.Game{ID: "g1", PlayerID: "P1", Opponent: "A", PointsScored: 8, PlayedAt: now})
	require.NoError(t, err)
	assert.Nil(t, res.Team)
	assert.Equal(t, 8, res.Player.TotalPoints)

	_, err = f.games.RecordGame(ctx, game.Game{ID: "g2", PlayerID: "nope", Opponent: "A", PointsScored: 1, PlayedAt: now})
	assert.True(t, errors.Is(err, game.ErrUnknownPlayer))
}

func TestDraftRepository_CommitPickBringsPriorPointsToTeam(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, []string{"T1"}, []string{"P1"})
	_, err := f.games.RecordGame(ctx, game.Game{ID: "g1", PlayerID: "P1", Opponent: "A", PointsScored: 12, PlayedAt: now})
	require.NoError(t, err)

	state := f.startDraft(t, []string{"T1"}, 1)
	require.NoError(t, f.drafts.CommitPick(ctx, commitFor(state, "P1")))

	got, ok, err := f.teams.GetByID(ctx, "T1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 12, got.TotalPoints)
}

func TestDraftRepository_CommitPickCompareAndSet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, []string{"T1", "T2"}, []string{"P1", "P2"})
	state := f.startDraft(t, []string{"T1", "T2"}, 1)

	stale := commitFor(state, "P1")
	require.NoError(t, f.drafts.CommitPick(ctx, stale))

	err := f.drafts.CommitPick(ctx, stale)
	assert.True(t, errors.Is(err, draft.ErrOutOfTurn), "stale index: %v", err)

	next, _, _ := f.drafts.GetByLeague(ctx, "L1")
	err = f.drafts.CommitPick(ctx, commitFor(next, "P1"))
	assert.True(t, errors.Is(err, draft.ErrPlayerUnavailable), "assigned player: %v", err)

	picks, err := f.drafts.ListPicks(ctx, "S1")
	require.NoError(t, err)
	require.Len(t, picks, 1)
	assert.Equal(t, "T1", picks[0].TeamID)
}

func TestDraftRepository_ConcurrentCommitsHaveOneWinner(t *testing.T) {
	ctx := context.Background()
	players := make([]string, 16)
	for i := range players {
		players[i] = fmt.Sprintf("P%d", i)
	}
	f := newFixture(t, []string{"T1", "T2"}, players)
	state := f.startDraft(t, []string{"T1", "T2"}, 4)

	var wg sync.WaitGroup
	errs := make(chan error, len(players))
	for _, id := range players {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			errs <- f.drafts.CommitPick(ctx, commitFor(state, id))
		}(id)
	}
	wg.Wait()
	close(errs)

	winners := 0
	for err := range errs {
		if err == nil {
			winners++
			continue
		}
		assert.True(t, errors.Is(err, draft.ErrOutOfTurn) || errors.Is(err, draft.ErrPlayerUnavailable), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, winners)
}

func TestGameRepository_ResumCoversOnlyOwnRoster(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, []string{"T1", "T2"}, []string{"P1", "P2", "P3", "P4", "P5"})
	state := f.startDraft(t, []string{"T1", "T2"}, 2)
	for _, id := range []string{"P1", "P2", "P3", "P4"} {
		c := commitFor(state, id)
		require.NoError(t, f.drafts.CommitPick(ctx, c))
		state.PickIndex++
	}

	assert.Equal(t, []string{"P1", "P4"}, f.store.rosters["T1"])
	assert.Equal(t, []string{"P2", "P3"}, f.store.rosters["T2"])

	_, err := f.games.RecordGame(ctx, game.Game{ID: "g1", PlayerID: "P5", Opponent: "A", PointsScored: 40, PlayedAt: now})
	require.NoError(t, err)
	_, err = f.games.RecordGame(ctx, game.Game{ID: "g2", PlayerID: "P3", Opponent: "A", PointsScored: 8, PlayedAt: now})
	require.NoError(t, err)
	res, err := f.games.RecordGame(ctx, game.Game{ID: "g3", PlayerID: "P4", Opponent: "B", PointsScored: 11, PlayedAt: now})
	require.NoError(t, err)
	require.NotNil(t, res.Team)
	assert.Equal(t, "T1", res.Team.ID)
	assert.Equal(t, 11, res.Team.TotalPoints)

	t2, ok, err := f.teams.GetByID(ctx, "T2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 8, t2.TotalPoints)
}

func TestDraftRepository_SaveReplacesOnlyCompletedSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, []string{"T1"}, []string{"P1"})
	state := f.startDraft(t, []string{"T1"}, 1)

	other, err := draft.NewState("S2", "L1", []string{"T1"}, 1, now)
	require.NoError(t, err)
	require.Error(t, f.drafts.Save(ctx, other))

	commit := commitFor(state, "P1")
	commit.CompletedAt = &now
	require.NoError(t, f.drafts.CommitPick(ctx, commit))
	require.NoError(t, f.drafts.Save(ctx, other))

	got, ok, err := f.drafts.GetByLeague(ctx, "L1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "S2", got.ID)
}

func TestPlayerRepository_ListAvailableBySeed(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewPlayerRepository(store)
	seed := func(v int) *int { return &v }

	require.NoError(t, repo.CreateMany(ctx, []player.Player{
		{ID: "a", Name: "a", Seed: seed(4)},
		{ID: "b", Name: "b"},
		{ID: "c", Name: "c", Seed: seed(1)},
	}))

	got, err := repo.ListAvailable(ctx)
	require.NoError(t, err)
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	assert.Equal(t, []string{"b", "c", "a"}, ids)

	require.Error(t, repo.CreateMany(ctx, []player.Player{{ID: "a", Name: "again"}}))
}

func TestPlayerRepository_EliminateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, []string{"P1"})

	first, ok, err := f.players.Eliminate(ctx, "P1")
	require.NoError(t, err)
	require.True(t, ok)
	second, ok, err := f.players.Eliminate(ctx, "P1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first, second)
	assert.True(t, second.IsEliminated)

	_, ok, err = f.players.Eliminate(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSeedDemo(t *testing.T) {
	store := NewStore()
	SeedDemo(store, now)
	SeedDemo(store, now)

	teams, err := NewTeamRepository(store).ListByLeague(context.Background(), DemoLeagueID)
	require.NoError(t, err)
	assert.Len(t, teams, 3)

	pool, err := NewPlayerRepository(store).ListAvailable(context.Background())
	require.NoError(t, err)
	assert.Len(t, pool, len(demoPool))
}

func TestGameRepository_RejectsDuplicateSourceRef(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, []string{"P1"})

	g := game.Game{ID: "g1", PlayerID: "P1", Opponent: "A", PointsScored: 4, PlayedAt: now, SourceRef: "ncaa:6300001"}
	_, err := f.games.RecordGame(ctx, g)
	require.NoError(t, err)

	g.ID = "g2"
	_, err = f.games.RecordGame(ctx, g)
	assert.True(t, errors.Is(err, game.ErrDuplicateGame))

	p, _, _ := f.players.GetByID(ctx, "P1")
	assert.Equal(t, 4, p.TotalPoints)
	assert.Equal(t, 1, p.GamesPlayed)
}
