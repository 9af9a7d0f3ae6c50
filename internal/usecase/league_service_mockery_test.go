package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/fantasy-madness/internal/domain/league"
	"github.com/riskibarqy/fantasy-madness/internal/domain/player"
	"github.com/riskibarqy/fantasy-madness/internal/domain/team"
	leaguemock "github.com/riskibarqy/fantasy-madness/internal/mocks/domain/league"
	playermock "github.com/riskibarqy/fantasy-madness/internal/mocks/domain/player"
	teammock "github.com/riskibarqy/fantasy-madness/internal/mocks/domain/team"
	idgen "github.com/riskibarqy/fantasy-madness/internal/platform/id"
)

func TestLeagueService_ListTeamsByLeague_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)

	service := NewLeagueService(leagueRepo, teamRepo, idgen.NewSequence(), nil)
	leagueID := "office-pool-2026"
	expectedTeams := []team.Team{
		{ID: "team-avery", LeagueID: leagueID, Name: "Avery's Squad", Owner: "Avery"},
		{ID: "team-jordan", LeagueID: leagueID, Name: "Jordan's Squad", Owner: "Jordan"},
	}

	leagueRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), leagueID).
		Return(league.League{ID: leagueID}, true, nil).
		Once()
	teamRepo.
		On("ListByLeague", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), leagueID).
		Return(expectedTeams, nil).
		Once()

	got, err := service.ListTeamsByLeague(ctx, leagueID)
	if err != nil {
		t.Fatalf("list teams by league: %v", err)
	}
	if len(got) != len(expectedTeams) {
		t.Fatalf("unexpected team count: got=%d want=%d", len(got), len(expectedTeams))
	}
	if got[0].ID != expectedTeams[0].ID {
		t.Fatalf("unexpected team id: got=%s want=%s", got[0].ID, expectedTeams[0].ID)
	}
}

func TestLeagueService_ListTeamsByLeague_LeagueNotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)

	service := NewLeagueService(leagueRepo, teamRepo, idgen.NewSequence(), nil)
	leagueID := "missing-league"

	leagueRepo.
		On("GetByID", mock.Anything, leagueID).
		Return(league.League{}, false, nil).
		Once()

	_, err := service.ListTeamsByLeague(ctx, leagueID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeagueService_CreateTeamUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)

	service := NewLeagueService(leagueRepo, teamRepo, idgen.NewSequence("team-1"), nil)

	leagueRepo.
		On("GetByID", mock.Anything, "L1").
		Return(league.League{ID: "L1", Name: "Bracket Pool"}, true, nil).
		Once()
	teamRepo.
		On("Create", mock.Anything, mock.MatchedBy(func(v team.Team) bool {
			return v.ID == "team-1" && v.LeagueID == "L1" && v.Name == "Buzzer Beaters" && v.TotalPoints == 0
		})).
		Return(nil).
		Once()

	got, err := service.CreateTeam(ctx, CreateTeamInput{LeagueID: "L1", Name: "  Buzzer Beaters ", Owner: "Sam"})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if got.Owner != "Sam" || got.CreatedAt.IsZero() {
		t.Fatalf("unexpected team: %+v", got)
	}

	if _, err := service.CreateTeam(ctx, CreateTeamInput{LeagueID: "L1"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestLeagueService_CreateLeague_StoreFailureUsingMockery(t *testing.T) {
	t.Parallel()

	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	service := NewLeagueService(leagueRepo, teamRepo, idgen.NewSequence("L1"), nil)

	leagueRepo.
		On("Create", mock.Anything, mock.AnythingOfType("league.League")).
		Return(context.DeadlineExceeded).
		Once()

	_, err := service.CreateLeague(context.Background(), CreateLeagueInput{Name: "Bracket Pool"})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline in chain, got %v", err)
	}
}

func TestPlayerService_AddToPoolUsingMockery(t *testing.T) {
	t.Parallel()

	playerRepo := playermock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	service := NewPlayerService(playerRepo, teamRepo, idgen.NewSequence("P1", "P2"), nil)

	seed := 3
	playerRepo.
		On("CreateMany", mock.Anything, mock.MatchedBy(func(v []player.Player) bool {
			return len(v) == 2 && v[0].ID == "P1" && v[1].ID == "P2" && v[0].IsAvailable() && v[1].SeedOrZero() == 0
		})).
		Return(nil).
		Once()

	got, err := service.AddToPool(context.Background(), []PoolPlayerInput{
		{Name: "Cooper Flagg", SourceTeam: "Duke", Seed: &seed},
		{Name: "Walk On", SourceTeam: "Duke"},
	})
	if err != nil {
		t.Fatalf("add to pool: %v", err)
	}
	if len(got) != 2 || got[0].SeedOrZero() != 3 {
		t.Fatalf("unexpected pool: %+v", got)
	}
}

func TestPlayerService_RejectsBadInput(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	service := NewPlayerService(playerRepo, teamRepo, idgen.NewSequence("P1"), nil)

	negative := -1
	if _, err := service.AddToPool(ctx, []PoolPlayerInput{{Name: "X", Seed: &negative}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative seed, got %v", err)
	}
	if _, err := service.AddToPool(ctx, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty pool, got %v", err)
	}

	teamRepo.
		On("GetByID", mock.Anything, "ghost").
		Return(team.Team{}, false, nil).
		Once()
	if _, err := service.ListByTeam(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	playerRepo.
		On("GetByID", mock.Anything, "nobody").
		Return(player.Player{}, false, nil).
		Once()
	if _, err := service.GetPlayer(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
