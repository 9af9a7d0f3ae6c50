package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-madness/internal/domain/league"
	"github.com/riskibarqy/fantasy-madness/internal/domain/player"
	"github.com/riskibarqy/fantasy-madness/internal/domain/standing"
	"github.com/riskibarqy/fantasy-madness/internal/domain/team"
	"github.com/riskibarqy/fantasy-madness/internal/platform/logging"
)

type StandingService struct {
	leagueRepo   league.Repository
	teamRepo     team.Repository
	playerRepo   player.Repository
	standingRepo standing.Repository
	logger       *logging.Logger
	now          func() time.Time
}

func NewStandingService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	standingRepo standing.Repository,
	logger *logging.Logger,
) *StandingService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StandingService{
		leagueRepo:   leagueRepo,
		teamRepo:     teamRepo,
		playerRepo:   playerRepo,
		standingRepo: standingRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// ListByLeague ranks the league's teams and fills trend from the last
// snapshot, if any.
func (s *StandingService) ListByLeague(ctx context.Context, leagueID string) ([]standing.TeamStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ListByLeague")
	defer span.End()

	rows, err := s.rank(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	snap, exists, err := s.standingRepo.GetSnapshot(ctx, strings.TrimSpace(leagueID))
	if err != nil {
		return nil, storeFailure("get standing snapshot", err)
	}
	if exists {
		standing.ApplyTrend(rows, snap.Ranks)
	}
	return rows, nil
}

// Snapshot stores the current ranks as the baseline for future trends.
func (s *StandingService) Snapshot(ctx context.Context, leagueID string) (standing.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.Snapshot")
	defer span.End()

	rows, err := s.rank(ctx, leagueID)
	if err != nil {
		return standing.Snapshot{}, err
	}

	snap := standing.Snapshot{
		LeagueID: strings.TrimSpace(leagueID),
		Ranks:    standing.Ranks(rows),
		TakenAt:  s.now().UTC(),
	}
	if err := s.standingRepo.SaveSnapshot(ctx, snap); err != nil {
		return standing.Snapshot{}, storeFailure("save standing snapshot", err)
	}

	s.logger.InfoContext(ctx, "standings snapshot saved", "league_id", snap.LeagueID, "teams", len(snap.Ranks))
	return snap, nil
}

func (s *StandingService) rank(ctx context.Context, leagueID string) ([]standing.TeamStanding, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, storeFailure("get league", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, storeFailure("list teams by league", err)
	}
	players, err := s.playerRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, storeFailure("list players by league", err)
	}

	return standing.Rank(teams, players), nil
}
