package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-madness/internal/domain/league"
	"github.com/riskibarqy/fantasy-madness/internal/domain/team"
	idgen "github.com/riskibarqy/fantasy-madness/internal/platform/id"
	"github.com/riskibarqy/fantasy-madness/internal/platform/logging"
)

type CreateLeagueInput struct {
	Name string
}

type CreateTeamInput struct {
	LeagueID string
	Name     string
	Owner    string
}

type LeagueService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewLeagueService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *LeagueService) CreateLeague(ctx context.Context, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreateLeague")
	defer span.End()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return league.League{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}

	leagueID, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}

	l := league.League{ID: leagueID, Name: name, CreatedAt: s.now().UTC()}
	if err := l.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.leagueRepo.Create(ctx, l); err != nil {
		return league.League{}, storeFailure("create league", err)
	}

	s.logger.InfoContext(ctx, "league created", "league_id", l.ID, "name", l.Name)
	return l, nil
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]league.League, error) {
	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, storeFailure("list leagues", err)
	}

	return leagues, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	l, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, storeFailure("get league", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	return l, nil
}

func (s *LeagueService) CreateTeam(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreateTeam")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.Owner = strings.TrimSpace(input.Owner)
	if input.Name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	l, err := s.GetLeague(ctx, input.LeagueID)
	if err != nil {
		return team.Team{}, err
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	t := team.Team{
		ID:        teamID,
		LeagueID:  l.ID,
		Name:      input.Name,
		Owner:     input.Owner,
		CreatedAt: s.now().UTC(),
	}
	if err := t.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.teamRepo.Create(ctx, t); err != nil {
		return team.Team{}, storeFailure("create team", err)
	}

	s.logger.InfoContext(ctx, "team joined league", "league_id", l.ID, "team_id", t.ID, "owner", t.Owner)
	return t, nil
}

func (s *LeagueService) ListTeamsByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	if _, err := s.GetLeague(ctx, leagueID); err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByLeague(ctx, strings.TrimSpace(leagueID))
	if err != nil {
		return nil, storeFailure("list teams by league", err)
	}

	return teams, nil
}
