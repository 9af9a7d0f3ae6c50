package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/fantasy-madness/internal/domain/draft"
	"github.com/riskibarqy/fantasy-madness/internal/domain/league"
	"github.com/riskibarqy/fantasy-madness/internal/domain/player"
	"github.com/riskibarqy/fantasy-madness/internal/domain/team"
	idgen "github.com/riskibarqy/fantasy-madness/internal/platform/id"
	"github.com/riskibarqy/fantasy-madness/internal/platform/lock"
	"github.com/riskibarqy/fantasy-madness/internal/platform/logging"
)

type StartDraftInput struct {
	LeagueID string
	// Rounds <= 0 falls back to the service default.
	Rounds int
	// TeamOrder optionally reorders the league's teams for round one. It must
	// be a permutation of the league's team ids.
	TeamOrder []string
}

type PickInput struct {
	LeagueID string
	TeamID   string
	PlayerID string
}

// DraftView is a session plus whose turn it is. CurrentPicker is empty once
// the draft is complete.
type DraftView struct {
	State         draft.State
	CurrentPicker string
	Resumed       bool
}

type DraftService struct {
	leagueRepo    league.Repository
	teamRepo      team.Repository
	playerRepo    player.Repository
	draftRepo     draft.Repository
	idGen         idgen.Generator
	locks         *lock.Keyed
	defaultRounds int
	logger        *logging.Logger
	now           func() time.Time
}

func NewDraftService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	draftRepo draft.Repository,
	idGen idgen.Generator,
	defaultRounds int,
	logger *logging.Logger,
) *DraftService {
	if logger == nil {
		logger = logging.Default()
	}
	if defaultRounds < 1 {
		defaultRounds = 1
	}

	return &DraftService{
		leagueRepo:    leagueRepo,
		teamRepo:      teamRepo,
		playerRepo:    playerRepo,
		draftRepo:     draftRepo,
		idGen:         idGen,
		locks:         lock.NewKeyed(),
		defaultRounds: defaultRounds,
		logger:        logger,
		now:           time.Now,
	}
}

// Start returns the league's unfinished session as is, or creates a new one
// seeded from the league's teams in join order.
func (s *DraftService) Start(ctx context.Context, input StartDraftInput) (DraftView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Start", attribute.String("league_id", input.LeagueID))
	defer span.End()

	leagueID := strings.TrimSpace(input.LeagueID)
	if leagueID == "" {
		return DraftView{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if input.Rounds < 0 {
		return DraftView{}, fmt.Errorf("%w: rounds must be >= 1, got %d", draft.ErrInvalidConfiguration, input.Rounds)
	}

	unlock := s.locks.Lock(leagueID)
	defer unlock()

	if _, exists, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
		return DraftView{}, storeFailure("get league", err)
	} else if !exists {
		return DraftView{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	current, exists, err := s.draftRepo.GetByLeague(ctx, leagueID)
	if err != nil {
		return DraftView{}, storeFailure("get draft session", err)
	}
	if exists && !current.IsComplete() {
		return newDraftView(current, true), nil
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return DraftView{}, storeFailure("list teams by league", err)
	}
	teamIDs, err := resolveTeamOrder(teams, input.TeamOrder)
	if err != nil {
		return DraftView{}, err
	}

	rounds := input.Rounds
	if rounds == 0 {
		rounds = s.defaultRounds
	}

	sessionID, err := s.idGen.NewID()
	if err != nil {
		return DraftView{}, fmt.Errorf("generate draft session id: %w", err)
	}
	state, err := draft.NewState(sessionID, leagueID, teamIDs, rounds, s.now().UTC())
	if err != nil {
		return DraftView{}, err
	}
	if err := s.draftRepo.Save(ctx, state); err != nil {
		return DraftView{}, storeFailure("save draft session", err)
	}

	s.logger.InfoContext(ctx, "draft started",
		"league_id", leagueID,
		"session_id", state.ID,
		"rounds", rounds,
		"teams", len(teamIDs),
	)
	return newDraftView(state, false), nil
}

func (s *DraftService) Get(ctx context.Context, leagueID string) (DraftView, error) {
	state, err := s.loadState(ctx, leagueID)
	if err != nil {
		return DraftView{}, err
	}
	return newDraftView(state, true), nil
}

// Pick validates and commits one pick. Picks within a league are serialized
// by an in-process lock; the store commit compares the pick index and the
// player's availability so that concurrent processes also get one winner.
func (s *DraftService) Pick(ctx context.Context, input PickInput) (draft.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Pick",
		attribute.String("league_id", input.LeagueID),
		attribute.String("team_id", input.TeamID),
	)
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	input.PlayerID = strings.TrimSpace(input.PlayerID)
	if input.LeagueID == "" || input.TeamID == "" || input.PlayerID == "" {
		return draft.Assignment{}, fmt.Errorf("%w: league id, team id and player id are required", ErrInvalidInput)
	}

	unlock := s.locks.Lock(input.LeagueID)
	defer unlock()

	state, err := s.loadState(ctx, input.LeagueID)
	if err != nil {
		return draft.Assignment{}, err
	}

	p, known, err := s.playerRepo.GetByID(ctx, input.PlayerID)
	if err != nil {
		return draft.Assignment{}, storeFailure("get player", err)
	}
	candidate := draft.Candidate{
		PlayerID:  input.PlayerID,
		Known:     known,
		Available: known && p.IsAvailable(),
	}

	expectedIndex := state.PickIndex
	assignment, err := state.Pick(candidate, input.TeamID, s.now().UTC())
	if err != nil {
		s.logger.InfoContext(ctx, "draft pick rejected",
			"league_id", input.LeagueID,
			"team_id", input.TeamID,
			"player_id", input.PlayerID,
			"pick_index", expectedIndex,
			"error", err,
		)
		return draft.Assignment{}, err
	}

	err = s.draftRepo.CommitPick(ctx, draft.Commit{
		LeagueID:      input.LeagueID,
		ExpectedIndex: expectedIndex,
		Assignment:    assignment,
		CompletedAt:   state.CompletedAt,
	})
	if err != nil {
		return draft.Assignment{}, s.commitFailure(input, expectedIndex, err)
	}

	s.logger.InfoContext(ctx, "draft pick committed",
		"league_id", input.LeagueID,
		"team_id", assignment.TeamID,
		"player_id", assignment.PlayerID,
		"pick_number", assignment.PickNumber,
		"round", assignment.Round,
	)
	if state.CompletedAt != nil {
		s.logger.InfoContext(ctx, "draft completed", "league_id", input.LeagueID, "session_id", state.ID)
	}
	return assignment, nil
}

func (s *DraftService) ListPicks(ctx context.Context, leagueID string) ([]draft.Assignment, error) {
	state, err := s.loadState(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	picks, err := s.draftRepo.ListPicks(ctx, state.ID)
	if err != nil {
		return nil, storeFailure("list draft picks", err)
	}
	return picks, nil
}

func (s *DraftService) loadState(ctx context.Context, leagueID string) (draft.State, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return draft.State{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	state, exists, err := s.draftRepo.GetByLeague(ctx, leagueID)
	if err != nil {
		return draft.State{}, storeFailure("get draft session", err)
	}
	if !exists {
		return draft.State{}, fmt.Errorf("%w: draft for league=%s", ErrNotFound, leagueID)
	}
	return state, nil
}

// commitFailure turns a lost compare-and-set into the same rule error the
// in-memory check would have produced.
func (s *DraftService) commitFailure(input PickInput, pickIndex int, err error) error {
	for _, kind := range []error{draft.ErrOutOfTurn, draft.ErrPlayerUnavailable} {
		if errors.Is(err, kind) {
			return &draft.RuleError{
				Err:       kind,
				LeagueID:  input.LeagueID,
				TeamID:    input.TeamID,
				PlayerID:  input.PlayerID,
				PickIndex: pickIndex,
			}
		}
	}
	return storeFailure("commit draft pick", err)
}

func newDraftView(state draft.State, resumed bool) DraftView {
	view := DraftView{State: state, Resumed: resumed}
	if picker, err := state.CurrentPicker(); err == nil {
		view.CurrentPicker = picker
	}
	return view
}

func resolveTeamOrder(teams []team.Team, requested []string) ([]string, error) {
	if len(teams) == 0 {
		return nil, fmt.Errorf("%w: league has no teams", draft.ErrInvalidConfiguration)
	}

	known := make(map[string]struct{}, len(teams))
	ids := make([]string, 0, len(teams))
	for _, t := range teams {
		known[t.ID] = struct{}{}
		ids = append(ids, t.ID)
	}
	if len(requested) == 0 {
		return ids, nil
	}

	if len(requested) != len(ids) {
		return nil, fmt.Errorf("%w: team order has %d teams, league has %d", draft.ErrInvalidConfiguration, len(requested), len(ids))
	}
	seen := make(map[string]struct{}, len(requested))
	out := make([]string, 0, len(requested))
	for _, id := range requested {
		id = strings.TrimSpace(id)
		if _, ok := known[id]; !ok {
			return nil, fmt.Errorf("%w: team %s is not in the league", draft.ErrInvalidConfiguration, id)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate team id %s", draft.ErrInvalidConfiguration, id)
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
