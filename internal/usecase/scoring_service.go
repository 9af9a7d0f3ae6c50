package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/fantasy-madness/internal/domain/game"
	"github.com/riskibarqy/fantasy-madness/internal/domain/player"
	idgen "github.com/riskibarqy/fantasy-madness/internal/platform/id"
	"github.com/riskibarqy/fantasy-madness/internal/platform/logging"
)

type RecordGameInput struct {
	PlayerID     string
	Opponent     string
	PointsScored int
	// PlayedAt defaults to now.
	PlayedAt  time.Time
	SourceRef string
}

type ScoringService struct {
	playerRepo player.Repository
	gameRepo   game.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewScoringService(
	playerRepo player.Repository,
	gameRepo game.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoringService{
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// RecordGame appends a game and updates the player's and owning team's
// totals as one atomic unit in the store.
func (s *ScoringService) RecordGame(ctx context.Context, input RecordGameInput) (game.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecordGame", attribute.String("player_id", input.PlayerID))
	defer span.End()

	input.PlayerID = strings.TrimSpace(input.PlayerID)
	input.Opponent = strings.TrimSpace(input.Opponent)
	if input.PlayerID == "" {
		return game.Result{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if input.Opponent == "" {
		return game.Result{}, fmt.Errorf("%w: opponent is required", ErrInvalidInput)
	}
	if input.PointsScored < 0 {
		return game.Result{}, fmt.Errorf("%w: points scored must be >= 0, got %d", ErrInvalidInput, input.PointsScored)
	}

	gameID, err := s.idGen.NewID()
	if err != nil {
		return game.Result{}, fmt.Errorf("generate game id: %w", err)
	}
	playedAt := input.PlayedAt
	if playedAt.IsZero() {
		playedAt = s.now()
	}

	g := game.Game{
		ID:           gameID,
		PlayerID:     input.PlayerID,
		Opponent:     input.Opponent,
		PointsScored: input.PointsScored,
		PlayedAt:     playedAt.UTC(),
		SourceRef:    strings.TrimSpace(input.SourceRef),
	}
	if err := g.Validate(); err != nil {
		return game.Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	result, err := s.gameRepo.RecordGame(ctx, g)
	if err != nil {
		if errors.Is(err, game.ErrUnknownPlayer) || errors.Is(err, game.ErrDuplicateGame) {
			return game.Result{}, fmt.Errorf("record game: %w", err)
		}
		return game.Result{}, storeFailure("record game", err)
	}

	args := []any{
		"game_id", result.Game.ID,
		"player_id", result.Player.ID,
		"points_scored", result.Game.PointsScored,
		"player_total", result.Player.TotalPoints,
	}
	if result.Team != nil {
		args = append(args, "team_id", result.Team.ID, "team_total", result.Team.TotalPoints)
	}
	s.logger.InfoContext(ctx, "game recorded", args...)
	return result, nil
}

// Eliminate marks a player out of the tournament. Repeat calls are no-ops.
func (s *ScoringService) Eliminate(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.Eliminate")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.Eliminate(ctx, playerID)
	if err != nil {
		return player.Player{}, storeFailure("eliminate player", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("eliminate player: %w: %s", game.ErrUnknownPlayer, playerID)
	}

	s.logger.InfoContext(ctx, "player eliminated", "player_id", p.ID, "team_id", p.TeamID())
	return p, nil
}

// ListGames returns the player's scoring history, most recent first.
func (s *ScoringService) ListGames(ctx context.Context, playerID string) ([]game.Game, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	_, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, storeFailure("get player", err)
	}
	if !exists {
		return nil, fmt.Errorf("list games: %w: %s", game.ErrUnknownPlayer, playerID)
	}

	games, err := s.gameRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, storeFailure("list games by player", err)
	}
	return games, nil
}
