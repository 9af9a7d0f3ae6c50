package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-madness/internal/domain/player"
	"github.com/riskibarqy/fantasy-madness/internal/domain/team"
	idgen "github.com/riskibarqy/fantasy-madness/internal/platform/id"
	"github.com/riskibarqy/fantasy-madness/internal/platform/logging"
)

type PoolPlayerInput struct {
	Name       string
	SourceTeam string
	Seed       *int
}

type PlayerService struct {
	playerRepo player.Repository
	teamRepo   team.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
}

func NewPlayerService(
	playerRepo player.Repository,
	teamRepo team.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		idGen:      idGen,
		logger:     logger,
	}
}

// AddToPool registers new, unassigned players in the shared draft pool.
func (s *PlayerService) AddToPool(ctx context.Context, inputs []PoolPlayerInput) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.AddToPool")
	defer span.End()

	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one player is required", ErrInvalidInput)
	}

	players := make([]player.Player, 0, len(inputs))
	for i, in := range inputs {
		playerID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate player id: %w", err)
		}

		p := player.Player{
			ID:         playerID,
			Name:       strings.TrimSpace(in.Name),
			SourceTeam: strings.TrimSpace(in.SourceTeam),
			Seed:       in.Seed,
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%w: players[%d]: %v", ErrInvalidInput, i, err)
		}
		players = append(players, p)
	}

	if err := s.playerRepo.CreateMany(ctx, players); err != nil {
		return nil, storeFailure("add players to pool", err)
	}

	s.logger.InfoContext(ctx, "players added to pool", "count", len(players))
	return players, nil
}

func (s *PlayerService) ListAvailable(ctx context.Context) ([]player.Player, error) {
	players, err := s.playerRepo.ListAvailable(ctx)
	if err != nil {
		return nil, storeFailure("list available players", err)
	}

	return players, nil
}

func (s *PlayerService) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, storeFailure("get team", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, storeFailure("list players by team", err)
	}

	return players, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, storeFailure("get player", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return p, nil
}
