package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fantasy-madness/internal/domain/game"
)

type GameRepository struct {
	store *Store
}

func NewGameRepository(store *Store) *GameRepository {
	return &GameRepository{store: store}
}

func (r *GameRepository) RecordGame(_ context.Context, g game.Game) (game.Result, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[g.PlayerID]
	if !ok {
		return game.Result{}, fmt.Errorf("%w: %s", game.ErrUnknownPlayer, g.PlayerID)
	}

	if g.SourceRef != "" {
		for _, existing := range s.games {
			if existing.PlayerID == g.PlayerID && existing.SourceRef == g.SourceRef {
				return game.Result{}, fmt.Errorf("%w: %s", game.ErrDuplicateGame, g.SourceRef)
			}
		}
	}

	s.games = append(s.games, g)
	p.TotalPoints += g.PointsScored
	p.GamesPlayed++
	s.players[p.ID] = p

	result := game.Result{Game: g, Player: p.Clone()}
	if p.AssignedTeamID != nil {
		if t, ok := s.resumTeamLocked(*p.AssignedTeamID); ok {
			result.Team = &t
		}
	}
	return result, nil
}

func (r *GameRepository) ListByPlayer(_ context.Context, playerID string) ([]game.Game, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]game.Game, 0)
	for i := len(s.games) - 1; i >= 0; i-- {
		if s.games[i].PlayerID == playerID {
			out = append(out, s.games[i])
		}
	}
	return out, nil
}
