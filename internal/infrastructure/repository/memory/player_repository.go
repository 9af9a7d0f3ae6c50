package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fantasy-madness/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func NewPlayerRepository(store *Store) *PlayerRepository {
	return &PlayerRepository{store: store}
}

func (r *PlayerRepository) CreateMany(_ context.Context, players []player.Player) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(players))
	for _, p := range players {
		if _, ok := s.players[p.ID]; ok {
			return fmt.Errorf("player %s already exists", p.ID)
		}
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("player %s is duplicated in batch", p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	for _, p := range players {
		p = p.Clone()
		p.TotalPoints = 0
		p.GamesPlayed = 0
		p.AssignedTeamID = nil
		s.players[p.ID] = p
		s.playerOrder = append(s.playerOrder, p.ID)
	}
	return nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[playerID]
	if !ok {
		return player.Player{}, false, nil
	}
	return p.Clone(), true, nil
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	return r.filter(func(player.Player) bool { return true }), nil
}

func (r *PlayerRepository) ListAvailable(_ context.Context) ([]player.Player, error) {
	out := r.filter(player.Player.IsAvailable)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SeedOrZero() < out[j].SeedOrZero()
	})
	return out, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	return r.filter(func(p player.Player) bool { return p.TeamID() == teamID }), nil
}

func (r *PlayerRepository) ListByLeague(_ context.Context, leagueID string) ([]player.Player, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, id := range s.playerOrder {
		p := s.players[id]
		if p.AssignedTeamID == nil {
			continue
		}
		if t, ok := s.teams[*p.AssignedTeamID]; ok && t.LeagueID == leagueID {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (r *PlayerRepository) Eliminate(_ context.Context, playerID string) (player.Player, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[playerID]
	if !ok {
		return player.Player{}, false, nil
	}
	p.IsEliminated = true
	s.players[playerID] = p
	return p.Clone(), true, nil
}

func (r *PlayerRepository) filter(keep func(player.Player) bool) []player.Player {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]player.Player, 0, len(s.playerOrder))
	for _, id := range s.playerOrder {
		if p := s.players[id]; keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}
