package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fantasy-madness/internal/domain/league"
)

type LeagueRepository struct {
	store *Store
}

func NewLeagueRepository(store *Store) *LeagueRepository {
	return &LeagueRepository{store: store}
}

func (r *LeagueRepository) Create(_ context.Context, l league.League) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.leagues[l.ID]; ok {
		return fmt.Errorf("league %s already exists", l.ID)
	}
	s.leagues[l.ID] = l
	s.leagueOrder = append(s.leagueOrder, l.ID)
	return nil
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]league.League, 0, len(s.leagueOrder))
	for _, id := range s.leagueOrder {
		out = append(out, s.leagues[id])
	}
	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.leagues[leagueID]
	return l, ok, nil
}
