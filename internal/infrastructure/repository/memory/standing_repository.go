package memory

import (
	"context"
	"maps"

	"github.com/riskibarqy/fantasy-madness/internal/domain/standing"
)

type StandingRepository struct {
	store *Store
}

func NewStandingRepository(store *Store) *StandingRepository {
	return &StandingRepository{store: store}
}

func (r *StandingRepository) SaveSnapshot(_ context.Context, snap standing.Snapshot) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	snap.Ranks = maps.Clone(snap.Ranks)
	s.snapshots[snap.LeagueID] = snap
	return nil
}

func (r *StandingRepository) GetSnapshot(_ context.Context, leagueID string) (standing.Snapshot, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[leagueID]
	if !ok {
		return standing.Snapshot{}, false, nil
	}
	snap.Ranks = maps.Clone(snap.Ranks)
	return snap, true, nil
}
