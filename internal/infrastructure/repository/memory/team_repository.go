package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fantasy-madness/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.leagues[t.LeagueID]; !ok {
		return fmt.Errorf("league %s does not exist", t.LeagueID)
	}
	if _, ok := s.teams[t.ID]; ok {
		return fmt.Errorf("team %s already exists", t.ID)
	}
	t.TotalPoints = 0
	s.teams[t.ID] = t
	s.teamOrder = append(s.teamOrder, t.ID)
	return nil
}

func (r *TeamRepository) ListByLeague(_ context.Context, leagueID string) ([]team.Team, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, id := range s.teamOrder {
		if t := s.teams[id]; t.LeagueID == leagueID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teams[teamID]
	return t, ok, nil
}
