package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fantasy-madness/internal/domain/draft"
)

type DraftRepository struct {
	store *Store
}

func NewDraftRepository(store *Store) *DraftRepository {
	return &DraftRepository{store: store}
}

func (r *DraftRepository) GetByLeague(_ context.Context, leagueID string) (draft.State, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[leagueID]
	if !ok {
		return draft.State{}, false, nil
	}
	return state.Clone(), true, nil
}

func (r *DraftRepository) Save(_ context.Context, state draft.State) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.sessions[state.LeagueID]; ok && !cur.IsComplete() {
		return fmt.Errorf("league %s already has an unfinished draft %s", state.LeagueID, cur.ID)
	}
	s.sessions[state.LeagueID] = state.Clone()
	return nil
}

func (r *DraftRepository) CommitPick(_ context.Context, c draft.Commit) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	a := c.Assignment
	state, ok := s.sessions[c.LeagueID]
	if !ok || state.ID != a.SessionID {
		return fmt.Errorf("draft session %s not found", a.SessionID)
	}
	if state.PickIndex != c.ExpectedIndex {
		return fmt.Errorf("%w: pick index is %d, expected %d", draft.ErrOutOfTurn, state.PickIndex, c.ExpectedIndex)
	}

	p, ok := s.players[a.PlayerID]
	if !ok || p.AssignedTeamID != nil {
		return fmt.Errorf("%w: %s", draft.ErrPlayerUnavailable, a.PlayerID)
	}
	if _, ok := s.teams[a.TeamID]; !ok {
		return fmt.Errorf("team %s not found", a.TeamID)
	}

	s.assignLocked(p, a.TeamID)

	state = state.Clone()
	state.PickIndex++
	state.Drafted[a.PlayerID] = struct{}{}
	if c.CompletedAt != nil {
		at := *c.CompletedAt
		state.CompletedAt = &at
	}
	s.sessions[c.LeagueID] = state
	s.picks[a.SessionID] = append(s.picks[a.SessionID], a)

	s.resumTeamLocked(a.TeamID)
	return nil
}

func (r *DraftRepository) ListPicks(_ context.Context, sessionID string) ([]draft.Assignment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]draft.Assignment(nil), s.picks[sessionID]...), nil
}
