package draft

import (
	"time"
)

// State is one league's draft session. Order is the full snake expansion and
// PickIndex points at the next slot.
type State struct {
	ID          string
	LeagueID    string
	Rounds      int
	Order       []string
	PickIndex   int
	Drafted     map[string]struct{}
	StartedAt   time.Time
	CompletedAt *time.Time
}

func (s *State) IsComplete() bool {
	return s.PickIndex >= len(s.Order)
}

func (s *State) TeamCount() int {
	if s.Rounds < 1 {
		return len(s.Order)
	}
	return len(s.Order) / s.Rounds
}

// Clone deep-copies the state.
func (s State) Clone() State {
	s.Order = append([]string(nil), s.Order...)
	drafted := make(map[string]struct{}, len(s.Drafted))
	for id := range s.Drafted {
		drafted[id] = struct{}{}
	}
	s.Drafted = drafted
	if s.CompletedAt != nil {
		at := *s.CompletedAt
		s.CompletedAt = &at
	}
	return s
}

// Candidate is what the roster store knows about the player being picked.
type Candidate struct {
	PlayerID  string
	Known     bool
	Available bool
}

// Assignment records one committed pick.
type Assignment struct {
	SessionID   string
	PlayerID    string
	TeamID      string
	PickNumber  int
	Round       int
	PickInRound int
	PickedAt    time.Time
}

// Commit is the atomic store update for a pick: compare the session index
// and the player's availability, then assign and advance.
type Commit struct {
	LeagueID      string
	ExpectedIndex int
	Assignment    Assignment
	CompletedAt   *time.Time
}
