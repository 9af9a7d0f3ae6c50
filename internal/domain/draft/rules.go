package draft

import (
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrInvalidConfiguration = crerr.New("invalid draft configuration")
	ErrDraftComplete        = crerr.New("draft complete")
	ErrOutOfTurn            = crerr.New("out of turn")
	ErrPlayerUnavailable    = crerr.New("player unavailable")
)

// RuleError reports a rejected draft action with the identifiers needed to
// decide on a retry.
type RuleError struct {
	Err            error
	LeagueID       string
	TeamID         string
	ExpectedTeamID string
	PlayerID       string
	PickIndex      int
	// UnknownPlayer distinguishes a missing player from an assigned one.
	UnknownPlayer bool
}

func (e *RuleError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "draft %s pick %d", e.LeagueID, e.PickIndex+1)
	if e.TeamID != "" {
		fmt.Fprintf(&b, " team %s", e.TeamID)
	}
	if e.ExpectedTeamID != "" {
		fmt.Fprintf(&b, " (on the clock: %s)", e.ExpectedTeamID)
	}
	if e.PlayerID != "" {
		fmt.Fprintf(&b, " player %s", e.PlayerID)
		if e.UnknownPlayer {
			b.WriteString(" (unknown)")
		}
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// BuildOrder expands teamIDs into a snake order: even rounds as given, odd
// rounds reversed.
func BuildOrder(teamIDs []string, rounds int) ([]string, error) {
	if len(teamIDs) == 0 {
		return nil, fmt.Errorf("%w: team list is empty", ErrInvalidConfiguration)
	}
	if rounds < 1 {
		return nil, fmt.Errorf("%w: rounds must be >= 1, got %d", ErrInvalidConfiguration, rounds)
	}

	seen := make(map[string]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("%w: blank team id", ErrInvalidConfiguration)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: duplicate team id %s", ErrInvalidConfiguration, id)
		}
		seen[id] = struct{}{}
	}

	n := len(teamIDs)
	order := make([]string, 0, rounds*n)
	for round := 0; round < rounds; round++ {
		for i := 0; i < n; i++ {
			if round%2 == 0 {
				order = append(order, teamIDs[i])
			} else {
				order = append(order, teamIDs[n-1-i])
			}
		}
	}
	return order, nil
}

// NewState starts a session over the given team order.
func NewState(id, leagueID string, teamIDs []string, rounds int, startedAt time.Time) (State, error) {
	order, err := BuildOrder(teamIDs, rounds)
	if err != nil {
		return State{}, err
	}
	return State{
		ID:        id,
		LeagueID:  leagueID,
		Rounds:    rounds,
		Order:     order,
		Drafted:   make(map[string]struct{}),
		StartedAt: startedAt,
	}, nil
}

func (s *State) CurrentPicker() (string, error) {
	if s.IsComplete() {
		return "", &RuleError{Err: ErrDraftComplete, LeagueID: s.LeagueID, PickIndex: s.PickIndex}
	}
	return s.Order[s.PickIndex], nil
}

// Pick validates and applies one pick in place. On error the state is
// unchanged.
func (s *State) Pick(c Candidate, teamID string, at time.Time) (Assignment, error) {
	expected, err := s.CurrentPicker()
	if err != nil {
		return Assignment{}, err
	}
	if teamID != expected {
		return Assignment{}, &RuleError{
			Err:            ErrOutOfTurn,
			LeagueID:       s.LeagueID,
			TeamID:         teamID,
			ExpectedTeamID: expected,
			PlayerID:       c.PlayerID,
			PickIndex:      s.PickIndex,
		}
	}

	_, drafted := s.Drafted[c.PlayerID]
	if !c.Known || !c.Available || drafted {
		return Assignment{}, &RuleError{
			Err:           ErrPlayerUnavailable,
			LeagueID:      s.LeagueID,
			TeamID:        teamID,
			PlayerID:      c.PlayerID,
			PickIndex:     s.PickIndex,
			UnknownPlayer: !c.Known,
		}
	}

	teams := s.TeamCount()
	a := Assignment{
		SessionID:   s.ID,
		PlayerID:    c.PlayerID,
		TeamID:      teamID,
		PickNumber:  s.PickIndex + 1,
		Round:       s.PickIndex/teams + 1,
		PickInRound: s.PickIndex%teams + 1,
		PickedAt:    at,
	}

	if s.Drafted == nil {
		s.Drafted = make(map[string]struct{})
	}
	s.Drafted[c.PlayerID] = struct{}{}
	s.PickIndex++
	if s.IsComplete() {
		done := at
		s.CompletedAt = &done
	}
	return a, nil
}
