package memory

import (
	"sync"

	"github.com/riskibarqy/fantasy-madness/internal/domain/draft"
	"github.com/riskibarqy/fantasy-madness/internal/domain/game"
	"github.com/riskibarqy/fantasy-madness/internal/domain/league"
	"github.com/riskibarqy/fantasy-madness/internal/domain/player"
	"github.com/riskibarqy/fantasy-madness/internal/domain/standing"
	"github.com/riskibarqy/fantasy-madness/internal/domain/team"
)

// Store is the shared in-process roster state. Every repository in this
// package is a view over one Store, so a pick or a game result that touches
// several aggregates runs under a single critical section.
type Store struct {
	mu sync.RWMutex

	leagues     map[string]league.League
	leagueOrder []string

	teams     map[string]team.Team
	teamOrder []string

	players     map[string]player.Player
	playerOrder []string
	// rosters maps a team id to its assigned player ids in pick order.
	rosters map[string][]string

	games []game.Game

	sessions  map[string]draft.State
	picks     map[string][]draft.Assignment
	snapshots map[string]standing.Snapshot
}

func NewStore() *Store {
	return &Store{
		leagues:   make(map[string]league.League),
		teams:     make(map[string]team.Team),
		players:   make(map[string]player.Player),
		rosters:   make(map[string][]string),
		sessions:  make(map[string]draft.State),
		picks:     make(map[string][]draft.Assignment),
		snapshots: make(map[string]standing.Snapshot),
	}
}

// assignLocked puts a player on a team's roster. Callers must hold s.mu for
// writing.
func (s *Store) assignLocked(p player.Player, teamID string) {
	p.AssignedTeamID = &teamID
	s.players[p.ID] = p
	s.rosters[teamID] = append(s.rosters[teamID], p.ID)
}

// resumTeamLocked recomputes a team's total from its roster. Callers must
// hold s.mu for writing.
func (s *Store) resumTeamLocked(teamID string) (team.Team, bool) {
	t, ok := s.teams[teamID]
	if !ok {
		return team.Team{}, false
	}

	total := 0
	for _, playerID := range s.rosters[teamID] {
		total += s.players[playerID].TotalPoints
	}
	t.TotalPoints = total
	s.teams[teamID] = t
	return t, true
}
