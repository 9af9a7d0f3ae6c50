package player

import (
	"fmt"
	"strings"
)

// Player is a tournament athlete in the shared draft pool.
type Player struct {
	ID             string
	Name           string
	SourceTeam     string
	Seed           *int
	TotalPoints    int
	GamesPlayed    int
	IsEliminated   bool
	AssignedTeamID *string
}

// IsAvailable reports whether the player can still be drafted.
func (p Player) IsAvailable() bool {
	return p.AssignedTeamID == nil
}

// SeedOrZero treats an unset seed as 0.
func (p Player) SeedOrZero() int {
	if p.Seed == nil {
		return 0
	}
	return *p.Seed
}

func (p Player) TeamID() string {
	if p.AssignedTeamID == nil {
		return ""
	}
	return *p.AssignedTeamID
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Seed != nil && *p.Seed < 0 {
		return fmt.Errorf("player seed must be >= 0")
	}

	return nil
}

// Clone copies the pointer fields so callers cannot alias stored state.
func (p Player) Clone() Player {
	if p.Seed != nil {
		seed := *p.Seed
		p.Seed = &seed
	}
	if p.AssignedTeamID != nil {
		teamID := *p.AssignedTeamID
		p.AssignedTeamID = &teamID
	}
	return p
}
