package team

import (
	"fmt"
	"strings"
	"time"
)

// Team is a fantasy team inside a league. TotalPoints is derived from the
// players assigned to it and is never written by clients.
type Team struct {
	ID          string
	LeagueID    string
	Name        string
	Owner       string
	TotalPoints int
	CreatedAt   time.Time
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.LeagueID) == "" {
		return fmt.Errorf("team league id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
