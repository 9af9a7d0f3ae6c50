package game

import (
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/fantasy-madness/internal/domain/player"
	"github.com/riskibarqy/fantasy-madness/internal/domain/team"
)

var (
	ErrUnknownPlayer = crerr.New("unknown player")
	ErrDuplicateGame = crerr.New("game already recorded")
)

// Game is one scoring event for a player. Games are append-only.
type Game struct {
	ID           string
	PlayerID     string
	Opponent     string
	PointsScored int
	PlayedAt     time.Time
	// SourceRef identifies an imported feed row; a player cannot record the
	// same non-empty ref twice.
	SourceRef string
}

func (g Game) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("game id is required")
	}
	if strings.TrimSpace(g.PlayerID) == "" {
		return fmt.Errorf("game player id is required")
	}
	if strings.TrimSpace(g.Opponent) == "" {
		return fmt.Errorf("game opponent is required")
	}
	if g.PointsScored < 0 {
		return fmt.Errorf("game points scored must be >= 0")
	}

	return nil
}

// Result carries the totals after a game was recorded. Team is nil when the
// player is not assigned.
type Result struct {
	Game   Game
	Player player.Player
	Team   *team.Team
}
