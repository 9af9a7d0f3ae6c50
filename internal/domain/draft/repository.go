package draft

import "context"

// Repository stores draft sessions and their pick log.
type Repository interface {
	GetByLeague(ctx context.Context, leagueID string) (State, bool, error)
	// Save creates the league's session, replacing a completed one.
	Save(ctx context.Context, s State) error
	// CommitPick applies c atomically. A stale ExpectedIndex fails with
	// ErrOutOfTurn; a player that is missing or already assigned fails with
	// ErrPlayerUnavailable. The receiving team's total is resummed.
	CommitPick(ctx context.Context, c Commit) error
	ListPicks(ctx context.Context, sessionID string) ([]Assignment, error)
}
