package game

import "context"

// Repository is the scoring ledger store.
type Repository interface {
	// RecordGame appends g, adds its points to the player and resums the
	// owning team in one atomic unit. Returns ErrUnknownPlayer when the
	// player does not exist and ErrDuplicateGame when g.SourceRef was
	// already recorded for the player.
	RecordGame(ctx context.Context, g Game) (Result, error)
	// ListByPlayer returns the player's games, most recent first.
	ListByPlayer(ctx context.Context, playerID string) ([]Game, error)
}
