package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	CreateMany(ctx context.Context, players []Player) error
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	List(ctx context.Context) ([]Player, error)
	// ListAvailable returns unassigned players ordered by seed ascending.
	ListAvailable(ctx context.Context) ([]Player, error)
	ListByTeam(ctx context.Context, teamID string) ([]Player, error)
	// ListByLeague returns every player assigned to a team of the league.
	ListByLeague(ctx context.Context, leagueID string) ([]Player, error)
	// Eliminate marks the player eliminated; repeated calls are no-ops.
	Eliminate(ctx context.Context, playerID string) (Player, bool, error)
}
