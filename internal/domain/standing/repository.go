package standing

import "context"

// Repository stores the rank baseline used to compute trends.
type Repository interface {
	SaveSnapshot(ctx context.Context, s Snapshot) error
	GetSnapshot(ctx context.Context, leagueID string) (Snapshot, bool, error)
}
