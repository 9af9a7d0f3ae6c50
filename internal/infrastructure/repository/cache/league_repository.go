package cache

import (
	"context"
	"errors"
	"time"

	"github.com/riskibarqy/fantasy-madness/internal/domain/league"
	basecache "github.com/riskibarqy/fantasy-madness/internal/platform/cache"
)

const leagueListKey = "all"

var errLeagueMissing = errors.New("league missing")

// LeagueRepository is a read-through cache over league lookups. Leagues are
// immutable after creation, so only Create invalidates.
type LeagueRepository struct {
	next  league.Repository
	lists *basecache.Store[[]league.League]
	byID  *basecache.Store[league.League]
}

func NewLeagueRepository(next league.Repository, ttl time.Duration) *LeagueRepository {
	return &LeagueRepository{
		next:  next,
		lists: basecache.NewStore[[]league.League](ttl),
		byID:  basecache.NewStore[league.League](ttl),
	}
}

func (r *LeagueRepository) Create(ctx context.Context, l league.League) error {
	if err := r.next.Create(ctx, l); err != nil {
		return err
	}
	r.lists.Delete(leagueListKey)
	r.byID.Delete(l.ID)
	return nil
}

// List hands out a copy so callers cannot mutate the cached slice.
func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	items, err := r.lists.GetOrLoad(ctx, leagueListKey, r.next.List)
	if err != nil {
		return nil, err
	}
	return append([]league.League(nil), items...), nil
}

// GetByID caches hits only; a miss may be created later.
func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	item, err := r.byID.GetOrLoad(ctx, leagueID, func(ctx context.Context) (league.League, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err == nil && !exists {
			err = errLeagueMissing
		}
		return item, err
	})
	switch {
	case errors.Is(err, errLeagueMissing):
		return league.League{}, false, nil
	case err != nil:
		return league.League{}, false, err
	}
	return item, true, nil
}
