package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-madness/internal/domain/standing"
	qb "github.com/riskibarqy/fantasy-madness/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) SaveSnapshot(ctx context.Context, s standing.Snapshot) error {
	return withTx(ctx, r.db, "standing snapshot save", func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM standing_snapshots WHERE league_public_id = $1`, s.LeagueID); err != nil {
			return fmt.Errorf("clear standing snapshot: %w", err)
		}

		for teamID, rank := range s.Ranks {
			query, args, err := qb.InsertModel("standing_snapshots", standingSnapshotTableModel{
				LeaguePublicID: s.LeagueID,
				TeamPublicID:   teamID,
				Rank:           rank,
				TakenAt:        s.TakenAt,
			}, "")
			if err != nil {
				return fmt.Errorf("build insert standing snapshot query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert standing snapshot row: %w", err)
			}
		}
		return nil
	})
}

func (r *StandingRepository) GetSnapshot(ctx context.Context, leagueID string) (standing.Snapshot, bool, error) {
	const query = `
SELECT league_public_id, team_public_id, rank, taken_at
FROM standing_snapshots
WHERE league_public_id = $1`

	var rows []standingSnapshotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, leagueID); err != nil {
		return standing.Snapshot{}, false, fmt.Errorf("get standing snapshot: %w", err)
	}
	if len(rows) == 0 {
		return standing.Snapshot{}, false, nil
	}

	snap := standing.Snapshot{LeagueID: leagueID, Ranks: make(map[string]int, len(rows)), TakenAt: rows[0].TakenAt}
	for _, row := range rows {
		snap.Ranks[row.TeamPublicID] = row.Rank
	}
	return snap, true, nil
}
