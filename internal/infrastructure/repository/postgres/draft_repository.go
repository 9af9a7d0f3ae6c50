package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-madness/internal/domain/draft"
	qb "github.com/riskibarqy/fantasy-madness/internal/platform/querybuilder"
)

type DraftRepository struct {
	db *sqlx.DB
}

func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) GetByLeague(ctx context.Context, leagueID string) (draft.State, bool, error) {
	query, args, err := qb.Select(draftSessionColumns...).From("draft_sessions").
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return draft.State{}, false, fmt.Errorf("build get draft session query: %w", err)
	}

	var row draftSessionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return draft.State{}, false, nil
		}
		return draft.State{}, false, fmt.Errorf("get draft session: %w", err)
	}

	const draftedQuery = `SELECT player_public_id FROM draft_picks WHERE session_public_id = $1`
	var drafted []string
	if err := r.db.SelectContext(ctx, &drafted, draftedQuery, row.PublicID); err != nil {
		return draft.State{}, false, fmt.Errorf("list drafted players: %w", err)
	}

	return row.toDomain(drafted), true, nil
}

func (r *DraftRepository) Save(ctx context.Context, s draft.State) error {
	return withTx(ctx, r.db, "draft session save", func(tx *sqlx.Tx) error {
		// Serializes session creation per league.
		const lockLeagueQuery = `SELECT public_id FROM leagues WHERE public_id = $1 FOR UPDATE`
		var leagueID string
		if err := tx.GetContext(ctx, &leagueID, lockLeagueQuery, s.LeagueID); err != nil {
			return fmt.Errorf("lock league %s: %w", s.LeagueID, err)
		}

		const unfinishedQuery = `
SELECT COUNT(1) FROM draft_sessions
WHERE league_public_id = $1
  AND completed_at IS NULL`
		var unfinished int
		if err := tx.GetContext(ctx, &unfinished, unfinishedQuery, s.LeagueID); err != nil {
			return fmt.Errorf("count unfinished drafts: %w", err)
		}
		if unfinished > 0 {
			return fmt.Errorf("league %s already has an unfinished draft", s.LeagueID)
		}

		query, args, err := qb.InsertModel("draft_sessions", draftSessionTableModel{
			PublicID:       s.ID,
			LeaguePublicID: s.LeagueID,
			Rounds:         s.Rounds,
			PickOrder:      s.Order,
			PickIndex:      s.PickIndex,
			StartedAt:      s.StartedAt,
			CompletedAt:    s.CompletedAt,
		}, "")
		if err != nil {
			return fmt.Errorf("build insert draft session query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert draft session: %w", err)
		}
		return nil
	})
}

// CommitPick locks in draft, player, team order.
func (r *DraftRepository) CommitPick(ctx context.Context, c draft.Commit) error {
	a := c.Assignment
	return withTx(ctx, r.db, "draft pick commit", func(tx *sqlx.Tx) error {
		lockQuery, lockArgs, err := qb.Select("pick_index").From("draft_sessions").
			Where(qb.Eq("public_id", a.SessionID)).
			ForUpdate().
			ToSQL()
		if err != nil {
			return fmt.Errorf("build lock draft session query: %w", err)
		}
		var pickIndex int
		if err := tx.GetContext(ctx, &pickIndex, lockQuery, lockArgs...); err != nil {
			return fmt.Errorf("lock draft session %s: %w", a.SessionID, err)
		}
		if pickIndex != c.ExpectedIndex {
			return fmt.Errorf("%w: pick index is %d, expected %d", draft.ErrOutOfTurn, pickIndex, c.ExpectedIndex)
		}

		assignQuery, assignArgs, err := qb.Update("players").
			Set("team_public_id", a.TeamID).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("public_id", a.PlayerID), qb.IsNull("team_public_id")).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build assign player query: %w", err)
		}
		res, err := tx.ExecContext(ctx, assignQuery, assignArgs...)
		if err != nil {
			return fmt.Errorf("assign player: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("assign player rows affected: %w", err)
		} else if n == 0 {
			return fmt.Errorf("%w: %s", draft.ErrPlayerUnavailable, a.PlayerID)
		}

		advance := qb.Update("draft_sessions").
			SetExpr("pick_index", "pick_index + 1").
			SetExpr("updated_at", "NOW()")
		if c.CompletedAt != nil {
			advance = advance.Set("completed_at", *c.CompletedAt)
		}
		advanceQuery, advanceArgs, err := advance.
			Where(qb.Eq("public_id", a.SessionID), qb.Eq("pick_index", c.ExpectedIndex)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build advance draft query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, advanceQuery, advanceArgs...); err != nil {
			return fmt.Errorf("advance draft: %w", err)
		}

		pickQuery, pickArgs, err := qb.InsertModel("draft_picks", draftPickTableModel{
			SessionPublicID: a.SessionID,
			PlayerPublicID:  a.PlayerID,
			TeamPublicID:    a.TeamID,
			PickNumber:      a.PickNumber,
			Round:           a.Round,
			PickInRound:     a.PickInRound,
			PickedAt:        a.PickedAt,
		}, "")
		if err != nil {
			return fmt.Errorf("build insert draft pick query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, pickQuery, pickArgs...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %s", draft.ErrPlayerUnavailable, a.PlayerID)
			}
			return fmt.Errorf("insert draft pick: %w", err)
		}

		if _, err := resumTeam(ctx, tx, a.TeamID); err != nil {
			return err
		}
		return nil
	})
}

func (r *DraftRepository) ListPicks(ctx context.Context, sessionID string) ([]draft.Assignment, error) {
	query, args, err := qb.Select(draftPickColumns...).From("draft_picks").
		Where(qb.Eq("session_public_id", sessionID)).
		OrderBy("pick_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list draft picks query: %w", err)
	}

	var rows []draftPickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list draft picks: %w", err)
	}

	out := make([]draft.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
