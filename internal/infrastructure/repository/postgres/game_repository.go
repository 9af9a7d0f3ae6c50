package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-madness/internal/domain/game"
	qb "github.com/riskibarqy/fantasy-madness/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) RecordGame(ctx context.Context, g game.Game) (game.Result, error) {
	var result game.Result
	err := withTx(ctx, r.db, "record game", func(tx *sqlx.Tx) error {
		lockQuery, lockArgs, err := qb.Select(playerColumns...).From("players").
			Where(qb.Eq("public_id", g.PlayerID)).
			ForUpdate().
			ToSQL()
		if err != nil {
			return fmt.Errorf("build lock player query: %w", err)
		}
		var current playerTableModel
		if err := tx.GetContext(ctx, &current, lockQuery, lockArgs...); err != nil {
			if isNotFound(err) {
				return fmt.Errorf("%w: %s", game.ErrUnknownPlayer, g.PlayerID)
			}
			return fmt.Errorf("lock player: %w", err)
		}

		insertQuery, insertArgs, err := qb.InsertModel("games", gameRowFromDomain(g), "")
		if err != nil {
			return fmt.Errorf("build insert game query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			if isUniqueViolation(err) && g.SourceRef != "" {
				return fmt.Errorf("%w: %s", game.ErrDuplicateGame, g.SourceRef)
			}
			return fmt.Errorf("insert game: %w", err)
		}

		updateQuery, updateArgs, err := qb.Update("players").
			SetExpr("total_points", "total_points + ?", g.PointsScored).
			SetExpr("games_played", "games_played + 1").
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("public_id", g.PlayerID)).
			Suffix("RETURNING " + joinColumns(playerColumns)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update player totals query: %w", err)
		}
		var updated playerTableModel
		if err := tx.GetContext(ctx, &updated, updateQuery, updateArgs...); err != nil {
			return fmt.Errorf("update player totals: %w", err)
		}

		result = game.Result{Game: g, Player: updated.toDomain()}
		if updated.TeamPublicID.Valid {
			teamRow, err := resumTeam(ctx, tx, updated.TeamPublicID.String)
			if err != nil {
				return err
			}
			t := teamRow.toDomain()
			result.Team = &t
		}
		return nil
	})
	if err != nil {
		return game.Result{}, err
	}
	return result, nil
}

func (r *GameRepository) ListByPlayer(ctx context.Context, playerID string) ([]game.Game, error) {
	query, args, err := qb.Select(gameColumns...).From("games").
		Where(qb.Eq("player_public_id", playerID)).
		OrderBy("played_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list games by player: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
