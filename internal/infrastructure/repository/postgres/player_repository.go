package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-madness/internal/domain/player"
	qb "github.com/riskibarqy/fantasy-madness/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) CreateMany(ctx context.Context, players []player.Player) error {
	return withTx(ctx, r.db, "player pool insert", func(tx *sqlx.Tx) error {
		const insertQuery = `
INSERT INTO players (public_id, name, source_team, seed)
VALUES (:public_id, :name, :source_team, :seed)`

		for _, p := range players {
			if _, err := namedExec(ctx, tx, insertQuery, playerRowFromDomain(p)); err != nil {
				return fmt.Errorf("insert player %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerColumns...).From("players").
		Where(qb.Eq("public_id", playerID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	return r.selectPlayers(ctx, "list players", qb.Select(playerColumns...).From("players").OrderBy("id"))
}

func (r *PlayerRepository) ListAvailable(ctx context.Context) ([]player.Player, error) {
	return r.selectPlayers(ctx, "list available players", qb.Select(playerColumns...).From("players").
		Where(qb.IsNull("team_public_id")).
		OrderBy("COALESCE(seed, 0) ASC", "id ASC"))
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	return r.selectPlayers(ctx, "list players by team", qb.Select(playerColumns...).From("players").
		Where(qb.Eq("team_public_id", teamID)).
		OrderBy("id"))
}

func (r *PlayerRepository) ListByLeague(ctx context.Context, leagueID string) ([]player.Player, error) {
	return r.selectPlayers(ctx, "list players by league", qb.Select(playerColumns...).From("players").
		Where(qb.Expr("team_public_id IN (SELECT public_id FROM teams WHERE league_public_id = ?)", leagueID)).
		OrderBy("id"))
}

func (r *PlayerRepository) Eliminate(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Update("players").
		Set("is_eliminated", true).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", playerID)).
		Suffix("RETURNING " + joinColumns(playerColumns)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build eliminate player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("eliminate player: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) selectPlayers(ctx context.Context, op string, b *qb.SelectBuilder) ([]player.Player, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
