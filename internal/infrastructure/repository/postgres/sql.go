package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pqCode(err) == pqUniqueViolation
}

// withTx runs fn in a transaction and commits when fn returns nil.
func withTx(ctx context.Context, db *sqlx.DB, name string, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for %s: %w", name, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", name, err)
	}
	return nil
}

// namedExec binds :name parameters against arg and rebinds for the driver.
func namedExec(ctx context.Context, tx *sqlx.Tx, query string, arg any) (sql.Result, error) {
	bound, args, err := sqlx.Named(query, arg)
	if err != nil {
		return nil, err
	}
	return tx.ExecContext(ctx, tx.Rebind(bound), args...)
}

// resumTeam recomputes a team's total from its assigned players. The team
// row is locked first so the sum runs in a fresh statement snapshot.
func resumTeam(ctx context.Context, tx *sqlx.Tx, teamID string) (teamTableModel, error) {
	const lockQuery = `SELECT public_id FROM teams WHERE public_id = $1 FOR UPDATE`
	var locked string
	if err := tx.GetContext(ctx, &locked, lockQuery, teamID); err != nil {
		return teamTableModel{}, fmt.Errorf("lock team %s: %w", teamID, err)
	}

	resumQuery := `
UPDATE teams
SET total_points = (
        SELECT COALESCE(SUM(p.total_points), 0)
        FROM players p
        WHERE p.team_public_id = teams.public_id
    ),
    updated_at = NOW()
WHERE public_id = $1
RETURNING ` + joinColumns(teamColumns)

	var row teamTableModel
	if err := tx.GetContext(ctx, &row, resumQuery, teamID); err != nil {
		return teamTableModel{}, fmt.Errorf("resum team %s: %w", teamID, err)
	}
	return row, nil
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
