package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"apprev/internal/config"
	"apprev/internal/domain"
)

// NewDB creates a new PostgreSQL connection pool.
func NewDB(cfg *config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	return db, nil
}

// isDuplicate reports whether err is a unique-constraint violation whose
// constraint name mentions the given fragment.
func isDuplicate(err error, fragment string) bool {
	return err != nil &&
		strings.Contains(err.Error(), "duplicate key") &&
		strings.Contains(err.Error(), fragment)
}

// oneRowAffected maps a zero-row write to domain.ErrNotFound.
func oneRowAffected(res sql.Result) error {
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
