package migration

import (
	"context"
	"embed"
	"errors"

	"career-portal/internal/database"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var migrations embed.FS

// Up applies every pending migration embedded in the binary.
func Up(ctx context.Context, db database.DB) error {
	if db == nil || db.SQLDB() == nil {
		return errors.New("nil db")
	}
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db.SQLDB(), "sql")
}

// Version reports the current schema version.
func Version(ctx context.Context, db database.DB) (int64, error) {
	if db == nil || db.SQLDB() == nil {
		return 0, errors.New("nil db")
	}
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, db.SQLDB())
}
