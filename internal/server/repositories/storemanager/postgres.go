package storemanager

import (
	"context"
	"database/sql"

	"authcore/internal/dbx"
	"authcore/internal/server/migrations"
	"authcore/internal/server/repositories/salts"
	"authcore/internal/server/repositories/tokens"
	"authcore/internal/server/repositories/users"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresStoreManager struct {
}

func NewPostgresStoreManager() *PostgresStoreManager {
	return &PostgresStoreManager{}
}

func (m *PostgresStoreManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresStoreManager) Salts(db dbx.DBTX) salts.Repository {
	return salts.NewPostgresRepository(db)
}

func (m *PostgresStoreManager) Tokens(db dbx.DBTX) tokens.Repository {
	return tokens.NewPostgresRepository(db)
}

func (m *PostgresStoreManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
