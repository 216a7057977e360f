// Package storemanager hands out store implementations bound to a database
// handle, so services can run a group of store calls on *sql.DB or inside
// a transaction without knowing the backend.
package storemanager

import (
	"context"
	"database/sql"

	"authcore/internal/dbx"
	"authcore/internal/server/repositories/salts"
	"authcore/internal/server/repositories/tokens"
	"authcore/internal/server/repositories/users"
)

type StoreManager interface {
	Users(db dbx.DBTX) users.Repository
	Salts(db dbx.DBTX) salts.Repository
	Tokens(db dbx.DBTX) tokens.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
