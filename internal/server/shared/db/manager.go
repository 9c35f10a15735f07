// Package db wires repository implementations to their storage backend and
// exposes a schema migration hook.
package db

import (
	"context"
	"database/sql"

	"github.com/dkotenko/botgate/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
}
