package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides the shared connection pool for all repositories.
// The statement ledger is append-only with single-statement writes, so no
// explicit transaction helpers are needed here.
type BaseRepository struct {
	Pool *pgxpool.Pool
}
