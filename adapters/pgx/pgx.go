package pgx

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gatehouse-dev/gatehouse/core"
)

// Adapter is the Postgres-backed user store.
type Adapter struct {
	pool *pgxpool.Pool
}

var _ core.UserStore = (*Adapter)(nil)

func New(pool *pgxpool.Pool) *Adapter {
	return &Adapter{
		pool: pool,
	}
}
