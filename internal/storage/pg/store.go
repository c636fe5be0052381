package pg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agriscience/journal-api/internal/apperr"
)

const fkViolationCode = "23503"

// Store implements every storage capability against Postgres.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(pool *ConnectionPool) *Store {
	return &Store{db: pool.conn}
}

// constraintErr maps a foreign-key violation onto a ConflictError so the
// HTTP layer can answer 409 instead of 502.
func constraintErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == fkViolationCode {
		return apperr.NewConflict(op+" rejected by referential constraint", err)
	}
	return apperr.NewBackend(op, err)
}
