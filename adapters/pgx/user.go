package pgx

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gatehouse-dev/gatehouse/core"
)

// CreateUser inserts the user if the username is free. The check and the
// insert are one statement, so two racing calls can never both win: the
// loser gets no row back and reports core.ErrUserExists.
func (a *Adapter) CreateUser(ctx context.Context, user *core.User) error {
	query := `INSERT INTO public.users (id, username, credential_hash)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (username) DO NOTHING
	          RETURNING created_at`

	var createdAt time.Time
	err := a.pool.QueryRow(ctx, query, user.ID, user.Username, user.CredentialHash).Scan(&createdAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return core.ErrUserExists
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			// id collision, or a schema where the unique constraint does
			// not match the ON CONFLICT target
			return core.ErrUserExists
		}
		return err
	}

	user.CreatedAt = createdAt
	return nil
}

func (a *Adapter) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	q := `SELECT id, username, credential_hash, created_at FROM public.users WHERE id = $1`

	user := &core.User{}
	err := a.pool.QueryRow(ctx, q, id).Scan(&user.ID, &user.Username, &user.CredentialHash, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (a *Adapter) GetUserByUsername(ctx context.Context, username string) (*core.User, error) {
	q := `SELECT id, username, credential_hash, created_at FROM public.users WHERE username = $1`

	user := &core.User{}
	err := a.pool.QueryRow(ctx, q, username).Scan(&user.ID, &user.Username, &user.CredentialHash, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (a *Adapter) UpdateCredentialHash(ctx context.Context, id, hash string) error {
	q := `UPDATE public.users SET credential_hash = $1 WHERE id = $2`

	tag, err := a.pool.Exec(ctx, q, hash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrUserNotFound
	}
	return nil
}
