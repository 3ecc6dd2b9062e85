package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khanhvu/devconnect/internal/domain/user"
	"github.com/khanhvu/devconnect/pkg/apperror"
)

// postgresUserDirectory reads display fields for the populate join and
// deletes accounts when a profile owner removes themselves. Accounts are
// created by the external identity provider, never here.
type postgresUserDirectory struct {
	db *pgxpool.Pool
}

func NewPostgresUserDirectory(db *pgxpool.Pool) user.Directory {
	return &postgresUserDirectory{db: db}
}

func (r *postgresUserDirectory) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `SELECT id, name, avatar FROM users WHERE id = $1`

	u := &user.User{}
	err := r.db.QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.Avatar)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("user", id.String())
		}
		return nil, mapStoreError("failed to query user", err)
	}
	return u, nil
}

func (r *postgresUserDirectory) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*user.User, error) {
	users := make(map[uuid.UUID]*user.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	builder := psql.Select("id", "name", "avatar").
		From("users").
		Where(sq.Eq{"id": ids})

	query, args, _ := builder.ToSql()
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapStoreError("failed to query users", err)
	}
	defer rows.Close()

	for rows.Next() {
		u := &user.User{}
		if err := rows.Scan(&u.ID, &u.Name, &u.Avatar); err != nil {
			return nil, mapStoreError("failed to scan user row", err)
		}
		users[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError("error iterating user rows", err)
	}
	return users, nil
}

func (r *postgresUserDirectory) Delete(ctx context.Context, id uuid.UUID) error {
	// unconditional: deleting an absent account is a success
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapStoreError("failed to delete user", err)
	}
	return nil
}
