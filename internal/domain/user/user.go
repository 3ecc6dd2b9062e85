package user

import (
	"context"

	"github.com/google/uuid"
)

// User is the external identity record. Accounts are issued elsewhere; this
// service only reads display fields and deletes the account together with
// its profile.
type User struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
}

type Directory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
