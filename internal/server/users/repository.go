package users

import (
	"context"
)

// Repository persists user records. Implementations return only sentinel
// errors from internal/common: ErrorNotFound for missing records, the store
// sub-kinds (ErrStoreUnavailable, ErrStoreAuthFailed) for backend failures.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUserName(ctx context.Context, userName string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
