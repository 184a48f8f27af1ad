package db

import (
	"context"

	"github.com/degreedialog/advisor/internal/server/chats"
	"github.com/degreedialog/advisor/internal/server/users"
)

// Manager owns the long-lived store connection, acquired once at process
// start and shared by every request, and hands out the per-collection
// repositories.
type Manager interface {
	Users() users.Repository
	Chats() chats.Repository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
