package chats

import (
	"context"
)

// Repository persists chat exchanges. Implementations return only sentinel
// errors from internal/common.
type Repository interface {
	Create(ctx context.Context, exchange *Exchange) error
	// ListByUser returns the user's exchanges newest first.
	ListByUser(ctx context.Context, userID string) ([]*Exchange, error)
	// DeleteByUser removes all of the user's exchanges and reports how many
	// were deleted.
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}
