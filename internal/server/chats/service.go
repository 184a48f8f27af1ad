// Package chats implements the conversation flow: forward a user message to
// the configured LLM provider and keep the exchange history in the store.
package chats

import (
	"context"
	"time"

	"github.com/degreedialog/advisor/internal/common"
	"github.com/degreedialog/advisor/internal/logging"
	"github.com/degreedialog/advisor/internal/server/llm"
	"github.com/google/uuid"
)

type Service struct {
	repo     Repository
	provider llm.Provider
	logger   logging.Logger
}

func NewService(repo Repository, provider llm.Provider, logger logging.Logger) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		logger:   logger.With("module", "chat_service"),
	}
}

// Send forwards the message to the provider and returns the reply.
// Persistence is best-effort: once the provider has answered, a store write
// failure is logged and the reply is still returned to the caller.
func (s *Service) Send(ctx context.Context, userID, message string) (string, error) {
	if message == "" {
		return "", common.ErrorValidation
	}

	reply, err := s.provider.Complete(ctx, message)
	if err != nil {
		s.logger.Error(ctx, "provider request failed", "error", err.Error())
		return "", common.ErrorInternal
	}

	exchange := &Exchange{
		ID:        uuid.NewString(),
		UserID:    userID,
		Message:   message,
		Reply:     reply,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, exchange); err != nil {
		s.logger.Warn(ctx, "failed to persist exchange, reply still returned",
			"user_id", userID, "error", err.Error())
	}

	return reply, nil
}

// History returns the user's exchanges newest first.
func (s *Service) History(ctx context.Context, userID string) ([]*Exchange, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Clear deletes the user's history and returns the number of removed
// exchanges.
func (s *Service) Clear(ctx context.Context, userID string) (int64, error) {
	return s.repo.DeleteByUser(ctx, userID)
}
