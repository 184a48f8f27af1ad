package mongox

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/degreedialog/advisor/internal/common"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no documents", mongo.ErrNoDocuments, common.ErrorNotFound},
		{"wrapped no documents", fmt.Errorf("find: %w", mongo.ErrNoDocuments), common.ErrorNotFound},
		{"duplicate key", mongo.CommandError{Code: 11000, Message: "E11000 duplicate key"}, common.ErrorAlreadyExists},
		{"unauthorized command", mongo.CommandError{Code: 13, Message: "not authorized on admin"}, common.ErrStoreAuthFailed},
		{"authentication failed", mongo.CommandError{Code: 18, Message: "Authentication failed"}, common.ErrStoreAuthFailed},
		{"deadline exceeded", context.DeadlineExceeded, common.ErrStoreUnavailable},
		{"client disconnected", mongo.ErrClientDisconnected, common.ErrStoreUnavailable},
		{"unknown driver error", errors.New("server selection error"), common.ErrStoreUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyError(tc.in)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if !errors.Is(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestClassifyError_KeepsDriverDetail(t *testing.T) {
	t.Parallel()

	got := ClassifyError(mongo.CommandError{Code: 18, Message: "Authentication failed"})
	if got == nil || got.Error() == common.ErrStoreAuthFailed.Error() {
		t.Fatalf("expected wrapped driver detail, got %v", got)
	}
}
