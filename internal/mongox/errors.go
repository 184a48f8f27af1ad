// Package mongox translates mongo driver errors into the closed sentinel set
// from internal/common, so services branch on tagged kinds instead of
// matching driver message text.
package mongox

import (
	"errors"
	"fmt"

	"github.com/degreedialog/advisor/internal/common"
	"go.mongodb.org/mongo-driver/mongo"
)

// Mongo command error codes that indicate the store rejected our credentials
// rather than being unreachable.
const (
	codeUnauthorized         = 13
	codeAuthenticationFailed = 18
)

// ClassifyError maps a driver error to a sentinel from internal/common,
// wrapping so the original driver text survives for the HTTP layer's
// secondary details field:
//
//   - no documents               -> common.ErrorNotFound
//   - duplicate key              -> common.ErrorAlreadyExists
//   - command codes 13/18        -> common.ErrStoreAuthFailed
//   - anything else driver-level -> common.ErrStoreUnavailable
//
// Timeouts, network failures and disconnected clients all land in
// ErrStoreUnavailable: transient, retry after backoff. Auth failures are kept
// distinct so an operator can tell "down" from "misconfigured".
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return common.ErrorNotFound
	}

	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", common.ErrorAlreadyExists, err)
	}

	var srvErr mongo.ServerError
	if errors.As(err, &srvErr) &&
		(srvErr.HasErrorCode(codeUnauthorized) || srvErr.HasErrorCode(codeAuthenticationFailed)) {
		return fmt.Errorf("%w: %v", common.ErrStoreAuthFailed, err)
	}

	// Timeouts, network failures, disconnected clients, server selection
	// errors: all transient from the caller's point of view.
	return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
}
