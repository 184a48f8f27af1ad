package httpapi

import (
	"errors"
	"net/http"

	"github.com/degreedialog/advisor/internal/common"
)

// errorResponse is the uniform error envelope. Details carries secondary
// driver text on store failures; no raw store error ever becomes the primary
// message.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Operator guidance for the two 503 sub-kinds. Deliberately different texts:
// "unavailable" is transient and worth retrying, "auth failed" means the
// deployment is misconfigured and retries will not help.
const (
	msgStoreUnavailable = "chat store unavailable, check store connectivity and credentials"
	msgStoreAuthFailed  = "chat store rejected authentication, check the configured store credentials"
)

// writeError maps a classified error to its HTTP status and envelope.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: common.ErrorValidation.Error()})

	case errors.Is(err, common.ErrorUsernameTaken):
		writeJSON(w, http.StatusConflict, errorResponse{Error: common.ErrorUsernameTaken.Error()})

	case errors.Is(err, common.ErrorEmailTaken):
		writeJSON(w, http.StatusConflict, errorResponse{Error: common.ErrorEmailTaken.Error()})

	case errors.Is(err, common.ErrorAlreadyExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: common.ErrorAlreadyExists.Error()})

	case errors.Is(err, common.ErrorInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: common.ErrorInvalidCredentials.Error()})

	// Missing, malformed and expired tokens plus unknown subjects all share
	// one message so the response leaks nothing.
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: common.ErrorUnauthorized.Error()})

	case errors.Is(err, common.ErrStoreUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error:   msgStoreUnavailable,
			Details: err.Error(),
		})

	case errors.Is(err, common.ErrStoreAuthFailed):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error:   msgStoreAuthFailed,
			Details: err.Error(),
		})

	default:
		s.logger.Error(r.Context(), "unexpected error", "path", r.URL.Path, "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: common.ErrorInternal.Error()})
	}
}
