package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/degreedialog/advisor/internal/common"
	"github.com/degreedialog/advisor/internal/server/users"
)

type ctxKey string

const userKey ctxKey = "user"

const bearerPrefix = "Bearer "

// requireAuth checks "Authorization: Bearer <token>", resolves the token to a
// user record, and stores the record in the request context. All credential
// failures answer 401 with one uniform message; store failures answer 503.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			s.writeError(w, r, common.ErrorUnauthorized)
			return
		}

		user, err := s.users.Authorize(r.Context(), strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userFromContext returns the user stored by requireAuth, or nil outside an
// authenticated route.
func userFromContext(ctx context.Context) *users.User {
	user, _ := ctx.Value(userKey).(*users.User)
	return user
}
