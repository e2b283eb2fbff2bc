package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/Janxz01/PersonalNoteHub/internal/common"
	"github.com/Janxz01/PersonalNoteHub/internal/server/models"
)

type ctxKey string

const userKey ctxKey = "user"

// authenticate resolves the bearer token into the account and stores it on
// the request context. Everything behind it can assume a valid caller.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AccessTokenHeaderName)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.writeError(r.Context(), w, common.ErrorInvalidToken)
			return
		}

		user, err := s.users.Resolve(r.Context(), token)
		if err != nil {
			s.writeError(r.Context(), w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUser(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}
