package gateway

import (
	"context"
	"net/http"
	"strings"

	"github.com/dwikikusuma/shopping-hub/internal/identity/domain"
)

type ctxKey int

const identityKey ctxKey = iota

func identityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(domain.Identity)
	return id, ok
}

// authed resolves the bearer credential before the handler runs; every cart
// and order operation is scoped to the identity it yields.
func (s *Server) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bearer := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if bearer == r.Header.Get("Authorization") {
			bearer = "" // header missing or not a bearer scheme
		}

		id, err := s.identity.Authenticate(r.Context(), bearer)
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), identityKey, id)))
	}
}

// adminOnly additionally gates on the ADMIN role.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return s.authed(func(w http.ResponseWriter, r *http.Request) {
		id, _ := identityFrom(r.Context())
		if err := s.identity.RequireRole(id, domain.RoleAdmin); err != nil {
			s.respondError(w, r, err)
			return
		}
		next(w, r)
	})
}
