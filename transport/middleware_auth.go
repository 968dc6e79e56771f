package transport

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	sessionapp "github.com/muhammadheryan/pos-terminal/application/session"
	"github.com/muhammadheryan/pos-terminal/constant"
	utilsContext "github.com/muhammadheryan/pos-terminal/utils/context"
	"github.com/muhammadheryan/pos-terminal/utils/errors"
)

// AuthMiddleware resolves the Bearer session id into the cashier session.
// It allows public endpoints (/login, /swagger/) without one.
func AuthMiddleware(sessionApp sessionapp.SessionApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Public paths
			path := r.URL.Path
			if isPublicPath(path) {
				next.ServeHTTP(w, r)
				return
			}

			// Check Authorization header
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			sessionID := strings.TrimPrefix(auth, "Bearer ")

			session, err := sessionApp.Resolve(r.Context(), sessionID)
			if err != nil {
				writeError(w, err)
				return
			}

			ctx := utilsContext.WithSession(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isPublicPath defines which endpoints are public (no auth required)
func isPublicPath(path string) bool {
	if strings.HasPrefix(path, "/swagger/") {
		return true
	}
	return path == "/login"
}
