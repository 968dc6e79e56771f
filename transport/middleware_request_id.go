package transport

import (
	"net/http"

	"github.com/google/uuid"
	utilsContext "github.com/muhammadheryan/pos-terminal/utils/context"
)

const headerRequestID = "X-Request-ID"

// RequestIDMiddleware keeps the caller's X-Request-ID or assigns a new one, and
// echoes it on the response.
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(headerRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(headerRequestID, id)
			next.ServeHTTP(w, r.WithContext(utilsContext.WithRequestID(r.Context(), id)))
		})
	}
}
