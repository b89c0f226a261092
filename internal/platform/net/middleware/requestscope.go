package middleware

import (
	"net/http"

	"tunepipe/internal/platform/logger"
	pnet "tunepipe/internal/platform/net"
)

// RequestScope copies the chi request id (and ref kind, when a route set one)
// into the logger's context keys so logger.C enriches every downstream event.
// Mount after RequestID
func RequestScope() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), pnet.RefKind(ctx))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
