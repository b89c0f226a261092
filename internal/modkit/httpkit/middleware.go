package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"tunepipe/internal/platform/net/middleware"
)

// DefaultRequestTimeout bounds ordinary JSON endpoints. Streaming routes opt
// out and rely on the transcoder's own delivery deadline instead
const DefaultRequestTimeout = 30 * time.Second

// RequestTimeout cancels the request context after d. Apply per route group,
// not in CommonStack, so long-lived deliveries stay un-deadlined
func RequestTimeout(d time.Duration) func(http.Handler) http.Handler {
	return middleware.Timeout(d)
}

// CommonStack returns a baseline per module middleware slice
// compose with extra middleware as needed in main
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.RequestScope(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 5 * time.Second}),

		// cross-origin (tweak config in main if needed)
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
	}
}
