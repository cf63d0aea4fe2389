package routehandlers

import (
	"context"
	"net/http"

	"github.com/vitalvas/treemux/route"
)

// RecoveryConfig configures the Recovery middleware behaviour.
type RecoveryConfig struct {
	// LogFunc is an optional callback invoked with the request method,
	// path and the recovered value when a panic occurs. When nil, no
	// logging is performed.
	LogFunc func(method, path string, err any)
}

// RecoveryMiddleware returns a middleware that recovers from panics in
// downstream endpoints. When a panic occurs it produces a 500 Internal
// Server Error response and optionally invokes LogFunc; the panic never
// reaches the transport layer or other in-flight requests.
func RecoveryMiddleware[S any](cfg RecoveryConfig) route.Middleware[S] {
	return func(next route.Endpoint[S]) route.Endpoint[S] {
		return route.EndpointFunc[S](func(ctx context.Context, req *route.Request[S]) (resp *route.Response, err error) {
			defer func() {
				if rec := recover(); rec != nil {
					if cfg.LogFunc != nil {
						cfg.LogFunc(req.Method, req.Path, rec)
					}

					resp = route.Text(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
					err = nil
				}
			}()

			return next.Apply(ctx, req)
		})
	}
}
