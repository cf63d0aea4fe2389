package routehandlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/vitalvas/treemux/route"
)

// ErrInvalidTimeout is returned when TimeoutConfig.Duration is not greater
// than zero.
var ErrInvalidTimeout = errors.New("timeout: duration must be greater than zero")

// TimeoutConfig configures the Timeout middleware behaviour.
type TimeoutConfig struct {
	// Duration is the maximum time allowed for the endpoint to complete.
	// Must be greater than zero.
	Duration time.Duration

	// Message is the response body returned when the endpoint times out.
	// When empty, "503 service unavailable" is used.
	Message string
}

// TimeoutMiddleware returns a middleware that limits endpoint execution
// time. The endpoint's context carries the deadline, so well-behaved
// endpoints stop at their next suspension point; when the deadline
// expires before the endpoint returns, a 503 Service Unavailable response
// is produced instead, per the http.TimeoutHandler convention.
//
// It returns ErrInvalidTimeout if Duration is not greater than zero.
func TimeoutMiddleware[S any](cfg TimeoutConfig) (route.Middleware[S], error) {
	if cfg.Duration <= 0 {
		return nil, ErrInvalidTimeout
	}

	duration := cfg.Duration

	message := cfg.Message
	if message == "" {
		message = "503 service unavailable"
	}

	return func(next route.Endpoint[S]) route.Endpoint[S] {
		return route.EndpointFunc[S](func(ctx context.Context, req *route.Request[S]) (*route.Response, error) {
			ctx, cancel := context.WithTimeout(ctx, duration)
			defer cancel()

			resp, err := next.Apply(ctx, req)
			if errors.Is(err, context.DeadlineExceeded) {
				return route.Text(http.StatusServiceUnavailable, message), nil
			}

			return resp, err
		})
	}, nil
}
