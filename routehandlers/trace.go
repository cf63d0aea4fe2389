package routehandlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vitalvas/treemux/route"
)

// ErrTraceNoLogFunc is returned when TraceConfig.LogFunc is nil.
var ErrTraceNoLogFunc = errors.New("trace: log function must not be nil")

// TraceConfig configures the Trace middleware behaviour.
type TraceConfig struct {
	// LogFunc receives one formatted line per event: an inbound line when
	// the request enters the chain and an outbound line with the status
	// (or error) and elapsed time when it leaves. Required.
	LogFunc func(line string)
}

// TraceMiddleware returns a middleware that logs request entry and exit:
//
//	--> GET /users/42
//	<-- GET /users/42: 200 (in 3ms)
//
// A failed endpoint logs the error in place of the status code. It returns
// ErrTraceNoLogFunc if LogFunc is nil.
func TraceMiddleware[S any](cfg TraceConfig) (route.Middleware[S], error) {
	if cfg.LogFunc == nil {
		return nil, ErrTraceNoLogFunc
	}

	logf := cfg.LogFunc

	return func(next route.Endpoint[S]) route.Endpoint[S] {
		return route.EndpointFunc[S](func(ctx context.Context, req *route.Request[S]) (*route.Response, error) {
			logf(fmt.Sprintf("--> %s %s", req.Method, req.Path))
			start := time.Now()

			resp, err := next.Apply(ctx, req)
			elapsed := time.Since(start)

			switch {
			case err != nil:
				logf(fmt.Sprintf("<-- %s %s: error: %v (in %dms)", req.Method, req.Path, err, elapsed.Milliseconds()))
			case resp != nil:
				logf(fmt.Sprintf("<-- %s %s: %d (in %dms)", req.Method, req.Path, resp.StatusCode, elapsed.Milliseconds()))
			default:
				logf(fmt.Sprintf("<-- %s %s: no response (in %dms)", req.Method, req.Path, elapsed.Milliseconds()))
			}

			return resp, err
		})
	}, nil
}
