package routehandlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/vitalvas/treemux/route"
)

type requestIDKey struct{}

// RequestIDFromContext returns the request ID stored in the context by
// RequestIDMiddleware. Returns an empty string if no ID is present.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}

	return ""
}

// RequestIDConfig configures the Request ID middleware behaviour.
type RequestIDConfig struct {
	// HeaderName overrides the header used to propagate the request ID.
	// Defaults to "X-Request-ID" when empty.
	HeaderName string

	// GenerateFunc is an optional callback that returns a new unique ID.
	// Defaults to GenerateUUIDv4.
	GenerateFunc func() string

	// TrustIncoming, when true, reuses an existing request ID from the
	// incoming request header instead of generating a new one.
	TrustIncoming bool
}

// RequestIDMiddleware returns a middleware that generates or propagates a
// request ID header. The ID is set on the request header (for downstream
// middleware), on the response header (for the caller) and in the context
// passed to the endpoint.
func RequestIDMiddleware[S any](cfg RequestIDConfig) route.Middleware[S] {
	headerName := cfg.HeaderName
	if headerName == "" {
		headerName = "X-Request-ID"
	}

	generate := cfg.GenerateFunc
	if generate == nil {
		generate = GenerateUUIDv4
	}

	trustIncoming := cfg.TrustIncoming

	return func(next route.Endpoint[S]) route.Endpoint[S] {
		return route.EndpointFunc[S](func(ctx context.Context, req *route.Request[S]) (*route.Response, error) {
			id := ""
			if trustIncoming {
				id = req.Header.Get(headerName)
			}

			if id == "" {
				id = generate()
			}

			if id != "" {
				req.Header.Set(headerName, id)
				ctx = context.WithValue(ctx, requestIDKey{}, id)
			}

			resp, err := next.Apply(ctx, req)
			if resp != nil && id != "" {
				resp.Header.Set(headerName, id)
			}

			return resp, err
		})
	}
}

// GenerateUUIDv4 returns a new UUID v4 string.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.4
func GenerateUUIDv4() string {
	return uuid.New().String()
}

// GenerateUUIDv7 returns a new UUID v7 string. UUIDs are time-ordered:
// IDs generated later sort lexicographically after earlier ones.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.7
func GenerateUUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}
