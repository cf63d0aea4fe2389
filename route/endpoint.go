package route

import "context"

// Endpoint is a unit of application logic bound to a (pattern, verb) pair.
//
// Apply transforms a request into a response, or fails with an error that
// the transport layer maps to a failure response. Implementations must be
// safe for concurrent use: the tree shares one Endpoint value across all
// in-flight requests. Apply should honor ctx cancellation at its blocking
// points; the dispatcher cancels ctx when the transport aborts the request.
type Endpoint[S any] interface {
	Apply(ctx context.Context, req *Request[S]) (*Response, error)
}

// EndpointFunc adapts an ordinary function to the Endpoint interface.
type EndpointFunc[S any] func(ctx context.Context, req *Request[S]) (*Response, error)

// Apply implements Endpoint by calling the function itself.
func (f EndpointFunc[S]) Apply(ctx context.Context, req *Request[S]) (*Response, error) {
	return f(ctx, req)
}

// Middleware wraps an Endpoint, returning an Endpoint with additional
// behaviour. Because the result satisfies the same contract, chains can
// wrap chains and the matcher never distinguishes bare endpoints from
// composed ones.
type Middleware[S any] func(next Endpoint[S]) Endpoint[S]

// Wrap pre-composes middleware around an endpoint. Middleware is applied
// so that the first listed middleware is the outermost: the request passes
// through mw[0] first and the response through mw[0] last.
func Wrap[S any](endpoint Endpoint[S], mw ...Middleware[S]) Endpoint[S] {
	for i := len(mw) - 1; i >= 0; i-- {
		endpoint = mw[i](endpoint)
	}

	return endpoint
}
