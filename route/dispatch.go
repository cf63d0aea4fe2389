package route

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
)

// Handle performs the full per-request sequence for a transport layer:
// match the method and path, construct the request value, invoke the
// endpoint, and map non-matches to plain status responses.
//
//   - A matched endpoint's response and error are returned untouched; the
//     router never inspects an endpoint failure, the transport maps it to
//     its own failure response.
//   - No match yields the NotFoundEndpoint when set, else a plain 404.
//   - A path match without a verb match yields the MethodNotAllowedEndpoint
//     when set, else a plain 405. Either way the Allow header lists the
//     matched node's registered verbs per RFC 9110 Section 10.2.1.
//
// ctx carries transport cancellation: when the client disconnects, the
// in-flight endpoint is cancelled cooperatively at its next ctx check.
func (t *Tree[S]) Handle(ctx context.Context, method, path string, header http.Header, body io.ReadCloser, state S) (*Response, error) {
	match := t.Match(method, path)

	req := NewRequest(strings.ToUpper(method), path, header, body, state)

	switch {
	case match.Err == nil:
		req.Params = match.Params
		return match.Endpoint.Apply(ctx, req)

	case errors.Is(match.Err, ErrMethodMismatch):
		resp, err := t.methodNotAllowed(ctx, req)
		if resp != nil {
			resp.Header.Set("Allow", strings.Join(match.Allow, ", "))
		}
		return resp, err

	default:
		if t.NotFoundEndpoint != nil {
			return t.NotFoundEndpoint.Apply(ctx, req)
		}
		return Text(http.StatusNotFound, "404 page not found"), nil
	}
}

func (t *Tree[S]) methodNotAllowed(ctx context.Context, req *Request[S]) (*Response, error) {
	if t.MethodNotAllowedEndpoint != nil {
		return t.MethodNotAllowedEndpoint.Apply(ctx, req)
	}

	return Text(http.StatusMethodNotAllowed, "405 method not allowed"), nil
}
