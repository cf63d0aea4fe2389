package route

import (
	"io"
	"net/http"
)

// Param is a single captured path parameter.
type Param struct {
	// Name is the capture name from the pattern, without braces.
	Name string

	// Value is the exact path segment text that matched. Percent-encoded
	// octets are passed through untouched; decoding is the transport
	// layer's concern.
	Value string
}

// Params holds captured path parameters in pattern declaration order.
type Params []Param

// Get returns the value bound to name and whether it exists.
func (p Params) Get(name string) (string, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}

	return "", false
}

// Value returns the value bound to name, or the empty string when the
// parameter is absent.
func (p Params) Value(name string) string {
	value, _ := p.Get(name)
	return value
}

// Request carries one inbound request through matching and dispatch.
// It is created per request and discarded after the endpoint returns.
//
// The State field is the process-wide shared application state, passed by
// reference to every concurrent request. The router never inspects it; if
// it is mutable, synchronizing access is the state type's responsibility.
type Request[S any] struct {
	// Method is the upper-case HTTP method token.
	Method string

	// Path is the original request path as received from the transport,
	// still percent-encoded.
	Path string

	// Params are the captured path parameters in pattern order.
	Params Params

	// Header is the inbound header collection.
	Header http.Header

	// Body is the request body stream. It is single-consumer: the
	// dispatcher hands it to exactly one endpoint chain and reading it
	// twice is a programming error. A nil body is replaced by
	// http.NoBody at construction.
	Body io.ReadCloser

	// State is the shared application state.
	State S
}

// NewRequest constructs a request value for dispatch. Transports normally
// go through Tree.Handle instead; NewRequest is exported for endpoint and
// middleware tests.
func NewRequest[S any](method, path string, header http.Header, body io.ReadCloser, state S) *Request[S] {
	if header == nil {
		header = make(http.Header)
	}

	if body == nil {
		body = http.NoBody
	}

	return &Request[S]{
		Method: method,
		Path:   path,
		Header: header,
		Body:   body,
		State:  state,
	}
}

// Param returns the value of a single captured parameter by name and a
// boolean indicating whether the capture exists.
func (r *Request[S]) Param(name string) (string, bool) {
	return r.Params.Get(name)
}
