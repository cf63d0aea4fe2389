package route

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
)

// Response is the value an endpoint produces for the transport layer to
// serialize. The body is either absent (nil Body), fully buffered, or a
// lazily consumed stream; the transport reads Body to completion and is
// responsible for closing it when it implements io.Closer.
type Response struct {
	// StatusCode is the HTTP status code, e.g. 200.
	StatusCode int

	// Header is the outbound header collection.
	Header http.Header

	// Body produces the response body. Nil means an empty body.
	Body io.Reader
}

// NewResponse returns an empty-bodied response with the given status code
// and an initialized header collection.
func NewResponse(status int) *Response {
	return &Response{
		StatusCode: status,
		Header:     make(http.Header),
	}
}

// Empty returns a response with the given status and no body.
func Empty(status int) *Response {
	return NewResponse(status)
}

// Text returns a response with a buffered text body. The Content-Type
// header is set to "text/plain; charset=utf-8".
func Text(status int, body string) *Response {
	resp := NewResponse(status)
	resp.Header.Set("Content-Type", "text/plain; charset=utf-8")
	resp.Header.Set("Content-Length", strconv.Itoa(len(body)))
	resp.Body = bytes.NewReader([]byte(body))
	return resp
}

// Bytes returns a response with a buffered byte body and the given
// content type. An empty contentType leaves the header unset.
func Bytes(status int, contentType string, body []byte) *Response {
	resp := NewResponse(status)
	if contentType != "" {
		resp.Header.Set("Content-Type", contentType)
	}
	resp.Header.Set("Content-Length", strconv.Itoa(len(body)))
	resp.Body = bytes.NewReader(body)
	return resp
}

// Stream returns a response whose body is produced lazily from r. No
// Content-Length is set; the transport decides how to frame the stream.
func Stream(status int, contentType string, r io.Reader) *Response {
	resp := NewResponse(status)
	if contentType != "" {
		resp.Header.Set("Content-Type", contentType)
	}
	resp.Body = r
	return resp
}
