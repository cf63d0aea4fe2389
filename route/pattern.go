package route

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCaptureName is returned (wrapped in a PatternError) when a pattern
// contains a capture segment with no name, such as "/users/{}".
var ErrEmptyCaptureName = errors.New("capture name must not be empty")

// ErrUnterminatedCapture is returned (wrapped in a PatternError) when a
// capture segment opens a brace without closing it, such as "/users/{id".
var ErrUnterminatedCapture = errors.New("capture is missing closing brace")

// ErrMalformedSegment is returned (wrapped in a PatternError) when a segment
// mixes capture syntax with literal text, such as "/users/x{id}" or
// "/users/id}". Braces are reserved for capture syntax; there is no escape
// sequence for a literal brace.
var ErrMalformedSegment = errors.New("segment mixes literal text and capture syntax")

// PatternError reports a malformed route pattern. It points at the exact
// pattern and segment that failed so registration mistakes are caught
// before the server starts accepting connections.
type PatternError struct {
	// Pattern is the full pattern string passed to registration.
	Pattern string

	// Segment is the offending path segment within Pattern.
	Segment string

	// Err is the underlying cause, one of ErrEmptyCaptureName,
	// ErrUnterminatedCapture or ErrMalformedSegment.
	Err error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("route: invalid pattern %q: segment %q: %v", e.Pattern, e.Segment, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// segment is a single compiled pattern segment. A capture segment matches
// any one non-empty path segment and binds it under its name; a literal
// segment matches exactly its own text, case preserved.
type segment struct {
	text    string
	capture bool
}

// parsePattern compiles a pattern string into its ordered segment list.
// The pattern is split on "/" and empty segments (leading, trailing or
// doubled slashes) are dropped, so "/users/", "users" and "//users//" all
// compile to the same single-segment list. A pattern consisting only of
// slashes (or the empty string) compiles to an empty list and addresses
// the tree root.
func parsePattern(pattern string) ([]segment, error) {
	parts := strings.Split(pattern, "/")

	segments := make([]segment, 0, len(parts))

	for _, part := range parts {
		if part == "" {
			continue
		}

		seg, err := parseSegment(part)
		if err != nil {
			return nil, &PatternError{Pattern: pattern, Segment: part, Err: err}
		}

		segments = append(segments, seg)
	}

	return segments, nil
}

// parseSegment classifies one non-empty path segment as a literal or a
// capture. Capture syntax is the whole segment wrapped in braces: "{name}".
func parseSegment(part string) (segment, error) {
	if strings.HasPrefix(part, "{") {
		if !strings.HasSuffix(part, "}") {
			return segment{}, ErrUnterminatedCapture
		}

		name := part[1 : len(part)-1]
		if name == "" {
			return segment{}, ErrEmptyCaptureName
		}

		if strings.ContainsAny(name, "{}") {
			return segment{}, ErrMalformedSegment
		}

		return segment{text: name, capture: true}, nil
	}

	// Braces anywhere else in the segment are a registration mistake,
	// not a literal to match.
	if strings.ContainsAny(part, "{}") {
		return segment{}, ErrMalformedSegment
	}

	return segment{text: part}, nil
}

// joinPaths joins a prefix and a sub-pattern with exactly one slash between
// them. The result of joining "/users" and "/{id}" is byte-for-byte the
// pattern "/users/{id}", so nested registration and flat registration
// compile identically.
func joinPaths(base, extend string) string {
	switch {
	case base == "":
		if strings.HasPrefix(extend, "/") {
			return extend
		}
		return "/" + extend
	case strings.HasSuffix(base, "/") && strings.HasPrefix(extend, "/"):
		return base + extend[1:]
	case strings.HasSuffix(base, "/") || strings.HasPrefix(extend, "/"):
		return base + extend
	default:
		return base + "/" + extend
	}
}

// splitPath splits a concrete request path into its non-empty segments.
// Shares the empty-segment handling of parsePattern so trailing slashes
// never affect matching.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")

	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}

	return out
}
