package route

import (
	"errors"
	"strings"
)

// ErrMethodMismatch is reported when a node matches the full request path
// but has neither the requested verb nor a wildcard-verb entry. Triggers
// 405 Method Not Allowed per RFC 9110 Section 15.5.6.
var ErrMethodMismatch = errors.New("method is not allowed")

// ErrNotFound is reported when no node's segment chain matches the request
// path. Triggers 404 Not Found per RFC 9110 Section 15.5.5.
var ErrNotFound = errors.New("no matching route was found")

// Tree is a frozen route tree, produced by Router.Build. It is read-only
// and safe for unsynchronized concurrent matching; the only mutable fields
// are the optional fallback endpoints below, which must be set before the
// first request is served.
type Tree[S any] struct {
	// NotFoundEndpoint, when non-nil, replaces the default 404 response
	// produced by Handle for unmatched paths.
	NotFoundEndpoint Endpoint[S]

	// MethodNotAllowedEndpoint, when non-nil, replaces the default 405
	// response produced by Handle. The Allow header is set on the
	// response (RFC 9110 Section 10.2.1) before it is returned.
	MethodNotAllowedEndpoint Endpoint[S]

	root *node[S]
}

// MatchResult is the outcome of matching one request against the tree.
// Err is nil for a match, ErrMethodMismatch when the path matched but the
// verb did not, and ErrNotFound otherwise.
type MatchResult[S any] struct {
	// Endpoint is the matched endpoint. Nil unless Err is nil.
	Endpoint Endpoint[S]

	// Params holds the captured path parameters in pattern declaration
	// order. Values are the exact path segment text, not percent-decoded.
	Params Params

	// Pattern is the registration pattern of the matched node.
	Pattern string

	// Allow lists the verbs registered at the matched node when Err is
	// ErrMethodMismatch, sorted, for the Allow response header.
	Allow []string

	// Err classifies the outcome: nil, ErrMethodMismatch or ErrNotFound.
	Err error
}

// Match walks the tree for the given method token and concrete request
// path. Literal children are tried before the capture child at every
// depth, depth-first, so literal routes always win over captures and a
// failed literal subtree falls back to the sibling capture. Trailing
// slashes are normalized away: "/users/" and "/users" match identically,
// and "/" addresses the root node with zero segments.
//
// Match never blocks and performs no allocation beyond the parameter
// bindings; the tree is never mutated.
func (t *Tree[S]) Match(verb, path string) MatchResult[S] {
	verb = strings.ToUpper(verb)
	segments := splitPath(path)

	var m matcher[S]
	if node, params, ok := m.walk(t.root, segments, verb, nil); ok {
		endpoint, _ := node.endpoint(verb)
		return MatchResult[S]{
			Endpoint: endpoint,
			Params:   params,
			Pattern:  node.pattern,
		}
	}

	if m.mismatch != nil {
		return MatchResult[S]{
			Pattern: m.mismatch.pattern,
			Allow:   m.mismatch.verbs(),
			Err:     ErrMethodMismatch,
		}
	}

	return MatchResult[S]{Err: ErrNotFound}
}

// matcher carries cross-branch state for one walk: the first fully
// path-matched node whose verb lookup failed, used for the 404/405 split.
type matcher[S any] struct {
	mismatch *node[S]
}

func (m *matcher[S]) walk(n *node[S], segments []string, verb string, params Params) (*node[S], Params, bool) {
	if len(segments) == 0 {
		if _, ok := n.endpoint(verb); ok {
			return n, params, true
		}

		// The path matched but the verb did not. Nodes without any
		// entries are pure intermediates and stay a 404.
		if m.mismatch == nil && n.hasEndpoints() {
			m.mismatch = n
		}

		return nil, nil, false
	}

	head, rest := segments[0], segments[1:]

	if child, ok := n.literals[head]; ok {
		if match, bound, ok := m.walk(child, rest, verb, params); ok {
			return match, bound, ok
		}
	}

	if n.capture != nil {
		// Full slice expression so sibling branches never share the
		// params backing array across backtracking.
		bound := append(params[:len(params):len(params)], Param{
			Name:  n.capture.seg.text,
			Value: head,
		})

		return m.walk(n.capture, rest, verb, bound)
	}

	return nil, nil, false
}

// RouteInfo describes one registered (verb, pattern) pair.
type RouteInfo struct {
	// Verb is the upper-case method token, or "*" for a wildcard entry.
	Verb string

	// Pattern is the joined registration pattern.
	Pattern string
}

// Routes lists every registered endpoint in depth-first pattern order,
// verb-specific entries before the wildcard entry at each node. Useful
// for startup logging and diagnostics.
func (t *Tree[S]) Routes() []RouteInfo {
	var out []RouteInfo

	t.root.walk(func(n *node[S]) {
		for _, verb := range n.verbs() {
			out = append(out, RouteInfo{Verb: verb, Pattern: n.pattern})
		}
		if n.all != nil {
			out = append(out, RouteInfo{Verb: "*", Pattern: n.pattern})
		}
	})

	return out
}
