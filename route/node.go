package route

import (
	"fmt"
	"sort"
)

// node is a single position in the route tree. Literal children are keyed
// by their exact segment text; at most one capture child exists per node,
// tried only after every literal child has failed. Nodes are mutated during
// registration only and become read-only once the tree is built.
type node[S any] struct {
	seg segment

	// byVerb maps an upper-case HTTP method token to its endpoint.
	byVerb map[string]Endpoint[S]

	// all is the wildcard-verb endpoint, used when byVerb has no entry
	// for the requested method.
	all Endpoint[S]

	literals map[string]*node[S]
	capture  *node[S]

	// pattern is the full joined pattern that first created this node,
	// kept for error messages and route listing.
	pattern string
}

func newNode[S any](seg segment, pattern string) *node[S] {
	return &node[S]{seg: seg, pattern: pattern}
}

// child returns the child matching seg, creating it when absent. Existing
// children with an identical segment are always reused, so overlapping
// registrations merge instead of duplicating branches. Registering a
// capture child whose name differs from an existing capture child at the
// same position is ambiguous and returns an error.
func (n *node[S]) child(seg segment, pattern string) (*node[S], error) {
	if seg.capture {
		if n.capture != nil {
			if n.capture.seg.text != seg.text {
				return nil, fmt.Errorf("route: conflicting captures {%s} and {%s} at %q (first registered by %q)",
					n.capture.seg.text, seg.text, pattern, n.capture.pattern)
			}
			return n.capture, nil
		}

		n.capture = newNode[S](seg, pattern)
		return n.capture, nil
	}

	if child, ok := n.literals[seg.text]; ok {
		return child, nil
	}

	if n.literals == nil {
		n.literals = make(map[string]*node[S])
	}

	child := newNode[S](seg, pattern)
	n.literals[seg.text] = child
	return child, nil
}

// setVerb registers an endpoint for the given method token. The last
// registration for a (node, verb) pair wins.
func (n *node[S]) setVerb(verb string, endpoint Endpoint[S]) {
	if n.byVerb == nil {
		n.byVerb = make(map[string]Endpoint[S])
	}

	n.byVerb[verb] = endpoint
}

// endpoint resolves the endpoint for a method token, falling back to the
// wildcard slot when no exact entry exists.
func (n *node[S]) endpoint(verb string) (Endpoint[S], bool) {
	if ep, ok := n.byVerb[verb]; ok {
		return ep, true
	}

	if n.all != nil {
		return n.all, true
	}

	return nil, false
}

// hasEndpoints reports whether any verb or wildcard entry is registered
// at this node. Nodes without entries are pure intermediates and never
// produce a method-not-allowed result.
func (n *node[S]) hasEndpoints() bool {
	return len(n.byVerb) > 0 || n.all != nil
}

// verbs returns the sorted method tokens registered at this node, used to
// populate the Allow header on 405 responses.
func (n *node[S]) verbs() []string {
	out := make([]string, 0, len(n.byVerb))
	for verb := range n.byVerb {
		out = append(out, verb)
	}

	sort.Strings(out)
	return out
}

// walk visits this node and every descendant in depth-first order,
// literal children (sorted by text) before the capture child.
func (n *node[S]) walk(fn func(*node[S])) {
	fn(n)

	keys := make([]string, 0, len(n.literals))
	for key := range n.literals {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		n.literals[key].walk(fn)
	}

	if n.capture != nil {
		n.capture.walk(fn)
	}
}
