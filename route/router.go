package route

import (
	"errors"
	"net/http"
	"strings"
)

// ErrFrozen is returned by Build, and recorded for any registration made,
// after the tree has already been built.
var ErrFrozen = errors.New("route: tree already built")

// Router builds a route tree. Registration is a single-threaded setup
// phase: patterns are inserted through At and the verb methods, then Build
// freezes the tree for concurrent read-only serving. Registration errors
// (malformed patterns, capture conflicts) accumulate on the router and are
// all reported by Build, so a misconfigured table never starts serving.
type Router[S any] struct {
	root       *node[S]
	middleware []Middleware[S]
	errs       []error
	built      bool
}

// New returns an empty route tree builder for shared state type S.
func New[S any]() *Router[S] {
	return &Router[S]{
		root: newNode[S](segment{}, "/"),
	}
}

// At returns a registration cursor bound to the node the pattern addresses,
// creating intermediate nodes as needed. The pattern is joined onto the
// root prefix; nested At calls on the returned Path join further, and the
// resulting tree is identical to registering the joined pattern directly.
//
//	users := r.At("/users")
//	users.Get(listUsers)
//	users.At("/{id}").Get(showUser) // same node as r.At("/users/{id}")
func (r *Router[S]) At(pattern string) *Path[S] {
	return r.path(joinPaths("", pattern), r.root)
}

// Use appends tree-wide middleware. It is applied to every registered
// endpoint (verb-specific and wildcard entries alike) when Build runs,
// first middleware outermost. The tree's fallback endpoints are not
// wrapped; compose them with Wrap if they need the same chain.
func (r *Router[S]) Use(mw ...Middleware[S]) {
	r.middleware = append(r.middleware, mw...)
}

// Build finalizes registration and freezes the tree. It fails if any
// registration recorded an error, joining all of them so every offending
// pattern is reported at once. After a successful Build the router must
// not be used for further registration.
func (r *Router[S]) Build() (*Tree[S], error) {
	if r.built {
		return nil, ErrFrozen
	}

	if len(r.errs) > 0 {
		return nil, errors.Join(r.errs...)
	}

	r.built = true

	if len(r.middleware) > 0 {
		r.root.walk(func(n *node[S]) {
			for verb, ep := range n.byVerb {
				n.byVerb[verb] = Wrap(ep, r.middleware...)
			}
			if n.all != nil {
				n.all = Wrap(n.all, r.middleware...)
			}
		})
	}

	return &Tree[S]{root: r.root}, nil
}

// path resolves (creating as needed) the node addressed by the joined
// pattern, walking from the given start node using only the sub-pattern
// beyond the start node's own prefix. Errors are recorded on the router
// and produce a dead cursor whose registrations are ignored.
func (r *Router[S]) path(pattern string, start *node[S]) *Path[S] {
	if r.built {
		r.errs = append(r.errs, ErrFrozen)
		return &Path[S]{router: r, prefix: pattern, err: ErrFrozen}
	}

	return r.walkTo(pattern, pattern, start)
}

func (r *Router[S]) walkTo(sub, full string, start *node[S]) *Path[S] {
	segments, err := parsePattern(sub)
	if err != nil {
		// Point the error at the full joined pattern, not just the
		// sub-pattern the nested cursor saw.
		var perr *PatternError
		if errors.As(err, &perr) && perr.Pattern != full {
			err = &PatternError{Pattern: full, Segment: perr.Segment, Err: perr.Err}
		}

		r.errs = append(r.errs, err)
		return &Path[S]{router: r, prefix: full, err: err}
	}

	current := start
	for _, seg := range segments {
		next, err := current.child(seg, full)
		if err != nil {
			r.errs = append(r.errs, err)
			return &Path[S]{router: r, prefix: full, err: err}
		}
		current = next
	}

	return &Path[S]{router: r, prefix: full, node: current}
}

// Path is a registration cursor bound to one tree node. The verb methods
// register endpoints on that node; At descends further. A Path created
// from a malformed pattern is inert: its registrations are dropped and the
// recorded error surfaces from Build.
type Path[S any] struct {
	router *Router[S]
	node   *node[S]
	prefix string
	err    error
}

// At joins pattern onto this cursor's prefix and returns a cursor for the
// resulting node. Joining uses single-slash normalization, so nesting is
// exactly equivalent to registering the concatenated pattern.
func (p *Path[S]) At(pattern string) *Path[S] {
	if p.err != nil {
		return p
	}

	if p.router.built {
		p.router.errs = append(p.router.errs, ErrFrozen)
		return &Path[S]{router: p.router, prefix: p.prefix, err: ErrFrozen}
	}

	return p.router.walkTo(pattern, joinPaths(p.prefix, pattern), p.node)
}

// Under joins pattern onto this cursor's prefix, yields the resulting
// cursor to fn for registration, and returns the current cursor for
// further chaining.
func (p *Path[S]) Under(pattern string, fn func(*Path[S])) *Path[S] {
	fn(p.At(pattern))
	return p
}

// Method registers endpoint for the given HTTP method token at this
// cursor's node. The token is upper-cased. Registering the same verb at
// the same node twice replaces the earlier endpoint.
func (p *Path[S]) Method(verb string, endpoint Endpoint[S]) *Path[S] {
	if p.err != nil {
		return p
	}

	p.node.setVerb(strings.ToUpper(verb), endpoint)
	return p
}

// All registers the wildcard-verb endpoint at this cursor's node, matched
// when no verb-specific entry exists for the request method.
func (p *Path[S]) All(endpoint Endpoint[S]) *Path[S] {
	if p.err != nil {
		return p
	}

	p.node.all = endpoint
	return p
}

// Get registers endpoint for GET requests.
func (p *Path[S]) Get(endpoint Endpoint[S]) *Path[S] {
	return p.Method(http.MethodGet, endpoint)
}

// Post registers endpoint for POST requests.
func (p *Path[S]) Post(endpoint Endpoint[S]) *Path[S] {
	return p.Method(http.MethodPost, endpoint)
}

// Put registers endpoint for PUT requests.
func (p *Path[S]) Put(endpoint Endpoint[S]) *Path[S] {
	return p.Method(http.MethodPut, endpoint)
}

// Delete registers endpoint for DELETE requests.
func (p *Path[S]) Delete(endpoint Endpoint[S]) *Path[S] {
	return p.Method(http.MethodDelete, endpoint)
}

// Patch registers endpoint for PATCH requests.
func (p *Path[S]) Patch(endpoint Endpoint[S]) *Path[S] {
	return p.Method(http.MethodPatch, endpoint)
}

// Head registers endpoint for HEAD requests.
func (p *Path[S]) Head(endpoint Endpoint[S]) *Path[S] {
	return p.Method(http.MethodHead, endpoint)
}

// Options registers endpoint for OPTIONS requests.
func (p *Path[S]) Options(endpoint Endpoint[S]) *Path[S] {
	return p.Method(http.MethodOptions, endpoint)
}

// GetError returns the first error recorded through this cursor, if any.
func (p *Path[S]) GetError() error {
	return p.err
}
