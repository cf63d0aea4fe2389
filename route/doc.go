// Package route implements a tree-based request router and dispatcher,
// generic over a caller-supplied shared application state type.
//
// The package implements routing semantics based on:
//   - RFC 9110 (HTTP Semantics): method tokens, 404/405 split, Allow header
//   - RFC 3986 (URIs): path segments, percent-encoding pass-through
//
// Routes are registered on a Router during a single-threaded setup phase
// and compiled into an immutable Tree. Matching a request walks the tree
// in O(path segments) with no locking, because nothing is mutated after
// Build.
//
// # Registration
//
// At returns a cursor for a path pattern; the verb methods bind endpoints
// to it. Cursors nest, joining their prefixes with single-slash
// normalization, so grouped registration is exactly equivalent to flat
// registration:
//
//	r := route.New[*App]()
//	users := r.At("/users")
//	users.Get(listUsers)
//	users.Post(createUser)
//	users.At("/{id}").
//		Get(showUser).
//		Put(updateUser).
//		Delete(destroyUser)
//
//	tree, err := r.Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Patterns
//
// A pattern is a "/"-separated list of segments. A segment wrapped in
// braces, {name}, is a capture: it matches any single non-empty path
// segment and binds its exact text under the name. Any other segment is a
// literal, matched case-sensitively. Braces are reserved for capture
// syntax; a segment mixing braces with literal text is rejected at Build.
//
// Literal children always win over a capture at the same position, so
// with both /users/new and /users/{id} registered, /users/new reaches the
// literal route and every other segment binds to id.
//
// # Endpoints and state
//
// An Endpoint transforms a Request into a Response or an error. The plain
// function shape is adapted by EndpointFunc; middleware composes through
// Wrap, and composed chains satisfy the same interface, so the tree never
// distinguishes handler shapes:
//
//	func showUser(ctx context.Context, req *route.Request[*App]) (*route.Response, error) {
//		id, _ := req.Param("id")
//		user, err := req.State.DB.User(ctx, id)
//		if err != nil {
//			return nil, err
//		}
//		return route.Text(http.StatusOK, user.Name), nil
//	}
//
// The type parameter is the shared application state, passed by reference
// to every request. The router never inspects it.
//
// # Dispatch
//
// Tree.Handle bundles match, request construction and invocation for a
// transport layer, mapping a missed path to 404 and a missed verb to 405
// with the Allow header set. Endpoint errors pass through untouched.
//
// See the httpserver package for a net/http transport built on Handle.
package route
