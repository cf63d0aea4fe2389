package route

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// named returns an endpoint that records its own name in the response body.
func named(name string) Endpoint[struct{}] {
	return EndpointFunc[struct{}](func(_ context.Context, _ *Request[struct{}]) (*Response, error) {
		return Text(http.StatusOK, name), nil
	})
}

// matchedName resolves a match result back to the name recorded by named.
func matchedName(t *testing.T, m MatchResult[struct{}]) string {
	t.Helper()
	require.NoError(t, m.Err)

	resp, err := m.Endpoint.Apply(context.Background(), &Request[struct{}]{})
	require.NoError(t, err)

	buf := make([]byte, 64)
	n, _ := resp.Body.Read(buf)
	return string(buf[:n])
}

func TestRouterBuild(t *testing.T) {
	t.Run("empty router builds", func(t *testing.T) {
		tree, err := New[struct{}]().Build()
		require.NoError(t, err)
		require.NotNil(t, tree)
	})

	t.Run("second build fails", func(t *testing.T) {
		r := New[struct{}]()
		_, err := r.Build()
		require.NoError(t, err)

		_, err = r.Build()
		assert.ErrorIs(t, err, ErrFrozen)
	})

	t.Run("registration after build is rejected", func(t *testing.T) {
		r := New[struct{}]()
		_, err := r.Build()
		require.NoError(t, err)

		p := r.At("/late")
		assert.ErrorIs(t, p.GetError(), ErrFrozen)
	})

	t.Run("malformed pattern fails build with location", func(t *testing.T) {
		r := New[struct{}]()
		r.At("/users/{}").Get(named("bad"))

		_, err := r.Build()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyCaptureName)
		assert.Contains(t, err.Error(), `"/users/{}"`)
	})

	t.Run("all pattern errors are reported together", func(t *testing.T) {
		r := New[struct{}]()
		r.At("/a/{").Get(named("a"))
		r.At("/b/{}").Get(named("b"))

		_, err := r.Build()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnterminatedCapture)
		assert.ErrorIs(t, err, ErrEmptyCaptureName)
	})

	t.Run("conflicting capture names fail build", func(t *testing.T) {
		r := New[struct{}]()
		r.At("/users/{id}").Get(named("by-id"))
		r.At("/users/{name}").Get(named("by-name"))

		_, err := r.Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "{id}")
		assert.Contains(t, err.Error(), "{name}")
	})

	t.Run("same capture name merges", func(t *testing.T) {
		r := New[struct{}]()
		r.At("/users/{id}").Get(named("show"))
		r.At("/users/{id}").Put(named("update"))

		tree, err := r.Build()
		require.NoError(t, err)
		assert.Equal(t, "show", matchedName(t, tree.Match(http.MethodGet, "/users/1")))
		assert.Equal(t, "update", matchedName(t, tree.Match(http.MethodPut, "/users/1")))
	})
}

func TestRouterPrefixJoin(t *testing.T) {
	t.Run("nested registration equals flat registration", func(t *testing.T) {
		nested := New[struct{}]()
		nested.At("/users").At("/{id}").At("/posts").Get(named("posts"))

		flat := New[struct{}]()
		flat.At("/users/{id}/posts").Get(named("posts"))

		nt, err := nested.Build()
		require.NoError(t, err)
		ft, err := flat.Build()
		require.NoError(t, err)

		assert.Equal(t, nt.Routes(), ft.Routes())

		nm := nt.Match(http.MethodGet, "/users/7/posts")
		fm := ft.Match(http.MethodGet, "/users/7/posts")
		require.NoError(t, nm.Err)
		require.NoError(t, fm.Err)
		assert.Equal(t, fm.Params, nm.Params)
		assert.Equal(t, fm.Pattern, nm.Pattern)
	})

	t.Run("slash normalization in joins", func(t *testing.T) {
		r := New[struct{}]()
		r.At("/users/").At("/{id}").Get(named("show"))

		tree, err := r.Build()
		require.NoError(t, err)

		m := tree.Match(http.MethodGet, "/users/42")
		require.NoError(t, m.Err)
		assert.Equal(t, "/users/{id}", m.Pattern)
	})

	t.Run("cursor on same pattern reuses the node", func(t *testing.T) {
		r := New[struct{}]()
		r.At("/users").Get(named("list"))
		r.At("/users").Post(named("create"))

		tree, err := r.Build()
		require.NoError(t, err)
		require.Len(t, tree.Routes(), 2)
	})

	t.Run("under yields the nested cursor", func(t *testing.T) {
		r := New[struct{}]()
		r.At("/user").
			Get(named("index")).
			Under("/{id}", func(user *Path[struct{}]) {
				user.Get(named("show")).
					Post(named("update")).
					Delete(named("destroy"))
			})

		tree, err := r.Build()
		require.NoError(t, err)

		assert.Equal(t, "index", matchedName(t, tree.Match(http.MethodGet, "/user")))
		assert.Equal(t, "show", matchedName(t, tree.Match(http.MethodGet, "/user/3")))
		assert.Equal(t, "destroy", matchedName(t, tree.Match(http.MethodDelete, "/user/3")))
	})
}

func TestRouterRegistration(t *testing.T) {
	t.Run("last registration wins", func(t *testing.T) {
		r := New[struct{}]()
		r.At("/users").Get(named("first"))
		r.At("/users").Get(named("second"))

		tree, err := r.Build()
		require.NoError(t, err)
		assert.Equal(t, "second", matchedName(t, tree.Match(http.MethodGet, "/users")))
		require.Len(t, tree.Routes(), 1)
	})

	t.Run("method token is upper-cased", func(t *testing.T) {
		r := New[struct{}]()
		r.At("/users").Method("get", named("list"))

		tree, err := r.Build()
		require.NoError(t, err)
		assert.Equal(t, "list", matchedName(t, tree.Match(http.MethodGet, "/users")))
	})

	t.Run("verb helpers register their method", func(t *testing.T) {
		r := New[struct{}]()
		p := r.At("/x")
		p.Get(named("GET"))
		p.Post(named("POST"))
		p.Put(named("PUT"))
		p.Delete(named("DELETE"))
		p.Patch(named("PATCH"))
		p.Head(named("HEAD"))
		p.Options(named("OPTIONS"))

		tree, err := r.Build()
		require.NoError(t, err)

		for _, verb := range []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"} {
			assert.Equal(t, verb, matchedName(t, tree.Match(verb, "/x")), verb)
		}
	})

	t.Run("dead cursor drops registrations", func(t *testing.T) {
		r := New[struct{}]()
		p := r.At("/bad/{")
		p.Get(named("x")).At("/more").Post(named("y"))
		require.Error(t, p.GetError())

		_, err := r.Build()
		assert.ErrorIs(t, err, ErrUnterminatedCapture)
	})
}

func TestRouterUse(t *testing.T) {
	tag := func(s string) Middleware[struct{}] {
		return func(next Endpoint[struct{}]) Endpoint[struct{}] {
			return EndpointFunc[struct{}](func(ctx context.Context, req *Request[struct{}]) (*Response, error) {
				resp, err := next.Apply(ctx, req)
				if resp != nil {
					resp.Header.Add("X-Tag", s)
				}
				return resp, err
			})
		}
	}

	t.Run("middleware wraps every endpoint at build", func(t *testing.T) {
		r := New[struct{}]()
		r.Use(tag("outer"), tag("inner"))
		r.At("/a").Get(named("a"))
		r.At("/b").All(named("b"))

		tree, err := r.Build()
		require.NoError(t, err)

		for _, path := range []string{"/a", "/b"} {
			resp, err := tree.Handle(context.Background(), http.MethodGet, path, nil, nil, struct{}{})
			require.NoError(t, err)
			// Inner middleware adds its header first on the way out.
			assert.Equal(t, []string{"inner", "outer"}, resp.Header.Values("X-Tag"), path)
		}
	})
}
