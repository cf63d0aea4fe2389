package httpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/vitalvas/treemux/route"
)

// Server binds a frozen route tree and its shared application state to
// net/http. It implements http.Handler, so it can also be mounted inside
// an existing server or exercised with httptest.
type Server[S any] struct {
	// LogFunc is an optional sink for server log lines: the route table
	// at startup, listen/shutdown events and per-request dispatch
	// failures. When nil, the server is silent.
	LogFunc func(line string)

	tree     *route.Tree[S]
	state    S
	cfg      Config
	hostname string
}

// New returns a server for the given tree and shared state. It returns
// ErrNoAddr when the config has no listen address, or the os.Hostname
// error when no hostname can be resolved.
func New[S any](tree *route.Tree[S], state S, cfg Config) (*Server[S], error) {
	if cfg.Addr == "" {
		return nil, ErrNoAddr
	}

	hostname, err := cfg.resolveHostname()
	if err != nil {
		return nil, err
	}

	return &Server[S]{
		tree:     tree,
		state:    state,
		cfg:      cfg.withDefaults(),
		hostname: hostname,
	}, nil
}

// ServeHTTP adapts one inbound net/http request onto the route tree. The
// core receives the escaped (still percent-encoded) path, the request
// context drives cooperative cancellation, and the body is wrapped with
// the configured size limit before any endpoint can read it.
func (s *Server[S]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body := r.Body
	if s.cfg.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, body, s.cfg.MaxBodyBytes)
	}

	resp, err := s.tree.Handle(r.Context(), r.Method, r.URL.EscapedPath(), r.Header, body, s.state)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	header := w.Header()
	for key, values := range resp.Header {
		header[key] = values
	}
	header.Set("X-Server-Hostname", s.hostname)

	w.WriteHeader(resp.StatusCode)

	if resp.Body != nil {
		if _, err := io.Copy(w, resp.Body); err != nil {
			s.logf("write %s %s: %v", r.Method, r.URL.Path, err)
		}

		if closer, ok := resp.Body.(io.Closer); ok {
			closer.Close()
		}
	}
}

// writeError maps an endpoint failure to a response. The error contents
// are logged, never sent to the client; a body over the configured size
// limit becomes 413 instead of 500.
func (s *Server[S]) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.logf("%s %s: %v", r.Method, r.URL.Path, err)

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
		return
	}

	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled, then shuts down gracefully within the shutdown timeout.
func (s *Server[S]) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}

	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled. The registered route table is
// logged once at startup through LogFunc.
func (s *Server[S]) Serve(ctx context.Context, ln net.Listener) error {
	for _, info := range s.tree.Routes() {
		s.logf("route: %s %s", info.Verb, info.Pattern)
	}

	srv := &http.Server{
		Handler:           s.handler(),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()

	s.logf("listen(%s)", ln.Addr())

	select {
	case err := <-errc:
		return err

	case <-ctx.Done():
		s.logf("shutdown(%s)", ln.Addr())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}

		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	}
}

// handler returns the outer handler chain: the server itself, wrapped for
// cleartext HTTP/2 when enabled.
func (s *Server[S]) handler() http.Handler {
	if s.cfg.EnableH2C {
		return h2c.NewHandler(s, &http2.Server{})
	}

	return s
}

func (s *Server[S]) logf(format string, args ...any) {
	if s.LogFunc != nil {
		s.LogFunc(fmt.Sprintf(format, args...))
	}
}
