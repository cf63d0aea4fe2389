package routehandlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/vitalvas/treemux/route"
)

// ErrInvalidFrameOption is returned when SecurityHeadersConfig.FrameOption is
// not one of the valid values: "DENY", "SAMEORIGIN", or empty string.
var ErrInvalidFrameOption = errors.New("security headers: frame option must be DENY, SAMEORIGIN, or empty")

// SecurityHeadersConfig configures the Security Headers middleware behaviour.
type SecurityHeadersConfig struct {
	// DisableContentTypeNosniff disables the X-Content-Type-Options: nosniff
	// header. The header is set by default (when false).
	DisableContentTypeNosniff bool

	// FrameOption sets the X-Frame-Options header value.
	// Valid values are "DENY", "SAMEORIGIN", or empty string to skip.
	// Defaults to "DENY".
	FrameOption string

	// ReferrerPolicy sets the Referrer-Policy header value.
	// Defaults to "strict-origin-when-cross-origin".
	ReferrerPolicy string

	// HSTSMaxAge sets the max-age directive for the Strict-Transport-Security
	// header in seconds. When zero, the header is not set.
	HSTSMaxAge int

	// HSTSIncludeSubDomains appends the includeSubDomains directive to the
	// Strict-Transport-Security header. Only effective when HSTSMaxAge > 0.
	HSTSIncludeSubDomains bool

	// ContentSecurityPolicy sets the Content-Security-Policy header.
	// When empty, the header is not set.
	ContentSecurityPolicy string
}

// SecurityHeadersMiddleware returns a middleware that sets common security
// response headers on every response the endpoint produces. Headers already
// set by the endpoint are left untouched.
//
// It returns ErrInvalidFrameOption if FrameOption is set to a value other
// than "DENY", "SAMEORIGIN", or empty string.
func SecurityHeadersMiddleware[S any](cfg SecurityHeadersConfig) (route.Middleware[S], error) {
	if cfg.FrameOption != "" && cfg.FrameOption != "DENY" && cfg.FrameOption != "SAMEORIGIN" {
		return nil, ErrInvalidFrameOption
	}

	if cfg.FrameOption == "" {
		cfg.FrameOption = "DENY"
	}

	if cfg.ReferrerPolicy == "" {
		cfg.ReferrerPolicy = "strict-origin-when-cross-origin"
	}

	var hstsValue string
	if cfg.HSTSMaxAge > 0 {
		hstsValue = fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubDomains {
			hstsValue += "; includeSubDomains"
		}
	}

	nosniff := !cfg.DisableContentTypeNosniff
	frameOption := cfg.FrameOption
	referrerPolicy := cfg.ReferrerPolicy
	contentSecurityPolicy := cfg.ContentSecurityPolicy

	return func(next route.Endpoint[S]) route.Endpoint[S] {
		return route.EndpointFunc[S](func(ctx context.Context, req *route.Request[S]) (*route.Response, error) {
			resp, err := next.Apply(ctx, req)
			if resp == nil {
				return resp, err
			}

			h := resp.Header

			if nosniff && h.Get("X-Content-Type-Options") == "" {
				h.Set("X-Content-Type-Options", "nosniff")
			}

			if h.Get("X-Frame-Options") == "" {
				h.Set("X-Frame-Options", frameOption)
			}

			if h.Get("Referrer-Policy") == "" {
				h.Set("Referrer-Policy", referrerPolicy)
			}

			if hstsValue != "" && h.Get("Strict-Transport-Security") == "" {
				h.Set("Strict-Transport-Security", hstsValue)
			}

			if contentSecurityPolicy != "" && h.Get("Content-Security-Policy") == "" {
				h.Set("Content-Security-Policy", contentSecurityPolicy)
			}

			return resp, err
		})
	}, nil
}
