// Package routehandlers provides middleware for the route package's
// Endpoint model. Every middleware is generic over the application state
// type and composes through route.Wrap or Router.Use.
//
// # Recovery Middleware
//
// RecoveryMiddleware converts a panic in a downstream endpoint into a
// 500 Internal Server Error response, so one failing request never takes
// down its serving task:
//
//	r.Use(routehandlers.RecoveryMiddleware[*App](routehandlers.RecoveryConfig{
//	    LogFunc: func(method, path string, err any) {
//	        log.Printf("panic in %s %s: %v", method, path, err)
//	    },
//	}))
//
// # Request ID Middleware
//
// RequestIDMiddleware generates or propagates an X-Request-ID header
// (UUID v4 by default, RFC 9562) and exposes the ID through the context:
//
//	r.Use(routehandlers.RequestIDMiddleware[*App](routehandlers.RequestIDConfig{
//	    TrustIncoming: true,
//	}))
//
// # Trace Middleware
//
// TraceMiddleware logs one line when a request enters the chain and one
// when it leaves, with the status (or error) and elapsed time:
//
//	mw, err := routehandlers.TraceMiddleware[*App](routehandlers.TraceConfig{
//	    LogFunc: func(line string) { log.Print(line) },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r.Use(mw)
//
// # Timeout Middleware
//
// TimeoutMiddleware puts a deadline on the endpoint's context and maps a
// deadline overrun to 503 Service Unavailable.
//
// # Security Headers Middleware
//
// SecurityHeadersMiddleware sets standard security response headers
// (X-Content-Type-Options, X-Frame-Options, Referrer-Policy, optional
// HSTS and CSP) on responses that do not already carry them.
package routehandlers
