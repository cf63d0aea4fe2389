// Package httpserver connects a frozen route tree to a net/http listener.
//
// The route package's core never touches the wire: it consumes a method,
// a path, headers and a body handle, and produces a response value. This
// package is the transport side of that contract. It owns everything the
// core deliberately does not: the TCP listener, per-request body size
// limits, graceful shutdown, and the optional cleartext HTTP/2 upgrade.
//
//	tree, err := r.Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg, err := httpserver.LoadConfig("server.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	srv, err := httpserver.New(tree, app, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv.LogFunc = func(line string) { log.Print(line) }
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	if err := srv.ListenAndServe(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// The YAML config file maps one key per Config field:
//
//	addr: ":8080"
//	read_header_timeout: 10s
//	shutdown_timeout: 30s
//	max_body_bytes: 1048576
//	enable_h2c: true
//	hostname_env: [POD_NAME, HOSTNAME]
package httpserver
