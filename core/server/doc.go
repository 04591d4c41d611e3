// Package server runs the service's HTTP surface (health probes and the
// account admin endpoint) with graceful shutdown.
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	g.Go(srv.Run(ctx, mux))
//
// Run returns nil when ctx is cancelled and the server drained within the
// shutdown timeout.
package server
