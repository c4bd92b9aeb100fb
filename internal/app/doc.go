// Package app provides application initialization and lifecycle management.
// It wires configuration, logging, observability, the catalog store, the
// export service, and the HTTP transport together at startup, and handles
// graceful shutdown on SIGINT/SIGTERM.
//
// The typical entry point:
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// Initialization errors are returned to the caller; the package never calls
// os.Exit() itself.
package app
