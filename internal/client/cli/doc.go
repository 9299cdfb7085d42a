// Package cli provides the interactive bullet journal command-line client.
//
// It wires configuration, the session store, the API client and the feature
// services, and runs a REPL. Every screen command goes through the route
// guard, so protected screens print a login hint instead of calling the
// backend when nobody is logged in.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
