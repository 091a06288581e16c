// Package server holds the HTTP server configuration.
//
// The application entry point (cmd/start.go) builds the Fiber app from this
// configuration: the bind address, the CORS origins, the request body limit
// and the debug flag.
//
// # Defaults
//
// The server listens on 127.0.0.1:5000, accepts cross-origin requests from
// any origin and takes request bodies up to 64 MB.
package server
