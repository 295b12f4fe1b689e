// Package server holds the HTTP server configuration.
//
// The start command owns the Fiber application; this package only defines
// where it listens and whether requests must carry the API key.
//
// # Usage
//
//	app.Listen(cfg.Server.Address())
package server
