// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation through the X-API-Key header or a bearer token.
//     An empty key leaves the API open.
//   - rayid: tags every request with a ray id, stored in the request locals
//     and echoed in the X-Ray-ID response header for tracing.
//
// Register rayid first so that auth failures are traceable too.
package middleware
