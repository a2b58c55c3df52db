// Package server holds configuration for the HTTP admin surface.
//
// The server itself is assembled by the serve command; this package only
// exposes the settings (listen port, API key) consumed there and by the
// auth middleware.
package server
