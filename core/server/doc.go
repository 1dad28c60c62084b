// Package server holds the HTTP server configuration and builds the Fiber
// application shared by all features.
//
// New installs the global middleware chain: ray id, request logging, then API
// key authentication. Features are mounted afterwards through core/loader.
package server
