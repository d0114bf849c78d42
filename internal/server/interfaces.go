package server

// Server is the lifecycle contract for the transports exposing the sync API.
//
// RunServer blocks until the server stops serving. Shutdown drains in-flight
// sync requests and releases the listener.
type Server interface {
	RunServer()
	Shutdown()
}
