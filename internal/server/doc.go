// Package server runs the HTTP and gRPC transports of fin-tracker.
//
// [NewServer] creates one server per configured address. [Servers.Run]
// serves them side by side until the context is cancelled or any of them
// fails, then drains all of them within [ShutdownTimeout].
package server
