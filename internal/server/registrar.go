package server

import "google.golang.org/grpc"

// Registrar attaches one gRPC service to a server.
// Each service package exposes one built from the AppContext.
type Registrar interface {
	Register(s grpc.ServiceRegistrar)
}
