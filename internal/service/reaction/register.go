package reaction

import (
	"google.golang.org/grpc"

	"github.com/oggyb/movie-social/internal/app"
	pb "github.com/oggyb/movie-social/internal/proto/reaction"
)

// Registrar ties the Reaction service into the gRPC server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the Reaction service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the Reaction service implementation to the gRPC server
func (r *Registrar) Register(s grpc.ServiceRegistrar) {
	pb.RegisterReactionServiceServer(s, NewReactionService(r.appCtx))
}
