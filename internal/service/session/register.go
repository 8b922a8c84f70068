package session

import (
	"google.golang.org/grpc"

	"github.com/oggyb/movie-social/internal/app"
	pb "github.com/oggyb/movie-social/internal/proto/session"
)

// Registrar ties the Session service into the gRPC server
type Registrar struct {
	appCtx *app.AppContext
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

func (r *Registrar) Register(s grpc.ServiceRegistrar) {
	pb.RegisterSessionServiceServer(s, NewSessionService(r.appCtx))
}
