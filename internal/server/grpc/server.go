// Package grpc runs the gRPC endpoint of the credential core: a standard
// health service plus a unary interceptor that guards every other
// registered service with the session store.
package grpc

import (
	"context"
	"net"

	"authcore/internal/logging"
	"authcore/internal/server/guard"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type GRPCServer struct {
	address  string
	sessions guard.Authorizer
	logger   logging.Logger
}

func NewGRPCServer(address string, logger logging.Logger, sessions guard.Authorizer) (*GRPCServer, error) {
	return &GRPCServer{
		address:  address,
		logger:   logger.With("module", "grpc_server"),
		sessions: sessions,
	}, nil
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.sessionTokenInterceptor))

	// The wider application registers its services here; the core itself
	// serves health checks only.
	healthpb.RegisterHealthServer(srv, health.NewServer())

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
