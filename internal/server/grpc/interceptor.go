package grpc

import (
	"context"
	"strings"

	"authcore/internal/common"
	"authcore/internal/server/guard"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const healthServicePrefix = "/grpc.health.v1.Health/"

// sessionTokenInterceptor guards every non-health method: the caller must
// present "Bearer <token>" in the authorization metadata, the token must
// resolve to an active session, and the owning user is attached to the
// handler context.
func (s *GRPCServer) sessionTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if strings.HasPrefix(info.FullMethod, healthServicePrefix) {
		return handler(ctx, req)
	}

	var headerValue string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AuthorizationHeaderName)
		if len(values) > 0 {
			headerValue = values[0]
		}
	}

	user, ok := s.sessions.Authorize(ctx, headerValue)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "invalid session")
	}

	return handler(guard.NewContext(ctx, user), req)
}
