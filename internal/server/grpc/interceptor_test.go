package grpc

import (
	"context"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"authcore/internal/common"
	"authcore/internal/logging"
	"authcore/internal/server/guard"
	"authcore/internal/server/models"
)

// ---- test logger ----

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (nopLogger) With(...any) logging.Logger            { return nopLogger{} }

type fakeAuthorizer struct {
	user *models.User
	ok   bool

	gotHeader string
}

func (f *fakeAuthorizer) Authorize(ctx context.Context, headerValue string) (*models.User, bool) {
	f.gotHeader = headerValue
	return f.user, f.ok
}

// helper to build server
func newTestServer(sessions guard.Authorizer) *GRPCServer {
	return &GRPCServer{
		logger:   nopLogger{},
		sessions: sessions,
	}
}

func TestInterceptor_HealthService_AllowsWithoutToken(t *testing.T) {
	s := newTestServer(&fakeAuthorizer{ok: false})

	ctx := context.Background()
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}
	handlerCalled := false

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		handlerCalled = true
		return "ok", nil
	}

	resp, err := s.sessionTokenInterceptor(ctx, nil, info, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !handlerCalled {
		t.Fatal("handler was not called")
	}
	if resp != "ok" {
		t.Fatalf("unexpected handler resp: %v", resp)
	}
}

func TestInterceptor_MissingToken(t *testing.T) {
	s := newTestServer(&fakeAuthorizer{ok: false})

	ctx := context.Background()
	info := &grpc.UnaryServerInfo{FullMethod: "/app.Service/Method"}

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	_, err := s.sessionTokenInterceptor(ctx, nil, info, h)
	if err == nil {
		t.Fatal("expected error")
	}
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
}

func TestInterceptor_RejectedToken(t *testing.T) {
	auth := &fakeAuthorizer{ok: false}
	s := newTestServer(auth)

	md := metadata.New(map[string]string{
		common.AuthorizationHeaderName: "Bearer jwt-revoked",
	})
	ctx := metadata.NewIncomingContext(context.Background(), md)
	info := &grpc.UnaryServerInfo{FullMethod: "/app.Service/Method"}

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called for rejected token")
		return nil, nil
	}

	_, err := s.sessionTokenInterceptor(ctx, nil, info, h)
	if err == nil {
		t.Fatal("expected error")
	}
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
	if auth.gotHeader != "Bearer jwt-revoked" {
		t.Fatalf("authorizer got header %q", auth.gotHeader)
	}
}

func TestInterceptor_ValidToken_AttachesUser(t *testing.T) {
	alice := &models.User{ID: "user-123", Email: "alice@example.com"}
	s := newTestServer(&fakeAuthorizer{user: alice, ok: true})

	md := metadata.New(map[string]string{
		common.AuthorizationHeaderName: "Bearer jwt-valid",
	})
	ctx := metadata.NewIncomingContext(context.Background(), md)
	info := &grpc.UnaryServerInfo{FullMethod: "/app.Service/Method"}

	var gotUser *models.User
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		gotUser, _ = guard.UserFromContext(ctx)
		return "ok", nil
	}

	resp, err := s.sessionTokenInterceptor(ctx, nil, info, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "ok" {
		t.Fatalf("unexpected handler resp: %v", resp)
	}
	if gotUser != alice {
		t.Fatalf("user not propagated in context: got %+v", gotUser)
	}
}
