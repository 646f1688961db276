package auth

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/MikeMC777/cafelove/internal/apperr"
)

const (
	gateServiceName  = "cafelove.auth.v1.AuthGate"
	verifyFullMethod = "/" + gateServiceName + "/Verify"
)

// GateServer is the server side of the AuthGate gRPC service.
type GateServer interface {
	Verify(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

var gateServiceDesc = grpc.ServiceDesc{
	ServiceName: gateServiceName,
	HandlerType: (*GateServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Verify", Handler: verifyHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "auth/v1/auth.proto",
}

func verifyHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GateServer).Verify(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: verifyFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(GateServer).Verify(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// RegisterGateServer exposes v on s.
func RegisterGateServer(s grpc.ServiceRegistrar, v Verifier) {
	s.RegisterService(&gateServiceDesc, &gateServer{verifier: v})
}

type gateServer struct {
	verifier Verifier
}

func (g *gateServer) Verify(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	if in.GetValue() == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	uid, err := g.verifier.Verify(ctx, in.GetValue())
	if err != nil {
		var e *apperr.Error
		if errors.As(err, &e) && e.Kind == apperr.KindAuthentication {
			return nil, status.Error(codes.Unauthenticated, e.Message)
		}
		return nil, status.Errorf(codes.Internal, "verify error: %v", err)
	}
	return wrapperspb.String(uid), nil
}

// RemoteVerifier verifies tokens through a remote AuthGate.
type RemoteVerifier struct {
	conn    grpc.ClientConnInterface
	timeout time.Duration
}

// DialRemoteVerifier connects lazily; the first RPC establishes the link.
func DialRemoteVerifier(addr string) (*RemoteVerifier, *grpc.ClientConn, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, err
	}
	return NewRemoteVerifier(conn), conn, nil
}

func NewRemoteVerifier(conn grpc.ClientConnInterface) *RemoteVerifier {
	return &RemoteVerifier{conn: conn, timeout: 3 * time.Second}
}

func (r *RemoteVerifier) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", apperr.Authentication("missing token")
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out := new(wrapperspb.StringValue)
	if err := r.conn.Invoke(ctx, verifyFullMethod, wrapperspb.String(token), out, grpc.WaitForReady(true)); err != nil {
		st, _ := status.FromError(err)
		if st.Code() == codes.Unauthenticated {
			return "", apperr.Authentication(st.Message())
		}
		return "", apperr.Persistence("verify token", err)
	}
	return out.GetValue(), nil
}
