package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// Unary adapts a typed server method to a grpc.MethodHandler, running the
// server's interceptor chain when one is installed.
func Unary[S, Req, Resp any](fullMethod string, call func(S, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(S), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(S), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Invoke performs a unary call with the JSON codec.
func Invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
