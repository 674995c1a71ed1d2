package wire

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "availability.v1.AvailabilityService"

// Full method names, shared with the interceptors and the web bridge.
const (
	MethodRegister                     = "/" + ServiceName + "/Register"
	MethodLogin                        = "/" + ServiceName + "/Login"
	MethodGetUnavailabilityForMonth    = "/" + ServiceName + "/GetUnavailabilityForMonth"
	MethodGetCurrentUserUnavailability = "/" + ServiceName + "/GetCurrentUserUnavailability"
	MethodToggleUnavailability         = "/" + ServiceName + "/ToggleUnavailability"
)

type AvailabilityServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	GetUnavailabilityForMonth(context.Context, *GetUnavailabilityForMonthRequest) (*GetUnavailabilityForMonthResponse, error)
	GetCurrentUserUnavailability(context.Context, *GetCurrentUserUnavailabilityRequest) (*GetCurrentUserUnavailabilityResponse, error)
	ToggleUnavailability(context.Context, *ToggleUnavailabilityRequest) (*ToggleUnavailabilityResponse, error)
}

func RegisterAvailabilityServer(s grpc.ServiceRegistrar, srv AvailabilityServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type methodHandler = func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error)

func unary[Req any](fullMethod string, call func(AvailabilityServer, context.Context, *Req) (any, error)) methodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AvailabilityServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(srv.(AvailabilityServer), ctx, req.(*Req))
		})
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AvailabilityServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Register",
			Handler: unary[RegisterRequest](MethodRegister,
				func(s AvailabilityServer, ctx context.Context, r *RegisterRequest) (any, error) {
					return s.Register(ctx, r)
				}),
		},
		{
			MethodName: "Login",
			Handler: unary[LoginRequest](MethodLogin,
				func(s AvailabilityServer, ctx context.Context, r *LoginRequest) (any, error) {
					return s.Login(ctx, r)
				}),
		},
		{
			MethodName: "GetUnavailabilityForMonth",
			Handler: unary[GetUnavailabilityForMonthRequest](MethodGetUnavailabilityForMonth,
				func(s AvailabilityServer, ctx context.Context, r *GetUnavailabilityForMonthRequest) (any, error) {
					return s.GetUnavailabilityForMonth(ctx, r)
				}),
		},
		{
			MethodName: "GetCurrentUserUnavailability",
			Handler: unary[GetCurrentUserUnavailabilityRequest](MethodGetCurrentUserUnavailability,
				func(s AvailabilityServer, ctx context.Context, r *GetCurrentUserUnavailabilityRequest) (any, error) {
					return s.GetCurrentUserUnavailability(ctx, r)
				}),
		},
		{
			MethodName: "ToggleUnavailability",
			Handler: unary[ToggleUnavailabilityRequest](MethodToggleUnavailability,
				func(s AvailabilityServer, ctx context.Context, r *ToggleUnavailabilityRequest) (any, error) {
					return s.ToggleUnavailability(ctx, r)
				}),
		},
	},
	Streams: []grpc.StreamDesc{},
}
