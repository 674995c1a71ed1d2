package middleware

import (
	"context"
	"strings"

	"team-availability-api/internal/auth"
	"team-availability-api/internal/wire"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const UserIDKey ctxKey = "uid"

// UserID returns the authenticated caller's id, or "" when the request
// carried no identity.
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(UserIDKey).(string)
	return v
}

// no token needed for these
var open = map[string]bool{
	wire.MethodRegister:                  true,
	wire.MethodLogin:                     true,
	wire.MethodGetUnavailabilityForMonth: true,
}

// identity is attached when present but never required: an anonymous
// caller gets an empty personal overlay, not an error
var optional = map[string]bool{
	wire.MethodGetCurrentUserUnavailability: true,
}

func Auth(secret string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if open[info.FullMethod] {
			return next(ctx, req)
		}

		raw := bearerToken(ctx)
		if raw == "" {
			if optional[info.FullMethod] {
				return next(ctx, req)
			}
			return nil, status.Error(codes.Unauthenticated, "no token")
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "bad token")
		}

		ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
		return next(ctx, req)
	}
}

// token from Authorization: Bearer <jwt>
func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return ""
	}
	return strings.TrimPrefix(vals[0], "Bearer ")
}
