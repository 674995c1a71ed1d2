package grpcweb

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"team-availability-api/internal/auth"
	"team-availability-api/internal/handler"
	"team-availability-api/internal/middleware"
	"team-availability-api/internal/wire"
)

// Bridge translates gRPC-Web (browser HTTP/1.1) → native gRPC via TCP.
type Bridge struct {
	conn   *grpc.ClientConn
	direct *handler.Handler
	codec  wire.Codec
	secret string
}

// New dials the gRPC server at addr (e.g. "localhost:50051").
// If directHandler is provided, known methods bypass the network.
func New(addr string, directHandler *handler.Handler, secret string) (*Bridge, error) {
	conn, err := grpc.NewClient(
		addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("grpcweb dial: %w", err)
	}
	return &Bridge{conn: conn, direct: directHandler, secret: secret}, nil
}

func (b *Bridge) Close() { b.conn.Close() }

// Handler returns an http.Handler that translates gRPC-Web → gRPC.
func (b *Bridge) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, X-Grpc-Web, X-User-Agent, Authorization, x-grpc-web")
		w.Header().Set("Access-Control-Expose-Headers",
			"Grpc-Status, Grpc-Message, Grpc-Status-Details-Bin, grpc-status, grpc-message")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		ct := r.Header.Get("Content-Type")
		if !strings.HasPrefix(ct, "application/grpc-web") {
			http.Error(w, "not grpc-web", http.StatusUnsupportedMediaType)
			return
		}

		log.Printf("grpc-web → %s", r.URL.Path)
		b.forward(w, r)
	})
}

func (b *Bridge) forward(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, codes.Internal, "read body failed")
		return
	}
	if len(body) < 5 {
		writeError(w, codes.InvalidArgument, "body too short")
		return
	}

	// grpc-web frame: 1-byte flag + 4-byte big-endian length + payload
	msgLen := binary.BigEndian.Uint32(body[1:5])
	if int(msgLen)+5 > len(body) {
		writeError(w, codes.InvalidArgument, "incomplete frame")
		return
	}
	payload := body[5 : 5+msgLen]

	// forward metadata
	md := metadata.MD{}
	if vals := r.Header.Values("Authorization"); len(vals) > 0 {
		md.Set("authorization", vals...)
	}
	ctx := metadata.NewOutgoingContext(r.Context(), md)

	// BYPASS: serve known methods through the in-process handler
	if b.direct != nil && b.dispatch(ctx, w, r.URL.Path, payload, r.Header.Get("Authorization")) {
		return
	}

	// invoke the gRPC method with a raw pass-through codec
	resp := &rawMsg{}
	err = b.conn.Invoke(ctx, r.URL.Path, &rawMsg{data: payload}, resp, grpc.ForceCodec(rawCodec{}))
	if err != nil {
		st, _ := status.FromError(err)
		log.Printf("grpc-web error: %s: %s", st.Code(), st.Message())
		writeError(w, st.Code(), st.Message())
		return
	}

	writeSuccess(w, resp.data)
}

// dispatch decodes the request, applies the method's auth policy, and
// calls the handler directly. Reports whether the path was recognized.
func (b *Bridge) dispatch(ctx context.Context, w http.ResponseWriter, path string, payload []byte, authHeader string) bool {
	switch path {
	case wire.MethodRegister:
		req := &wire.RegisterRequest{}
		b.serve(ctx, w, payload, req, func(ctx context.Context) (any, error) {
			return b.direct.Register(ctx, req)
		})
	case wire.MethodLogin:
		req := &wire.LoginRequest{}
		b.serve(ctx, w, payload, req, func(ctx context.Context) (any, error) {
			return b.direct.Login(ctx, req)
		})
	case wire.MethodGetUnavailabilityForMonth:
		req := &wire.GetUnavailabilityForMonthRequest{}
		b.serve(ctx, w, payload, req, func(ctx context.Context) (any, error) {
			return b.direct.GetUnavailabilityForMonth(ctx, req)
		})
	case wire.MethodGetCurrentUserUnavailability:
		ctx, err := b.optionalAuth(ctx, authHeader)
		if err != nil {
			writeStatus(w, err)
			return true
		}
		req := &wire.GetCurrentUserUnavailabilityRequest{}
		b.serve(ctx, w, payload, req, func(ctx context.Context) (any, error) {
			return b.direct.GetCurrentUserUnavailability(ctx, req)
		})
	case wire.MethodToggleUnavailability:
		ctx, err := b.requireAuth(ctx, authHeader)
		if err != nil {
			writeStatus(w, err)
			return true
		}
		req := &wire.ToggleUnavailabilityRequest{}
		b.serve(ctx, w, payload, req, func(ctx context.Context) (any, error) {
			return b.direct.ToggleUnavailability(ctx, req)
		})
	default:
		return false
	}
	return true
}

func (b *Bridge) serve(ctx context.Context, w http.ResponseWriter, payload []byte, req any, call func(context.Context) (any, error)) {
	if err := b.codec.Unmarshal(payload, req); err != nil {
		writeError(w, codes.InvalidArgument, "parse error")
		return
	}
	resp, err := call(ctx)
	if err != nil {
		writeStatus(w, err)
		return
	}
	out, err := b.codec.Marshal(resp)
	if err != nil {
		writeError(w, codes.Internal, "encode error")
		return
	}
	writeSuccess(w, out)
}

// requireAuth mirrors the middleware's mandatory-token path.
func (b *Bridge) requireAuth(ctx context.Context, authHeader string) (context.Context, error) {
	if authHeader == "" {
		return nil, status.Error(codes.Unauthenticated, "no token")
	}
	raw := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := auth.ParseToken(raw, b.secret)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "bad token")
	}
	return context.WithValue(ctx, middleware.UserIDKey, claims.UserID), nil
}

// optionalAuth attaches identity when a token is present; anonymous
// callers pass through untouched.
func (b *Bridge) optionalAuth(ctx context.Context, authHeader string) (context.Context, error) {
	if authHeader == "" {
		return ctx, nil
	}
	return b.requireAuth(ctx, authHeader)
}

// rawMsg wraps raw protobuf bytes.
type rawMsg struct{ data []byte }

// rawCodec passes bytes through without marshal/unmarshal.
type rawCodec struct{}

func (rawCodec) Marshal(v any) ([]byte, error) {
	return v.(*rawMsg).data, nil
}
func (rawCodec) Unmarshal(data []byte, v any) error {
	m := v.(*rawMsg)
	m.data = append([]byte(nil), data...)
	return nil
}
func (rawCodec) Name() string { return "raw" }

func writeStatus(w http.ResponseWriter, err error) {
	st, _ := status.FromError(err)
	writeError(w, st.Code(), st.Message())
}

func writeError(w http.ResponseWriter, code codes.Code, msg string) {
	w.Header().Set("Content-Type", "application/grpc-web+proto")
	w.WriteHeader(http.StatusOK)
	trailer := fmt.Sprintf("grpc-status:%d\r\ngrpc-message:%s\r\n", code, msg)
	tf := make([]byte, 5+len(trailer))
	tf[0] = 0x80
	binary.BigEndian.PutUint32(tf[1:5], uint32(len(trailer)))
	copy(tf[5:], trailer)
	w.Write(tf)
}

func writeSuccess(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/grpc-web+proto")
	w.WriteHeader(http.StatusOK)
	// data frame
	df := make([]byte, 5+len(data))
	df[0] = 0x00
	binary.BigEndian.PutUint32(df[1:5], uint32(len(data)))
	copy(df[5:], data)
	w.Write(df)
	// trailer frame
	trailer := "grpc-status:0\r\n"
	tf := make([]byte, 5+len(trailer))
	tf[0] = 0x80
	binary.BigEndian.PutUint32(tf[1:5], uint32(len(trailer)))
	copy(tf[5:], trailer)
	w.Write(tf)
}
