package middleware

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	rpcsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grpc_requests_total",
			Help: "Total number of RPCs by method and status code",
		},
		[]string{"method", "code"},
	)
	rpcDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grpc_request_duration_seconds",
			Help:    "Duration of RPCs by method",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
	authRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_rejections_total",
			Help: "Total number of unauthenticated RPCs rejected",
		},
	)
)

// InitMetrics registers the RPC metrics. Call once from main.
func InitMetrics() {
	prometheus.MustRegister(rpcsTotal)
	prometheus.MustRegister(rpcDuration)
	prometheus.MustRegister(authRejections)
}

// Metrics tracks count, latency and auth rejections per method. It runs
// first in the chain so rejected requests are counted too.
func Metrics() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)

		code := codes.OK
		if err != nil {
			code = status.Code(err)
		}
		rpcsTotal.WithLabelValues(info.FullMethod, code.String()).Inc()
		rpcDuration.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())
		if code == codes.Unauthenticated {
			authRejections.Inc()
		}
		return resp, err
	}
}
