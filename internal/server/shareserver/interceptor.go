package shareserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"connectrpc.com/connect"
	"github.com/oklog/ulid/v2"

	"github.com/yndnr/foldershare-go/internal/core/service"
	"github.com/yndnr/foldershare-go/internal/protocol"
	"github.com/yndnr/foldershare-go/internal/telemetry/logger"
	"github.com/yndnr/foldershare-go/internal/telemetry/metric"
)

// RequestIDHeader carries the call's ULID back to the peer.
const RequestIDHeader = "X-Request-Id"

// RecoveryInterceptor recovers from panics.
type RecoveryInterceptor struct {
	logger *slog.Logger
}

// NewRecoveryInterceptor creates a new recovery interceptor.
func NewRecoveryInterceptor(logger *slog.Logger) *RecoveryInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecoveryInterceptor{logger: logger}
}

// WrapUnary implements connect.Interceptor.
func (i *RecoveryInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (resp connect.AnyResponse, err error) {
		defer func() {
			if r := recover(); r != nil {
				i.logger.Error("rpc panic recovered",
					"method", req.Spec().Procedure,
					"peer", req.Peer().Addr,
					"panic", r)

				resp = nil
				err = connect.NewError(connect.CodeInternal,
					fmt.Errorf("internal server error: panic recovered"))
			}
		}()

		return next(ctx, req)
	}
}

// WrapStreamingClient implements connect.Interceptor.
func (i *RecoveryInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

// WrapStreamingHandler implements connect.Interceptor.
func (i *RecoveryInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return next
}

// LoggingInterceptor assigns each call a ULID request id, stores it in the
// context and logs the call outcome.
type LoggingInterceptor struct {
	logger *slog.Logger
}

// NewLoggingInterceptor creates a new logging interceptor.
func NewLoggingInterceptor(logger *slog.Logger) *LoggingInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingInterceptor{logger: logger}
}

// WrapUnary implements connect.Interceptor.
func (i *LoggingInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		start := time.Now()
		requestID := ulid.Make().String()
		ctx = logger.WithRequestID(ctx, requestID)

		log := logger.ForRequest(ctx, i.logger).With("peer", req.Peer().Addr)
		log.Debug("rpc request", "method", req.Spec().Procedure)

		resp, err := next(ctx, req)

		duration := time.Since(start)
		if err != nil {
			log.Warn("rpc error",
				"method", req.Spec().Procedure,
				"code", connect.CodeOf(err).String(),
				"duration_ms", duration.Milliseconds(),
				"error", err)
			var connectErr *connect.Error
			if errors.As(err, &connectErr) {
				connectErr.Meta().Set(RequestIDHeader, requestID)
			}
			return nil, err
		}

		resp.Header().Set(RequestIDHeader, requestID)
		log.Info("rpc response",
			"method", req.Spec().Procedure,
			"status", replyStatus(resp, nil),
			"duration_ms", duration.Milliseconds())
		return resp, nil
	}
}

// WrapStreamingClient implements connect.Interceptor.
func (i *LoggingInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

// WrapStreamingHandler implements connect.Interceptor.
func (i *LoggingInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return next
}

// RateLimitInterceptor refuses calls from peers over their budget with
// CodeResourceExhausted before the password is checked.
type RateLimitInterceptor struct {
	limiters *service.RateLimiterRegistry
	metrics  *metric.Registry
	logger   *slog.Logger
}

// NewRateLimitInterceptor creates a new rate limit interceptor.
func NewRateLimitInterceptor(limiters *service.RateLimiterRegistry, metrics *metric.Registry, logger *slog.Logger) *RateLimitInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateLimitInterceptor{limiters: limiters, metrics: metrics, logger: logger}
}

// WrapUnary implements connect.Interceptor.
func (i *RateLimitInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		peer := peerHost(req.Peer().Addr)
		if err := i.limiters.Check(peer); err != nil {
			i.metrics.IncRateLimited()
			logger.ForRequest(ctx, i.logger).Warn("rpc rate limited",
				"peer", peer,
				"error", err)
			return nil, connect.NewError(connect.CodeResourceExhausted, err)
		}
		return next(ctx, req)
	}
}

// WrapStreamingClient implements connect.Interceptor.
func (i *RateLimitInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

// WrapStreamingHandler implements connect.Interceptor.
func (i *RateLimitInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return next
}

// MetricsInterceptor records call counts by reply status and latency.
type MetricsInterceptor struct {
	metrics *metric.Registry
}

// NewMetricsInterceptor creates a new metrics interceptor.
func NewMetricsInterceptor(metrics *metric.Registry) *MetricsInterceptor {
	return &MetricsInterceptor{metrics: metrics}
}

// WrapUnary implements connect.Interceptor.
func (i *MetricsInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		start := time.Now()
		resp, err := next(ctx, req)
		i.metrics.ObserveRequest(replyStatus(resp, err), time.Since(start))
		return resp, err
	}
}

// WrapStreamingClient implements connect.Interceptor.
func (i *MetricsInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

// WrapStreamingHandler implements connect.Interceptor.
func (i *MetricsInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return next
}

// DefaultInterceptors returns the interceptor chain in call order.
func DefaultInterceptors(limiters *service.RateLimiterRegistry, metrics *metric.Registry, logger *slog.Logger) []connect.Interceptor {
	return []connect.Interceptor{
		NewRecoveryInterceptor(logger),
		NewLoggingInterceptor(logger),
		NewRateLimitInterceptor(limiters, metrics, logger),
		NewMetricsInterceptor(metrics),
	}
}

// replyStatus labels a finished call: the reply status on success, the
// Connect code otherwise.
func replyStatus(resp connect.AnyResponse, err error) string {
	if err != nil {
		return connect.CodeOf(err).String()
	}
	if resp != nil {
		if reply, ok := resp.Any().(*protocol.ReplyEnvelope); ok && reply != nil {
			return string(reply.Status)
		}
	}
	return "unknown"
}

func peerHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
