package grpcapi

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// LoggingInterceptor logs every unary call with its outcome
func LoggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	startTime := time.Now()

	response, err := handler(ctx, req)

	code := status.Code(err)

	callLogger := log.With().
		Str("call", uuid.NewString()).
		Str("method", info.FullMethod).
		Str("code", code.String()).
		Str("latency", time.Since(startTime).String()).
		Logger()

	switch code {
	case codes.OK:
		callLogger.Info().Msg("gRPC Request")
	case codes.InvalidArgument, codes.NotFound, codes.Canceled:
		callLogger.Warn().Err(err).Msg("gRPC Request")
	default:
		callLogger.Error().Err(err).Msg("gRPC Request")
	}

	return response, err
}
