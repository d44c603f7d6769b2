package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id back to the client.
const RequestIDHeader = "X-Request-Id"

// callInfo lets inner interceptors report the authenticated principal back
// to the logging interceptor.
type callInfo struct {
	principal string
}

const callInfoKey contextKey = "call_info"

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, principal, request id, duration, and any error codes/messages.
// Install it outside the auth interceptor so the principal is known when logging.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			requestID := req.Header().Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			ctx = context.WithValue(ctx, RequestIDKey, requestID)
			info := &callInfo{}
			ctx = context.WithValue(ctx, callInfoKey, info)

			resp, err := next(ctx, req)
			// On failure resp is a typed nil; the id travels in the error metadata.
			if err == nil {
				resp.Header().Set(RequestIDHeader, requestID)
			}
			principal := info.principal

			duration := time.Since(start).Milliseconds()
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					connectErr.Meta().Set(RequestIDHeader, requestID)
					slog.Warn("RPC error",
						"procedure", procedure,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"principal", principal,
						"request_id", requestID,
						"duration_ms", duration,
					)
				} else {
					slog.Error("RPC error",
						"procedure", procedure,
						"error", err,
						"principal", principal,
						"request_id", requestID,
						"duration_ms", duration,
					)
				}
			} else {
				slog.Info("RPC ok",
					"procedure", procedure,
					"principal", principal,
					"request_id", requestID,
					"duration_ms", duration,
				)
			}

			return resp, err
		}
	}
}
