package hostfuncs

import (
	"context"
	"log/slog"
	"time"
)

// Middleware is a function that wraps a ByteHandler to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion model).
//
// Example usage:
//
//	auditMiddleware := func(next ByteHandler) ByteHandler {
//	    return func(ctx context.Context, payload []byte) ([]byte, error) {
//	        audit.Record(FunctionName(ctx))
//	        return next(ctx, payload)
//	    }
//	}
type Middleware func(next ByteHandler) ByteHandler

// RegistryOption is a functional option for configuring a HandlerRegistry.
type RegistryOption func(*registryBuilder)

// PanicRecoveryMiddleware returns a middleware that catches panics and converts
// them to structured ErrorResponse JSON instead of crashing the host.
func PanicRecoveryMiddleware() Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) (resp []byte, err error) {
			defer func() {
				if r := recover(); r != nil {
					resp = NewPanicError(r).ToJSON()
					err = nil // Return JSON error, not Go error
				}
			}()
			return next(ctx, payload)
		}
	}
}

// LoggingMiddleware returns a middleware that logs host function invocations
// with the given structured logger. Successful calls are logged at debug level,
// rejected calls at info level and handler failures at error level.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			funcName := FunctionName(ctx)
			start := time.Now()

			resp, err := next(ctx, payload)

			attrs := []any{
				"function", funcName,
				"duration", time.Since(start),
			}
			switch kind := errorKind(resp); {
			case err != nil:
				logger.ErrorContext(ctx, "host function failed", append(attrs, "error", err)...)
			case kind != "":
				logger.InfoContext(ctx, "host function rejected call", append(attrs, "error_kind", kind)...)
			default:
				logger.DebugContext(ctx, "host function completed", attrs...)
			}
			return resp, err
		}
	}
}
