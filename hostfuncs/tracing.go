package hostfuncs

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// DefaultTracerName is the instrumentation name used by TracingMiddleware.
const DefaultTracerName = "github.com/reglet-dev/rosmsg-sdk/go/hostfuncs"

// TracingMiddleware wraps each host function call with an OpenTelemetry span
// from the global tracer provider. Rejected calls mark the span as errored.
func TracingMiddleware(tracerName string) Middleware {
	if tracerName == "" {
		tracerName = DefaultTracerName
	}
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			funcName := FunctionName(ctx)
			tracer := otel.Tracer(tracerName)
			spanCtx, span := tracer.Start(ctx, "hostfunc "+funcName)
			defer span.End()

			span.SetAttributes(
				attribute.String("hostfunc.name", funcName),
				attribute.Int("hostfunc.request_bytes", len(payload)),
			)

			// Keep the HostContext visible to inner middleware and handlers.
			hctx := NewHostContext(spanCtx, funcName)
			resp, err := next(hctx, payload)

			switch kind := errorKind(resp); {
			case err != nil:
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			case kind != "":
				span.SetAttributes(attribute.String("hostfunc.error_kind", kind))
				span.SetStatus(codes.Error, kind)
			}
			return resp, err
		}
	}
}
