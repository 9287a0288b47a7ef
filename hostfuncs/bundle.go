package hostfuncs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/reglet-dev/rosmsg-sdk/go/application/stringmsg"
	domainerrors "github.com/reglet-dev/rosmsg-sdk/go/domain/errors"
)

// HostFuncBundle is a pre-configured set of related host functions.
// Bundles allow registering multiple handlers at once for common use cases.
type HostFuncBundle interface {
	// Handlers returns a map of handler names to ByteHandler functions.
	Handlers() map[string]ByteHandler
}

// staticBundle implements HostFuncBundle with a fixed set of handlers.
type staticBundle struct {
	handlers map[string]ByteHandler
}

func (b *staticBundle) Handlers() map[string]ByteHandler {
	return b.handlers
}

// StringMessageBundle returns a bundle with the std_msgs/msg/String host functions:
// string_create_empty, string_init, string_set_data, string_read_data, string_release.
func StringMessageBundle(adapter *stringmsg.Adapter) HostFuncBundle {
	handlers := make(map[string]ByteHandler, len(stringmsg.Operations()))
	for _, op := range stringmsg.Operations() {
		handlers[string(op)] = NewCallHandler(adapter, op)
	}
	return &staticBundle{handlers: handlers}
}

// StatsRequest is the (empty) request of string_stats.
type StatsRequest struct{}

// StatsResponse reports adapter occupancy.
type StatsResponse struct {
	LiveHandles int `json:"live_handles"`
}

// StatsBundle returns a bundle with the string_stats host function, which
// reports the number of live handles held by adapter.
func StatsBundle(adapter *stringmsg.Adapter) HostFuncBundle {
	return &staticBundle{
		handlers: map[string]ByteHandler{
			"string_stats": NewJSONHandler(func(_ context.Context, _ StatsRequest) StatsResponse {
				return StatsResponse{LiveHandles: adapter.Live()}
			}),
		},
	}
}

// NewCallHandler returns a ByteHandler running op on adapter.
// Rejected calls produce a BAD_ARGUMENT ErrorResponse, never a Go error.
func NewCallHandler(adapter *stringmsg.Adapter, op stringmsg.Operation) ByteHandler {
	return func(_ context.Context, payload []byte) ([]byte, error) {
		var req CallRequest
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &req); err != nil {
				return NewBadArgumentError(envelopeError(err)).ToJSON(), nil
			}
		}

		args := make([]any, len(req.Args))
		for i, raw := range req.Args {
			args[i] = decodeTerm(raw)
		}

		reply, err := adapter.Dispatch(op, args...)
		if err != nil {
			if errors.Is(err, domainerrors.ErrBadArgument) {
				return NewBadArgumentError(err).ToJSON(), nil
			}
			return NewInternalError(err.Error()).ToJSON(), nil
		}

		resp, err := json.Marshal(CallResponse{Result: "ok", Handle: reply.Handle, Data: reply.Data})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}
		return resp, nil
	}
}

// envelopeError describes a request body that is not {"args":[...]}.
func envelopeError(err error) error {
	got := "malformed JSON"
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		got = typeErr.Value
	}
	return &domainerrors.TermTypeError{Position: -1, Want: `{"args":[...]}`, Got: got}
}

// compositeBundle combines multiple bundles into one.
type compositeBundle struct {
	bundles []HostFuncBundle
}

func (b *compositeBundle) Handlers() map[string]ByteHandler {
	result := make(map[string]ByteHandler)
	for _, bundle := range b.bundles {
		for name, handler := range bundle.Handlers() {
			result[name] = handler
		}
	}
	return result
}

// AllBundles returns a bundle containing every built-in host function for adapter.
func AllBundles(adapter *stringmsg.Adapter) HostFuncBundle {
	return &compositeBundle{
		bundles: []HostFuncBundle{
			StringMessageBundle(adapter),
			StatsBundle(adapter),
		},
	}
}

// WithBundle registers all handlers from a bundle.
func WithBundle(bundle HostFuncBundle) RegistryOption {
	return func(b *registryBuilder) {
		for name, handler := range bundle.Handlers() {
			if err := b.addHandler(name, handler); err != nil {
				b.errors = append(b.errors, err)
			}
		}
	}
}

// WithHandler registers a typed host function with automatic JSON handling.
// The handler will be wrapped with NewJSONHandler for JSON serialization.
//
// Example usage:
//
//	WithHandler("custom_func", func(ctx context.Context, req MyRequest) MyResponse {
//	    return MyResponse{Result: req.Input}
//	})
func WithHandler[Req any, Resp any](name string, fn HostFunc[Req, Resp]) RegistryOption {
	return func(b *registryBuilder) {
		handler := NewJSONHandler(fn)
		if err := b.addHandler(name, handler); err != nil {
			b.errors = append(b.errors, err)
		}
	}
}
