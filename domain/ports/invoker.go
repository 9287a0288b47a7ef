package ports

import "context"

// HostInvoker calls a named host function with a JSON payload.
// The in-process HandlerRegistry and the WASM host imports both implement it.
type HostInvoker interface {
	Invoke(ctx context.Context, name string, payload []byte) ([]byte, error)
}
