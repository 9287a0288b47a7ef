// Package wazero registers host functions with the wazero runtime.
//
// It bridges the pure Go handlers in hostfuncs with guest memory:
//
//   - Converting between packed i64 pointer+length format and byte slices
//   - Reading request data from guest memory
//   - Allocating and writing response data to guest memory
//   - Registering handlers with the wazero host module builder
//
// # Basic Usage
//
//	registry, err := hostfuncs.NewRegistry(
//	    hostfuncs.WithBundle(hostfuncs.AllBundles(adapter)),
//	)
//	if err != nil {
//	    return err
//	}
//
//	runtime := wazero.NewRuntime(ctx)
//	err = wazero.RegisterWithRuntime(ctx, runtime, registry,
//	    wazero.WithLogMessageHandler(logger),
//	)
//
// # Custom Handlers
//
// Handlers that don't fit the request/response pattern, like log_message,
// are registered with WithCustomHandler.
package wazero
