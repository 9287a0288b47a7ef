// Package hostfuncs provides pure Go implementations of host function logic.
// These implementations have NO WASM runtime dependencies (no wazero/wasmtime).
// They can be used by any host that can pass a JSON payload in and out,
// the wazero adapter in infrastructure/wazero being one of them.
//
// Every string-message entry point takes a request of the form
//
//	{"args": [<term>, ...]}
//
// where a handle term is a JSON object and a text term is a JSON string, and
// answers either {"result":"ok", ...} or an ErrorResponse whose error is
// "BAD_ARGUMENT".
package hostfuncs
