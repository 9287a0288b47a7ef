// Package wasm provides the guest side of the string-message host functions.
//
// StringClient speaks the JSON call protocol. Inside a wasip1 guest it talks
// to the host through HostImports; natively it can be pointed at any
// ports.HostInvoker, such as an in-process hostfuncs.HandlerRegistry.
package wasm
