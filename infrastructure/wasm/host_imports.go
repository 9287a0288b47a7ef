//go:build wasip1

package wasm

import (
	"context"
	"fmt"

	"github.com/reglet-dev/rosmsg-sdk/go/domain/ports"
	"github.com/reglet-dev/rosmsg-sdk/go/internal/abi"
)

//go:wasmimport rosmsg_host string_create_empty
func host_string_create_empty(requestPacked uint64) uint64

//go:wasmimport rosmsg_host string_init
func host_string_init(requestPacked uint64) uint64

//go:wasmimport rosmsg_host string_set_data
func host_string_set_data(requestPacked uint64) uint64

//go:wasmimport rosmsg_host string_read_data
func host_string_read_data(requestPacked uint64) uint64

//go:wasmimport rosmsg_host string_release
func host_string_release(requestPacked uint64) uint64

// Compile-time interface compliance check
var _ ports.HostInvoker = HostImports{}

// HostImports invokes host functions imported from the rosmsg_host module.
type HostImports struct{}

// Invoke sends payload to the named host function and returns its response.
func (HostImports) Invoke(_ context.Context, name string, payload []byte) ([]byte, error) {
	var fn func(uint64) uint64
	switch name {
	case "string_create_empty":
		fn = host_string_create_empty
	case "string_init":
		fn = host_string_init
	case "string_set_data":
		fn = host_string_set_data
	case "string_read_data":
		fn = host_string_read_data
	case "string_release":
		fn = host_string_release
	default:
		return nil, fmt.Errorf("host function %q is not imported", name)
	}

	reqPacked := abi.PtrFromBytes(payload)
	defer abi.DeallocatePacked(reqPacked)

	resPacked := fn(reqPacked)
	resBytes := abi.BytesFromPtr(resPacked)
	if resBytes == nil {
		return nil, fmt.Errorf("host returned null response for %s", name)
	}
	abi.DeallocatePacked(resPacked) // host allocated the response in guest memory
	return resBytes, nil
}
