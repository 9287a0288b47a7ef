//go:build !wasip1

package wasm

import (
	"context"
	"fmt"

	"github.com/reglet-dev/rosmsg-sdk/go/domain/ports"
)

// Compile-time interface compliance check
var _ ports.HostInvoker = HostImports{}

// HostImports stub for native builds.
type HostImports struct{}

// Invoke fails because host imports only exist inside a WASM guest.
// Use NewStringClient with a hostfuncs.HandlerRegistry instead.
func (HostImports) Invoke(_ context.Context, name string, _ []byte) ([]byte, error) {
	return nil, fmt.Errorf("host function %q is not available in a native build", name)
}
