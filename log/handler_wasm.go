//go:build wasip1

package log

import (
	"log/slog"

	"github.com/reglet-dev/rosmsg-sdk/go/internal/abi"
)

//go:wasmimport rosmsg_host log_message
//nolint:revive // intentional snake_case to match WASM import convention
func host_log_message(messagePacked uint64)

// sendToHost passes the encoded record to the host's log_message function.
func sendToHost(data []byte) {
	packed := abi.PtrFromBytes(data)
	host_log_message(packed)
	abi.DeallocatePacked(packed)
}

// init configures the default slog handler to forward to the host.
func init() {
	slog.SetDefault(slog.New(NewHandler()))
}
