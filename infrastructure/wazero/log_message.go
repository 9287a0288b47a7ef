package wazero

import (
	"context"
	"encoding/json"
	"log/slog"

	rosmsglog "github.com/reglet-dev/rosmsg-sdk/go/log"
	"github.com/tetratelabs/wazero/api"
)

// LogMessageFunction is the export guests call to forward slog records.
const LogMessageFunction = "log_message"

// LogMessageHandler returns a custom handler that replays guest log records
// through logger, tagged with the guest name. It takes one packed i64 and
// returns nothing.
func LogMessageHandler(logger *slog.Logger) CustomHandler {
	return CustomHandler{
		Name: LogMessageFunction,
		Handler: api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
			guest := GetGuestName(ctx, mod)
			ptr, length := unpackPtrLen(stack[0])

			data, ok := mod.Memory().Read(ptr, length)
			if !ok {
				logger.ErrorContext(ctx, "wazero: failed to read log message from guest memory", "guest", guest)
				return
			}

			var msg rosmsglog.LogMessageWire
			if err := json.Unmarshal(data, &msg); err != nil {
				logger.WarnContext(ctx, "wazero: malformed guest log message", "guest", guest, "error", err)
				return
			}
			rosmsglog.Replay(ctx, logger, msg, slog.String("guest", guest))
		}),
		ParamTypes:  []api.ValueType{api.ValueTypeI64},
		ResultTypes: []api.ValueType{},
	}
}

// WithLogMessageHandler exports log_message, replaying guest logs through logger.
func WithLogMessageHandler(logger *slog.Logger) AdapterOption {
	return WithCustomHandler(LogMessageHandler(logger))
}
