package hostfuncs

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/reglet-dev/rosmsg-sdk/go/application/stringmsg"
	"github.com/reglet-dev/rosmsg-sdk/go/domain/entities"
	domainerrors "github.com/reglet-dev/rosmsg-sdk/go/domain/errors"
	"github.com/reglet-dev/rosmsg-sdk/go/domain/msg"
	"github.com/reglet-dev/rosmsg-sdk/go/infrastructure/arena"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) *stringmsg.Adapter {
	t.Helper()
	a, err := stringmsg.New(arena.New[msg.String](msg.TypeName), entities.DefaultConfig())
	require.NoError(t, err)
	return a
}

func newTestRegistry(t *testing.T, a *stringmsg.Adapter) *HandlerRegistry {
	t.Helper()
	reg, err := NewRegistry(
		WithMiddleware(PanicRecoveryMiddleware()),
		WithBundle(AllBundles(a)),
	)
	require.NoError(t, err)
	return reg
}

// call invokes name with the given JSON-encodable args and returns the raw response.
func call(t *testing.T, reg *HandlerRegistry, name string, args ...any) []byte {
	t.Helper()
	raw := make([]json.RawMessage, len(args))
	for i, arg := range args {
		b, err := json.Marshal(arg)
		require.NoError(t, err)
		raw[i] = b
	}
	payload, err := json.Marshal(CallRequest{Args: raw})
	require.NoError(t, err)

	resp, err := reg.Invoke(context.Background(), name, payload)
	require.NoError(t, err)
	return resp
}

func decodeOK(t *testing.T, resp []byte) CallResponse {
	t.Helper()
	var out CallResponse
	require.NoError(t, json.Unmarshal(resp, &out), string(resp))
	require.Equal(t, "ok", out.Result, string(resp))
	return out
}

func decodeBadArgument(t *testing.T, resp []byte, reason string) {
	t.Helper()
	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(resp, &errResp))
	assert.Equal(t, ErrorBadArgument, errResp.Error, string(resp))
	assert.Equal(t, 400, errResp.Code)
	assert.Equal(t, reason, errResp.Reason)
}

func TestStringMessageBundle(t *testing.T) {
	handlers := StringMessageBundle(newTestAdapter(t)).Handlers()

	assert.Len(t, handlers, 5)
	for _, name := range []string{"string_create_empty", "string_init", "string_set_data", "string_read_data", "string_release"} {
		assert.Contains(t, handlers, name)
	}
}

func TestAllBundles(t *testing.T) {
	handlers := AllBundles(newTestAdapter(t)).Handlers()

	assert.Len(t, handlers, 6)
	assert.Contains(t, handlers, "string_stats")
}

func TestWithBundle_Duplicate(t *testing.T) {
	a := newTestAdapter(t)
	_, err := NewRegistry(
		WithBundle(StringMessageBundle(a)),
		WithBundle(StringMessageBundle(a)),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate handler name")
}

func TestStringMessage_HelloScenario(t *testing.T) {
	reg := newTestRegistry(t, newTestAdapter(t))

	created := decodeOK(t, call(t, reg, "string_create_empty"))
	require.NotNil(t, created.Handle)
	assert.Equal(t, msg.TypeName, created.Handle.Kind)

	initialized := decodeOK(t, call(t, reg, "string_init", created.Handle))
	require.NotNil(t, initialized.Handle)
	assert.Equal(t, *created.Handle, *initialized.Handle)

	empty := decodeOK(t, call(t, reg, "string_read_data", created.Handle))
	require.NotNil(t, empty.Data, "empty payload must still be reported")
	assert.Equal(t, "", *empty.Data)

	set := decodeOK(t, call(t, reg, "string_set_data", created.Handle, "hello"))
	assert.Nil(t, set.Handle)
	assert.Nil(t, set.Data)

	read := decodeOK(t, call(t, reg, "string_read_data", created.Handle))
	require.NotNil(t, read.Data)
	assert.Equal(t, "hello", *read.Data)

	decodeOK(t, call(t, reg, "string_release", created.Handle))
	decodeBadArgument(t, call(t, reg, "string_read_data", created.Handle), domainerrors.ReasonStaleHandle)
}

func TestStringMessage_EmptyPayloadCreates(t *testing.T) {
	reg := newTestRegistry(t, newTestAdapter(t))

	resp, err := reg.Invoke(context.Background(), "string_create_empty", nil)
	require.NoError(t, err)
	assert.NotNil(t, decodeOK(t, resp).Handle)
}

func TestStringMessage_BadArguments(t *testing.T) {
	a := newTestAdapter(t)
	reg := newTestRegistry(t, a)

	h := decodeOK(t, call(t, reg, "string_create_empty")).Handle
	require.NotNil(t, h)
	decodeOK(t, call(t, reg, "string_init", h))

	wrongKind := *h
	wrongKind.Kind = "std_msgs/msg/Int32"

	tests := []struct {
		name   string
		fn     string
		reason string
		args   []any
	}{
		{name: "create_empty with args", fn: "string_create_empty", args: []any{"x"}, reason: domainerrors.ReasonArity},
		{name: "init without args", fn: "string_init", reason: domainerrors.ReasonArity},
		{name: "set_data with one arg", fn: "string_set_data", args: []any{h}, reason: domainerrors.ReasonArity},
		{name: "read_data with two args", fn: "string_read_data", args: []any{h, h}, reason: domainerrors.ReasonArity},
		{name: "init wrong kind", fn: "string_init", args: []any{wrongKind}, reason: domainerrors.ReasonResourceKind},
		{name: "set_data wrong kind", fn: "string_set_data", args: []any{wrongKind, "x"}, reason: domainerrors.ReasonResourceKind},
		{name: "read_data wrong kind", fn: "string_read_data", args: []any{wrongKind}, reason: domainerrors.ReasonResourceKind},
		{name: "init with number", fn: "string_init", args: []any{7}, reason: domainerrors.ReasonType},
		{name: "init with arbitrary object", fn: "string_init", args: []any{map[string]any{"pid": 1}}, reason: domainerrors.ReasonType},
		{name: "set_data with list text", fn: "string_set_data", args: []any{h, []int{104, 105}}, reason: domainerrors.ReasonType},
		{name: "set_data with null text", fn: "string_set_data", args: []any{h, nil}, reason: domainerrors.ReasonType},
		{name: "set_data too long", fn: "string_set_data", args: []any{h, strings.Repeat("a", 128)}, reason: domainerrors.ReasonTooLong},
		{name: "set_data not latin1", fn: "string_set_data", args: []any{h, "ℝ"}, reason: domainerrors.ReasonEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decodeBadArgument(t, call(t, reg, tt.fn, tt.args...), tt.reason)
		})
	}

	assert.Equal(t, 1, a.Live())
}

func TestStringMessage_MalformedRequest(t *testing.T) {
	reg := newTestRegistry(t, newTestAdapter(t))

	tests := []struct {
		name    string
		payload string
		wantGot string
	}{
		{name: "truncated", payload: `{"args":`, wantGot: "malformed JSON"},
		{name: "args is a number", payload: `{"args":5}`, wantGot: "number"},
		{name: "args is an object", payload: `{"args":{}}`, wantGot: "object"},
		{name: "body is an array", payload: `[1,2]`, wantGot: "array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := reg.Invoke(context.Background(), "string_init", []byte(tt.payload))
			require.NoError(t, err)

			var errResp ErrorResponse
			require.NoError(t, json.Unmarshal(resp, &errResp))
			assert.Equal(t, ErrorBadArgument, errResp.Error)
			assert.Equal(t, domainerrors.ReasonType, errResp.Reason)
			assert.Equal(t, 400, errResp.Code)
			assert.Contains(t, errResp.Message, tt.wantGot)
		})
	}
}

func TestStatsBundle(t *testing.T) {
	a := newTestAdapter(t)
	reg := newTestRegistry(t, a)

	call(t, reg, "string_create_empty")
	call(t, reg, "string_create_empty")

	resp, err := reg.Invoke(context.Background(), "string_stats", nil)
	require.NoError(t, err)

	var stats StatsResponse
	require.NoError(t, json.Unmarshal(resp, &stats))
	assert.Equal(t, 2, stats.LiveHandles)
}
