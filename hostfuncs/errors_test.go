package hostfuncs

import (
	"encoding/json"
	"errors"
	"testing"

	domainerrors "github.com/reglet-dev/rosmsg-sdk/go/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponse_ToJSON(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		err      ErrorResponse
	}{
		{
			name:     "validation error",
			err:      NewValidationError("invalid JSON"),
			expected: `{"error":"VALIDATION_ERROR","message":"invalid JSON","code":400}`,
		},
		{
			name:     "not found",
			err:      NewNotFoundError("foo"),
			expected: `{"error":"NOT_FOUND","message":"unknown host function: foo","code":404}`,
		},
		{
			name:     "bad argument carries reason",
			err:      NewBadArgumentError(&domainerrors.ArityError{Operation: "string_init", Want: 1, Got: 0}),
			expected: `{"error":"BAD_ARGUMENT","message":"string_init: expected 1 argument(s), got 0","reason":"arity","code":400}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.expected, string(tt.err.ToJSON()))
		})
	}
}

func TestNewBadArgumentError_BareSentinel(t *testing.T) {
	resp := NewBadArgumentError(domainerrors.ErrBadArgument)
	assert.Equal(t, ErrorBadArgument, resp.Error)
	assert.Empty(t, resp.Reason)
	assert.Equal(t, 400, resp.Code)
}

func TestNewPanicError(t *testing.T) {
	tests := []struct {
		value   any
		name    string
		wantMsg string
	}{
		{name: "string", value: "boom", wantMsg: "panic: boom"},
		{name: "error", value: errors.New("bad state"), wantMsg: "panic: bad state"},
		{name: "other", value: 42, wantMsg: "panic: panic recovered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewPanicError(tt.value)
			assert.Equal(t, ErrorInternal, resp.Error)
			assert.Equal(t, 500, resp.Code)
			assert.Equal(t, tt.wantMsg, resp.Message)
		})
	}
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, ErrorBadArgument, errorKind(NewBadArgumentError(domainerrors.ErrBadArgument).ToJSON()))
	assert.Empty(t, errorKind([]byte(`{"result":"ok"}`)))
	assert.Empty(t, errorKind(nil))
	assert.Empty(t, errorKind([]byte("not json")))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(NewInternalError("x").ToJSON(), &resp))
	assert.Equal(t, ErrorInternal, errorKind(NewInternalError("x").ToJSON()))
}
