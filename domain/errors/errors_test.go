package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/reglet-dev/rosmsg-sdk/go/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArityError(t *testing.T) {
	err := &ArityError{Operation: "string_set_data", Want: 2, Got: 1}

	assert.Equal(t, "string_set_data: expected 2 argument(s), got 1", err.Error())
	assert.True(t, errors.Is(err, ErrBadArgument))
	assert.Equal(t, ReasonArity, Reason(err))
}

func TestResourceKindError(t *testing.T) {
	err := &ResourceKindError{Want: "std_msgs/msg/String", Got: "std_msgs/msg/Int32"}
	assert.Equal(t, `wrong resource kind: expected std_msgs/msg/String, got "std_msgs/msg/Int32"`, err.Error())
	assert.True(t, errors.Is(err, ErrBadArgument))

	foreign := &ResourceKindError{Want: "std_msgs/msg/String", Got: "std_msgs/msg/String", ForeignOwner: true}
	assert.Contains(t, foreign.Error(), "another resource table")
	assert.Equal(t, ReasonResourceKind, Reason(foreign))
}

func TestStaleHandleError(t *testing.T) {
	h := entities.Handle{Kind: "std_msgs/msg/String", Owner: "owner", Index: 3, Generation: 2}
	err := &StaleHandleError{Handle: h}

	assert.Equal(t, "stale or unknown handle std_msgs/msg/String#3.2@owner", err.Error())
	assert.True(t, errors.Is(err, ErrBadArgument))
	assert.Equal(t, ReasonStaleHandle, Reason(err))
}

func TestTextTooLongError(t *testing.T) {
	err := &TextTooLongError{Length: 200, Limit: 127}

	assert.Equal(t, "text is 200 bytes, limit is 127", err.Error())
	assert.True(t, errors.Is(err, ErrBadArgument))

	var tooLong *TextTooLongError
	require.True(t, errors.As(err, &tooLong))
	assert.Equal(t, 127, tooLong.Limit)
}

func TestEncodingError_Unwrap(t *testing.T) {
	base := fmt.Errorf("rune not representable")
	err := &EncodingError{Encoding: "latin1", Err: base}

	assert.True(t, errors.Is(err, base))
	assert.True(t, errors.Is(err, ErrBadArgument))
	assert.Equal(t, ReasonEncoding, Reason(err))
}

func TestTermTypeError_Envelope(t *testing.T) {
	arg := &TermTypeError{Position: 1, Want: "string", Got: "number"}
	assert.Equal(t, "argument 1: expected string, got number", arg.Error())

	envelope := &TermTypeError{Position: -1, Want: "args array", Got: "number"}
	assert.Equal(t, "request: expected args array, got number", envelope.Error())
	assert.True(t, errors.Is(envelope, ErrBadArgument))
	assert.Equal(t, ReasonType, Reason(envelope))
}

func TestWrappedBadArgument(t *testing.T) {
	err := fmt.Errorf("string_init: %w", &UninitializedError{})

	assert.True(t, errors.Is(err, ErrBadArgument))
	assert.Equal(t, ReasonUninitialized, Reason(err))
}

func TestReason_NotBadArgument(t *testing.T) {
	assert.Empty(t, Reason(fmt.Errorf("plain")))
	assert.Empty(t, Reason(nil))
}

func TestConfigError(t *testing.T) {
	base := fmt.Errorf("must be between 1 and 127")
	err := &ConfigError{Field: "max_data_length", Err: base}

	assert.Equal(t, "config validation failed for field 'max_data_length': must be between 1 and 127", err.Error())
	assert.True(t, errors.Is(err, base))
	assert.False(t, errors.Is(err, ErrBadArgument))

	noField := &ConfigError{Err: base}
	assert.Equal(t, "config validation failed: must be between 1 and 127", noField.Error())
}

func TestToErrorDetail(t *testing.T) {
	tests := []struct {
		err      error
		name     string
		wantType string
		wantCode string
	}{
		{name: "nil", err: nil},
		{name: "arity", err: &ArityError{Operation: "string_init", Want: 1, Got: 0}, wantType: "bad_argument", wantCode: ReasonArity},
		{name: "too long", err: &TextTooLongError{Length: 128, Limit: 127}, wantType: "bad_argument", wantCode: ReasonTooLong},
		{name: "allocation", err: &AllocationError{Kind: "std_msgs/msg/String", Live: 1, Limit: 1}, wantType: "bad_argument", wantCode: ReasonAllocation},
		{name: "term type", err: &TermTypeError{Position: 1, Want: "string", Got: "number"}, wantType: "bad_argument", wantCode: ReasonType},
		{name: "bare sentinel", err: ErrBadArgument, wantType: "bad_argument"},
		{name: "config", err: &ConfigError{Field: "encoding", Err: fmt.Errorf("bad")}, wantType: "config", wantCode: "encoding"},
		{name: "schema", err: &SchemaError{Type: "Config", Err: fmt.Errorf("bad")}, wantType: "config", wantCode: "schema"},
		{name: "generic", err: fmt.Errorf("boom"), wantType: "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail := ToErrorDetail(tt.err)
			if tt.err == nil {
				assert.Nil(t, detail)
				return
			}
			require.NotNil(t, detail)
			assert.Equal(t, tt.wantType, detail.Type)
			assert.Equal(t, tt.wantCode, detail.Code)
			assert.Equal(t, tt.err.Error(), detail.Message)
		})
	}
}

func TestToErrorDetail_PassThrough(t *testing.T) {
	original := entities.NewErrorDetail("panic", "boom").WithCode("panic")
	wrapped := fmt.Errorf("outer: %w", original)

	assert.Same(t, original, ToErrorDetail(wrapped))
}
