package hostfuncs

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONHandler(t *testing.T) {
	type TestReq struct {
		Input string `json:"input"`
	}
	type TestResp struct {
		Output string `json:"output"`
	}

	echoFunc := func(ctx context.Context, req TestReq) TestResp {
		return TestResp{Output: "echo: " + req.Input}
	}

	handler := NewJSONHandler(echoFunc)

	t.Run("success", func(t *testing.T) {
		reqBytes, err := json.Marshal(TestReq{Input: "hello"})
		require.NoError(t, err)

		respBytes, err := handler(context.Background(), reqBytes)
		require.NoError(t, err)

		var resp TestResp
		require.NoError(t, json.Unmarshal(respBytes, &resp))
		assert.Equal(t, "echo: hello", resp.Output)
	})

	t.Run("empty payload is the zero request", func(t *testing.T) {
		respBytes, err := handler(context.Background(), nil)
		require.NoError(t, err)

		var resp TestResp
		require.NoError(t, json.Unmarshal(respBytes, &resp))
		assert.Equal(t, "echo: ", resp.Output)
	})

	t.Run("invalid JSON returns ErrorResponse", func(t *testing.T) {
		respBytes, err := handler(context.Background(), []byte("{invalid-json"))
		require.NoError(t, err)
		require.NotNil(t, respBytes)

		var errResp ErrorResponse
		require.NoError(t, json.Unmarshal(respBytes, &errResp))
		assert.Equal(t, ErrorValidation, errResp.Error)
		assert.Equal(t, 400, errResp.Code)
	})
}
