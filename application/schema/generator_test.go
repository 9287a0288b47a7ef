//go:build !wasip1

package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	return decoded
}

func TestGenerateSchema_RequiredFields(t *testing.T) {
	type TopicConfig struct {
		Topic   string  `json:"topic"`
		Depth   int     `json:"depth"`
		Comment *string `json:"comment,omitempty"`
	}

	data, err := GenerateSchema(TopicConfig{})
	require.NoError(t, err)
	decoded := decode(t, data)

	properties, ok := decoded["properties"].(map[string]any)
	require.True(t, ok, "properties should be a map")
	assert.Len(t, properties, 3)

	required, ok := decoded["required"].([]any)
	require.True(t, ok, "required should be an array")
	assert.Contains(t, required, "topic")
	assert.Contains(t, required, "depth")
	assert.NotContains(t, required, "comment")
}

func TestGenerateSchema_EmptyStruct(t *testing.T) {
	type EmptyConfig struct{}

	data, err := GenerateSchema(EmptyConfig{})
	require.NoError(t, err)
	assert.NotEmpty(t, decode(t, data))
}

func TestConfigSchema(t *testing.T) {
	data, err := ConfigSchema()
	require.NoError(t, err)
	decoded := decode(t, data)

	properties, ok := decoded["properties"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"module_name", "encoding", "log", "max_data_length", "max_handles", "max_request_size"} {
		assert.Contains(t, properties, key)
	}

	maxData, ok := properties["max_data_length"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 127, maxData["maximum"])
	assert.EqualValues(t, 1, maxData["minimum"])

	encoding, ok := properties["encoding"].(map[string]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"latin1", "utf8"}, encoding["enum"])
}

func TestHandleSchema(t *testing.T) {
	data, err := HandleSchema()
	require.NoError(t, err)
	decoded := decode(t, data)

	properties, ok := decoded["properties"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, properties, 4)
	assert.Contains(t, properties, "generation")
}
