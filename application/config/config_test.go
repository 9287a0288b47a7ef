//go:build !wasip1

package config

import (
	stdErrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/reglet-dev/rosmsg-sdk/go/domain/entities"
	"github.com/reglet-dev/rosmsg-sdk/go/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, Validate(entities.DefaultConfig()))
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*entities.Config)
		wantField string
	}{
		{name: "data length too large", mutate: func(c *entities.Config) { c.MaxDataLength = 128 }, wantField: "max_data_length"},
		{name: "data length zero", mutate: func(c *entities.Config) { c.MaxDataLength = 0 }, wantField: "max_data_length"},
		{name: "unknown encoding", mutate: func(c *entities.Config) { c.Encoding = "ebcdic" }, wantField: "encoding"},
		{name: "negative handles", mutate: func(c *entities.Config) { c.MaxHandles = -1 }, wantField: "max_handles"},
		{name: "missing module", mutate: func(c *entities.Config) { c.ModuleName = "" }, wantField: "module_name"},
		{name: "tiny request size", mutate: func(c *entities.Config) { c.MaxRequestSize = 8 }, wantField: "max_request_size"},
		{name: "log level", mutate: func(c *entities.Config) { c.Log.Level = "trace" }, wantField: "log.level"},
		{name: "log format", mutate: func(c *entities.Config) { c.Log.Format = "xml" }, wantField: "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := entities.DefaultConfig()
			tt.mutate(&cfg)

			err := Validate(cfg)
			var cfgErr *errors.ConfigError
			require.True(t, stdErrors.As(err, &cfgErr), "want ConfigError, got %v", err)
			assert.Equal(t, tt.wantField, cfgErr.Field)
			assert.False(t, stdErrors.Is(err, errors.ErrBadArgument))
		})
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte("encoding: utf8\nmax_handles: 16\n"))
	require.NoError(t, err)
	assert.Equal(t, "utf8", cfg.Encoding)
	assert.Equal(t, 16, cfg.MaxHandles)
	assert.Equal(t, 127, cfg.MaxDataLength)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("max_data_length: 500\n"))
	var cfgErr *errors.ConfigError
	require.True(t, stdErrors.As(err, &cfgErr))
	assert.Equal(t, "max_data_length", cfgErr.Field)
	assert.Contains(t, err.Error(), "max=127")

	_, err = Parse([]byte("bogus: true\n"))
	require.True(t, stdErrors.As(err, &cfgErr))
	assert.Empty(t, cfgErr.Field)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rosmsg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("module_name: ros_host\nlog:\n  format: json\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ros_host", cfg.ModuleName)
	assert.Equal(t, "json", cfg.Log.Format)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFromMap(t *testing.T) {
	cfg, err := FromMap(map[string]any{
		"encoding":        "utf8",
		"max_data_length": 32,
	})
	require.NoError(t, err)
	assert.Equal(t, "utf8", cfg.Encoding)
	assert.Equal(t, 32, cfg.MaxDataLength)
	assert.Equal(t, "rosmsg_host", cfg.ModuleName)

	_, err = FromMap(map[string]any{"max_data_length": "long"})
	assert.Error(t, err)

	_, err = FromMap(map[string]any{"encoding": "ascii"})
	var cfgErr *errors.ConfigError
	require.True(t, stdErrors.As(err, &cfgErr))
	assert.Equal(t, "encoding", cfgErr.Field)
}
