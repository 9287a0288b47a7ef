package entities

// Config represents SDK configuration settings.
// These settings control how records are staged, how many handles a table may
// hold, and how the host module is exposed to guests.
type Config struct {
	// ModuleName is the host module name guests import functions from.
	// The guest packages in this SDK are compiled against "rosmsg_host"
	// (see infrastructure/wasm and log); a different name only serves guests
	// built with their own //go:wasmimport declarations for that module.
	ModuleName string `json:"module_name" yaml:"module_name" validate:"required" jsonschema:"default=rosmsg_host"`

	// Encoding is the byte encoding used for record payloads.
	Encoding string `json:"encoding" yaml:"encoding" validate:"oneof=latin1 utf8" jsonschema:"enum=latin1,enum=utf8,default=latin1"`

	// Log configures the host-side logger.
	Log LogConfig `json:"log" yaml:"log"`

	// MaxDataLength caps the encoded payload length accepted by set_data.
	MaxDataLength int `json:"max_data_length" yaml:"max_data_length" validate:"min=1,max=127" jsonschema:"minimum=1,maximum=127,default=127"`

	// MaxHandles caps the number of live handles; 0 means unlimited.
	MaxHandles int `json:"max_handles" yaml:"max_handles" validate:"min=0" jsonschema:"minimum=0,default=4096"`

	// MaxRequestSize limits the request payload a guest may pass to a host function.
	MaxRequestSize uint32 `json:"max_request_size" yaml:"max_request_size" validate:"min=64" jsonschema:"minimum=64"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string `json:"level" yaml:"level" validate:"oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=info"`

	// Format is the handler format: text or json.
	Format string `json:"format" yaml:"format" validate:"oneof=text json" jsonschema:"enum=text,enum=json,default=text"`
}

// DefaultConfig returns the default SDK configuration.
func DefaultConfig() Config {
	return Config{
		ModuleName:     "rosmsg_host",
		Encoding:       "latin1",
		MaxDataLength:  127,
		MaxHandles:     4096,
		MaxRequestSize: 1 * 1024 * 1024,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ConfigOption is a functional option for configuring SDK settings.
type ConfigOption func(*Config)

// WithEncoding sets the record payload encoding.
func WithEncoding(name string) ConfigOption {
	return func(c *Config) {
		c.Encoding = name
	}
}

// WithMaxDataLength sets the payload limit. Non-positive values are ignored.
func WithMaxDataLength(n int) ConfigOption {
	return func(c *Config) {
		if n > 0 {
			c.MaxDataLength = n
		}
	}
}

// WithMaxHandles sets the live handle limit. Negative values are ignored.
func WithMaxHandles(n int) ConfigOption {
	return func(c *Config) {
		if n >= 0 {
			c.MaxHandles = n
		}
	}
}

// WithModuleName sets the host module name.
func WithModuleName(name string) ConfigOption {
	return func(c *Config) {
		if name != "" {
			c.ModuleName = name
		}
	}
}

// NewConfig returns DefaultConfig with opts applied.
func NewConfig(opts ...ConfigOption) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
