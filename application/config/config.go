// Package config loads and validates host configuration.
package config

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/reglet-dev/rosmsg-sdk/go/domain/entities"
	"github.com/reglet-dev/rosmsg-sdk/go/domain/errors"
	"github.com/reglet-dev/rosmsg-sdk/go/domain/ports"
	"github.com/reglet-dev/rosmsg-sdk/go/infrastructure/parser"
)

// validate is a package-level singleton; validators cache struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks cfg against its validation tags. The first violation is
// returned as an *errors.ConfigError naming the field by its config key.
func Validate(cfg entities.Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stdErrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &errors.ConfigError{Err: err}
	}

	fe := fieldErrs[0]
	return &errors.ConfigError{
		Field: fieldPath(fe.Namespace()),
		Err:   fmt.Errorf("must satisfy %s, got %v", constraint(fe), fe.Value()),
	}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

// Parse decodes YAML configuration and validates it.
func Parse(data []byte) (entities.Config, error) {
	return ParseWith(parser.NewYamlConfigParser(), data)
}

// ParseWith decodes configuration with p and validates it.
func ParseWith(p ports.ConfigParser, data []byte) (entities.Config, error) {
	cfg, err := p.Parse(data)
	if err != nil {
		return entities.Config{}, &errors.ConfigError{Err: err}
	}
	if err := Validate(*cfg); err != nil {
		return entities.Config{}, err
	}
	return *cfg, nil
}

// Load reads and parses the YAML configuration file at path.
func Load(path string) (entities.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is operator supplied
	if err != nil {
		return entities.Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// FromMap builds a Config from a decoded key-value map, such as embedded
// JSON. Keys not present keep their defaults.
func FromMap(m map[string]any) (entities.Config, error) {
	jsonBytes, err := json.Marshal(m)
	if err != nil {
		return entities.Config{}, fmt.Errorf("failed to marshal config map: %w", err)
	}

	cfg := entities.DefaultConfig()
	if err := json.Unmarshal(jsonBytes, &cfg); err != nil {
		return entities.Config{}, &errors.ConfigError{Err: fmt.Errorf("failed to unmarshal config: %w", err)}
	}

	if err := Validate(cfg); err != nil {
		return entities.Config{}, err
	}
	return cfg, nil
}
