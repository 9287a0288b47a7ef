package rosmsg

import "github.com/reglet-dev/rosmsg-sdk/go/application/config"

// ValidateConfig builds a Config from a decoded key-value map on top of the
// defaults and validates it.
func ValidateConfig(m map[string]any) (Config, error) {
	return config.FromMap(m)
}
