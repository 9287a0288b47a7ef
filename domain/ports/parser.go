package ports

import "github.com/reglet-dev/rosmsg-sdk/go/domain/entities"

// ConfigParser parses raw configuration bytes into a Config.
type ConfigParser interface {
	// Parse unmarshals bytes on top of the defaults.
	Parse(data []byte) (*entities.Config, error)
}
