// Package rosmsg is the entry point for embedding the std_msgs/msg/String
// adapter in a Go program without going through a WASM guest.
package rosmsg

import (
	"errors"

	"github.com/reglet-dev/rosmsg-sdk/go/application/config"
	"github.com/reglet-dev/rosmsg-sdk/go/application/stringmsg"
	"github.com/reglet-dev/rosmsg-sdk/go/domain/entities"
	domainerrors "github.com/reglet-dev/rosmsg-sdk/go/domain/errors"
	"github.com/reglet-dev/rosmsg-sdk/go/domain/msg"
	"github.com/reglet-dev/rosmsg-sdk/go/infrastructure/arena"
)

// Handle is an opaque reference to a String record.
type Handle = entities.Handle

// Config holds adapter and host settings.
type Config = entities.Config

// ErrorDetail is the structured form of an error, as carried in host responses.
type ErrorDetail = entities.ErrorDetail

// ErrBadArgument is matched by every rejected adapter call.
var ErrBadArgument = domainerrors.ErrBadArgument

const (
	// TypeName is the ROS interface type the adapter handles.
	TypeName = msg.TypeName

	// MaxDataLength is the largest payload, in encoded bytes, set_data accepts.
	MaxDataLength = msg.MaxDataLength
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return entities.DefaultConfig()
}

// NewAdapter validates cfg and creates an adapter over a fresh record table
// sized by it.
func NewAdapter(cfg Config, opts ...stringmsg.Option) (*stringmsg.Adapter, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	store := arena.New[msg.String](msg.TypeName, arena.WithLimit(cfg.MaxHandles))
	return stringmsg.New(store, cfg, opts...)
}

// IsBadArgument reports whether err is a rejected adapter call.
func IsBadArgument(err error) bool {
	return errors.Is(err, ErrBadArgument)
}

// ToErrorDetail converts err to its structured form.
func ToErrorDetail(err error) *ErrorDetail {
	return domainerrors.ToErrorDetail(err)
}
