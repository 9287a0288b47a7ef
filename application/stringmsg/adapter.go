// Package stringmsg implements the String-Message Adapter: allocation,
// initialization, writing, reading and release of std_msgs/msg/String records
// behind opaque handles.
package stringmsg

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/reglet-dev/rosmsg-sdk/go/domain/entities"
	domainerrors "github.com/reglet-dev/rosmsg-sdk/go/domain/errors"
	"github.com/reglet-dev/rosmsg-sdk/go/domain/msg"
	"github.com/reglet-dev/rosmsg-sdk/go/domain/ports"
)

// Adapter mediates between callers holding handles and the records in a store.
// Calls are synchronous; callers serialize access to any single handle.
type Adapter struct {
	store  ports.RecordStore[msg.String]
	codec  msg.Codec
	logger *slog.Logger
	limit  int
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for rejected calls. Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an Adapter over store using the encoding and payload limit from cfg.
func New(store ports.RecordStore[msg.String], cfg entities.Config, opts ...Option) (*Adapter, error) {
	if store == nil {
		return nil, fmt.Errorf("record store is required")
	}
	if store.Kind() != msg.TypeName {
		return nil, fmt.Errorf("record store holds %q, want %q", store.Kind(), msg.TypeName)
	}

	codec, err := msg.CodecFor(cfg.Encoding)
	if err != nil {
		return nil, &domainerrors.ConfigError{Field: "encoding", Err: err}
	}

	a := &Adapter{
		store:  store,
		codec:  codec,
		limit:  cfg.MaxDataLength,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// CreateEmpty allocates storage for one record and returns its handle.
// The record is not initialized.
func (a *Adapter) CreateEmpty() (entities.Handle, error) {
	h, _, err := a.store.Alloc()
	if err != nil {
		return entities.Handle{}, a.reject(OpCreateEmpty, err)
	}
	return h, nil
}

// Init zero-initializes the record behind h and returns h.
func (a *Adapter) Init(h entities.Handle) (entities.Handle, error) {
	rec, err := a.store.Get(h)
	if err != nil {
		return entities.Handle{}, a.reject(OpInit, err)
	}
	rec.Init()
	return h, nil
}

// SetData stages text and assigns it to the record behind h.
// Text longer than the payload limit is rejected, never truncated.
func (a *Adapter) SetData(h entities.Handle, text string) error {
	rec, err := a.initialized(h)
	if err != nil {
		return a.reject(OpSetData, err)
	}

	staged, err := msg.Stage(text, a.codec, a.limit)
	if err != nil {
		return a.reject(OpSetData, err)
	}

	rec.Assign(staged)
	return nil
}

// ReadData returns the current payload of the record behind h.
func (a *Adapter) ReadData(h entities.Handle) (string, error) {
	rec, err := a.initialized(h)
	if err != nil {
		return "", a.reject(OpReadData, err)
	}

	text, err := a.codec.Decode(rec.Bytes())
	if err != nil {
		return "", a.reject(OpReadData, &domainerrors.EncodingError{Encoding: a.codec.Name(), Err: err})
	}
	return text, nil
}

// Release finalizes the record behind h and frees its slot.
func (a *Adapter) Release(h entities.Handle) error {
	rec, err := a.store.Get(h)
	if err != nil {
		return a.reject(OpRelease, err)
	}
	rec.Fini()
	if err := a.store.Release(h); err != nil {
		return a.reject(OpRelease, err)
	}
	return nil
}

// Live returns the number of records not yet released.
func (a *Adapter) Live() int {
	return a.store.Len()
}

// Close releases every live record. It returns the number released.
func (a *Adapter) Close() int {
	released := 0
	for _, h := range a.store.Handles() {
		if err := a.Release(h); err == nil {
			released++
		}
	}
	return released
}

func (a *Adapter) initialized(h entities.Handle) (*msg.String, error) {
	rec, err := a.store.Get(h)
	if err != nil {
		return nil, err
	}
	if !rec.Initialized() {
		return nil, &domainerrors.UninitializedError{Handle: h}
	}
	return rec, nil
}

func (a *Adapter) reject(op Operation, err error) error {
	a.logger.Debug("string message call rejected",
		"op", string(op),
		"reason", domainerrors.Reason(err),
		"error", err)
	return err
}
