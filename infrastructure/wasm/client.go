package wasm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/reglet-dev/rosmsg-sdk/go/application/stringmsg"
	"github.com/reglet-dev/rosmsg-sdk/go/domain/entities"
	domainerrors "github.com/reglet-dev/rosmsg-sdk/go/domain/errors"
	"github.com/reglet-dev/rosmsg-sdk/go/domain/ports"
	"github.com/reglet-dev/rosmsg-sdk/go/hostfuncs"
)

// CallError is a host call rejected by the host, as seen by the guest.
type CallError struct {
	Kind    string
	Message string
	Reason  string
	Code    int
}

func (e *CallError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.Reason, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches domainerrors.ErrBadArgument for BAD_ARGUMENT responses.
func (e *CallError) Is(target error) bool {
	return target == domainerrors.ErrBadArgument && e.Kind == hostfuncs.ErrorBadArgument
}

// ToErrorDetail implements domainerrors.DetailedError.
func (e *CallError) ToErrorDetail() *entities.ErrorDetail {
	if e.Kind == hostfuncs.ErrorBadArgument {
		return &entities.ErrorDetail{Message: e.Error(), Type: "bad_argument", Code: e.Reason}
	}
	return &entities.ErrorDetail{Message: e.Error(), Type: "internal", Code: e.Kind}
}

// StringClient calls the string-message host functions.
type StringClient struct {
	invoker ports.HostInvoker
}

// NewStringClient creates a client sending calls through invoker.
func NewStringClient(invoker ports.HostInvoker) *StringClient {
	return &StringClient{invoker: invoker}
}

// NewGuestStringClient creates a client bound to the WASM host imports.
func NewGuestStringClient() *StringClient {
	return NewStringClient(HostImports{})
}

// CreateEmpty allocates an uninitialized record on the host.
func (c *StringClient) CreateEmpty(ctx context.Context) (entities.Handle, error) {
	resp, err := c.call(ctx, stringmsg.OpCreateEmpty)
	if err != nil {
		return entities.Handle{}, err
	}
	return handleOf(resp)
}

// Init zero-initializes the record behind h.
func (c *StringClient) Init(ctx context.Context, h entities.Handle) (entities.Handle, error) {
	resp, err := c.call(ctx, stringmsg.OpInit, h)
	if err != nil {
		return entities.Handle{}, err
	}
	return handleOf(resp)
}

// SetData writes text into the record behind h.
func (c *StringClient) SetData(ctx context.Context, h entities.Handle, text string) error {
	_, err := c.call(ctx, stringmsg.OpSetData, h, text)
	return err
}

// ReadData reads the record behind h.
func (c *StringClient) ReadData(ctx context.Context, h entities.Handle) (string, error) {
	resp, err := c.call(ctx, stringmsg.OpReadData, h)
	if err != nil {
		return "", err
	}
	if resp.Data == nil {
		return "", fmt.Errorf("host response for %s carries no data", stringmsg.OpReadData)
	}
	return *resp.Data, nil
}

// Release frees the record behind h.
func (c *StringClient) Release(ctx context.Context, h entities.Handle) error {
	_, err := c.call(ctx, stringmsg.OpRelease, h)
	return err
}

func (c *StringClient) call(ctx context.Context, op stringmsg.Operation, args ...any) (*hostfuncs.CallResponse, error) {
	req := hostfuncs.CallRequest{Args: make([]json.RawMessage, len(args))}
	for i, arg := range args {
		raw, err := json.Marshal(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal argument %d: %w", i, err)
		}
		req.Args[i] = raw
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	respBytes, err := c.invoker.Invoke(ctx, string(op), payload)
	if err != nil {
		return nil, err
	}

	var errResp hostfuncs.ErrorResponse
	if err := json.Unmarshal(respBytes, &errResp); err == nil && errResp.Error != "" {
		return nil, &CallError{Kind: errResp.Error, Message: errResp.Message, Reason: errResp.Reason, Code: errResp.Code}
	}

	var resp hostfuncs.CallResponse
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &resp, nil
}

func handleOf(resp *hostfuncs.CallResponse) (entities.Handle, error) {
	if resp.Handle == nil {
		return entities.Handle{}, fmt.Errorf("host response carries no handle")
	}
	return *resp.Handle, nil
}
