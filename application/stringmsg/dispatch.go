package stringmsg

import (
	"fmt"

	"github.com/reglet-dev/rosmsg-sdk/go/domain/entities"
	domainerrors "github.com/reglet-dev/rosmsg-sdk/go/domain/errors"
)

// Operation names a boundary entry point.
type Operation string

// Boundary entry points, named as exported to guests.
const (
	OpCreateEmpty Operation = "string_create_empty"
	OpInit        Operation = "string_init"
	OpSetData     Operation = "string_set_data"
	OpReadData    Operation = "string_read_data"
	OpRelease     Operation = "string_release"
)

// Operations lists every boundary entry point.
func Operations() []Operation {
	return []Operation{OpCreateEmpty, OpInit, OpSetData, OpReadData, OpRelease}
}

var arity = map[Operation]int{
	OpCreateEmpty: 0,
	OpInit:        1,
	OpSetData:     2,
	OpReadData:    1,
	OpRelease:     1,
}

// Reply is the success value of a dispatched call.
// Handle is set by create_empty and init, Data by read_data.
type Reply struct {
	Handle *entities.Handle
	Data   *string
}

// Dispatch runs op with dynamically typed arguments, as received from a host
// runtime. Argument count and argument types are checked before the adapter
// is touched; every failure matches domainerrors.ErrBadArgument.
func (a *Adapter) Dispatch(op Operation, args ...any) (Reply, error) {
	want, ok := arity[op]
	if !ok {
		return Reply{}, fmt.Errorf("unknown operation %q", op)
	}
	if len(args) != want {
		return Reply{}, a.reject(op, &domainerrors.ArityError{Operation: string(op), Want: want, Got: len(args)})
	}

	if op == OpCreateEmpty {
		h, err := a.CreateEmpty()
		if err != nil {
			return Reply{}, err
		}
		return Reply{Handle: &h}, nil
	}

	h, err := handleArg(args, 0)
	if err != nil {
		return Reply{}, a.reject(op, err)
	}

	switch op {
	case OpInit:
		h, err = a.Init(h)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Handle: &h}, nil
	case OpSetData:
		text, err := stringArg(args, 1)
		if err != nil {
			return Reply{}, a.reject(op, err)
		}
		return Reply{}, a.SetData(h, text)
	case OpReadData:
		text, err := a.ReadData(h)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Data: &text}, nil
	default: // OpRelease
		return Reply{}, a.Release(h)
	}
}

func handleArg(args []any, i int) (entities.Handle, error) {
	switch v := args[i].(type) {
	case entities.Handle:
		return v, nil
	case *entities.Handle:
		if v != nil {
			return *v, nil
		}
	}
	return entities.Handle{}, &domainerrors.TermTypeError{Position: i, Want: "handle", Got: termTypeName(args[i])}
}

func stringArg(args []any, i int) (string, error) {
	if s, ok := args[i].(string); ok {
		return s, nil
	}
	return "", &domainerrors.TermTypeError{Position: i, Want: "string", Got: termTypeName(args[i])}
}

// termTyper is implemented by boundary values that know their own type name.
type termTyper interface {
	TermType() string
}

func termTypeName(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case termTyper:
		return t.TermType()
	default:
		return fmt.Sprintf("%T", v)
	}
}
