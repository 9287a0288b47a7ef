package arena

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/reglet-dev/rosmsg-sdk/go/domain/entities"
	domainerrors "github.com/reglet-dev/rosmsg-sdk/go/domain/errors"
	"github.com/reglet-dev/rosmsg-sdk/go/domain/ports"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// newOwnerID returns a time-sortable ULID identifying a table.
func newOwnerID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

type slot[T any] struct {
	value      *T
	generation uint32
	inUse      bool
}

// Table is a RecordStore backed by a slice of slots and a free list.
// It is safe for concurrent use; the records themselves are not locked.
type Table[T any] struct {
	kind  string
	owner string
	slots []slot[T]
	free  []uint32
	limit int
	live  int
	mu    sync.Mutex
}

var _ ports.RecordStore[struct{}] = (*Table[struct{}])(nil)

// Option configures a Table.
type Option func(*tableConfig)

type tableConfig struct {
	limit int
}

// WithLimit caps the number of live handles. Zero means unlimited.
func WithLimit(n int) Option {
	return func(c *tableConfig) {
		if n >= 0 {
			c.limit = n
		}
	}
}

// New creates an empty table issuing handles of the given kind.
func New[T any](kind string, opts ...Option) *Table[T] {
	cfg := tableConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Table[T]{
		kind:  kind,
		owner: newOwnerID(),
		limit: cfg.limit,
	}
}

// Kind returns the resource kind of every handle issued by t.
func (t *Table[T]) Kind() string { return t.kind }

// Owner returns the table's ownership tag.
func (t *Table[T]) Owner() string { return t.owner }

// Alloc reserves a slot holding a zero-valued T.
func (t *Table[T]) Alloc() (entities.Handle, *T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.limit > 0 && t.live >= t.limit {
		return entities.Handle{}, nil, &domainerrors.AllocationError{Kind: t.kind, Live: t.live, Limit: t.limit}
	}

	var index uint32
	if n := len(t.free); n > 0 {
		index = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		t.slots = append(t.slots, slot[T]{})
		index = uint32(len(t.slots) - 1) //nolint:gosec // G115: bounded by limit and memory
	}

	s := &t.slots[index]
	s.value = new(T)
	s.inUse = true
	t.live++

	return t.handle(index, s.generation), s.value, nil
}

// Get resolves h to its record.
func (t *Table[T]) Get(h entities.Handle) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.lookup(h)
	if err != nil {
		return nil, err
	}
	return s.value, nil
}

// Release frees the slot behind h and invalidates h.
func (t *Table[T]) Release(h entities.Handle) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.lookup(h)
	if err != nil {
		return err
	}

	s.value = nil
	s.inUse = false
	s.generation++
	t.free = append(t.free, h.Index)
	t.live--
	return nil
}

// Len returns the number of live handles.
func (t *Table[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.live
}

// Handles returns the handles of every live slot, in index order.
func (t *Table[T]) Handles() []entities.Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]entities.Handle, 0, t.live)
	for i := range t.slots {
		if t.slots[i].inUse {
			out = append(out, t.handle(uint32(i), t.slots[i].generation)) //nolint:gosec // G115: index fits
		}
	}
	return out
}

func (t *Table[T]) handle(index, generation uint32) entities.Handle {
	return entities.Handle{
		Kind:       t.kind,
		Owner:      t.owner,
		Index:      index,
		Generation: generation,
	}
}

// lookup must be called with t.mu held.
func (t *Table[T]) lookup(h entities.Handle) (*slot[T], error) {
	if h.Kind != t.kind {
		return nil, &domainerrors.ResourceKindError{Want: t.kind, Got: h.Kind}
	}
	if h.Owner != t.owner {
		return nil, &domainerrors.ResourceKindError{Want: t.kind, Got: h.Kind, ForeignOwner: true}
	}
	if int(h.Index) >= len(t.slots) {
		return nil, &domainerrors.StaleHandleError{Handle: h}
	}
	s := &t.slots[h.Index]
	if !s.inUse || s.generation != h.Generation {
		return nil, &domainerrors.StaleHandleError{Handle: h}
	}
	return s, nil
}
