package ports

import "github.com/reglet-dev/rosmsg-sdk/go/domain/entities"

// RecordStore holds records of a single resource kind behind opaque handles.
// Infrastructure adapters implement this to provide handle tables.
type RecordStore[T any] interface {
	// Kind returns the resource kind every handle from this store carries.
	Kind() string

	// Alloc reserves a new slot holding a zero-valued record.
	Alloc() (entities.Handle, *T, error)

	// Get resolves a handle to its record. It fails for handles of another
	// kind or owner, and for released handles.
	Get(h entities.Handle) (*T, error)

	// Release frees the slot behind h. Subsequent use of h fails.
	Release(h entities.Handle) error

	// Len returns the number of live handles.
	Len() int

	// Handles returns the handles of every live record.
	Handles() []entities.Handle
}
