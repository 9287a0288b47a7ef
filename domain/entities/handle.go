package entities

import "fmt"

// Handle is an opaque reference to a record held by a resource table.
// Callers must treat every field as opaque; they are exported only so the
// handle can cross the JSON host-function boundary unchanged.
type Handle struct {
	// Kind is the resource kind the handle was issued for (e.g. "std_msgs/msg/String").
	Kind string `json:"kind"`

	// Owner identifies the table that issued the handle.
	Owner string `json:"owner"`

	// Index is the slot index inside the owning table.
	Index uint32 `json:"index"`

	// Generation is bumped every time the slot is released, so a handle
	// kept past its release no longer matches the slot.
	Generation uint32 `json:"generation"`
}

// String returns a compact, log-friendly representation.
func (h Handle) String() string {
	return fmt.Sprintf("%s#%d.%d@%s", h.Kind, h.Index, h.Generation, h.Owner)
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h == Handle{}
}
