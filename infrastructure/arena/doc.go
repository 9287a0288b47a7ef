// Package arena provides a generation-tagged handle table for SDK records.
//
// Records live in indexed slots. A handle carries the slot index, the slot
// generation, the resource kind and the ULID of the owning table; releasing a
// slot bumps its generation, so a handle kept past its release is rejected
// instead of resolving to whatever record reuses the slot.
package arena
