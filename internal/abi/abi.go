//go:build wasip1

// Package abi manages guest-side WASM linear memory for host function calls.
//
// Requests and responses cross the boundary as a single i64: the pointer in
// the upper 32 bits and the length in the lower 32 bits. Buffers handed to the
// host are pinned in a tracking table until the guest frees them.
package abi

import (
	"fmt"
	"sync"
	"unsafe"
)

// PtrHighBits is the shift applied to the pointer half of a packed value.
const PtrHighBits = 32

// DefaultMaxTotalAllocations caps guest memory pinned for host calls.
const DefaultMaxTotalAllocations = 16 * 1024 * 1024 // 16 MB

type tracker struct {
	pinned map[uint32][]byte
	total  int
	limit  int
	sync.Mutex
}

var memory = &tracker{
	pinned: make(map[uint32][]byte),
	limit:  DefaultMaxTotalAllocations,
}

// Configure sets the allocation limit. It returns an error for non-positive limits.
func Configure(maxTotal int) error {
	if maxTotal <= 0 {
		return fmt.Errorf("abi: allocation limit must be positive, got %d", maxTotal)
	}
	memory.Lock()
	defer memory.Unlock()
	memory.limit = maxTotal
	return nil
}

// Stats reports the number of pinned buffers and their total size.
func Stats() (buffers, bytes int) {
	memory.Lock()
	defer memory.Unlock()
	return len(memory.pinned), memory.total
}

// allocate reserves size bytes and pins them. The host calls it to place
// responses in guest memory.
//
//go:wasmexport allocate
func allocate(size uint32) uint32 {
	if size == 0 {
		return 0
	}

	memory.Lock()
	defer memory.Unlock()

	if memory.total+int(size) > memory.limit {
		panic(fmt.Sprintf("abi: allocation of %d bytes exceeds limit (%d of %d in use)", size, memory.total, memory.limit))
	}

	buf := make([]byte, size)
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0])))
	memory.pinned[ptr] = buf
	memory.total += int(size)
	return ptr
}

// deallocate unpins the buffer at ptr. Unknown pointers are ignored; the
// accounted size is the pinned length, not the caller's size.
//
//go:wasmexport deallocate
func deallocate(ptr uint32, _ uint32) {
	memory.Lock()
	defer memory.Unlock()

	buf, ok := memory.pinned[ptr]
	if !ok {
		return
	}
	delete(memory.pinned, ptr)
	memory.total -= len(buf)
}

// FreeAllTracked unpins every buffer.
func FreeAllTracked() {
	memory.Lock()
	defer memory.Unlock()
	clear(memory.pinned)
	memory.total = 0
}

// PtrFromBytes copies data into pinned memory and returns it packed.
// Empty data packs to 0.
func PtrFromBytes(data []byte) uint64 {
	if len(data) == 0 {
		return 0
	}
	size := uint32(len(data)) //nolint:gosec // G115: WASM32 lengths fit in 32 bits
	ptr := allocate(size)
	copy(unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), size), data) //nolint:gosec // G103: WASM linear memory
	return PackPtrLen(ptr, size)
}

// BytesFromPtr copies the buffer described by packed out of linear memory.
func BytesFromPtr(packed uint64) []byte {
	ptr, length := UnpackPtrLen(packed)
	if ptr == 0 || length == 0 {
		return nil
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), length) //nolint:gosec // G103: WASM linear memory
	out := make([]byte, length)
	copy(out, src)
	return out
}

// DeallocatePacked unpins the buffer described by packed.
func DeallocatePacked(packed uint64) {
	ptr, length := UnpackPtrLen(packed)
	if ptr != 0 && length > 0 {
		deallocate(ptr, length)
	}
}

// PackPtrLen packs ptr and length. A null pointer with a length is invalid.
func PackPtrLen(ptr, length uint32) uint64 {
	if ptr == 0 && length > 0 {
		panic(fmt.Sprintf("abi: null pointer with length %d", length))
	}
	return uint64(ptr)<<PtrHighBits | uint64(length)
}

// UnpackPtrLen is the inverse of PackPtrLen.
func UnpackPtrLen(packed uint64) (ptr, length uint32) {
	ptr = uint32(packed >> PtrHighBits) //nolint:gosec // G115: packed format stores 32-bit values
	length = uint32(packed)             //nolint:gosec // G115: packed format stores 32-bit values
	if ptr == 0 && length > 0 {
		panic(fmt.Sprintf("abi: null pointer with length %d", length))
	}
	return ptr, length
}
