//go:build wasip1

package abi

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUnpackPtrLen(t *testing.T) {
	tests := []struct {
		name   string
		ptr    uint32
		length uint32
	}{
		{name: "zero", ptr: 0, length: 0},
		{name: "typical", ptr: 0x12345678, length: 0xABCDEF00},
		{name: "max pointer", ptr: 0xFFFFFFFF, length: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed := PackPtrLen(tt.ptr, tt.length)
			assert.Equal(t, uint64(tt.ptr)<<PtrHighBits|uint64(tt.length), packed)

			ptr, length := UnpackPtrLen(packed)
			assert.Equal(t, tt.ptr, ptr)
			assert.Equal(t, tt.length, length)
		})
	}
}

func TestPackPtrLen_NullPointerWithLength(t *testing.T) {
	assert.Panics(t, func() { PackPtrLen(0, 4) })
	assert.Panics(t, func() { UnpackPtrLen(4) })
}

func TestPtrFromBytes_RoundTrip(t *testing.T) {
	FreeAllTracked()

	packed := PtrFromBytes([]byte("hello"))
	require.NotZero(t, packed)

	buffers, total := Stats()
	assert.Equal(t, 1, buffers)
	assert.Equal(t, 5, total)

	assert.Equal(t, []byte("hello"), BytesFromPtr(packed))

	DeallocatePacked(packed)
	buffers, total = Stats()
	assert.Zero(t, buffers)
	assert.Zero(t, total)
}

func TestPtrFromBytes_Empty(t *testing.T) {
	assert.Zero(t, PtrFromBytes(nil))
	assert.Nil(t, BytesFromPtr(0))
	DeallocatePacked(0)
}

func TestDeallocate_Idempotent(t *testing.T) {
	FreeAllTracked()

	ptr := allocate(8)
	deallocate(ptr, 8)
	deallocate(ptr, 8)

	_, total := Stats()
	assert.Zero(t, total)
}

func TestConfigure(t *testing.T) {
	t.Cleanup(func() { _ = Configure(DefaultMaxTotalAllocations) })
	FreeAllTracked()

	require.Error(t, Configure(0))
	require.NoError(t, Configure(16))

	allocate(16)
	assert.Panics(t, func() { allocate(1) })
	FreeAllTracked()
}

func TestConcurrentAllocations(t *testing.T) {
	FreeAllTracked()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			DeallocatePacked(PtrFromBytes([]byte("payload")))
		}()
	}
	wg.Wait()

	buffers, _ := Stats()
	assert.Zero(t, buffers)
}
