package host

import (
	"context"
	"fmt"
)

func (i *Instance) callRaw(ctx context.Context, name string, input []byte) (uint64, error) {
	f := i.module.ExportedFunction(name)
	if f == nil {
		return 0, fmt.Errorf("export %q not found", name)
	}

	var results []uint64
	var err error

	if input == nil {
		results, err = f.Call(ctx)
	} else {
		ptr, allocErr := i.allocate(ctx, input)
		if allocErr != nil {
			return 0, allocErr
		}
		results, err = f.Call(ctx, (uint64(ptr)<<32)|uint64(len(input)))
	}

	if err != nil {
		return 0, fmt.Errorf("call %q: %w", name, err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0], nil
}

func (i *Instance) allocate(ctx context.Context, input []byte) (uint32, error) {
	allocate := i.module.ExportedFunction("allocate")
	if allocate == nil {
		return 0, fmt.Errorf("guest does not export 'allocate'")
	}
	res, err := allocate.Call(ctx, uint64(len(input)))
	if err != nil {
		return 0, fmt.Errorf("failed to allocate in guest: %w", err)
	}
	if len(res) == 0 {
		return 0, fmt.Errorf("allocate returned no results")
	}
	ptr := uint32(res[0]) //nolint:gosec // G115: WASM32 pointers are always 32-bit
	if !i.module.Memory().Write(ptr, input) {
		return 0, fmt.Errorf("failed to write input to guest memory")
	}
	return ptr, nil
}

// readPacked copies a guest response out of guest memory and frees it when
// the guest exports deallocate.
func (i *Instance) readPacked(ctx context.Context, packed uint64) ([]byte, error) {
	ptr := uint32(packed >> 32) //nolint:gosec // G115: Packed format stores 32-bit values
	length := uint32(packed)    //nolint:gosec // G115: Packed format stores 32-bit values
	if ptr == 0 || length == 0 {
		return nil, fmt.Errorf("null response from guest")
	}
	data, ok := i.module.Memory().Read(ptr, length)
	if !ok {
		return nil, fmt.Errorf("failed to read response from memory")
	}
	out := make([]byte, length)
	copy(out, data)

	if dealloc := i.module.ExportedFunction("deallocate"); dealloc != nil {
		_, _ = dealloc.Call(ctx, uint64(ptr), uint64(length))
	}
	return out, nil
}
