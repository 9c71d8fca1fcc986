package swap

import (
	"context"
	"fmt"
	"sort"
)

// Registry lists active swap devices, smallest first
type Registry struct {
	backend DeviceBackend
}

// NewRegistry creates a registry over the given backend
func NewRegistry(backend DeviceBackend) *Registry {
	return &Registry{backend: backend}
}

// List returns the active devices sorted by ascending size. Devices of equal size keep
// the backend's enumeration order. The result is rebuilt on every call.
func (r *Registry) List(ctx context.Context) ([]Device, error) {
	devices, err := r.backend.Enumerate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list swap devices: %w", err)
	}

	sorted := make([]Device, len(devices))
	copy(sorted, devices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SizeBytes < sorted[j].SizeBytes
	})

	return sorted, nil
}
