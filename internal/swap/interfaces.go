package swap

import "context"

// MemoryProbe reads the current memory and swap counters
type MemoryProbe interface {
	Snapshot(ctx context.Context) (MemorySnapshot, error)
}

// DeviceBackend creates, activates, deactivates and destroys swap devices
type DeviceBackend interface {
	// Enumerate lists the active swap devices in the order the OS reports them
	Enumerate(ctx context.Context) ([]Device, error)
	// Create allocates and formats a new device of the given size and returns its path
	Create(ctx context.Context, sizeBytes uint64) (string, error)
	Activate(ctx context.Context, path string) error
	Deactivate(ctx context.Context, path string) error
	Destroy(ctx context.Context, path string) error
}

// CacheReclaimer asks the kernel to drop reclaimable page cache
type CacheReclaimer interface {
	Drop(ctx context.Context) bool
}
