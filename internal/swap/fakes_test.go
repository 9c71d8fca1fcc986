package swap

import (
	"context"
	"fmt"
	"sync"
)

type fakeProbe struct {
	mutex    sync.Mutex
	snapshot MemorySnapshot
	err      error
	calls    int
}

func (p *fakeProbe) Snapshot(ctx context.Context) (MemorySnapshot, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.calls++
	return p.snapshot, p.err
}

func (p *fakeProbe) Calls() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.calls
}

type fakeReclaimer struct {
	result bool
	calls  int
}

func (r *fakeReclaimer) Drop(ctx context.Context) bool {
	r.calls++
	return r.result
}

// fakeBackend keeps devices in enumeration order and records every mutating call
type fakeBackend struct {
	mutex   sync.Mutex
	devices []Device
	active  map[string]bool
	next    int
	ops     []string

	enumerateErr  error
	createErr     error
	activateErr   error
	deactivateErr error
	destroyErr    error
	blockCreate   bool
}

func newFakeBackend(sizes ...uint64) *fakeBackend {
	b := &fakeBackend{active: make(map[string]bool)}
	for _, size := range sizes {
		path := fmt.Sprintf("/dev/zram%d", b.next)
		b.next++
		b.devices = append(b.devices, Device{Path: path, SizeBytes: size})
		b.active[path] = true
	}
	return b
}

func (b *fakeBackend) Enumerate(ctx context.Context) ([]Device, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.enumerateErr != nil {
		return nil, b.enumerateErr
	}
	var out []Device
	for _, d := range b.devices {
		if b.active[d.Path] {
			out = append(out, d)
		}
	}
	return out, nil
}

func (b *fakeBackend) Create(ctx context.Context, sizeBytes uint64) (string, error) {
	if b.blockCreate {
		<-ctx.Done()
		return "", ctx.Err()
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.ops = append(b.ops, fmt.Sprintf("create %d", sizeBytes))
	if b.createErr != nil {
		return "", b.createErr
	}
	path := fmt.Sprintf("/dev/zram%d", b.next)
	b.next++
	b.devices = append(b.devices, Device{Path: path, SizeBytes: sizeBytes})
	return path, nil
}

func (b *fakeBackend) Activate(ctx context.Context, path string) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.ops = append(b.ops, "activate "+path)
	if b.activateErr != nil {
		return b.activateErr
	}
	b.active[path] = true
	return nil
}

func (b *fakeBackend) Deactivate(ctx context.Context, path string) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.ops = append(b.ops, "deactivate "+path)
	if b.deactivateErr != nil {
		return b.deactivateErr
	}
	b.active[path] = false
	return nil
}

func (b *fakeBackend) Destroy(ctx context.Context, path string) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.ops = append(b.ops, "destroy "+path)
	if b.destroyErr != nil {
		return b.destroyErr
	}
	for i, d := range b.devices {
		if d.Path == path {
			b.devices = append(b.devices[:i], b.devices[i+1:]...)
			break
		}
	}
	delete(b.active, path)
	return nil
}

func (b *fakeBackend) Ops() []string {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return append([]string(nil), b.ops...)
}

func (b *fakeBackend) ActiveSizes() []uint64 {
	devices, _ := b.Enumerate(context.Background())
	sizes := make([]uint64, 0, len(devices))
	for _, d := range devices {
		sizes = append(sizes, d.SizeBytes)
	}
	return sizes
}

// capturingDispatcher holds detached work until the test runs it
type capturingDispatcher struct {
	jobs []func()
}

func (d *capturingDispatcher) dispatch(f func()) {
	d.jobs = append(d.jobs, f)
}

func (d *capturingDispatcher) runAll() {
	jobs := d.jobs
	d.jobs = nil
	for _, job := range jobs {
		job()
	}
}
