package swap

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ZramManager/internal/pkg/logger"

	"github.com/docker/go-units"
	"github.com/hashicorp/go-multierror"
)

// ReportHandler receives the report of every finished tick
type ReportHandler func(TickReport)

// Option configures a Controller
type Option func(*Controller)

// WithMetrics sets the collectors updated by the controller
func WithMetrics(m *Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithReportHandler adds a handler called after every tick
func WithReportHandler(h ReportHandler) Option {
	return func(c *Controller) {
		c.handlers = append(c.handlers, h)
	}
}

// WithDispatcher replaces the function used to run detached retirements.
// The default starts a goroutine.
func WithDispatcher(dispatch func(func())) Option {
	return func(c *Controller) {
		c.dispatch = dispatch
	}
}

// Controller is the adaptive swap control loop
type Controller struct {
	config    Config
	probe     MemoryProbe
	backend   DeviceBackend
	registry  *Registry
	reclaimer CacheReclaimer
	metrics   *Metrics
	handlers  []ReportHandler
	dispatch  func(func())
	status    *Status

	mutex     sync.Mutex
	isRunning bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewController validates the config and wires the controller collaborators
func NewController(cfg Config, probe MemoryProbe, backend DeviceBackend, reclaimer CacheReclaimer, opts ...Option) (*Controller, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid swap configuration: %w", err)
	}

	c := &Controller{
		config:    cfg,
		probe:     probe,
		backend:   backend,
		registry:  NewRegistry(backend),
		reclaimer: reclaimer,
		dispatch:  func(f func()) { go f() },
		status:    NewStatus(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = NewMetrics(nil)
	}

	return c, nil
}

// Config returns the controller configuration
func (c *Controller) Config() Config {
	return c.config
}

// Registry returns the registry used to select devices
func (c *Controller) Registry() *Registry {
	return c.registry
}

// Status returns the holder of the last tick report
func (c *Controller) Status() *Status {
	return c.status
}

// Running reports whether the background loop started by Start is active
func (c *Controller) Running() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.isRunning
}

// Start runs the control loop in the background until Stop is called
func (c *Controller) Start() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.isRunning {
		return fmt.Errorf("swap controller is already running")
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	done := make(chan struct{})
	c.done = done
	c.isRunning = true

	// The goroutine owns its own done channel; a later Start replaces c.done.
	go func() {
		defer close(done)
		c.Run(ctx)
	}()

	return nil
}

// Stop halts the control loop and waits for the current tick to finish.
// Detached retirements already dispatched are not waited for.
func (c *Controller) Stop() {
	c.mutex.Lock()
	if !c.isRunning {
		c.mutex.Unlock()
		return
	}
	c.cancel()
	done := c.done
	c.isRunning = false
	c.mutex.Unlock()

	<-done
	logger.Info("Swap controller stopped")
}

// Run sleeps for the tick interval, runs a tick, and repeats until ctx is done
func (c *Controller) Run(ctx context.Context) {
	logger.Info("Starting swap controller",
		logger.Bytes("min_free", c.config.MinFreeBytes),
		logger.Bytes("max_free", c.config.MaxFreeBytes),
		logger.Bytes("swap_size", c.config.DefaultSwapSizeBytes),
		logger.Duration("interval", c.config.TickInterval),
		logger.Int("device_limit", c.config.SwapDeviceLimit))

	timer := time.NewTimer(c.config.TickInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			c.Tick(ctx)
			timer.Reset(c.config.TickInterval)
		}
	}
}

// Tick runs a single iteration of the control loop
func (c *Controller) Tick(ctx context.Context) TickReport {
	report := TickReport{
		Timestamp: time.Now(),
		Action:    ActionNone,
	}

	snapshot, err := c.probe.Snapshot(ctx)
	if err != nil {
		logger.Warn("Skipping tick, memory statistics unavailable",
			logger.String("error", err.Error()))
		report.Action = ActionSkipped
		report.Error = err.Error()
		c.finish(report)
		return report
	}

	available := snapshot.AvailableMemory()
	report.Snapshot = &snapshot
	report.AvailableMemory = available

	switch {
	case available < c.config.MinFreeBytes:
		report.Action = ActionCreate
		c.relievePressure(ctx, snapshot, &report)
	case available > c.config.MaxFreeBytes:
		report.Action = ActionRetire
		c.releaseSwap(ctx, &report)
	}

	c.finish(report)
	return report
}

// relievePressure handles the low-memory branch
func (c *Controller) relievePressure(ctx context.Context, snapshot MemorySnapshot, report *TickReport) {
	logger.Debug("Available memory below minimum",
		logger.Bytes("available", report.AvailableMemory),
		logger.Bytes("min_free", c.config.MinFreeBytes),
		logger.Bytes("cached", snapshot.CachedBytes))

	// The drop only runs while the page cache is still below the threshold.
	if c.config.MaxCacheThresholdBytes > snapshot.CachedBytes {
		report.CacheDropTried = true
		report.CacheDropped = c.reclaimer.Drop(ctx)
		c.metrics.observeCacheDrop(report.CacheDropped)
	}

	created, scheduled, err := c.CreateDevice(ctx)
	if err != nil {
		logger.Error("Error when creating swap",
			logger.String("error", err.Error()))
		report.Error = err.Error()
		return
	}
	report.CreatedDevice = &created
	report.ScheduledRetire = scheduled
}

// releaseSwap handles the high-memory branch
func (c *Controller) releaseSwap(ctx context.Context, report *TickReport) {
	retired, err := c.Retire(ctx, false)
	switch {
	case errors.Is(err, ErrNoDeviceToRetire):
		logger.Debug("Available memory above maximum, no swap device to retire",
			logger.Bytes("available", report.AvailableMemory))
	case err != nil:
		logger.Error("Error when deleting swap",
			logger.String("path", retired.Path),
			logger.String("error", err.Error()))
		report.Error = err.Error()
	default:
		report.RetiredDevice = &retired
	}
}

// CreateDevice creates and activates one swap device following the growth policy.
// When the device limit is reached the new device is larger than the current smallest
// one and the smallest device is handed to a detached retirement, which is returned.
func (c *Controller) CreateDevice(ctx context.Context) (Device, *Device, error) {
	devices, err := c.list(ctx)
	if err != nil {
		return Device{}, nil, err
	}

	size := c.config.DefaultSwapSizeBytes
	limitReached := len(devices) >= c.config.SwapDeviceLimit
	if limitReached {
		size = GrowthSize(c.config.DefaultSwapSizeBytes, devices[0].SizeBytes, c.config.DefaultSwapSizeBytes)
		logger.Info("Swap device limit reached, swap size has been increased",
			logger.Int("devices", len(devices)),
			logger.Int("limit", c.config.SwapDeviceLimit),
			logger.Bytes("smallest", devices[0].SizeBytes),
			logger.Bytes("size", size))
	} else {
		logger.Info("Creating a swap", logger.Bytes("size", size))
	}

	path, err := c.createAndActivate(ctx, size)
	if err != nil {
		return Device{}, nil, err
	}
	created := Device{Path: path, SizeBytes: size}

	logger.Info("Created swap",
		logger.String("path", path),
		logger.Bytes("size", size))

	if !limitReached {
		c.metrics.observeDevices(len(devices) + 1)
		return created, nil, nil
	}

	scheduled, err := c.Retire(ctx, true)
	if err != nil {
		// The new device already relieves pressure; a later tick retires again.
		logger.Warn("Failed to schedule swap retirement",
			logger.String("error", err.Error()))
		return created, nil, nil
	}
	return created, &scheduled, nil
}

// Retire deactivates and destroys the smallest active device. With async the teardown
// runs detached: the call returns once the device is selected and its result is only
// logged. ErrNoDeviceToRetire is returned when no device is active.
func (c *Controller) Retire(ctx context.Context, async bool) (Device, error) {
	devices, err := c.list(ctx)
	if err != nil {
		return Device{}, err
	}
	if len(devices) == 0 {
		return Device{}, ErrNoDeviceToRetire
	}
	device := devices[0]

	logger.Info("Deleting swap",
		logger.String("path", device.Path),
		logger.Bytes("size", device.SizeBytes),
		logger.Bool("async", async))
	c.metrics.observeRetirement(async)

	if !async {
		if err := c.teardown(ctx, device); err != nil {
			return device, err
		}
		c.metrics.observeDevices(len(devices) - 1)
		logger.Info("Deleted swap", logger.String("path", device.Path))
		return device, nil
	}

	c.dispatch(func() {
		// Detached from the loop context: stopping the loop does not cancel it.
		if err := c.teardown(context.Background(), device); err != nil {
			logger.Warn("Detached swap retirement failed",
				logger.String("path", device.Path),
				logger.String("error", err.Error()))
			return
		}
		logger.Info("Deleted swap", logger.String("path", device.Path))
	})

	return device, nil
}

// GrowthSize returns the size for a device created at the device limit: requested grown
// by whole increments until it reaches minExisting, plus one more increment.
// increment must be positive.
func GrowthSize(requested, minExisting, increment uint64) uint64 {
	size := requested
	if size < minExisting && increment > 0 {
		steps := (minExisting - size + increment - 1) / increment
		size += steps * increment
	}
	return size + increment
}

func (c *Controller) list(ctx context.Context) ([]Device, error) {
	var devices []Device
	err := c.call(ctx, "enumerate", func(ctx context.Context) error {
		var err error
		devices, err = c.registry.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	c.metrics.observeDevices(len(devices))
	return devices, nil
}

func (c *Controller) createAndActivate(ctx context.Context, size uint64) (string, error) {
	var path string
	err := c.call(ctx, "create", func(ctx context.Context) error {
		var err error
		path, err = c.backend.Create(ctx, size)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to create swap device of %s: %w", units.HumanSize(float64(size)), err)
	}

	err = c.call(ctx, "activate", func(ctx context.Context) error {
		return c.backend.Activate(ctx, path)
	})
	if err == nil {
		return path, nil
	}

	activateErr := fmt.Errorf("failed to activate swap device %s: %w", path, err)
	if destroyErr := c.call(ctx, "destroy", func(ctx context.Context) error {
		return c.backend.Destroy(ctx, path)
	}); destroyErr != nil {
		return "", joinErrors(activateErr, fmt.Errorf("failed to reset swap device %s: %w", path, destroyErr))
	}
	return "", activateErr
}

// teardown disables the device for paging and then resets it. The reset is skipped when
// the device could not be disabled.
func (c *Controller) teardown(ctx context.Context, device Device) error {
	if err := c.call(ctx, "deactivate", func(ctx context.Context) error {
		return c.backend.Deactivate(ctx, device.Path)
	}); err != nil {
		return fmt.Errorf("failed to disable swap device %s: %w", device.Path, err)
	}

	if err := c.call(ctx, "destroy", func(ctx context.Context) error {
		return c.backend.Destroy(ctx, device.Path)
	}); err != nil {
		return fmt.Errorf("failed to reset swap device %s: %w", device.Path, err)
	}
	return nil
}

// call runs one backend operation bounded by the backend timeout. An expired deadline
// is reported as ErrBackendCommandFailed.
func (c *Controller) call(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	callCtx, cancel := context.WithTimeout(ctx, c.config.BackendTimeout)
	defer cancel()

	err := fn(callCtx)
	if err == nil {
		return nil
	}

	c.metrics.observeBackendFailure(op)
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return fmt.Errorf("%w: %s timed out after %s: %v", ErrBackendCommandFailed, op, c.config.BackendTimeout, err)
	}
	return err
}

func joinErrors(errs ...error) error {
	var result *multierror.Error
	result = multierror.Append(result, errs...)
	return result.ErrorOrNil()
}

func (c *Controller) finish(report TickReport) {
	c.metrics.observeTick(report)
	c.status.record(report)
	for _, h := range c.handlers {
		h(report)
	}
}
