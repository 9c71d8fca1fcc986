package swap

import "errors"

var (
	// ErrProbeUnavailable means memory counters could not be read; the tick is skipped
	ErrProbeUnavailable = errors.New("memory statistics unavailable")

	// ErrBackendCommandFailed is wrapped by every device backend failure
	ErrBackendCommandFailed = errors.New("device backend command failed")

	// ErrPrivilegeDenied means the cache drop was refused by the OS
	ErrPrivilegeDenied = errors.New("privilege denied")

	// ErrNoDeviceToRetire is returned by Retire when no swap device is active.
	// It is an empty-state result, not a failure.
	ErrNoDeviceToRetire = errors.New("no swap device to retire")
)
