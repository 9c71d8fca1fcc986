package zram

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"ZramManager/internal/pkg/logger"
	"ZramManager/internal/swap"
)

const devicePrefix = "/dev/zram"

var _ swap.DeviceBackend = (*Backend)(nil)

// Backend manages zram swap devices through zramctl, mkswap, swapon and swapoff
type Backend struct {
	commands Commands
	runner   Runner
}

// NewBackend creates a backend. A nil runner executes commands on the host.
func NewBackend(commands Commands, runner Runner) *Backend {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Backend{commands: commands, runner: runner}
}

// Enumerate returns the active zram swap devices in the order the kernel reports them
func (b *Backend) Enumerate(ctx context.Context) ([]swap.Device, error) {
	out, err := b.run(ctx, "enumerate", b.commands.Swapon, "--show=NAME,SIZE", "--bytes", "--noheadings")
	if err != nil {
		return nil, err
	}
	return parseSwaps(out)
}

// Create allocates a zram device of the given size and formats it as swap.
// It returns the device path; the device is not active yet.
func (b *Backend) Create(ctx context.Context, sizeBytes uint64) (string, error) {
	out, err := b.run(ctx, "create", b.commands.Zramctl, "--find", "--size", strconv.FormatUint(sizeBytes, 10))
	if err != nil {
		return "", err
	}

	path := strings.TrimSpace(string(out))
	if !strings.HasPrefix(path, devicePrefix) {
		return "", &CommandError{
			Op:     "create",
			Args:   []string{b.commands.Zramctl, "--find"},
			Output: path,
			Err:    fmt.Errorf("unexpected device path %q", path),
		}
	}

	if _, err := b.run(ctx, "mkswap", b.commands.Mkswap, path); err != nil {
		if destroyErr := b.Destroy(ctx, path); destroyErr != nil {
			logger.Warn("Failed to reset zram device after mkswap failure",
				logger.String("path", path),
				logger.String("error", destroyErr.Error()))
		}
		return "", err
	}

	logger.Debug("Allocated zram device",
		logger.String("path", path),
		logger.Bytes("size", sizeBytes))
	return path, nil
}

// Activate enables swapping on the device
func (b *Backend) Activate(ctx context.Context, path string) error {
	_, err := b.run(ctx, "activate", b.commands.Swapon, path)
	return err
}

// Deactivate disables swapping on the device, moving its pages back to RAM
func (b *Backend) Deactivate(ctx context.Context, path string) error {
	_, err := b.run(ctx, "deactivate", b.commands.Swapoff, path)
	return err
}

// Destroy resets the zram device and frees its memory
func (b *Backend) Destroy(ctx context.Context, path string) error {
	_, err := b.run(ctx, "destroy", b.commands.Zramctl, "--reset", path)
	return err
}

func (b *Backend) run(ctx context.Context, op, name string, args ...string) ([]byte, error) {
	out, err := b.runner.Run(ctx, name, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return out, &CommandError{
			Op:     op,
			Args:   append([]string{name}, args...),
			Output: string(out),
			Err:    err,
		}
	}
	return out, nil
}

// parseSwaps reads "NAME SIZE" lines and keeps zram devices only
func parseSwaps(out []byte) ([]swap.Device, error) {
	var devices []swap.Device

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "NAME" {
			continue
		}
		if !strings.HasPrefix(fields[0], devicePrefix) {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: malformed swap entry %q", swap.ErrBackendCommandFailed, scanner.Text())
		}

		size, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid size for %s: %v", swap.ErrBackendCommandFailed, fields[0], err)
		}
		devices = append(devices, swap.Device{Path: fields[0], SizeBytes: size})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading swap list: %v", swap.ErrBackendCommandFailed, err)
	}

	return devices, nil
}
