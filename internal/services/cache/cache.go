package cache

import (
	"context"
	"errors"
	"fmt"
	"os"

	"ZramManager/internal/pkg/logger"
	"ZramManager/internal/swap"

	"golang.org/x/sys/unix"
)

// DefaultDropCachesPath is the kernel knob that releases the page cache
const DefaultDropCachesPath = "/proc/sys/vm/drop_caches"

// dropAll frees the page cache plus reclaimable slab objects
const dropAll = "3"

var _ swap.CacheReclaimer = (*Reclaimer)(nil)

// Reclaimer drops the kernel page cache
type Reclaimer struct {
	path string
	sync func()
}

// NewReclaimer creates a reclaimer writing to path; an empty path uses the kernel default
func NewReclaimer(path string) *Reclaimer {
	if path == "" {
		path = DefaultDropCachesPath
	}
	return &Reclaimer{path: path, sync: unix.Sync}
}

// Drop flushes dirty pages and asks the kernel to release the page cache.
// It reports whether the request was accepted; failures are only logged.
func (r *Reclaimer) Drop(ctx context.Context) bool {
	if err := ctx.Err(); err != nil {
		return false
	}

	r.sync()

	if err := r.write(); err != nil {
		switch {
		case errors.Is(err, swap.ErrPrivilegeDenied):
			logger.Warn("Cache drop refused, run as root to reclaim page cache",
				logger.String("path", r.path))
		case errors.Is(err, os.ErrNotExist):
			logger.Warn("Cache drop not supported on this host",
				logger.String("path", r.path))
		default:
			logger.Error("Failed to drop caches",
				logger.String("path", r.path),
				logger.String("error", err.Error()))
		}
		return false
	}

	logger.Debug("Dropped page cache", logger.String("path", r.path))
	return true
}

func (r *Reclaimer) write() error {
	f, err := os.OpenFile(r.path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return fmt.Errorf("%w: %v", swap.ErrPrivilegeDenied, err)
		}
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(dropAll); err != nil {
		if errors.Is(err, os.ErrPermission) {
			return fmt.Errorf("%w: %v", swap.ErrPrivilegeDenied, err)
		}
		return fmt.Errorf("failed to write %s: %w", r.path, err)
	}
	return nil
}
