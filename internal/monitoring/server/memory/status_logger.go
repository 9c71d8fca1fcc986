package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"ZramManager/internal/pkg/logger"
	"ZramManager/internal/swap"

	"github.com/docker/go-units"
)

// Pressure bands relative to the controller's hysteresis band
const (
	BandLow    = "low"
	BandNormal = "normal"
	BandHigh   = "high"
)

// StatusLogger logs transitions between pressure bands to the application log and to a
// dedicated status log file
type StatusLogger struct {
	statusLogFile string
	minFree       uint64
	maxFree       uint64
	mutex         sync.Mutex
	previous      string
}

// NewStatusLogger creates a status logger writing to memory_status_changes.log in logDir.
// An empty logDir only logs to the application log.
func NewStatusLogger(logDir string, cfg swap.Config) *StatusLogger {
	s := &StatusLogger{
		minFree: cfg.MinFreeBytes,
		maxFree: cfg.MaxFreeBytes,
	}
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			logger.Warn("Failed to create status log directory",
				logger.String("directory", logDir),
				logger.String("error", err.Error()))
		} else {
			s.statusLogFile = filepath.Join(logDir, "memory_status_changes.log")
		}
	}
	return s
}

// Band classifies available memory against the hysteresis band
func (s *StatusLogger) Band(available uint64) string {
	switch {
	case available < s.minFree:
		return BandLow
	case available > s.maxFree:
		return BandHigh
	default:
		return BandNormal
	}
}

// Observe records a tick report; it is meant to be registered as a controller report handler
func (s *StatusLogger) Observe(report swap.TickReport) {
	if report.Snapshot == nil {
		return
	}
	current := s.Band(report.AvailableMemory)

	s.mutex.Lock()
	previous := s.previous
	s.previous = current
	s.mutex.Unlock()

	if previous != "" && previous != current {
		s.LogStatusChange(previous, current, report.AvailableMemory)
	}
}

// LogStatusChange writes one band transition
func (s *StatusLogger) LogStatusChange(previous, current string, available uint64) {
	timestamp := time.Now().Format(time.RFC3339)

	var trend string
	switch {
	case previous == BandNormal && current == BandLow, previous == BandHigh:
		trend = "↑ PRESSURE INCREASING"
	case previous == BandNormal && current == BandHigh, previous == BandLow:
		trend = "↓ PRESSURE DECREASING"
	}

	message := fmt.Sprintf("[%s] Memory band changed: %s -> %s (Available: %s, Trend: %s)",
		timestamp, previous, current, units.HumanSize(float64(available)), trend)

	logger.Info("Memory band transition",
		logger.String("previous", previous),
		logger.String("current", current),
		logger.Bytes("available_memory", available),
		logger.String("trend", trend))

	if s.statusLogFile == "" {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	f, err := os.OpenFile(s.statusLogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logger.Error("Failed to open memory status log file",
			logger.String("error", err.Error()))
		return
	}
	defer f.Close()

	if _, err := f.WriteString(message + "\n"); err != nil {
		logger.Error("Failed to write to memory status log file",
			logger.String("error", err.Error()))
	}
}
