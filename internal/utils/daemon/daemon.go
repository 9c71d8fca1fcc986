package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"ZramManager/internal/pkg/logger"
)

// ChildEnv marks the detached child process
const ChildEnv = "ZRAM_MANAGER_DAEMON"

// IsChild reports whether this process was started by Daemonize
func IsChild() bool {
	return os.Getenv(ChildEnv) == "1"
}

// readPID returns the PID stored in pidFile
func readPID(pidFile string) (int, error) {
	data, err := os.ReadFile(pidFile)
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in file: %w", err)
	}
	return pid, nil
}

// alive sends signal 0, since FindProcess always succeeds on Unix
func alive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

// IsRunning checks if the service is already running
func IsRunning(pidFile string) bool {
	pid, err := readPID(pidFile)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Error("Failed to read PID file",
				logger.String("error", err.Error()),
				logger.String("file", pidFile))
		}
		return false
	}
	return alive(pid)
}

// Daemonize starts a detached copy of the current executable with args and exits the parent
func Daemonize(args []string) {
	executable, err := os.Executable()
	if err != nil {
		logger.Fatal("Failed to get executable path", logger.String("error", err.Error()))
	}

	cmd := exec.Command(executable, args...)
	cmd.Env = append(os.Environ(), ChildEnv+"=1")
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		logger.Fatal("Failed to start daemon process", logger.String("error", err.Error()))
	}

	logger.Info("Started daemon process", logger.Int("pid", cmd.Process.Pid))
	os.Exit(0)
}

// WritePIDFile writes the current process ID to the specified file
func WritePIDFile(pidFile string) error {
	pid := os.Getpid()

	if err := os.MkdirAll(filepath.Dir(pidFile), 0755); err != nil {
		return fmt.Errorf("failed to create directory for PID file: %w", err)
	}

	if err := os.WriteFile(pidFile, []byte(strconv.Itoa(pid)), 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}

	logger.Info("Wrote PID to file",
		logger.Int("pid", pid),
		logger.String("file", pidFile))
	return nil
}

// RemovePIDFile removes the PID file during shutdown
func RemovePIDFile(pidFile string) {
	if err := os.Remove(pidFile); err != nil && !os.IsNotExist(err) {
		logger.Error("Failed to remove PID file during shutdown",
			logger.String("error", err.Error()),
			logger.String("file", pidFile))
	} else {
		logger.Info("Removed PID file during shutdown",
			logger.String("file", pidFile))
	}
}

// StopProcess sends SIGTERM to the running process and removes its PID file
func StopProcess(pidFile string) (int, error) {
	pid, err := readPID(pidFile)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("service is not running (PID file not found)")
		}
		return 0, fmt.Errorf("failed to read PID file: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return 0, fmt.Errorf("failed to find process: %w", err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		return 0, fmt.Errorf("failed to send terminate signal: %w", err)
	}

	if err := os.Remove(pidFile); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to remove PID file after stopping process",
			logger.String("error", err.Error()),
			logger.String("file", pidFile))
	}

	return pid, nil
}

// GetStatus checks if the service is running and returns the PID.
// A stale PID file is removed.
func GetStatus(pidFile string) (bool, int) {
	pid, err := readPID(pidFile)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Error("Failed to read PID file",
				logger.String("error", err.Error()),
				logger.String("file", pidFile))
		}
		return false, 0
	}

	if alive(pid) {
		return true, pid
	}

	os.Remove(pidFile)
	return false, 0
}
