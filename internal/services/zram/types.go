package zram

import (
	"fmt"
	"strings"

	"ZramManager/internal/pkg/config"
	"ZramManager/internal/swap"
)

// Commands holds the paths of the utilities used to manage zram swap devices
type Commands struct {
	Zramctl string
	Mkswap  string
	Swapon  string
	Swapoff string
}

// DefaultCommands returns the usual sbin locations
func DefaultCommands() Commands {
	return Commands{
		Zramctl: "/usr/sbin/zramctl",
		Mkswap:  "/usr/sbin/mkswap",
		Swapon:  "/usr/sbin/swapon",
		Swapoff: "/usr/sbin/swapoff",
	}
}

// CommandsFromConfig maps the configured utility paths
func CommandsFromConfig(cfg config.CommandsConfig) Commands {
	return Commands{
		Zramctl: cfg.Zramctl,
		Mkswap:  cfg.Mkswap,
		Swapon:  cfg.Swapon,
		Swapoff: cfg.Swapoff,
	}
}

// CommandError describes a failed invocation of one of the zram utilities
type CommandError struct {
	Op     string
	Args   []string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s failed: %s", e.Op, strings.Join(e.Args, " "))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += " (" + out + ")"
	}
	return msg
}

// Unwrap lets errors.Is match both the backend sentinel and the underlying cause
func (e *CommandError) Unwrap() []error {
	if e.Err == nil {
		return []error{swap.ErrBackendCommandFailed}
	}
	return []error{swap.ErrBackendCommandFailed, e.Err}
}
