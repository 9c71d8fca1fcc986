package sysinfo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shirou/gopsutil/host"
)

// DefaultSysfsRoot is where the kernel exposes block devices and classes
const DefaultSysfsRoot = "/sys"

// Inspector reads host information and zram support
type Inspector struct {
	sysfsRoot string
	hostInfo  func(ctx context.Context) (*host.InfoStat, error)
}

// NewInspector creates an inspector reading sysfs under root; an empty root uses /sys
func NewInspector(root string) *Inspector {
	if root == "" {
		root = DefaultSysfsRoot
	}
	return &Inspector{sysfsRoot: root, hostInfo: host.InfoWithContext}
}

// GetSystemInfo retrieves general system information and zram support
func (i *Inspector) GetSystemInfo(ctx context.Context) (*SystemInfo, error) {
	hostStat, err := i.hostInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get host info: %w", err)
	}

	uptimeSeconds := hostStat.Uptime
	return &SystemInfo{
		Hostname:        hostStat.Hostname,
		OS:              hostStat.OS,
		Platform:        hostStat.Platform,
		PlatformVersion: hostStat.PlatformVersion,
		KernelVersion:   hostStat.KernelVersion,
		Uptime: fmt.Sprintf("%d days, %d hours, %d minutes",
			uptimeSeconds/86400, (uptimeSeconds%86400)/3600, (uptimeSeconds%3600)/60),
		CurrentTime: time.Now().Format(time.RFC3339),
		Zram:        i.ZramSupport(),
	}, nil
}

// ZramSupport inspects sysfs for the zram module and its devices
func (i *Inspector) ZramSupport() ZramSupport {
	var support ZramSupport

	if _, err := os.Stat(filepath.Join(i.sysfsRoot, "module", "zram")); err == nil {
		support.ModuleLoaded = true
	}
	if _, err := os.Stat(filepath.Join(i.sysfsRoot, "class", "zram-control", "hot_add")); err == nil {
		support.HotAdd = true
	}

	matches, _ := filepath.Glob(filepath.Join(i.sysfsRoot, "block", "zram*"))
	for _, m := range matches {
		support.Devices = append(support.Devices, "/dev/"+filepath.Base(m))
	}
	sort.Strings(support.Devices)

	if data, err := os.ReadFile(filepath.Join(i.sysfsRoot, "block", "zram0", "comp_algorithm")); err == nil {
		support.Algorithms = strings.TrimSpace(string(data))
	}

	return support
}

// Ready reports whether zram swap devices can be created on this host
func (s ZramSupport) Ready() bool {
	return s.ModuleLoaded && (s.HotAdd || len(s.Devices) > 0)
}
