package sysinfo

// SystemInfo describes the host and its zram support
type SystemInfo struct {
	Hostname        string `json:"hostname"`
	OS              string `json:"os"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version"`
	KernelVersion   string `json:"kernel_version"`
	Uptime          string `json:"uptime"`
	CurrentTime     string `json:"current_time"`

	Zram ZramSupport `json:"zram"`
}

// ZramSupport reports what the kernel exposes for zram
type ZramSupport struct {
	ModuleLoaded bool     `json:"module_loaded"`
	HotAdd       bool     `json:"hot_add"`        // devices can be added on demand by zramctl --find
	Devices      []string `json:"devices"`        // zram block devices present, in use or not
	Algorithms   string   `json:"comp_algorithm"` // compression algorithms of zram0, the selected one in brackets
}
