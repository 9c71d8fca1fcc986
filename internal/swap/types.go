package swap

import "time"

// MemorySnapshot is a point-in-time reading of RAM and swap counters, in bytes
type MemorySnapshot struct {
	TotalRAM      uint64 `json:"total_ram"`
	TotalSwap     uint64 `json:"total_swap"`
	AvailableRAM  uint64 `json:"available_ram"`
	AvailableSwap uint64 `json:"available_swap"`
	CachedBytes   uint64 `json:"cached_bytes"`
}

// NewMemorySnapshot builds a snapshot, clamping the available counters to their totals.
// RAM and swap are read separately by the probe, so the values can disagree slightly.
func NewMemorySnapshot(totalRAM, totalSwap, availableRAM, availableSwap, cached uint64) MemorySnapshot {
	return MemorySnapshot{
		TotalRAM:      totalRAM,
		TotalSwap:     totalSwap,
		AvailableRAM:  min(availableRAM, totalRAM),
		AvailableSwap: min(availableSwap, totalSwap),
		CachedBytes:   cached,
	}
}

// TotalMemory returns RAM plus swap
func (s MemorySnapshot) TotalMemory() uint64 {
	return s.TotalRAM + s.TotalSwap
}

// AvailableMemory returns available RAM plus free swap
func (s MemorySnapshot) AvailableMemory() uint64 {
	return s.AvailableRAM + s.AvailableSwap
}

// UsedMemory returns TotalMemory minus AvailableMemory
func (s MemorySnapshot) UsedMemory() uint64 {
	total, available := s.TotalMemory(), s.AvailableMemory()
	if available > total {
		return 0
	}
	return total - available
}

// Device is one active compressed swap device
type Device struct {
	Path      string `json:"path"`
	SizeBytes uint64 `json:"size_bytes"`
}

// Action is the decision taken on a tick
type Action string

const (
	ActionNone    Action = "none"
	ActionSkipped Action = "skipped"
	ActionCreate  Action = "create"
	ActionRetire  Action = "retire"
)

// TickReport describes what a single tick observed and did
type TickReport struct {
	Timestamp       time.Time       `json:"timestamp"`
	Action          Action          `json:"action"`
	Snapshot        *MemorySnapshot `json:"snapshot,omitempty"`
	AvailableMemory uint64          `json:"available_memory"`
	CacheDropped    bool            `json:"cache_dropped"`
	CacheDropTried  bool            `json:"cache_drop_attempted"`
	CreatedDevice   *Device         `json:"created_device,omitempty"`
	RetiredDevice   *Device         `json:"retired_device,omitempty"`
	ScheduledRetire *Device         `json:"scheduled_retirement,omitempty"`
	Error           string          `json:"error,omitempty"`
}
