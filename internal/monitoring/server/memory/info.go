package memory

import (
	"context"
	"fmt"

	"ZramManager/internal/swap"

	"github.com/docker/go-units"
	"github.com/shirou/gopsutil/mem"
)

// Probe reads memory and swap counters through gopsutil
type Probe struct {
	virtualMemory func(context.Context) (*mem.VirtualMemoryStat, error)
	swapMemory    func(context.Context) (*mem.SwapMemoryStat, error)
}

// NewProbe creates a probe reading the host counters
func NewProbe() *Probe {
	return &Probe{
		virtualMemory: mem.VirtualMemoryWithContext,
		swapMemory:    mem.SwapMemoryWithContext,
	}
}

// Snapshot returns the counters used by the swap controller
func (p *Probe) Snapshot(ctx context.Context) (swap.MemorySnapshot, error) {
	vmStat, swapStat, err := p.read(ctx)
	if err != nil {
		return swap.MemorySnapshot{}, err
	}

	return swap.NewMemorySnapshot(
		vmStat.Total,
		swapStat.Total,
		vmStat.Available,
		swapStat.Free,
		vmStat.Cached,
	), nil
}

// GetMemoryInfo retrieves the detailed memory information served by the API
func (p *Probe) GetMemoryInfo(ctx context.Context) (*MemoryInfo, error) {
	vmStat, swapStat, err := p.read(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := swap.NewMemorySnapshot(vmStat.Total, swapStat.Total, vmStat.Available, swapStat.Free, vmStat.Cached)

	memInfo := &MemoryInfo{
		TotalMemory:          vmStat.Total,
		UsedMemory:           vmStat.Used,
		FreeMemory:           vmStat.Free,
		AvailableMemory:      vmStat.Available,
		UsedMemoryPercentage: vmStat.UsedPercent,
		CachedMemory:         vmStat.Cached,
		BufferMemory:         vmStat.Buffers,

		SwapTotal: swapStat.Total,
		SwapUsed:  swapStat.Used,
		SwapFree:  swapStat.Free,

		CombinedTotal:     snapshot.TotalMemory(),
		CombinedAvailable: snapshot.AvailableMemory(),
		CombinedUsed:      snapshot.UsedMemory(),
		HumanAvailable:    units.HumanSize(float64(snapshot.AvailableMemory())),
	}

	if swapStat.Total > 0 {
		memInfo.SwapUsedPercentage = float64(swapStat.Used) / float64(swapStat.Total) * 100
	}

	return memInfo, nil
}

func (p *Probe) read(ctx context.Context) (*mem.VirtualMemoryStat, *mem.SwapMemoryStat, error) {
	vmStat, err := p.virtualMemory(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: virtual memory: %v", swap.ErrProbeUnavailable, err)
	}
	if vmStat == nil {
		return nil, nil, fmt.Errorf("%w: virtual memory: no data", swap.ErrProbeUnavailable)
	}

	swapStat, err := p.swapMemory(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: swap memory: %v", swap.ErrProbeUnavailable, err)
	}
	if swapStat == nil {
		return nil, nil, fmt.Errorf("%w: swap memory: no data", swap.ErrProbeUnavailable)
	}

	return vmStat, swapStat, nil
}
