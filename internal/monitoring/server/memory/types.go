package memory

// MemoryInfo represents system memory information
type MemoryInfo struct {
	TotalMemory          uint64  `json:"total_memory"`
	UsedMemory           uint64  `json:"used_memory"`
	FreeMemory           uint64  `json:"free_memory"`
	AvailableMemory      uint64  `json:"available_memory"` // Memory that can be made available without swapping
	UsedMemoryPercentage float64 `json:"used_memory_percent"`

	CachedMemory uint64 `json:"cached_memory"` // Memory used for file caching
	BufferMemory uint64 `json:"buffer_memory"` // Memory used for kernel buffers

	// Swap metrics
	SwapTotal          uint64  `json:"swap_total"`
	SwapUsed           uint64  `json:"swap_used"`
	SwapFree           uint64  `json:"swap_free"`
	SwapUsedPercentage float64 `json:"swap_used_percent"`

	// RAM plus swap, as seen by the swap controller
	CombinedTotal     uint64 `json:"combined_total"`
	CombinedAvailable uint64 `json:"combined_available"`
	CombinedUsed      uint64 `json:"combined_used"`
	HumanAvailable    string `json:"combined_available_human"`
}
