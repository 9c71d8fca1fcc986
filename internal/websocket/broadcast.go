package websocket

import (
	"encoding/json"
	"time"

	"ZramManager/internal/pkg/logger"
	"ZramManager/internal/swap"
)

// BroadcastSwap sends a controller tick report to all swap clients.
// It has the controller report handler signature.
func (r *Registry) BroadcastSwap(report swap.TickReport) {
	handler := r.GetSwapHandler()
	if handler == nil || handler.ClientCount() == 0 {
		return
	}

	data, err := json.Marshal(map[string]interface{}{
		"swap":      report,
		"timestamp": timeNow(),
	})
	if err != nil {
		logger.Error("Failed to marshal swap report for WebSocket broadcast",
			logger.String("error", err.Error()))
		return
	}
	handler.Broadcast(data)
}

// BroadcastMemory sends the memory snapshot of a tick to all memory clients
func (r *Registry) BroadcastMemory(report swap.TickReport) {
	handler := r.GetMemoryHandler()
	if handler == nil || report.Snapshot == nil || handler.ClientCount() == 0 {
		return
	}

	data, err := json.Marshal(map[string]interface{}{
		"memory":           report.Snapshot,
		"available_memory": report.AvailableMemory,
		"timestamp":        timeNow(),
	})
	if err != nil {
		logger.Error("Failed to marshal memory metrics for WebSocket broadcast",
			logger.String("error", err.Error()))
		return
	}
	handler.Broadcast(data)
}

func timeNow() string {
	return time.Now().Format(time.RFC3339)
}
