package swap

import (
	"sync"
	"time"
)

// StatusSummary is the controller state exposed to the API
type StatusSummary struct {
	StartedAt  time.Time            `json:"started_at"`
	Ticks      uint64               `json:"ticks"`
	Actions    map[Action]uint64    `json:"actions"`
	LastReport *TickReport          `json:"last_report,omitempty"`
	LastAction map[Action]time.Time `json:"last_action_at"`
}

// Status keeps the last tick report for observers. The controller never reads it back.
type Status struct {
	mutex      sync.RWMutex
	startedAt  time.Time
	ticks      uint64
	actions    map[Action]uint64
	lastAction map[Action]time.Time
	last       *TickReport
}

// NewStatus creates an empty status holder
func NewStatus() *Status {
	return &Status{
		startedAt:  time.Now(),
		actions:    make(map[Action]uint64),
		lastAction: make(map[Action]time.Time),
	}
}

func (s *Status) record(report TickReport) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.ticks++
	s.actions[report.Action]++
	s.lastAction[report.Action] = report.Timestamp
	s.last = &report
}

// LastReport returns the most recent tick report, or nil before the first tick
func (s *Status) LastReport() *TickReport {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.last == nil {
		return nil
	}
	report := *s.last
	return &report
}

// Summary returns a copy of the accumulated status
func (s *Status) Summary() StatusSummary {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	summary := StatusSummary{
		StartedAt:  s.startedAt,
		Ticks:      s.ticks,
		Actions:    make(map[Action]uint64, len(s.actions)),
		LastAction: make(map[Action]time.Time, len(s.lastAction)),
	}
	for k, v := range s.actions {
		summary.Actions[k] = v
	}
	for k, v := range s.lastAction {
		summary.LastAction[k] = v
	}
	if s.last != nil {
		report := *s.last
		summary.LastReport = &report
	}
	return summary
}
