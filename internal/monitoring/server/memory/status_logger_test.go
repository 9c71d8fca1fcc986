package memory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ZramManager/internal/swap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func report(available uint64) swap.TickReport {
	s := swap.NewMemorySnapshot(available, 0, available, 0, 0)
	return swap.TickReport{Snapshot: &s, AvailableMemory: available}
}

func TestStatusLoggerWritesTransitionsOnly(t *testing.T) {
	dir := t.TempDir()
	s := NewStatusLogger(dir, swap.Config{MinFreeBytes: 10, MaxFreeBytes: 20})

	for _, available := range []uint64{15, 16, 5, 4, 25, 15} {
		s.Observe(report(available))
	}
	s.Observe(swap.TickReport{Action: swap.ActionSkipped})

	data, err := os.ReadFile(filepath.Join(dir, "memory_status_changes.log"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "normal -> low")
	assert.Contains(t, lines[1], "low -> high")
	assert.Contains(t, lines[2], "high -> normal")
}

func TestStatusLoggerBand(t *testing.T) {
	s := NewStatusLogger("", swap.Config{MinFreeBytes: 10, MaxFreeBytes: 20})

	assert.Equal(t, BandLow, s.Band(9))
	assert.Equal(t, BandNormal, s.Band(10))
	assert.Equal(t, BandNormal, s.Band(20))
	assert.Equal(t, BandHigh, s.Band(21))
}
