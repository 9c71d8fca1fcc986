package sysinfo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shirou/gopsutil/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestZramSupport(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "module", "zram"), 0755))
	touch(t, filepath.Join(root, "class", "zram-control", "hot_add"), "2\n")
	touch(t, filepath.Join(root, "block", "zram1", "disksize"), "0\n")
	touch(t, filepath.Join(root, "block", "zram0", "comp_algorithm"), "lzo [lz4] zstd\n")
	touch(t, filepath.Join(root, "block", "sda", "size"), "0\n")

	support := NewInspector(root).ZramSupport()

	assert.True(t, support.ModuleLoaded)
	assert.True(t, support.HotAdd)
	assert.Equal(t, []string{"/dev/zram0", "/dev/zram1"}, support.Devices)
	assert.Equal(t, "lzo [lz4] zstd", support.Algorithms)
	assert.True(t, support.Ready())
}

func TestZramSupportMissingModule(t *testing.T) {
	support := NewInspector(t.TempDir()).ZramSupport()

	assert.False(t, support.ModuleLoaded)
	assert.Empty(t, support.Devices)
	assert.False(t, support.Ready())
}

func TestGetSystemInfo(t *testing.T) {
	i := NewInspector(t.TempDir())
	i.hostInfo = func(ctx context.Context) (*host.InfoStat, error) {
		return &host.InfoStat{Hostname: "node1", KernelVersion: "6.1.0", Uptime: 90061}, nil
	}

	info, err := i.GetSystemInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "node1", info.Hostname)
	assert.Equal(t, "1 days, 1 hours, 1 minutes", info.Uptime)
	assert.False(t, info.Zram.ModuleLoaded)

	i.hostInfo = func(ctx context.Context) (*host.InfoStat, error) {
		return nil, errors.New("no /proc")
	}
	_, err = i.GetSystemInfo(context.Background())
	assert.Error(t, err)
}
