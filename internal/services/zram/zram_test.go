package zram

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ZramManager/internal/swap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

func (c call) String() string {
	return strings.Join(append([]string{c.name}, c.args...), " ")
}

type response struct {
	out string
	err error
}

// fakeRunner answers commands by their first argument and records every call
type fakeRunner struct {
	calls     []call
	responses map[string]response
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{responses: map[string]response{}}
}

func (f *fakeRunner) on(command string, out string, err error) {
	f.responses[command] = response{out: out, err: err}
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	c := call{name: name, args: args}
	f.calls = append(f.calls, c)
	if r, ok := f.responses[c.String()]; ok {
		return []byte(r.out), r.err
	}
	return nil, nil
}

func (f *fakeRunner) commands() []string {
	var out []string
	for _, c := range f.calls {
		out = append(out, c.String())
	}
	return out
}

func TestEnumerate(t *testing.T) {
	runner := newFakeRunner()
	runner.on("/usr/sbin/swapon --show=NAME,SIZE --bytes --noheadings",
		"/dev/zram1 2000000000\n/swapfile 4294967296\n/dev/zram0 1000000000\n\n", nil)

	devices, err := NewBackend(DefaultCommands(), runner).Enumerate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []swap.Device{
		{Path: "/dev/zram1", SizeBytes: 2000000000},
		{Path: "/dev/zram0", SizeBytes: 1000000000},
	}, devices)
}

func TestEnumerateEmpty(t *testing.T) {
	devices, err := NewBackend(DefaultCommands(), newFakeRunner()).Enumerate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, devices)
}

func TestEnumerateInvalidSize(t *testing.T) {
	runner := newFakeRunner()
	runner.on("/usr/sbin/swapon --show=NAME,SIZE --bytes --noheadings", "/dev/zram0 1G\n", nil)

	_, err := NewBackend(DefaultCommands(), runner).Enumerate(context.Background())
	assert.True(t, errors.Is(err, swap.ErrBackendCommandFailed))
}

func TestParseSwapsSkipsHeader(t *testing.T) {
	devices, err := parseSwaps([]byte("NAME       SIZE\n/dev/zram0 1000000000\n"))
	require.NoError(t, err)
	assert.Equal(t, []swap.Device{{Path: "/dev/zram0", SizeBytes: 1000000000}}, devices)
}

func TestCreate(t *testing.T) {
	runner := newFakeRunner()
	runner.on("/usr/sbin/zramctl --find --size 1000000000", "/dev/zram3\n", nil)

	path, err := NewBackend(DefaultCommands(), runner).Create(context.Background(), 1000000000)
	require.NoError(t, err)

	assert.Equal(t, "/dev/zram3", path)
	assert.Equal(t, []string{
		"/usr/sbin/zramctl --find --size 1000000000",
		"/usr/sbin/mkswap /dev/zram3",
	}, runner.commands())
}

func TestCreateFailure(t *testing.T) {
	runner := newFakeRunner()
	runner.on("/usr/sbin/zramctl --find --size 1000000000", "zramctl: no free zram device found", errors.New("exit status 1"))

	_, err := NewBackend(DefaultCommands(), runner).Create(context.Background(), 1000000000)
	require.Error(t, err)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, "create", cmdErr.Op)
	assert.Contains(t, cmdErr.Output, "no free zram device")
	assert.True(t, errors.Is(err, swap.ErrBackendCommandFailed))
	assert.Contains(t, err.Error(), "exit status 1")
}

func TestCreateUnexpectedOutput(t *testing.T) {
	runner := newFakeRunner()
	runner.on("/usr/sbin/zramctl --find --size 1000000000", "", nil)

	_, err := NewBackend(DefaultCommands(), runner).Create(context.Background(), 1000000000)
	assert.True(t, errors.Is(err, swap.ErrBackendCommandFailed))
}

func TestCreateResetsDeviceWhenMkswapFails(t *testing.T) {
	runner := newFakeRunner()
	runner.on("/usr/sbin/zramctl --find --size 1000000000", "/dev/zram0\n", nil)
	runner.on("/usr/sbin/mkswap /dev/zram0", "", errors.New("exit status 1"))

	_, err := NewBackend(DefaultCommands(), runner).Create(context.Background(), 1000000000)
	require.Error(t, err)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, "mkswap", cmdErr.Op)
	assert.Equal(t, "/usr/sbin/zramctl --reset /dev/zram0", runner.commands()[2])
}

func TestActivateDeactivateDestroy(t *testing.T) {
	runner := newFakeRunner()
	b := NewBackend(DefaultCommands(), runner)
	ctx := context.Background()

	require.NoError(t, b.Activate(ctx, "/dev/zram0"))
	require.NoError(t, b.Deactivate(ctx, "/dev/zram0"))
	require.NoError(t, b.Destroy(ctx, "/dev/zram0"))

	assert.Equal(t, []string{
		"/usr/sbin/swapon /dev/zram0",
		"/usr/sbin/swapoff /dev/zram0",
		"/usr/sbin/zramctl --reset /dev/zram0",
	}, runner.commands())
}

func TestDeactivateFailure(t *testing.T) {
	runner := newFakeRunner()
	runner.on("/usr/sbin/swapoff /dev/zram0", "swapoff: /dev/zram0: swapoff failed: Cannot allocate memory", errors.New("exit status 255"))

	err := NewBackend(DefaultCommands(), runner).Deactivate(context.Background(), "/dev/zram0")
	assert.True(t, errors.Is(err, swap.ErrBackendCommandFailed))
	assert.Contains(t, err.Error(), "Cannot allocate memory")
}

func TestRunReportsContextExpiry(t *testing.T) {
	runner := newFakeRunner()
	runner.on("/usr/sbin/swapon /dev/zram0", "", errors.New("signal: killed"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewBackend(DefaultCommands(), runner).Activate(ctx, "/dev/zram0")
	assert.True(t, errors.Is(err, swap.ErrBackendCommandFailed))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCustomCommands(t *testing.T) {
	runner := newFakeRunner()
	cmds := Commands{Zramctl: "zramctl", Mkswap: "mkswap", Swapon: "swapon", Swapoff: "swapoff"}

	require.NoError(t, NewBackend(cmds, runner).Activate(context.Background(), "/dev/zram5"))
	assert.Equal(t, []string{"swapon /dev/zram5"}, runner.commands())
}
