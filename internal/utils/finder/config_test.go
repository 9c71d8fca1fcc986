package finder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "primary.yaml")
	fallback := filepath.Join(dir, "fallback.yaml")
	missing := filepath.Join(dir, "missing.yaml")
	require.NoError(t, os.WriteFile(primary, []byte("app_name: x\n"), 0644))
	require.NoError(t, os.WriteFile(fallback, []byte("app_name: y\n"), 0644))

	path, err := FindConfigFile(primary, true, fallback)
	require.NoError(t, err)
	assert.Equal(t, primary, path)

	path, err = FindConfigFile(missing, true, fallback)
	require.NoError(t, err)
	assert.Equal(t, fallback, path)

	_, err = FindConfigFile(missing, true)
	assert.Error(t, err)

	path, err = FindConfigFile(missing, false)
	require.NoError(t, err)
	assert.Empty(t, path)

	path, err = FindConfigFile(dir, false)
	require.NoError(t, err)
	assert.Empty(t, path, "directories are not configuration files")
}
