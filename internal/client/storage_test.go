package client_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferdiebergado/devconnector/internal/client"
)

func TestFileStorage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "token")
	s := client.NewFileStorage(path)

	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got, "missing file means no credential")

	require.NoError(t, s.Save("first"))
	require.NoError(t, s.Save("second"))

	got, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear(), "clearing twice is not an error")

	got, err = s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStorage(t *testing.T) {
	t.Parallel()

	s := client.NewMemoryStorage("tok")

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", got)

	require.NoError(t, s.Clear())
	got, err = s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}
