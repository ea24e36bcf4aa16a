package pidfile

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrite_ContainsOwnPID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logmux.pid")

	require.NoError(t, Write(path))
	defer Remove(path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, strconv.Itoa(os.Getpid())+"\n", string(data))
}

func TestWrite_ExistingPidfileIsAnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logmux.pid")

	require.NoError(t, Write(path))
	defer Remove(path)

	err := Write(path)
	require.Error(t, err)
}

func TestRemove_MissingFileIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Remove(filepath.Join(dir, "gone.pid")))
}
