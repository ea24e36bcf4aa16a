package fifo

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsure_CreatesFIFO(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipe")

	f, err := Ensure(path)
	require.NoError(t, err)
	require.Equal(t, path, f.Path)

	info, err := os.Lstat(path)
	require.NoError(t, err)
	require.NotZero(t, info.Mode()&os.ModeNamedPipe)
}

func TestEnsure_ExistingFIFOIsLeftAlone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipe")

	_, err := Ensure(path)
	require.NoError(t, err)

	_, err = Ensure(path)
	require.NoError(t, err)
}

func TestEnsure_ExistingNonFIFOIsAnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regular")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := Ensure(path)
	require.Error(t, err)
}

func TestUnlink_MissingFileIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	f := &FIFO{Path: filepath.Join(dir, "gone")}
	require.NoError(t, f.Unlink())
}

func TestOpen_NonBlockingAgainstNoWriter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipe")

	f, err := Ensure(path)
	require.NoError(t, err)

	file, err := f.Open()
	require.NoError(t, err)
	defer file.Close()

	// With no writer ever attached, a non-blocking FIFO read returns EOF
	// immediately rather than blocking — Open must not hang waiting for a
	// peer (spec §4.7).
	buf := make([]byte, 1)
	n, err := file.Read(buf)
	require.Equal(t, 0, n)
	require.True(t, err == nil || err == io.EOF)
}
