package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_RequiresAtLeastOneSink(t *testing.T) {
	_, err := Parse(nil)
	require.Error(t, err)
}

func TestParse_HelpAndVersionShortCircuit(t *testing.T) {
	cfg, err := Parse([]string{"--help"})
	require.NoError(t, err)
	require.True(t, cfg.Help)

	cfg, err = Parse([]string{"-v"})
	require.NoError(t, err)
	require.True(t, cfg.Version)
}

func TestParse_PlainPathSink(t *testing.T) {
	cfg, err := Parse([]string{"out-%Y.log"})
	require.NoError(t, err)
	require.Len(t, cfg.Sinks, 1)
	require.Equal(t, "out-%Y.log", cfg.Sinks[0].Pattern)
	require.Empty(t, cfg.Sinks[0].Link)
}

// Scenario C (spec §8) uses this exact two-token form: "a-%M.log @latest".
func TestParse_PathSinkWithLink(t *testing.T) {
	cfg, err := Parse([]string{"a-%M.log", "@latest"})
	require.NoError(t, err)
	require.Len(t, cfg.Sinks, 1)
	require.Equal(t, "a-%M.log", cfg.Sinks[0].Pattern)
	require.Equal(t, "latest", cfg.Sinks[0].Link)
}

func TestParse_LinkTokenIsNotTreatedAsItsOwnSink(t *testing.T) {
	cfg, err := Parse([]string{"a.log", "@latest", "b.log"})
	require.NoError(t, err)
	require.Len(t, cfg.Sinks, 2)
	require.Equal(t, "a.log", cfg.Sinks[0].Pattern)
	require.Equal(t, "latest", cfg.Sinks[0].Link)
	require.Equal(t, "b.log", cfg.Sinks[1].Pattern)
	require.Empty(t, cfg.Sinks[1].Link)
}

func TestParse_StdoutAndStderrLiterals(t *testing.T) {
	cfg, err := Parse([]string{"-", "STDERR"})
	require.NoError(t, err)
	require.Len(t, cfg.Sinks, 2)
	require.Equal(t, os.Stdout, cfg.Sinks[0].Descriptor)
	require.Equal(t, os.Stderr, cfg.Sinks[1].Descriptor)
}

func TestParse_LinkOnStdoutIsRejected(t *testing.T) {
	_, err := Parse([]string{"STDOUT", "@latest"})
	require.Error(t, err)
}

func TestParse_EmptyLinkAfterAtIsRejected(t *testing.T) {
	_, err := Parse([]string{"out.log", "@"})
	require.Error(t, err)
}

func TestParse_MultipleSinksAndFlags(t *testing.T) {
	cfg, err := Parse([]string{"-q", "-e", "--fifo=/tmp/in", "out.log", "@latest", "-"})
	require.NoError(t, err)
	require.True(t, cfg.Quiet)
	require.True(t, cfg.ExitOnWriteError)
	require.Equal(t, "/tmp/in", cfg.FIFOPath)
	require.Len(t, cfg.Sinks, 2)
}
