package signalcoord

import (
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCoordinator_ConsumeRotateClearsFlag(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	defer c.Close()

	require.False(t, c.RotatePending())

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGHUP))
	require.Eventually(t, c.RotatePending, time.Second, time.Millisecond)

	require.True(t, c.ConsumeRotate())
	require.False(t, c.RotatePending())
	require.False(t, c.ConsumeRotate())
}

// Property 5 (signal coalescing): several SIGHUPs delivered before the flag
// is consumed still yield exactly one pending rotation.
func TestCoordinator_CoalescesBurstOfSignals(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	defer c.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGHUP))
	}
	require.Eventually(t, c.RotatePending, time.Second, time.Millisecond)

	require.True(t, c.ConsumeRotate())
	require.False(t, c.ConsumeRotate())
}

func TestCoordinator_TerminationFlagIsLatched(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	defer c.Close()

	require.False(t, c.Terminated())
	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))
	require.Eventually(t, c.Terminated, time.Second, time.Millisecond)
	require.True(t, c.Terminated())
}
