package govern

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNoBackoffIsZero(t *testing.T) {
	require.Equal(t, time.Duration(0), NoBackoff().ComputeDelay(0))
	require.Equal(t, time.Duration(0), NoBackoff().ComputeDelay(10))
}

func TestConstantBackoff(t *testing.T) {
	b := ConstantBackoff(25 * time.Millisecond)
	require.Equal(t, 25*time.Millisecond, b.ComputeDelay(0))
	require.Equal(t, 25*time.Millisecond, b.ComputeDelay(100))
}

func TestExponentialBackoffCapsAtMax(t *testing.T) {
	b := ExponentialBackoff(10*time.Millisecond, 100*time.Millisecond)
	require.Equal(t, 10*time.Millisecond, b.ComputeDelay(0))
	require.Equal(t, 20*time.Millisecond, b.ComputeDelay(1))
	require.Equal(t, 40*time.Millisecond, b.ComputeDelay(2))
	require.Equal(t, 100*time.Millisecond, b.ComputeDelay(10))
}

func TestLinearBackoffCapsAtMax(t *testing.T) {
	b := LinearBackoff(10*time.Millisecond, 5*time.Millisecond, 30*time.Millisecond)
	require.Equal(t, 10*time.Millisecond, b.ComputeDelay(0))
	require.Equal(t, 15*time.Millisecond, b.ComputeDelay(1))
	require.Equal(t, 30*time.Millisecond, b.ComputeDelay(20))
}

func TestJitterBackoffStaysWithinBounds(t *testing.T) {
	base := ConstantBackoff(100 * time.Millisecond)
	j := JitterBackoff(base, 0.5)

	for i := 0; i < 50; i++ {
		d := j.ComputeDelay(i)
		require.GreaterOrEqual(t, d, time.Duration(0))
		require.LessOrEqual(t, d, 150*time.Millisecond)
	}
}

func TestJitterBackoffClampsFactor(t *testing.T) {
	base := ConstantBackoff(10 * time.Millisecond)
	j := JitterBackoff(base, 5)
	d := j.ComputeDelay(0)
	require.GreaterOrEqual(t, d, time.Duration(0))
	require.LessOrEqual(t, d, 20*time.Millisecond)
}
