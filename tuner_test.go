package scryptparams

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuking/scryptparams/memlimit"
)

func TestTuner_Limits(t *testing.T) {
	tuner := givenFakeTuner(2 * gib)
	limits, err := tuner.Limits(0, 0.5, 1)
	require.NoError(t, err)
	assert.Equal(t, gib, limits.MemoryBytes)
	assert.InDelta(t, tickingOpsPerSecond, limits.OpsPerSecond, 0.01)
	assert.Equal(t, 1.0, limits.MaxTime)

	limits, err = tuner.Limits(16*mib, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 16*mib, limits.MemoryBytes)
	assert.InDelta(t, 2*tickingOpsPerSecond, limits.OpsLimit(), 0.1)
}

func TestTuner_PickThenCheck(t *testing.T) {
	tuner := givenFakeTuner(2 * gib)

	// 512000 cores against 1GiB: the CPU budget decides, N=2^13
	params, err := tuner.PickParams(0, 0.5, 1)
	require.NoError(t, err)
	assert.Equal(t, CostParameters{LogN: 13, R: 8, P: 1}, params)
	require.NoError(t, tuner.CheckParams(0, 0.5, 1, params))

	// 1MiB against 512000 cores: memory decides, N=2^10 and the rest goes into p
	params, err = tuner.PickParams(mib, 0.5, 1)
	require.NoError(t, err)
	assert.Equal(t, CostParameters{LogN: 10, R: 8, P: 15}, params)
	require.NoError(t, tuner.CheckParams(mib, 0.5, 1, params))

	err = tuner.CheckParams(mib, 0.5, 1, CostParameters{LogN: 10, R: 8, P: 16})
	assert.ErrorIs(t, err, ErrCPUBoundExceeded)
	err = tuner.CheckParams(mib, 0.5, 1, CostParameters{LogN: 11, R: 8, P: 1})
	assert.ErrorIs(t, err, ErrMemoryBoundExceeded)
	err = tuner.CheckParams(mib, 0.5, 1, CostParameters{LogN: 10, R: 1000000, P: 1000000})
	assert.ErrorIs(t, err, ErrBlockParallelismOverflow)
}

func TestTuner_InvalidBudget(t *testing.T) {
	tuner := givenFakeTuner(2 * gib)
	_, err := tuner.PickParams(0, -0.1, 1)
	assert.ErrorIs(t, err, ErrInvalidBudget)
	_, err = tuner.PickParams(0, 0.5, -1)
	assert.ErrorIs(t, err, ErrInvalidBudget)
	assert.ErrorIs(t, tuner.CheckParams(0, 0.5, -1, MinParameters), ErrInvalidBudget)
}

func TestTuner_CeilingFailure(t *testing.T) {
	boom := errors.New("sysinfo: ENOSYS")
	tuner, err := NewTuner(WithClock(&tickingClock{}), WithPrimitive(noopPrimitive),
		WithCeiling(func() (uint64, error) { return 0, boom }))
	require.NoError(t, err)
	_, err = tuner.PickParams(0, 0.5, 1)
	assert.ErrorIs(t, err, boom)
}

func TestTuner_UnknownCeiling(t *testing.T) {
	tuner, err := NewTuner(WithClock(&tickingClock{}), WithPrimitive(noopPrimitive),
		WithCeiling(func() (uint64, error) { return 0, memlimit.ErrUnknown }))
	require.NoError(t, err)

	limits, err := tuner.Limits(0, 0.5, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(MinMemory), limits.MemoryBytes)

	limits, err = tuner.Limits(16*mib, 0.5, 1)
	require.NoError(t, err)
	assert.Equal(t, 16*mib, limits.MemoryBytes)

	params, err := tuner.PickParams(0, 0.5, 1)
	require.NoError(t, err)
	assert.LessOrEqual(t, params.MemoryBytes(), uint64(MinMemory))
	require.NoError(t, tuner.CheckParams(0, 0.5, 1, params))
}

func TestTuner_PrimitiveFailure(t *testing.T) {
	tuner, err := NewTuner(WithClock(&tickingClock{}), WithPrimitive(failingPrimitive), WithCeiling(fixedCeiling(gib)))
	require.NoError(t, err)
	_, err = tuner.PickParams(0, 0.5, 1)
	assert.ErrorIs(t, err, ErrPrimitiveFailure)
	assert.ErrorIs(t, tuner.CheckParams(0, 0.5, 1, MinParameters), ErrPrimitiveFailure)
}

func TestTuner_RealHost(t *testing.T) {
	if testing.Short() {
		t.Skip("benchmarks the host")
	}
	tuner, err := NewTuner(WithMinWindow(0.01))
	require.NoError(t, err)

	limits, err := tuner.Limits(4*mib, 0.5, 0.05)
	require.NoError(t, err)
	assert.LessOrEqual(t, limits.MemoryBytes, 4*mib)
	assert.GreaterOrEqual(t, limits.MemoryBytes, uint64(MinMemory))
	assert.Greater(t, limits.OpsPerSecond, 0.0)

	params := Pick(limits.MemoryBytes, limits.OpsPerSecond, limits.MaxTime)
	if limits.OpsLimit() >= MinOpsLimit {
		require.NoError(t, Check(limits.MemoryBytes, limits.OpsPerSecond, limits.MaxTime, params))
	}
	key, err := params.Key([]byte("password"), []byte("salt"), 32)
	require.NoError(t, err)
	assert.Len(t, key, 32)
}

func TestPackageLevelPickParams(t *testing.T) {
	if testing.Short() {
		t.Skip("benchmarks the host")
	}
	params, err := PickParams(2*mib, 0.5, 0.01)
	require.NoError(t, err)
	require.NoError(t, params.Validate())
	assert.LessOrEqual(t, params.MemoryBytes(), 2*mib)

	assert.ErrorIs(t, CheckParams(2*mib, 0.5, 0.01, CostParameters{LogN: 20, R: 8, P: 1}), ErrMemoryBoundExceeded)
}

func TestTuner_Concurrent(t *testing.T) {
	tuner, err := NewTuner(WithMinWindow(0.002), WithCeiling(fixedCeiling(gib)))
	require.NoError(t, err)

	const workers = 8
	errs := make(chan error, 3*workers)
	picked := make(chan CostParameters, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			params, err := tuner.PickParams(2*mib, 0.5, 0.05)
			errs <- err
			picked <- params
			errs <- tuner.CheckParams(2*mib, 0.5, 0.05, CostParameters{LogN: 4, R: 8, P: 1})
			if err := tuner.CheckParams(2*mib, 0.5, 0.05, CostParameters{LogN: 20, R: 8, P: 1}); !errors.Is(err, ErrMemoryBoundExceeded) {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	close(picked)

	for err := range errs {
		require.NoError(t, err)
	}
	for params := range picked {
		require.NoError(t, params.Validate())
		assert.LessOrEqual(t, params.MemoryBytes(), 2*mib)
	}
}
