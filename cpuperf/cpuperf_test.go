package cpuperf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuking/scryptparams/clock"
)

// stepClock advances by step nanoseconds after every reading; the first stuck+1 readings are identical.
type stepClock struct {
	ns    int64
	step  int64
	stuck int
	res   float64
	err   error
}

func (c *stepClock) Now() (clock.Timestamp, error) {
	if c.err != nil {
		return clock.Timestamp{}, c.err
	}
	ts := clock.NewTimestamp(c.ns/1000000000, c.ns%1000000000)
	if c.stuck > 0 {
		c.stuck--
	} else {
		c.ns += c.step
	}
	return ts, nil
}

func (c *stepClock) Resolution() float64 { return c.res }

type countingPrimitive struct {
	calls map[int]int
	fail  error
}

func (p *countingPrimitive) run(password, salt []byte, N, r, pp, keyLen int) ([]byte, error) {
	if p.calls == nil {
		p.calls = map[int]int{}
	}
	p.calls[N]++
	if r != 1 || pp != 1 {
		return nil, errors.New("unexpected r/p")
	}
	return make([]byte, keyLen), p.fail
}

func TestEstimate_Arithmetic(t *testing.T) {
	c := &stepClock{step: 1000000, res: 0.0105} // 1ms per reading
	prim := &countingPrimitive{}

	est, err := New(c, WithPrimitive(prim.run)).Estimate()
	require.NoError(t, err)

	assert.Equal(t, 1, prim.calls[syncN])
	assert.Equal(t, 11, prim.calls[measureN], "must run until elapsed strictly exceeds the resolution")
	assert.Equal(t, uint64(11*512), est.Operations)
	assert.InDelta(t, 0.011, est.Elapsed, 1e-9)
	assert.InDelta(t, 512000, est.OpsPerSecond, 0.001)
}

func TestEstimate_WaitsForTickBeforeMeasuring(t *testing.T) {
	c := &stepClock{step: 1000000, stuck: 6, res: 0.0025}
	prim := &countingPrimitive{}

	est, err := New(c, WithPrimitive(prim.run)).Estimate()
	require.NoError(t, err)
	assert.Equal(t, 7, prim.calls[syncN])
	assert.Equal(t, 3, prim.calls[measureN])
	assert.InDelta(t, 512000, est.OpsPerSecond, 0.001)
}

func TestEstimate_MinWindow(t *testing.T) {
	c := &stepClock{step: 1000000, res: 0.000000001}
	prim := &countingPrimitive{}

	est, err := New(c, WithPrimitive(prim.run), WithMinWindow(0.0055)).Estimate()
	require.NoError(t, err)
	assert.Equal(t, 6, prim.calls[measureN])
	assert.InDelta(t, 0.006, est.Elapsed, 1e-9)
}

func TestEstimate_ZeroResolution(t *testing.T) {
	c := &stepClock{step: 1000000, res: 0}
	_, err := New(c, WithPrimitive((&countingPrimitive{}).run)).Estimate()
	require.ErrorIs(t, err, ErrZeroResolution)

	_, err = New(c, WithPrimitive((&countingPrimitive{}).run), WithMinWindow(0.001)).Estimate()
	require.NoError(t, err)
}

func TestEstimate_PrimitiveFailure(t *testing.T) {
	c := &stepClock{step: 1000000, res: 0.01}
	prim := &countingPrimitive{fail: errors.New("out of memory")}
	_, err := New(c, WithPrimitive(prim.run)).Estimate()
	require.ErrorIs(t, err, ErrPrimitiveFailure)
	assert.Contains(t, err.Error(), "out of memory")
	assert.Equal(t, 1, prim.calls[syncN], "failures are not retried")
}

func TestEstimate_ClockFailure(t *testing.T) {
	c := &stepClock{res: 0.01, err: errors.New("clock_gettime: EINVAL")}
	_, err := New(c, WithPrimitive((&countingPrimitive{}).run)).Estimate()
	require.ErrorIs(t, err, clock.ErrUnavailable)
}

func TestEstimate_RealScrypt(t *testing.T) {
	src, err := clock.New()
	require.NoError(t, err)
	est, err := New(src, WithMinWindow(0.02)).Estimate()
	require.NoError(t, err)
	assert.Greater(t, est.OpsPerSecond, 0.0)
	assert.GreaterOrEqual(t, est.Operations, uint64(512))
	assert.Greater(t, est.Elapsed, 0.02)
}
