package scryptparams

import (
	"errors"

	"github.com/kuking/scryptparams/clock"
)

const (
	kib = uint64(1) << 10
	mib = uint64(1) << 20
	gib = uint64(1) << 30
)

// tickingClock advances 1ms on every reading and claims a 10.5ms resolution, so every benchmark run performs 11
// measured scrypts over 11ms: 512000 salsa20/8 cores per second.
type tickingClock struct {
	ns int64
}

func (c *tickingClock) Now() (clock.Timestamp, error) {
	ts := clock.NewTimestamp(c.ns/1000000000, c.ns%1000000000)
	c.ns += 1000000
	return ts, nil
}

func (c *tickingClock) Resolution() float64 { return 0.0105 }

const tickingOpsPerSecond = 512000

func noopPrimitive(password, salt []byte, N, r, p, keyLen int) ([]byte, error) {
	return make([]byte, keyLen), nil
}

func failingPrimitive(password, salt []byte, N, r, p, keyLen int) ([]byte, error) {
	return nil, errors.New("cannot allocate memory")
}

func fixedCeiling(bytes uint64) func() (uint64, error) {
	return func() (uint64, error) {
		return bytes, nil
	}
}

func givenFakeTuner(ceiling uint64) *Tuner {
	t, err := NewTuner(WithClock(&tickingClock{}), WithPrimitive(noopPrimitive), WithCeiling(fixedCeiling(ceiling)))
	if err != nil {
		panic(err)
	}
	return t
}
