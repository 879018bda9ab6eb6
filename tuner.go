package scryptparams

import (
	"errors"
	"fmt"

	"github.com/kuking/scryptparams/clock"
	"github.com/kuking/scryptparams/cpuperf"
	"github.com/kuking/scryptparams/memlimit"
)

// Tuner binds the selector and validator to a clock, a scrypt primitive and a host memory ceiling. A Tuner holds no
// mutable state; every call re-reads the ceiling and re-runs the benchmark, and it may be shared between goroutines.
type Tuner struct {
	bench   *cpuperf.Benchmark
	ceiling func() (uint64, error)
}

type tunerConfig struct {
	clock     clock.Source
	primitive cpuperf.Primitive
	ceiling   func() (uint64, error)
	minWindow float64
}

type TunerOption func(*tunerConfig)

func WithClock(src clock.Source) TunerOption {
	return func(c *tunerConfig) {
		c.clock = src
	}
}

func WithPrimitive(p cpuperf.Primitive) TunerOption {
	return func(c *tunerConfig) {
		c.primitive = p
	}
}

// WithCeiling replaces the host memory ceiling query, memlimit.Ceiling by default.
func WithCeiling(ceiling func() (uint64, error)) TunerOption {
	return func(c *tunerConfig) {
		c.ceiling = ceiling
	}
}

// WithMinWindow lengthens the benchmark to at least seconds; see cpuperf.WithMinWindow.
func WithMinWindow(seconds float64) TunerOption {
	return func(c *tunerConfig) {
		c.minWindow = seconds
	}
}

func NewTuner(opts ...TunerOption) (*Tuner, error) {
	cfg := tunerConfig{ceiling: memlimit.Ceiling}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.clock == nil {
		src, err := clock.New()
		if err != nil {
			return nil, err
		}
		cfg.clock = src
	}

	benchOpts := []cpuperf.Option{cpuperf.WithMinWindow(cfg.minWindow)}
	if cfg.primitive != nil {
		benchOpts = append(benchOpts, cpuperf.WithPrimitive(cfg.primitive))
	}
	return &Tuner{
		bench:   cpuperf.New(cfg.clock, benchOpts...),
		ceiling: cfg.ceiling,
	}, nil
}

// Limits resolves the memory budget and measures the host to turn (maxMem, memFrac, maxTime) into ResourceLimits.
// A host whose memory ceiling cannot be determined is given maxMem, or MinMemory when maxMem is 0.
func (t *Tuner) Limits(maxMem uint64, memFrac, maxTime float64) (ResourceLimits, error) {
	if memFrac < 0 || maxTime < 0 {
		return ResourceLimits{}, fmt.Errorf("%w: memFrac=%v, maxTime=%v", ErrInvalidBudget, memFrac, maxTime)
	}
	var memory uint64
	host, err := t.ceiling()
	switch {
	case errors.Is(err, memlimit.ErrUnknown):
		memory = max(maxMem, MinMemory)
	case err != nil:
		return ResourceLimits{}, err
	default:
		memory = MemToUse(maxMem, memFrac, host)
	}
	est, err := t.bench.Estimate()
	if err != nil {
		return ResourceLimits{}, err
	}
	return ResourceLimits{
		MemoryBytes:  memory,
		OpsPerSecond: est.OpsPerSecond,
		MaxTime:      maxTime,
	}, nil
}

// PickParams returns parameters using at most maxMem bytes (0 for no cap) and memFrac of the host memory, and
// taking about maxTime seconds on this host.
func (t *Tuner) PickParams(maxMem uint64, memFrac, maxTime float64) (CostParameters, error) {
	limits, err := t.Limits(maxMem, memFrac, maxTime)
	if err != nil {
		return CostParameters{}, err
	}
	return Pick(limits.MemoryBytes, limits.OpsPerSecond, limits.MaxTime), nil
}

// CheckParams tells whether params stay within the budget PickParams would have used for the same arguments.
func (t *Tuner) CheckParams(maxMem uint64, memFrac, maxTime float64, params CostParameters) error {
	limits, err := t.Limits(maxMem, memFrac, maxTime)
	if err != nil {
		return err
	}
	return Check(limits.MemoryBytes, limits.OpsPerSecond, limits.MaxTime, params)
}

func PickParams(maxMem uint64, memFrac, maxTime float64) (CostParameters, error) {
	t, err := NewTuner()
	if err != nil {
		return CostParameters{}, err
	}
	return t.PickParams(maxMem, memFrac, maxTime)
}

func CheckParams(maxMem uint64, memFrac, maxTime float64, params CostParameters) error {
	t, err := NewTuner()
	if err != nil {
		return err
	}
	return t.CheckParams(maxMem, memFrac, maxTime, params)
}
