// Package cpuperf estimates how many salsa20/8 core invocations per second the host can run through scrypt.
package cpuperf

import (
	"errors"
	"fmt"

	"github.com/kuking/scryptparams/clock"
	"github.com/kuking/scryptparams/crypto"
)

// Primitive has the shape of scrypt.Key. It must be deterministic and its cost must depend only on N, r and p.
type Primitive func(password, salt []byte, N, r, p, keyLen int) ([]byte, error)

const (
	syncN    = 16
	measureN = 128
	// a single N=128, r=1, p=1 scrypt runs the salsa20/8 core 4*N*r = 512 times
	coresPerMeasure = 4 * measureN
	keyLen          = 1
)

var (
	ErrPrimitiveFailure = errors.New("cpuperf: scrypt primitive failed")
	ErrZeroResolution   = errors.New("cpuperf: clock reports zero resolution and no minimum window is set")
)

type Estimate struct {
	OpsPerSecond float64
	Operations   uint64
	Elapsed      float64
}

type Benchmark struct {
	clock     clock.Source
	primitive Primitive
	minWindow float64
}

type Option func(*Benchmark)

func WithPrimitive(p Primitive) Option {
	return func(b *Benchmark) {
		b.primitive = p
	}
}

// WithMinWindow makes the measurement phase last at least seconds, even on clocks with a finer resolution.
func WithMinWindow(seconds float64) Option {
	return func(b *Benchmark) {
		b.minWindow = seconds
	}
}

func New(src clock.Source, opts ...Option) *Benchmark {
	b := &Benchmark{clock: src, primitive: crypto.Scrypt}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Estimate busy-loops the primitive for about one clock tick and reports its throughput. The first loop only waits
// for the clock to tick, so the measured loop starts on a tick boundary and not on a stale sample.
func (b *Benchmark) Estimate() (Estimate, error) {
	window := b.clock.Resolution()
	if b.minWindow > window {
		window = b.minWindow
	}
	if window <= 0 {
		return Estimate{}, ErrZeroResolution
	}

	start, err := b.now()
	if err != nil {
		return Estimate{}, err
	}
	for {
		if err := b.run(syncN); err != nil {
			return Estimate{}, err
		}
		elapsed, err := b.since(start)
		if err != nil {
			return Estimate{}, err
		}
		if elapsed > 0 {
			break
		}
	}

	start, err = b.now()
	if err != nil {
		return Estimate{}, err
	}
	var ops uint64
	var elapsed float64
	for {
		if err := b.run(measureN); err != nil {
			return Estimate{}, err
		}
		ops += coresPerMeasure
		if elapsed, err = b.since(start); err != nil {
			return Estimate{}, err
		}
		if elapsed > window {
			break
		}
	}

	return Estimate{OpsPerSecond: float64(ops) / elapsed, Operations: ops, Elapsed: elapsed}, nil
}

func (b *Benchmark) run(n int) error {
	if _, err := b.primitive(nil, nil, n, 1, 1, keyLen); err != nil {
		return fmt.Errorf("%w: N=%v: %v", ErrPrimitiveFailure, n, err)
	}
	return nil
}

func (b *Benchmark) now() (clock.Timestamp, error) {
	ts, err := b.clock.Now()
	if err != nil {
		return clock.Timestamp{}, fmt.Errorf("%w: %v", clock.ErrUnavailable, err)
	}
	return ts, nil
}

func (b *Benchmark) since(start clock.Timestamp) (float64, error) {
	ts, err := b.now()
	if err != nil {
		return 0, err
	}
	return ts.Sub(start), nil
}
