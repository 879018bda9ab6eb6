// Package clock samples time for the scrypt throughput benchmark. A Source is picked once, by New, and then passed
// around explicitly; there is no package level clock state.
package clock

import (
	"errors"
	"time"
)

// TicksPerSecond is the tick rate assumed for the wall clock fallback, whose resolution is 1/TicksPerSecond.
const TicksPerSecond = 1000000

var ErrUnavailable = errors.New("clock: no usable clock source")

type Timestamp struct {
	sec  int64
	nsec int64
}

func NewTimestamp(sec, nsec int64) Timestamp {
	return Timestamp{sec: sec, nsec: nsec}
}

// Sub returns t-start in seconds.
func (t Timestamp) Sub(start Timestamp) float64 {
	return float64(t.nsec-start.nsec)*0.000000001 + float64(t.sec-start.sec)
}

type Source interface {
	Now() (Timestamp, error)
	// Resolution is the clock granularity in seconds.
	Resolution() float64
}

// New returns the most precise clock the host offers: the process CPU time clock, then the monotonic clock, then
// the realtime clock. Hosts without POSIX clocks get the wall clock at 1/TicksPerSecond resolution.
func New() (Source, error) {
	return pick(candidates())
}

type candidate func() (Source, error)

func pick(cs []candidate) (Source, error) {
	if len(cs) == 0 {
		return wallClock{}, nil
	}
	for _, probe := range cs {
		if src, err := probe(); err == nil {
			return src, nil
		}
	}
	return nil, ErrUnavailable
}

type wallClock struct{}

func (wallClock) Now() (Timestamp, error) {
	ns := time.Now().UnixNano()
	return Timestamp{sec: ns / int64(time.Second), nsec: ns % int64(time.Second)}, nil
}

func (wallClock) Resolution() float64 {
	return 1.0 / TicksPerSecond
}

// Name reports which clock a Source reads, for diagnostics.
func Name(src Source) string {
	if n, ok := src.(interface{ name() string }); ok {
		return n.name()
	}
	if _, ok := src.(wallClock); ok {
		return "wall"
	}
	return "custom"
}
