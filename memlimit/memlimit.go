// Package memlimit reports how much memory the current process may reasonably use.
package memlimit

import (
	"errors"
	"math"
	"runtime/debug"
)

var ErrUnknown = errors.New("memlimit: could not determine the host memory ceiling")

// Ceiling returns the smallest of the physical memory, the finite address space and data segment rlimits, and the Go
// runtime soft memory limit (GOMEMLIMIT or debug.SetMemoryLimit), in bytes.
func Ceiling() (uint64, error) {
	return smallest(append(hostLimits(), runtimeLimit())...)
}

func runtimeLimit() uint64 {
	limit := debug.SetMemoryLimit(-1)
	if limit <= 0 || limit == math.MaxInt64 {
		return 0
	}
	return uint64(limit)
}

// smallest ignores zeros, which stand for "no limit from this source".
func smallest(limits ...uint64) (uint64, error) {
	var low uint64
	for _, l := range limits {
		if l == 0 {
			continue
		}
		if low == 0 || l < low {
			low = l
		}
	}
	if low == 0 {
		return 0, ErrUnknown
	}
	return low, nil
}
