package scryptparams

import "fmt"

// Check reports whether params fit in memLimit bytes and in opsPerSecond*maxTime salsa20/8 cores. The first violated
// bound is returned, wrapping one of ErrInvalidCostExponent, ErrBlockParallelismOverflow, ErrInvalidBlockParameters,
// ErrMemoryBoundExceeded or ErrCPUBoundExceeded.
func Check(memLimit uint64, opsPerSecond, maxTime float64, params CostParameters) error {
	if err := params.Validate(); err != nil {
		return err
	}
	opsLimit := opsPerSecond * maxTime

	n := params.N()
	if (memLimit/n)/uint64(params.R) < 128 {
		return fmt.Errorf("%w: %v needs %v bytes, limit is %v bytes",
			ErrMemoryBoundExceeded, params, params.MemoryBytes(), memLimit)
	}
	if !((opsLimit/float64(n))/float64(params.R*params.P) >= 4) {
		return fmt.Errorf("%w: %v needs %.0f salsa20/8 cores, limit is %.0f",
			ErrCPUBoundExceeded, params, params.Ops(), opsLimit)
	}
	return nil
}
