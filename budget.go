package scryptparams

import "math"

const (
	// MinMemory is the floor of every resolved memory budget.
	MinMemory = 1 << 20
	// DefaultMemFraction is the largest share of the host ceiling a budget may claim.
	DefaultMemFraction = 0.5
)

// MemToUse resolves how many bytes a derivation may use: fraction of hostCeiling, capped by maxMem when maxMem > 0,
// and never below MinMemory. A fraction outside (0, 0.5] means DefaultMemFraction.
func MemToUse(maxMem uint64, fraction float64, hostCeiling uint64) uint64 {
	if !(fraction > 0) || fraction > DefaultMemFraction {
		fraction = DefaultMemFraction
	}

	avail := fraction * float64(hostCeiling)
	var memlimit uint64
	if avail >= math.MaxUint64 {
		memlimit = math.MaxUint64
	} else {
		memlimit = uint64(avail)
	}

	if maxMem > 0 && memlimit > maxMem {
		memlimit = maxMem
	}
	if memlimit < MinMemory {
		memlimit = MinMemory
	}
	return memlimit
}

type ResourceLimits struct {
	MemoryBytes  uint64
	OpsPerSecond float64
	MaxTime      float64
}

// OpsLimit is the number of salsa20/8 cores affordable within MaxTime. No floor is applied.
func (l ResourceLimits) OpsLimit() float64 {
	return l.OpsPerSecond * l.MaxTime
}
