package scryptparams

import (
	"errors"

	"github.com/kuking/scryptparams/clock"
	"github.com/kuking/scryptparams/cpuperf"
)

var (
	ErrInvalidCostExponent      = errors.New("scrypt: cost exponent must be within [1, 63]")
	ErrBlockParallelismOverflow = errors.New("scrypt: r*p must be less than 2^30")
	ErrInvalidBlockParameters   = errors.New("scrypt: r and p must be at least 1")
	ErrMemoryBoundExceeded      = errors.New("scrypt: parameters exceed the memory limit")
	ErrCPUBoundExceeded         = errors.New("scrypt: parameters exceed the time limit")
	ErrInvalidBudget            = errors.New("scrypt: memory fraction and max time cannot be negative")
	ErrUnknownPreset            = errors.New("scrypt: unknown parameter preset")

	// re-exported so callers of this package only need one import to classify failures
	ErrClockUnavailable = clock.ErrUnavailable
	ErrPrimitiveFailure = cpuperf.ErrPrimitiveFailure
)
