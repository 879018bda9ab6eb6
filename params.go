// Package scryptparams picks scrypt cost parameters that fit a memory and time budget on the running host, and checks
// externally supplied parameters against the same budget.
package scryptparams

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/kuking/scryptparams/crypto"
)

const (
	maxLogN = 63
	// r*p must stay below 2^30 so scrypt's 128*r*p byte regions cannot overflow
	maxRP = 1 << 30
)

type CostParameters struct {
	LogN int
	R    uint32
	P    uint32
}

// FromN converts an explicit N, as stored in password hashes, to CostParameters.
func FromN(n uint64, r, p uint32) (CostParameters, error) {
	if n < 2 || n&(n-1) != 0 {
		return CostParameters{}, fmt.Errorf("%w: N=%v is not a power of two greater than 1", ErrInvalidCostExponent, n)
	}
	return CostParameters{LogN: bits.TrailingZeros64(n), R: r, P: p}, nil
}

// N is 2^LogN, or 0 when LogN is out of range.
func (c CostParameters) N() uint64 {
	if c.LogN < 1 || c.LogN > maxLogN {
		return 0
	}
	return uint64(1) << c.LogN
}

// MemoryBytes is the size of scrypt's V array, 128*N*r; it saturates at MaxUint64.
func (c CostParameters) MemoryBytes() uint64 {
	hi, lo := bits.Mul64(c.N(), 128*uint64(c.R))
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

// Ops is the number of salsa20/8 core invocations a derivation performs, 4*N*r*p.
func (c CostParameters) Ops() float64 {
	return 4 * float64(c.N()) * float64(c.R) * float64(c.P)
}

// Validate performs the structural checks that do not depend on any budget.
func (c CostParameters) Validate() error {
	if c.LogN < 1 || c.LogN > maxLogN {
		return fmt.Errorf("%w: got %v", ErrInvalidCostExponent, c.LogN)
	}
	if uint64(c.R)*uint64(c.P) >= maxRP {
		return fmt.Errorf("%w: r=%v, p=%v", ErrBlockParallelismOverflow, c.R, c.P)
	}
	if c.R == 0 || c.P == 0 {
		return fmt.Errorf("%w: r=%v, p=%v", ErrInvalidBlockParameters, c.R, c.P)
	}
	return nil
}

func (c CostParameters) Key(password, salt []byte, keyLen int) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.N() > math.MaxInt {
		return nil, fmt.Errorf("%w: N=2^%v does not fit in an int", ErrInvalidCostExponent, c.LogN)
	}
	return crypto.Scrypt(password, salt, int(c.N()), int(c.R), int(c.P), keyLen)
}

func (c CostParameters) String() string {
	return fmt.Sprintf("N=%v (2^%v), r=%v, p=%v", c.N(), c.LogN, c.R, c.P)
}
