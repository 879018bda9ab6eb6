package passhash

import (
	"errors"

	lru "github.com/hashicorp/golang-lru"

	"github.com/kuking/scryptparams"
)

type Budget struct {
	MaxMem  uint64
	MemFrac float64
	MaxTime float64
}

// Verifier checks password hashes whose parameters may come from an attacker. Parameters are first validated against
// the budget on this host; only then is the key derived. Verdicts are remembered per parameter set, so the
// benchmark runs once per distinct (N, r, p) until evicted.
type Verifier struct {
	tuner    *scryptparams.Tuner
	budget   Budget
	verdicts *lru.Cache
}

type verdict struct {
	err error
}

func NewVerifier(tuner *scryptparams.Tuner, budget Budget, cacheSize int) (*Verifier, error) {
	if tuner == nil {
		return nil, errors.New("passhash: verifier needs a tuner")
	}
	if cacheSize < 1 {
		return nil, errors.New("passhash: verdict cache size must be at least 1")
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Verifier{tuner: tuner, budget: budget, verdicts: cache}, nil
}

// Admit returns nil when params fit in the budget, or the bound they break.
func (v *Verifier) Admit(params scryptparams.CostParameters) error {
	if cached, ok := v.verdicts.Get(params); ok {
		return cached.(verdict).err
	}
	err := v.tuner.CheckParams(v.budget.MaxMem, v.budget.MemFrac, v.budget.MaxTime, params)
	if err == nil || isBoundViolation(err) {
		v.verdicts.Add(params, verdict{err: err})
	}
	return err
}

func (v *Verifier) Verify(password []byte, encoded string) (bool, error) {
	h, err := Parse(encoded)
	if err != nil {
		return false, err
	}
	if err := v.Admit(h.Params); err != nil {
		return false, err
	}
	return h.Matches(password)
}

func (v *Verifier) Cached() int {
	return v.verdicts.Len()
}

// clock and primitive failures say nothing about the parameters and are not cached
func isBoundViolation(err error) bool {
	for _, target := range []error{
		scryptparams.ErrInvalidCostExponent,
		scryptparams.ErrBlockParallelismOverflow,
		scryptparams.ErrInvalidBlockParameters,
		scryptparams.ErrMemoryBoundExceeded,
		scryptparams.ErrCPUBoundExceeded,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
