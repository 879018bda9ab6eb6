package scryptparams

const (
	// MinOpsLimit is the floor Pick applies to the CPU budget, in salsa20/8 cores.
	MinOpsLimit = 32768

	pickR     = 8
	maxPickRP = 0x3fffffff
)

// Pick chooses parameters satisfying 128*N*r <= memLimit and 4*N*r*p <= opsPerSecond*maxTime, with r fixed at 8 and
// the CPU budget floored at 2^15 cores; a NaN budget gets the floor too. When the CPU budget is the tighter one, N
// follows it and p is 1; otherwise N follows the memory budget and the leftover CPU budget goes into p.
//
// Pick does not validate its result. Parameters handed across a trust boundary should go through Check first.
func Pick(memLimit uint64, opsPerSecond, maxTime float64) CostParameters {
	opsLimit := opsPerSecond * maxTime
	if !(opsLimit >= MinOpsLimit) {
		opsLimit = MinOpsLimit
	}

	params := CostParameters{R: pickR}
	if opsLimit < float64(memLimit/32) {
		params.P = 1
		maxN := opsLimit / float64(params.R*4)
		params.LogN = exponentAbove(maxN / 2)
	} else {
		maxN := float64(memLimit / uint64(params.R*128))
		params.LogN = exponentAbove(maxN / 2)

		maxrp := (opsLimit / 4) / float64(uint64(1)<<params.LogN)
		if maxrp > maxPickRP {
			maxrp = maxPickRP
		}
		params.P = uint32(maxrp) / params.R
	}
	return params
}

// exponentAbove returns the smallest e in [1, 63) with 2^e > limit, or 63 when there is none. It scans instead of
// taking a floating point log2, which misrounds right at powers of two.
func exponentAbove(limit float64) int {
	e := 1
	for ; e < maxLogN; e++ {
		if float64(uint64(1)<<e) > limit {
			break
		}
	}
	return e
}
