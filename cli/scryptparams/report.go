package main

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/kuking/scryptparams"
)

var mebibyte = decimal.NewFromInt(1 << 20)

func mib(bytes uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(bytes), 0).Div(mebibyte).StringFixed(2) + " MiB"
}

// estimatedSeconds is how long params should take at opsPerSecond.
func estimatedSeconds(params scryptparams.CostParameters, opsPerSecond float64) string {
	if opsPerSecond <= 0 {
		return "unknown"
	}
	return decimal.NewFromFloat(params.Ops()/opsPerSecond).StringFixed(3) + " s"
}

func printParams(params scryptparams.CostParameters, limits scryptparams.ResourceLimits) {
	fmt.Printf("                   N: %v (2^%v)\n", params.N(), params.LogN)
	fmt.Printf("                   r: %v\n", params.R)
	fmt.Printf("                   p: %v\n", params.P)
	fmt.Printf("        Memory Limit: %v\n", mib(limits.MemoryBytes))
	fmt.Printf("       Memory In Use: %v\n", mib(params.MemoryBytes()))
	fmt.Printf("    Throughput (est): %v salsa20/8 cores/s\n", decimal.NewFromFloat(limits.OpsPerSecond).Round(0))
	fmt.Printf("         Time Budget: %v s\n", decimal.NewFromFloat(limits.MaxTime).StringFixed(3))
	fmt.Printf("      Time (est.)   : %v\n", estimatedSeconds(params, limits.OpsPerSecond))
}
