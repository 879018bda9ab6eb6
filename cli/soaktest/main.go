package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/kuking/scryptparams"
)

var (
	app        = kingpin.New("soaktest", "Repeatedly picks, checks and derives with scrypt parameters for a budget.")
	iterations = app.Flag("iterations", "How many pick/check/derive rounds to run.").Short('n').Default("20").Int()
	maxMem     = app.Flag("max-mem", "Maximum memory, e.g. 32MB.").Default("32MB").Bytes()
	memFrac    = app.Flag("mem-frac", "Maximum fraction of the host memory.").Default("0.5").Float64()
	maxTime    = app.Flag("max-time", "Time budget per derivation.").Default("100ms").Duration()
	window     = app.Flag("bench-window", "Minimum benchmark window.").Default("10ms").Duration()
)

var password = []byte("e924a81d0abd80b4c2ded664c7881a75575d9e45")

type round struct {
	params  scryptparams.CostParameters
	limits  scryptparams.ResourceLimits
	derive  time.Duration
	recheck error
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	tuner, err := scryptparams.NewTuner(scryptparams.WithMinWindow(window.Seconds()))
	assertErr(err)

	fmt.Println("scrypt parameter soak test:")
	fmt.Printf("1. Budget: max-mem=%v, mem-frac=%v, max-time=%v, %v rounds\n", *maxMem, *memFrac, *maxTime, *iterations)

	rounds := make([]round, 0, *iterations)
	for i := 0; i < *iterations; i++ {
		rounds = append(rounds, runRound(tuner))
		_, _ = os.Stdout.WriteString(".")
		_ = os.Stdout.Sync()
	}
	fmt.Println(" done")

	fmt.Println("2. Results:")
	overBudget, drifted := 0, 0
	budget := maxTime.Seconds()
	for i, r := range rounds {
		took := r.derive.Seconds()
		flag := ""
		if took > budget {
			overBudget++
			flag = " OVER"
		}
		if r.recheck != nil {
			drifted++
			flag += " DRIFT"
		}
		fmt.Printf("2.%v. %v, limit %v MiB, %v cores/s, derived in %v s%v\n", i+1, r.params,
			r.limits.MemoryBytes>>20, decimal.NewFromFloat(r.limits.OpsPerSecond).Round(0),
			decimal.NewFromFloat(took).StringFixed(3), flag)
	}
	fmt.Printf("3. %v/%v derivations over the time budget, %v/%v rejected by a fresh benchmark\n",
		overBudget, len(rounds), drifted, len(rounds))
}

// runRound picks parameters, validates them against the very limits they were picked for (which must always pass),
// derives a key with them, and finally re-checks them against a new benchmark to show measurement drift.
func runRound(tuner *scryptparams.Tuner) round {
	limits, err := tuner.Limits(uint64(*maxMem), *memFrac, maxTime.Seconds())
	assertErr(err)

	params := scryptparams.Pick(limits.MemoryBytes, limits.OpsPerSecond, limits.MaxTime)
	if limits.OpsLimit() >= scryptparams.MinOpsLimit {
		if err := scryptparams.Check(limits.MemoryBytes, limits.OpsPerSecond, limits.MaxTime, params); err != nil {
			fmt.Printf("\nERROR: picked %v do not pass validation: %v\n", params, err)
			os.Exit(-1)
		}
	}

	start := time.Now()
	_, err = params.Key(password, []byte("soak salt"), 32)
	assertErr(err)
	took := time.Since(start)

	recheck := tuner.CheckParams(uint64(*maxMem), *memFrac, maxTime.Seconds(), params)
	return round{params: params, limits: limits, derive: took, recheck: recheck}
}

func assertErr(err error) {
	if err != nil {
		fmt.Println("ERROR:", err)
		os.Exit(-1)
	}
}
