package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/kuking/scryptparams"
	"github.com/kuking/scryptparams/clock"
	"github.com/kuking/scryptparams/cpuperf"
	"github.com/kuking/scryptparams/passhash"
)

var (
	app = kingpin.New("scryptparams", "Picks scrypt parameters that fit a memory and time budget on this host, and checks "+
		"existing ones against it.")
	window = app.Flag("bench-window", "Make the throughput benchmark last at least this long.").Default("0s").Duration()

	pick         = app.Command("pick", "Pick N, r and p for the budget.")
	pickBudget   = budgetFlags(pick)
	pickValidate = pick.Flag("validate", "Check the picked parameters against the same budget.").Default("true").Bool()

	check       = app.Command("check", "Check N, r and p against the budget.")
	checkBudget = budgetFlags(check)
	checkN      = check.Arg("N", "CPU/memory cost, a power of two greater than 1.").Required().Uint64()
	checkR      = check.Arg("r", "Block size factor.").Required().Uint32()
	checkP      = check.Arg("p", "Parallelism.").Required().Uint32()

	bench = app.Command("bench", "Measure scrypt throughput on this host.")

	hash         = app.Command("hash", "Hash the password kept in a file.")
	hashPassword = hash.Flag("password-file", "Password file, optionally prefixed with @.").Short('p').Required().String()
	hashPreset   = hash.Flag("preset", "Use a fixed preset ("+strings.Join(scryptparams.PresetNames(), ", ")+
		") instead of picking parameters for the budget.").String()
	hashBudget = budgetFlags(hash)

	verify         = app.Command("verify", "Verify the password kept in a file against a hash, refusing hashes over budget.")
	verifyPassword = verify.Flag("password-file", "Password file, optionally prefixed with @.").Short('p').Required().String()
	verifyHash     = verify.Arg("hash", "Hash as printed by the hash command: N$r$p$salt$key.").Required().String()
	verifyBudget   = budgetFlags(verify)
)

func init() {
	app.Version("0.1.0")
	log.SetFlags(0)
	log.SetPrefix("scryptparams: ")
}

func main() {
	if err := loadEnvFile(); err != nil {
		log.Fatalf("FATAL: could not read environment file: %v", err)
	}

	switch kingpin.MustParse(app.Parse(os.Args[1:])) {
	case pick.FullCommand():
		doPick()
	case check.FullCommand():
		doCheck()
	case bench.FullCommand():
		doBench()
	case hash.FullCommand():
		doHash()
	case verify.FullCommand():
		doVerify()
	default:
		app.FatalUsage("Unrecognized command.")
	}
}

func newTuner() *scryptparams.Tuner {
	tuner, err := scryptparams.NewTuner(scryptparams.WithMinWindow(window.Seconds()))
	assertNoError(err, "FATAL: %v")
	return tuner
}

func doPick() {
	b := pickBudget.budget()
	limits, err := newTuner().Limits(b.MaxMem, b.MemFrac, b.MaxTime)
	assertNoError(err, "FATAL: could not measure this host: %v")

	params := scryptparams.Pick(limits.MemoryBytes, limits.OpsPerSecond, limits.MaxTime)
	printParams(params, limits)
	if !*pickValidate {
		return
	}
	if limits.OpsLimit() < scryptparams.MinOpsLimit {
		fmt.Println("          Validation: skipped, time budget is below the 2^15 cores floor")
		return
	}
	err = scryptparams.Check(limits.MemoryBytes, limits.OpsPerSecond, limits.MaxTime, params)
	assertNoError(err, "FATAL: picked parameters do not fit the budget: %v")
	fmt.Println("          Validation: OK")
}

func doCheck() {
	params, err := scryptparams.FromN(*checkN, *checkR, *checkP)
	assertNoError(err, "INVALID: %v")

	b := checkBudget.budget()
	limits, err := newTuner().Limits(b.MaxMem, b.MemFrac, b.MaxTime)
	assertNoError(err, "FATAL: could not measure this host: %v")

	printParams(params, limits)
	err = scryptparams.Check(limits.MemoryBytes, limits.OpsPerSecond, limits.MaxTime, params)
	assertNoError(err, "REJECTED: %v")
	fmt.Println("          Validation: OK")
}

func doBench() {
	src, err := clock.New()
	assertNoError(err, "FATAL: %v")
	est, err := cpuperf.New(src, cpuperf.WithMinWindow(window.Seconds())).Estimate()
	assertNoError(err, "FATAL: benchmark failed: %v")

	fmt.Printf("               Clock: %v\n", clock.Name(src))
	fmt.Printf("    Clock Resolution: %.9f s\n", src.Resolution())
	fmt.Printf("    salsa20/8 Cores : %v in %.6f s\n", est.Operations, est.Elapsed)
	fmt.Printf("          Throughput: %.0f cores/s\n", est.OpsPerSecond)
}

func doHash() {
	password := readPassword(*hashPassword)
	if err := passhash.CheckStrength(password, passhash.MinEntropyBits); err != nil {
		suggested, entropy := passhash.SuggestPassword()
		_, _ = os.Stderr.WriteString(fmt.Sprintf("FATAL: %v\n\n", err))
		_, _ = os.Stderr.WriteString(fmt.Sprintf("We have created a password for you with %2.2f bits of entropy \n"+
			"+-------------------------------------------------------+\n"+
			"| %52v  |\n"+
			"+-------------------------------------------------------+\n", entropy, suggested))
		os.Exit(-1)
	}

	var params scryptparams.CostParameters
	if *hashPreset != "" {
		var err error
		params, err = scryptparams.Preset(*hashPreset)
		assertNoError(err, "FATAL: %v")
	} else {
		b := hashBudget.budget()
		limits, err := newTuner().Limits(b.MaxMem, b.MemFrac, b.MaxTime)
		assertNoError(err, "FATAL: could not measure this host: %v")
		params = scryptparams.Pick(limits.MemoryBytes, limits.OpsPerSecond, limits.MaxTime)
		if limits.OpsLimit() >= scryptparams.MinOpsLimit {
			err = scryptparams.Check(limits.MemoryBytes, limits.OpsPerSecond, limits.MaxTime, params)
			assertNoError(err, "FATAL: picked parameters do not fit the budget: %v")
		}
	}

	encoded, err := passhash.Generate([]byte(password), params)
	assertNoError(err, "FATAL: could not hash: %v")
	fmt.Println(encoded)
}

func doVerify() {
	password := readPassword(*verifyPassword)
	verifier, err := passhash.NewVerifier(newTuner(), verifyBudget.budget(), 1)
	assertNoError(err, "FATAL: %v")

	ok, err := verifier.Verify([]byte(password), *verifyHash)
	assertNoError(err, "REJECTED: %v")
	if !ok {
		_, _ = os.Stderr.WriteString("MISMATCH\n")
		os.Exit(1)
	}
	fmt.Println("OK")
}

func readPassword(name string) string {
	if len(name) > 1 && name[0] == '@' {
		name = name[1:]
	}
	b, err := os.ReadFile(name)
	assertNoError(err, "FATAL: could not read password file: %v")
	return strings.TrimRight(string(b), "\r\n")
}

func assertNoError(err error, pattern string) {
	if err != nil {
		log.Fatalf(pattern, err)
	}
}
