package main

import (
	"errors"
	"os"
	"time"

	"github.com/alecthomas/units"
	"github.com/joho/godotenv"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/kuking/scryptparams/passhash"
)

const defaultEnvFile = ".env"

// loadEnvFile exports the SCRYPT_* defaults kept in a dotenv file. Variables already set in the environment win, and a
// missing file is not an error.
func loadEnvFile() error {
	name := os.Getenv("SCRYPT_ENV_FILE")
	if name == "" {
		name = defaultEnvFile
	}
	err := godotenv.Load(name)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

type budgetArgs struct {
	maxMem  *units.Base2Bytes
	memFrac *float64
	maxTime *time.Duration
}

func budgetFlags(cmd *kingpin.CmdClause) budgetArgs {
	return budgetArgs{
		maxMem: cmd.Flag("max-mem", "Maximum memory to use, e.g. 64MB; 0 for no cap.").
			Envar("SCRYPT_MAX_MEM").Default("0").Bytes(),
		memFrac: cmd.Flag("mem-frac", "Maximum fraction of the host memory to use, at most 0.5.").
			Envar("SCRYPT_MEM_FRAC").Default("0.5").Float64(),
		maxTime: cmd.Flag("max-time", "Maximum time a derivation may take.").
			Envar("SCRYPT_MAX_TIME").Default("1s").Duration(),
	}
}

func (b budgetArgs) budget() passhash.Budget {
	maxMem := uint64(0)
	if *b.maxMem > 0 {
		maxMem = uint64(*b.maxMem)
	}
	return passhash.Budget{MaxMem: maxMem, MemFrac: *b.memFrac, MaxTime: b.maxTime.Seconds()}
}
