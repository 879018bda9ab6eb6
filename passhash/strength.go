package passhash

import (
	"errors"
	"fmt"

	pwe "github.com/kuking/go-pwentropy"
)

const MinEntropyBits = 96

var ErrWeakPassword = errors.New("passhash: password entropy too low")

// CheckStrength rejects passwords with less than minBits of estimated entropy.
func CheckStrength(password string, minBits float64) error {
	if entropy := pwe.FairEntropy(password); entropy < minBits {
		return fmt.Errorf("%w: %2.2f bits (minimum: %v)", ErrWeakPassword, entropy, minBits)
	}
	return nil
}

// SuggestPassword generates an easy to type password with about 256 bits of strength.
func SuggestPassword() (string, float64) {
	password := pwe.PwGen(pwe.FormatEasy, pwe.Strength256)
	return password, pwe.FairEntropy(password)
}
