// Package passhash stores scrypt password hashes as "N$r$p$salt$key" strings and verifies them, refusing to derive
// with parameters that would exceed the caller's memory or time budget.
package passhash

import (
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kuking/scryptparams"
	"github.com/kuking/scryptparams/crypto"
)

const (
	KeyLength       = 32
	DefaultSaltSize = 8
	separator       = "$"
)

var ErrMalformedHash = errors.New("passhash: malformed hash")

type Hash struct {
	Params scryptparams.CostParameters
	// Salt is the encoded salt exactly as stored; its bytes are what scrypt is fed.
	Salt string
	Key  []byte
}

// EncodeSalt turns raw bytes into a salt that is safe to embed in a hash string.
func EncodeSalt(raw []byte) string {
	enc := base64.StdEncoding.EncodeToString(raw)
	return strings.NewReplacer("+", ".", "$", "").Replace(enc)
}

func GenerateSalt(size int) string {
	return EncodeSalt(crypto.RandBytes(size))
}

// New derives the key for password. A nil rawSalt gets a fresh random one; an empty one is refused.
func New(password []byte, params scryptparams.CostParameters, rawSalt []byte) (*Hash, error) {
	salt := GenerateSalt(DefaultSaltSize)
	if rawSalt != nil {
		salt = EncodeSalt(rawSalt)
	}
	h := &Hash{Params: params, Salt: salt}
	if salt == "" {
		return nil, fmt.Errorf("%w: empty salt", ErrMalformedHash)
	}
	key, err := params.Key(password, []byte(salt), KeyLength)
	if err != nil {
		return nil, err
	}
	h.Key = key
	if err := h.Verify(); err != nil {
		return nil, err
	}
	return h, nil
}

// Generate hashes password with a random salt and returns the encoded hash.
func Generate(password []byte, params scryptparams.CostParameters) (string, error) {
	h, err := New(password, params, nil)
	if err != nil {
		return "", err
	}
	return h.String(), nil
}

func (h *Hash) String() string {
	return strings.Join([]string{
		strconv.FormatUint(h.Params.N(), 10),
		strconv.FormatUint(uint64(h.Params.R), 10),
		strconv.FormatUint(uint64(h.Params.P), 10),
		h.Salt,
		hex.EncodeToString(h.Key),
	}, separator)
}

func Parse(encoded string) (*Hash, error) {
	fields := strings.Split(encoded, separator)
	if len(fields) != 5 {
		return nil, fmt.Errorf("%w: expected 5 fields, got %v", ErrMalformedHash, len(fields))
	}
	for i, f := range fields {
		if f == "" {
			return nil, fmt.Errorf("%w: field %v is empty", ErrMalformedHash, i+1)
		}
	}
	n, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: N: %v", ErrMalformedHash, err)
	}
	r, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: r: %v", ErrMalformedHash, err)
	}
	p, err := strconv.ParseUint(fields[2], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: p: %v", ErrMalformedHash, err)
	}
	params, err := scryptparams.FromN(n, uint32(r), uint32(p))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	key, err := hex.DecodeString(fields[4])
	if err != nil {
		return nil, fmt.Errorf("%w: key: %v", ErrMalformedHash, err)
	}
	h := &Hash{Params: params, Salt: fields[3], Key: key}
	if err := h.Verify(); err != nil {
		return nil, err
	}
	return h, nil
}

// Verify checks the hash is well formed. It says nothing about whether its parameters are affordable.
func (h *Hash) Verify() error {
	if err := h.Params.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	if h.Salt == "" || strings.Contains(h.Salt, separator) {
		return fmt.Errorf("%w: invalid salt", ErrMalformedHash)
	}
	if len(h.Key) != KeyLength {
		return fmt.Errorf("%w: key should be %v bytes, got %v", ErrMalformedHash, KeyLength, len(h.Key))
	}
	return nil
}

// Matches derives the key for password and compares it in constant time.
func (h *Hash) Matches(password []byte) (bool, error) {
	key, err := h.Params.Key(password, []byte(h.Salt), len(h.Key))
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(key, h.Key) == 1, nil
}

// Check verifies password against encoded without any budget check; use a Verifier for hashes from untrusted
// storage.
func Check(password []byte, encoded string) (bool, error) {
	h, err := Parse(encoded)
	if err != nil {
		return false, err
	}
	return h.Matches(password)
}
