package crypto

import (
	"golang.org/x/crypto/scrypt"
)

// Scrypt derives keyLen bytes from password and salt. It is the only place the module reaches the scrypt mixing
// function; everything else treats it as an opaque primitive with a fixed cost per (N, r, p).
func Scrypt(password, salt []byte, N, r, p, keyLen int) ([]byte, error) {
	return scrypt.Key(password, salt, N, r, p, keyLen)
}
