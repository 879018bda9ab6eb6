package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// RandBytes returns size bytes from the system CSPRNG, panicking if the host cannot provide them.
func RandBytes(size int) []byte {
	res := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, res); err != nil {
		panic(fmt.Sprintf("could not generate randomness: %v", err))
	}
	return res
}
