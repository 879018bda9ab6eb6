//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package memlimit

import (
	"golang.org/x/sys/unix"
)

func rlimit(resource int) uint64 {
	var rl unix.Rlimit
	if err := unix.Getrlimit(resource, &rl); err != nil {
		return 0
	}
	if rl.Cur == unix.RLIM_INFINITY {
		return 0
	}
	return uint64(rl.Cur)
}
