//go:build freebsd || netbsd || openbsd || dragonfly

package memlimit

import (
	"golang.org/x/sys/unix"
)

// hw.physmem is 32 bits wide on NetBSD, which exposes the full value as hw.physmem64.
func physical() uint64 {
	for _, name := range []string{"hw.physmem64", "hw.physmem"} {
		if mem, err := unix.SysctlUint64(name); err == nil && mem > 0 {
			return mem
		}
	}
	return 0
}

// OpenBSD has no RLIMIT_AS; the data segment limit bounds the heap on every BSD.
func hostLimits() []uint64 {
	return []uint64{physical(), rlimit(unix.RLIMIT_DATA)}
}
