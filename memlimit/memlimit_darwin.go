package memlimit

import (
	"golang.org/x/sys/unix"
)

func physical() uint64 {
	mem, err := unix.SysctlUint64("hw.memsize")
	if err != nil {
		return 0
	}
	return mem
}

func hostLimits() []uint64 {
	return []uint64{physical(), rlimit(unix.RLIMIT_AS), rlimit(unix.RLIMIT_DATA)}
}
