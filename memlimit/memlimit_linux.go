package memlimit

import (
	"golang.org/x/sys/unix"
)

func physical() uint64 {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0
	}
	return uint64(info.Totalram) * uint64(info.Unit)
}

func hostLimits() []uint64 {
	return []uint64{physical(), rlimit(unix.RLIMIT_AS), rlimit(unix.RLIMIT_DATA)}
}
