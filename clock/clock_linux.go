package clock

import (
	"golang.org/x/sys/unix"
)

type posixClock struct {
	id    int32
	label string
	res   float64
}

func (c posixClock) Now() (Timestamp, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(c.id, &ts); err != nil {
		return Timestamp{}, ErrUnavailable
	}
	sec, nsec := ts.Unix()
	return Timestamp{sec: sec, nsec: nsec}, nil
}

func (c posixClock) Resolution() float64 {
	return c.res
}

func (c posixClock) name() string {
	return c.label
}

func probePosix(id int32, label string) candidate {
	return func() (Source, error) {
		var res unix.Timespec
		if err := unix.ClockGetres(id, &res); err != nil {
			return nil, err
		}
		sec, nsec := res.Unix()
		return posixClock{id: id, label: label, res: float64(sec) + float64(nsec)*0.000000001}, nil
	}
}

func candidates() []candidate {
	return []candidate{
		probePosix(unix.CLOCK_PROCESS_CPUTIME_ID, "process-cputime"),
		probePosix(unix.CLOCK_MONOTONIC, "monotonic"),
		probePosix(unix.CLOCK_REALTIME, "realtime"),
	}
}
