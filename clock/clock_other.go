//go:build !linux

package clock

func candidates() []candidate {
	return nil
}
