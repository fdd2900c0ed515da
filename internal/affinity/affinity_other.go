//go:build !linux

package affinity

// Pin is not supported outside Linux.
func Pin(cpu int) (Pinning, error) {
	return nil, ErrUnsupported
}

// Allowed is not supported outside Linux.
func Allowed() ([]int, error) {
	return nil, ErrUnsupported
}
