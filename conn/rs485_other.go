//go:build !linux

package conn

import "errors"

// ErrRS485Unsupported is returned on platforms without kernel RS-485 support.
var ErrRS485Unsupported = errors.New("conn: kernel RS-485 mode is only supported on Linux")

// EnableRS485 is not supported on this platform.
func EnableRS485(name string) error {
	return ErrRS485Unsupported
}
