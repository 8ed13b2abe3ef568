package conn

import (
	"os"

	"github.com/go-errors/errors"

	"github.com/BeatGlow/flipdot/internal/ioctl"
)

// Definitions from <linux/serial.h>
const (
	serRS485Enabled      = 1 << 0
	serRS485RTSOnSend    = 1 << 1
	serRS485RTSAfterSend = 1 << 2

	tiocsRS485 ioctl.Command = 0x542f
)

type serialRS485 struct {
	flags              uint32
	delayRTSBeforeSend uint32
	delayRTSAfterSend  uint32
	padding            [5]uint32
}

// EnableRS485 switches the named port to kernel RS-485 mode, where the UART asserts RTS
// while transmitting to drive the transceiver. The setting outlives the file handle.
func EnableRS485(name string) error {
	f, err := os.OpenFile(name, os.O_RDWR, 0)
	if err != nil {
		return errors.WrapPrefix(err, "conn: open "+name, 0)
	}
	defer f.Close()

	config := serialRS485{flags: serRS485Enabled | serRS485RTSOnSend}
	return ioctl.Do(f.Fd(), tiocsRS485, &config)
}
