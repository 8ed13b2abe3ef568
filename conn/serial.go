// Package conn provides raw access to serial ports.
package conn

import (
	"fmt"
	"time"

	"github.com/go-errors/errors"
	"github.com/pkg/term"
)

// Serial is a serial port in raw mode.
type Serial struct {
	t    *term.Term
	name string
	baud int
}

// OpenSerial opens the named port at baud in raw mode. Reads return after readTimeout
// without data, a zero timeout blocks.
func OpenSerial(name string, baud int, readTimeout time.Duration) (*Serial, error) {
	t, err := term.Open(name, term.Speed(baud), term.RawMode)
	if err != nil {
		return nil, errors.WrapPrefix(err, "conn: open "+name, 0)
	}
	if readTimeout > 0 {
		if err = t.SetReadTimeout(readTimeout); err != nil {
			_ = t.Close()
			return nil, errors.WrapPrefix(err, "conn: set read timeout on "+name, 0)
		}
	}
	return &Serial{
		t:    t,
		name: name,
		baud: baud,
	}, nil
}

func (s *Serial) String() string {
	return fmt.Sprintf("serial port %s (%d baud)", s.name, s.baud)
}

// Name of the port.
func (s *Serial) Name() string { return s.name }

// Baud rate of the port.
func (s *Serial) Baud() int { return s.baud }

// Close restores the port settings and closes it.
func (s *Serial) Close() error {
	_ = s.t.Restore()
	return s.t.Close()
}

func (s *Serial) Read(p []byte) (int, error) {
	return s.t.Read(p)
}

func (s *Serial) Write(p []byte) (int, error) {
	return s.t.Write(p)
}

// Flush discards data received but not yet read.
func (s *Serial) Flush() error {
	return s.t.Flush()
}
