package flipdot

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-errors/errors"
	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/flipdot/conn"
	"github.com/BeatGlow/flipdot/protocol"
	"github.com/BeatGlow/flipdot/sign"
)

// SerialConfig is the serial bus configuration.
type SerialConfig struct {
	// Baud rate.
	Baud int

	// ReadTimeout bounds the wait for a response.
	ReadTimeout time.Duration

	// RS485 switches the port to kernel RS-485 mode (Linux only).
	RS485 bool

	// DE is the optional RS-485 driver enable pin, raised while a frame is written.
	DE gpio.PinOut

	// Logger for bus traffic, defaults to slog.Default.
	Logger *slog.Logger
}

// DefaultSerialConfig are the default configuration values.
var DefaultSerialConfig = SerialConfig{
	Baud:        19200,
	ReadTimeout: time.Second,
}

// withDefaults returns a copy of config with unset values taken from DefaultSerialConfig.
func withDefaults(config *SerialConfig) *SerialConfig {
	c := DefaultSerialConfig
	if config != nil {
		c = *config
	}
	if c.Baud == 0 {
		c.Baud = DefaultSerialConfig.Baud
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultSerialConfig.ReadTimeout
	}
	return &c
}

// SerialBus is a serial bus endpoint.
type SerialBus struct {
	rw     io.ReadWriter
	r      *bufio.Reader
	de     gpio.PinOut
	baud   int
	logger *slog.Logger
}

// OpenSerial opens the serial bus on port; config may be nil to use [DefaultSerialConfig].
func OpenSerial(port string, config *SerialConfig) (*SerialBus, error) {
	config = withDefaults(config)

	if config.RS485 {
		if err := conn.EnableRS485(port); err != nil {
			return nil, err
		}
	}

	p, err := conn.OpenSerial(port, config.Baud, config.ReadTimeout)
	if err != nil {
		return nil, err
	}
	if err = p.Flush(); err != nil {
		_ = p.Close()
		return nil, errors.WrapPrefix(err, "flipdot: flush "+port, 0)
	}

	b, err := NewSerialBus(p, config)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	return b, nil
}

// NewSerialBus returns a serial bus talking over rw. The driver enable pin, if any, is
// driven low.
func NewSerialBus(rw io.ReadWriter, config *SerialConfig) (*SerialBus, error) {
	config = withDefaults(config)

	b := &SerialBus{
		rw:     rw,
		r:      bufio.NewReader(rw),
		baud:   config.Baud,
		logger: config.Logger,
	}
	if config.DE != nil && config.DE != gpio.INVALID {
		b.de = config.DE
		if err := b.de.Out(gpio.Low); err != nil {
			return nil, errors.WrapPrefix(err, "flipdot: driver enable pin "+b.de.Name(), 0)
		}
	}
	return b, nil
}

func (b *SerialBus) String() string {
	if s, ok := b.rw.(fmt.Stringer); ok {
		return "serial bus on " + s.String()
	}
	return "serial bus"
}

func (b *SerialBus) log() *slog.Logger {
	if b.logger == nil {
		return slog.Default()
	}
	return b.logger
}

// Close closes the underlying port if it can be closed.
func (b *SerialBus) Close() error {
	if c, ok := b.rw.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// ProcessMessage writes msg and reads the response if msg expects one.
func (b *SerialBus) ProcessMessage(msg protocol.Message) (protocol.Message, error) {
	b.log().Debug("serial bus: send", "message", msg)
	if protocol.ExpectsResponse(msg) {
		if err := b.discard(); err != nil {
			return nil, errors.WrapPrefix(err, "flipdot: discard input", 0)
		}
	}
	if err := b.write(msg.Frame()); err != nil {
		return nil, errors.WrapPrefix(err, "flipdot: send "+msg.String(), 0)
	}
	if !protocol.ExpectsResponse(msg) {
		return nil, nil
	}

	frame, err := protocol.ReadFrame(b.r)
	if err == io.EOF {
		// Read timed out before a frame started.
		return nil, nil
	} else if err != nil {
		return nil, errors.WrapPrefix(err, "flipdot: response to "+msg.String(), 0)
	}
	resp := protocol.Parse(frame)
	b.log().Debug("serial bus: receive", "message", resp)
	return resp, nil
}

// discard drops input left over from earlier requests, such as a response that arrived
// after its read timed out.
func (b *SerialBus) discard() error {
	if n := b.r.Buffered(); n > 0 {
		b.log().Debug("serial bus: discarding stale input", "bytes", n)
	}
	b.r.Reset(b.rw)
	if f, ok := b.rw.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func (b *SerialBus) write(frame protocol.Frame) (err error) {
	if b.de != nil {
		if err = b.de.Out(gpio.High); err != nil {
			return
		}
		defer func() {
			if lowErr := b.de.Out(gpio.Low); err == nil {
				err = lowErr
			}
		}()
	}

	var n int64
	if n, err = frame.WriteTo(b.rw); err != nil {
		return
	}
	if b.de != nil && b.baud > 0 {
		// Keep the driver enabled until the last byte left the UART, 10 bits per byte.
		time.Sleep(time.Duration(n*10) * time.Second / time.Duration(b.baud))
	}
	return
}

// Interface checks.
var (
	_ sign.Bus = (*SerialBus)(nil)
)
