package virtual

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/BeatGlow/flipdot/protocol"
	"github.com/BeatGlow/flipdot/sign"
)

// ErrMultipleResponses is returned when more than one sign answers a message, which happens
// when several virtual signs share an address.
var ErrMultipleResponses = errors.New("virtual: multiple signs responded")

// Bus is a simulated sign bus.
type Bus struct {
	signs  []*Sign
	logger *slog.Logger
}

// NewBus returns a bus with the provided signs attached.
func NewBus(signs ...*Sign) *Bus {
	return &Bus{signs: signs}
}

// SetLogger sets the logger used by the bus and its signs.
func (b *Bus) SetLogger(logger *slog.Logger) {
	b.logger = logger
	for _, s := range b.signs {
		s.logger = logger
	}
}

// Signs attached to the bus.
func (b *Bus) Signs() []*Sign { return b.signs }

// Sign returns the sign at address, or nil.
func (b *Bus) Sign(address protocol.Address) *Sign {
	for _, s := range b.signs {
		if s.address == address {
			return s
		}
	}
	return nil
}

func (b *Bus) String() string {
	return fmt.Sprintf("virtual bus with %d sign(s)", len(b.signs))
}

func (b *Bus) log() *slog.Logger {
	if b.logger == nil {
		return slog.Default()
	}
	return b.logger
}

// ProcessMessage delivers msg to all signs and returns the response.
func (b *Bus) ProcessMessage(msg protocol.Message) (protocol.Message, error) {
	wire, err := msg.Frame().MarshalText()
	if err != nil {
		return nil, err
	}
	frame, err := protocol.ParseFrame(wire)
	if err != nil {
		return nil, err
	}
	msg = protocol.Parse(frame)
	b.log().Debug("virtual bus: message", "message", msg)

	var response protocol.Message
	for _, s := range b.signs {
		if r := s.process(msg); r != nil {
			if response != nil {
				return nil, ErrMultipleResponses
			}
			response = r
		}
	}
	if response != nil {
		b.log().Debug("virtual bus: response", "message", response)
	}
	return response, nil
}

// Interface checks.
var (
	_ sign.Bus = (*Bus)(nil)
)
