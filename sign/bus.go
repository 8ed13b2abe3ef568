package sign

import (
	"fmt"
	"io"
	"sync"

	"github.com/BeatGlow/flipdot/protocol"
)

// Bus delivers messages to the signs attached to it.
type Bus interface {
	// ProcessMessage sends msg and returns the response, or nil if msg expects no response.
	ProcessMessage(msg protocol.Message) (protocol.Message, error)
}

// BusFunc is an adapter to use an ordinary function as a Bus.
type BusFunc func(protocol.Message) (protocol.Message, error)

func (f BusFunc) ProcessMessage(msg protocol.Message) (protocol.Message, error) {
	return f(msg)
}

// SharedBus is a Bus handle shared by several signs. Access to the underlying bus is
// exclusive: only one operation is in flight at any time, as on a half-duplex line.
type SharedBus struct {
	mu  sync.Mutex
	bus Bus
}

// Share wraps bus so it can be used by multiple signs.
func Share(bus Bus) *SharedBus {
	return &SharedBus{bus: bus}
}

// Do runs fn with exclusive access to the bus.
func (b *SharedBus) Do(fn func(Bus) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return fn(b.bus)
}

// Close closes the underlying bus if it implements io.Closer.
func (b *SharedBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c, ok := b.bus.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (b *SharedBus) String() string {
	if s, ok := b.bus.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", b.bus)
}
