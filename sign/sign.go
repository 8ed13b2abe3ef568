// Package sign drives flip-dot signs over a shared bus.
//
// A [Sign] binds an address on a [SharedBus] to a [SignType]. It implements the sign
// protocol: configuring the sign, transferring pages and showing them. Whether a sign is
// configured is tracked by the sign itself, so any number of Sign values may refer to the
// same device.
package sign

import (
	"fmt"
	"image"
	"slices"
	"time"

	"github.com/BeatGlow/flipdot/protocol"
)

// Address of a sign on the bus.
type Address = protocol.Address

// DefaultMaxPolls is the number of state queries made while waiting for a sign to finish
// an operation.
const DefaultMaxPolls = 16

// Option configures a Sign.
type Option func(*Sign)

// PollInterval sets the delay between state queries while waiting for the sign.
func PollInterval(d time.Duration) Option {
	return func(s *Sign) { s.pollInterval = d }
}

// MaxPolls sets the number of state queries before giving up with [ErrTimeout].
func MaxPolls(n int) Option {
	return func(s *Sign) { s.maxPolls = max(n, 1) }
}

// Sign is a single addressable sign on a bus.
type Sign struct {
	bus          *SharedBus
	address      Address
	signType     SignType
	pollInterval time.Duration
	maxPolls     int
}

// New returns a sign bound to address on bus.
func New(bus *SharedBus, address Address, signType SignType, options ...Option) *Sign {
	s := &Sign{
		bus:      bus,
		address:  address,
		signType: signType,
		maxPolls: DefaultMaxPolls,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Sign) String() string {
	return fmt.Sprintf("%s sign at %s on %s", s.signType, s.address, s.bus)
}

// Address of the sign.
func (s *Sign) Address() Address { return s.address }

// Type of the sign.
func (s *Sign) Type() SignType { return s.signType }

// Bus the sign is attached to.
func (s *Sign) Bus() *SharedBus { return s.bus }

// Width in pixels.
func (s *Sign) Width() int { return s.signType.Width() }

// Height in pixels.
func (s *Sign) Height() int { return s.signType.Height() }

// Size in pixels.
func (s *Sign) Size() image.Point { return s.signType.Size() }

// CreatePage returns a blank page sized for this sign.
func (s *Sign) CreatePage(id PageID) *Page {
	return NewPage(id, s.Width(), s.Height())
}

// ConfigureIfNeeded configures the sign unless it reports it already is. A sign left in the
// middle of receiving a configuration is configured again.
func (s *Sign) ConfigureIfNeeded() error {
	return s.bus.Do(func(bus Bus) error {
		state, err := s.queryState(bus)
		if err != nil {
			return err
		}
		switch state {
		case protocol.Unconfigured, protocol.ConfigInProgress, protocol.ConfigFailed, protocol.ReadyToReset:
			return s.configure(bus)
		default:
			return nil
		}
	})
}

// Configure sends the configuration for this sign type, resetting the sign first if needed.
func (s *Sign) Configure() error {
	return s.bus.Do(s.configure)
}

func (s *Sign) configure(bus Bus) error {
	state, err := s.expectState(bus, protocol.Hello{Address: s.address})
	if err != nil {
		return err
	}
	if state != protocol.Unconfigured {
		if err = s.reset(bus, state); err != nil {
			return err
		}
	}

	if err = s.request(bus, protocol.ReceiveConfig); err != nil {
		return err
	}
	if err = s.transfer(bus, s.signType.ConfigData()); err != nil {
		return err
	}

	if state, err = s.poll(bus, protocol.ConfigInProgress); err != nil {
		return err
	}
	switch state {
	case protocol.ConfigReceived:
		return nil
	case protocol.ConfigFailed:
		return ErrConfigRejected
	default:
		return s.unexpected("state "+protocol.ConfigReceived.String(), protocol.ReportState{Address: s.address, State: state})
	}
}

func (s *Sign) reset(bus Bus, state protocol.State) (err error) {
	if state != protocol.ReadyToReset {
		if err = s.request(bus, protocol.StartReset); err != nil {
			return
		}
		if err = s.waitFor(bus, protocol.ReadyToReset); err != nil {
			return
		}
	}
	if err = s.request(bus, protocol.FinishReset); err != nil {
		return
	}
	return s.waitFor(bus, protocol.Unconfigured)
}

// SendPages transfers pages to the sign and reports how the sign flips to them. Manual signs
// need a call to [Sign.ShowLoadedPage] before the new page becomes visible.
func (s *Sign) SendPages(pages ...*Page) (PageFlipStyle, error) {
	if len(pages) == 0 {
		return Manual, ErrNoPages
	}

	var style PageFlipStyle
	err := s.bus.Do(func(bus Bus) error {
		if err := s.request(bus, protocol.ReceivePixels); err != nil {
			return err
		}

		var data []byte
		for _, page := range pages {
			data = append(data, page.Bytes()...)
		}
		if err := s.transfer(bus, data); err != nil {
			return err
		}

		state, err := s.poll(bus, protocol.PixelsInProgress)
		if err != nil {
			return err
		}
		switch state {
		case protocol.PixelsReceived:
		case protocol.PixelsFailed:
			return ErrPixelsRejected
		default:
			return s.unexpected("state "+protocol.PixelsReceived.String(), protocol.ReportState{Address: s.address, State: state})
		}

		if err = s.send(bus, protocol.PixelsComplete{Address: s.address}); err != nil {
			return err
		}
		if state, err = s.poll(bus, protocol.PageLoadInProgress); err != nil {
			return err
		}
		switch state {
		case protocol.PageLoaded:
			style = Manual
		case protocol.PageShown, protocol.ShowingPages:
			style = Automatic
		default:
			return s.unexpected("state "+protocol.PageLoaded.String(), protocol.ReportState{Address: s.address, State: state})
		}
		return nil
	})
	return style, err
}

// ShowLoadedPage makes the sign show the page it has loaded.
func (s *Sign) ShowLoadedPage() error {
	return s.bus.Do(func(bus Bus) error {
		if err := s.request(bus, protocol.ShowLoadedPage); err != nil {
			return err
		}
		return s.waitFor(bus, protocol.PageShown, protocol.PageShowInProgress)
	})
}

// LoadNextPage makes the sign load the next of the pages it received.
func (s *Sign) LoadNextPage() error {
	return s.bus.Do(func(bus Bus) error {
		if err := s.request(bus, protocol.LoadNextPage); err != nil {
			return err
		}
		return s.waitFor(bus, protocol.PageLoaded, protocol.PageLoadInProgress)
	})
}

// Shutdown ends the session with the sign.
func (s *Sign) Shutdown() error {
	return s.bus.Do(func(bus Bus) error {
		return s.send(bus, protocol.Goodbye{Address: s.address})
	})
}

// transfer sends data in chunks followed by the chunk count.
func (s *Sign) transfer(bus Bus, data []byte) error {
	chunks := protocol.Chunk(data)
	if len(chunks) > 0xff {
		return ErrTooMuchData
	}
	for _, chunk := range chunks {
		if err := s.send(bus, chunk); err != nil {
			return err
		}
	}
	return s.send(bus, protocol.DataChunksSent{Chunks: uint8(len(chunks))})
}

// send delivers a message that expects no response.
func (s *Sign) send(bus Bus, msg protocol.Message) error {
	resp, err := bus.ProcessMessage(msg)
	if err != nil {
		return err
	}
	if resp != nil {
		return s.unexpected("no response to "+msg.String(), resp)
	}
	return nil
}

func (s *Sign) request(bus Bus, op protocol.Operation) error {
	resp, err := bus.ProcessMessage(protocol.RequestOperation{Address: s.address, Operation: op})
	if err != nil {
		return err
	}
	if ack, ok := resp.(protocol.AckOperation); ok && ack.Address == s.address && ack.Operation == op {
		return nil
	}
	return s.unexpected("ack "+op.String(), resp)
}

func (s *Sign) queryState(bus Bus) (protocol.State, error) {
	return s.expectState(bus, protocol.QueryState{Address: s.address})
}

func (s *Sign) expectState(bus Bus, msg protocol.Message) (protocol.State, error) {
	resp, err := bus.ProcessMessage(msg)
	if err != nil {
		return 0, err
	}
	if report, ok := resp.(protocol.ReportState); ok && report.Address == s.address {
		return report.State, nil
	}
	return 0, s.unexpected("state report", resp)
}

// poll queries the state until it is no longer one of the transient states.
func (s *Sign) poll(bus Bus, transient ...protocol.State) (protocol.State, error) {
	for i := 0; i < s.maxPolls; i++ {
		if i > 0 && s.pollInterval > 0 {
			time.Sleep(s.pollInterval)
		}
		state, err := s.queryState(bus)
		if err != nil {
			return 0, err
		}
		if !slices.Contains(transient, state) {
			return state, nil
		}
	}
	return 0, ErrTimeout
}

// waitFor polls until the sign reports want.
func (s *Sign) waitFor(bus Bus, want protocol.State, transient ...protocol.State) error {
	state, err := s.poll(bus, transient...)
	if err != nil {
		return err
	}
	if state != want {
		return s.unexpected("state "+want.String(), protocol.ReportState{Address: s.address, State: state})
	}
	return nil
}

func (s *Sign) unexpected(expected string, got protocol.Message) error {
	return &UnexpectedResponseError{
		Address:  s.address,
		Expected: expected,
		Got:      got,
	}
}
