// Package virtual simulates flip-dot signs on an in-memory bus.
//
// A virtual [Bus] behaves like a serial bus: every message is encoded to a frame and decoded
// again before it reaches the signs, and the signs follow the same state machine as the
// hardware. Shown pages are logged, which makes the bus useful for demonstrations and tests.
package virtual

import (
	"log/slog"

	"github.com/BeatGlow/flipdot/protocol"
	"github.com/BeatGlow/flipdot/sign"
)

// Sign is a simulated sign.
type Sign struct {
	address   protocol.Address
	flipStyle sign.PageFlipStyle
	state     protocol.State
	signType  sign.SignType
	receiving bool
	data      []byte
	chunks    int
	received  []*sign.Page
	pages     []*sign.Page
	loaded    int
	shown     *sign.Page
	logger    *slog.Logger
}

// NewSign returns an unconfigured sign at address.
func NewSign(address protocol.Address, flipStyle sign.PageFlipStyle) *Sign {
	return &Sign{
		address:   address,
		flipStyle: flipStyle,
		state:     protocol.Unconfigured,
		loaded:    -1,
	}
}

// Address of the sign.
func (s *Sign) Address() protocol.Address { return s.address }

// FlipStyle of the sign.
func (s *Sign) FlipStyle() sign.PageFlipStyle { return s.flipStyle }

// State of the sign.
func (s *Sign) State() protocol.State { return s.state }

// SignType returns the configured sign type, ok is false if the sign is not configured.
func (s *Sign) SignType() (t sign.SignType, ok bool) {
	switch s.state {
	case protocol.Unconfigured, protocol.ConfigInProgress, protocol.ConfigFailed, protocol.ReadyToReset:
		return 0, false
	}
	return s.signType, true
}

// Pages returns the pages last received.
func (s *Sign) Pages() []*sign.Page { return s.pages }

// LoadedPage returns the page that would be shown next, if any.
func (s *Sign) LoadedPage() *sign.Page {
	if s.loaded < 0 || s.loaded >= len(s.pages) {
		return nil
	}
	return s.pages[s.loaded]
}

// ShownPage returns the page currently visible, if any.
func (s *Sign) ShownPage() *sign.Page { return s.shown }

func (s *Sign) log() *slog.Logger {
	if s.logger == nil {
		return slog.Default()
	}
	return s.logger
}

func (s *Sign) reportState() protocol.Message {
	report := protocol.ReportState{Address: s.address, State: s.state}
	switch s.state {
	case protocol.PageShowInProgress:
		s.state = protocol.PageShown
	case protocol.PageLoadInProgress:
		s.state = protocol.PageLoaded
	}
	return report
}

func (s *Sign) ack(op protocol.Operation) protocol.Message {
	return protocol.AckOperation{Address: s.address, Operation: op}
}

// process handles one message and returns the response, if any.
func (s *Sign) process(msg protocol.Message) protocol.Message {
	switch msg := msg.(type) {
	case protocol.Hello:
		if msg.Address == s.address {
			return s.reportState()
		}
	case protocol.QueryState:
		if msg.Address == s.address {
			return s.reportState()
		}
	case protocol.RequestOperation:
		if msg.Address == s.address && s.operate(msg.Operation) {
			return s.ack(msg.Operation)
		}
	case protocol.SendData:
		if s.receiving {
			s.store(msg)
		}
	case protocol.DataChunksSent:
		if s.receiving {
			s.finishTransfer(int(msg.Chunks))
		}
	case protocol.PixelsComplete:
		if msg.Address == s.address && s.state == protocol.PixelsReceived {
			s.loadPages()
		}
	case protocol.Goodbye:
		if msg.Address == s.address {
			s.log().Debug("virtual sign: goodbye", "address", s.address)
		}
	}
	return nil
}

// operate starts op and reports whether the sign accepts it in its current state.
func (s *Sign) operate(op protocol.Operation) bool {
	switch op {
	case protocol.ReceiveConfig:
		if s.state != protocol.Unconfigured && s.state != protocol.ConfigFailed {
			return false
		}
		s.startTransfer(protocol.ConfigInProgress)
	case protocol.ReceivePixels:
		if _, ok := s.SignType(); !ok {
			return false
		}
		s.startTransfer(protocol.PixelsInProgress)
	case protocol.ShowLoadedPage:
		if s.state != protocol.PageLoaded || s.LoadedPage() == nil {
			return false
		}
		s.show(s.LoadedPage())
		s.state = protocol.PageShowInProgress
	case protocol.LoadNextPage:
		if (s.state != protocol.PageLoaded && s.state != protocol.PageShown) || len(s.pages) == 0 {
			return false
		}
		s.loaded = (s.loaded + 1) % len(s.pages)
		s.state = protocol.PageLoadInProgress
	case protocol.StartReset:
		s.receiving = false
		s.state = protocol.ReadyToReset
	case protocol.FinishReset:
		if s.state != protocol.ReadyToReset {
			return false
		}
		*s = Sign{
			address:   s.address,
			flipStyle: s.flipStyle,
			state:     protocol.Unconfigured,
			loaded:    -1,
			logger:    s.logger,
		}
	default:
		return false
	}
	return true
}

func (s *Sign) startTransfer(state protocol.State) {
	s.state = state
	s.receiving = true
	s.data = s.data[:0]
	s.chunks = 0
}

func (s *Sign) store(msg protocol.SendData) {
	end := int(msg.Offset) + len(msg.Data)
	if end > len(s.data) {
		s.data = append(s.data, make([]byte, end-len(s.data))...)
	}
	copy(s.data[msg.Offset:], msg.Data)
	s.chunks++
}

func (s *Sign) finishTransfer(chunks int) {
	s.receiving = false
	switch s.state {
	case protocol.ConfigInProgress:
		t, err := sign.SignTypeFromConfig(s.data)
		if err != nil || chunks != s.chunks {
			s.log().Warn("virtual sign: config rejected", "address", s.address, "error", err)
			s.state = protocol.ConfigFailed
			return
		}
		s.signType = t
		s.state = protocol.ConfigReceived
		s.log().Debug("virtual sign: configured", "address", s.address, "type", t)
	case protocol.PixelsInProgress:
		pages, err := s.parsePages()
		if err != nil || chunks != s.chunks {
			s.log().Warn("virtual sign: pixels rejected", "address", s.address, "error", err)
			s.state = protocol.PixelsFailed
			return
		}
		s.received = pages
		s.state = protocol.PixelsReceived
	}
}

func (s *Sign) parsePages() ([]*sign.Page, error) {
	var (
		w, h  = s.signType.Width(), s.signType.Height()
		size  = len(sign.NewPage(0, w, h).Bytes())
		pages []*sign.Page
	)
	if len(s.data) == 0 || len(s.data)%size != 0 {
		return nil, sign.ErrPixelsRejected
	}
	for off := 0; off < len(s.data); off += size {
		page, err := sign.ParsePage(s.data[off:off+size], w, h)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func (s *Sign) loadPages() {
	s.pages, s.received = s.received, nil
	s.loaded = 0
	if s.flipStyle == sign.Automatic {
		s.show(s.pages[0])
		s.state = protocol.ShowingPages
		return
	}
	s.state = protocol.PageLoaded
}

func (s *Sign) show(page *sign.Page) {
	s.shown = page
	s.log().Info("virtual sign: showing page", "address", s.address, "page", page.ID())
	s.log().Info("\n" + page.String())
}
