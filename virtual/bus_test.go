package virtual

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeatGlow/flipdot/protocol"
	"github.com/BeatGlow/flipdot/sign"
)

func process(t *testing.T, bus *Bus, msg protocol.Message) protocol.Message {
	t.Helper()
	resp, err := bus.ProcessMessage(msg)
	require.NoError(t, err)
	return resp
}

func transfer(t *testing.T, bus *Bus, data []byte) {
	t.Helper()
	chunks := protocol.Chunk(data)
	for _, chunk := range chunks {
		assert.Nil(t, process(t, bus, chunk))
	}
	assert.Nil(t, process(t, bus, protocol.DataChunksSent{Chunks: uint8(len(chunks))}))
}

func TestSignConfigure(t *testing.T) {
	s := NewSign(3, sign.Manual)
	bus := NewBus(s)

	assert.Equal(t, protocol.ReportState{Address: 3, State: protocol.Unconfigured}, process(t, bus, protocol.Hello{Address: 3}))
	assert.Nil(t, process(t, bus, protocol.Hello{Address: 4}), "other address")

	assert.Equal(t, protocol.AckOperation{Address: 3, Operation: protocol.ReceiveConfig},
		process(t, bus, protocol.RequestOperation{Address: 3, Operation: protocol.ReceiveConfig}))
	assert.Equal(t, protocol.ConfigInProgress, s.State())

	transfer(t, bus, sign.HorizonDash40x12.ConfigData())
	assert.Equal(t, protocol.ConfigReceived, s.State())

	st, ok := s.SignType()
	require.True(t, ok)
	assert.Equal(t, sign.HorizonDash40x12, st)

	// Configured signs refuse a new config until reset.
	assert.Nil(t, process(t, bus, protocol.RequestOperation{Address: 3, Operation: protocol.ReceiveConfig}))
}

func TestSignConfigRejected(t *testing.T) {
	s := NewSign(3, sign.Manual)
	bus := NewBus(s)

	process(t, bus, protocol.RequestOperation{Address: 3, Operation: protocol.ReceiveConfig})
	transfer(t, bus, make([]byte, 16))
	assert.Equal(t, protocol.ConfigFailed, s.State())
	_, ok := s.SignType()
	assert.False(t, ok)

	// A failed config may be retried.
	assert.NotNil(t, process(t, bus, protocol.RequestOperation{Address: 3, Operation: protocol.ReceiveConfig}))
}

func configured(t *testing.T, flip sign.PageFlipStyle) (*Sign, *Bus) {
	t.Helper()
	s := NewSign(3, flip)
	bus := NewBus(s)
	process(t, bus, protocol.RequestOperation{Address: 3, Operation: protocol.ReceiveConfig})
	transfer(t, bus, sign.Max3000Rear30x10.ConfigData())
	require.Equal(t, protocol.ConfigReceived, s.State())
	return s, bus
}

func TestSignPixelsManual(t *testing.T) {
	s, bus := configured(t, sign.Manual)

	page := sign.NewPage(0, 30, 10)
	page.SetPixel(29, 9, true)

	process(t, bus, protocol.RequestOperation{Address: 3, Operation: protocol.ReceivePixels})
	assert.Equal(t, protocol.PixelsInProgress, s.State())
	transfer(t, bus, page.Bytes())
	assert.Equal(t, protocol.PixelsReceived, s.State())

	assert.Nil(t, process(t, bus, protocol.PixelsComplete{Address: 3}))
	assert.Equal(t, protocol.PageLoaded, s.State())
	assert.True(t, page.Equal(s.LoadedPage()))
	assert.Nil(t, s.ShownPage())

	process(t, bus, protocol.RequestOperation{Address: 3, Operation: protocol.ShowLoadedPage})
	assert.True(t, page.Equal(s.ShownPage()))

	// The show completes after it has been observed once.
	assert.Equal(t, protocol.ReportState{Address: 3, State: protocol.PageShowInProgress}, process(t, bus, protocol.QueryState{Address: 3}))
	assert.Equal(t, protocol.ReportState{Address: 3, State: protocol.PageShown}, process(t, bus, protocol.QueryState{Address: 3}))
}

func TestSignPixelsAutomatic(t *testing.T) {
	s, bus := configured(t, sign.Automatic)

	page := sign.NewPage(0, 30, 10)
	page.SetAllPixels(true)

	process(t, bus, protocol.RequestOperation{Address: 3, Operation: protocol.ReceivePixels})
	transfer(t, bus, page.Bytes())
	process(t, bus, protocol.PixelsComplete{Address: 3})

	assert.Equal(t, protocol.ShowingPages, s.State())
	assert.True(t, page.Equal(s.ShownPage()))
	assert.Nil(t, process(t, bus, protocol.RequestOperation{Address: 3, Operation: protocol.ShowLoadedPage}))
}

func TestSignPixelsRejected(t *testing.T) {
	s, bus := configured(t, sign.Manual)

	process(t, bus, protocol.RequestOperation{Address: 3, Operation: protocol.ReceivePixels})
	transfer(t, bus, []byte{1, 2, 3})
	assert.Equal(t, protocol.PixelsFailed, s.State())

	// Wrong chunk count.
	process(t, bus, protocol.RequestOperation{Address: 3, Operation: protocol.ReceivePixels})
	for _, chunk := range protocol.Chunk(sign.NewPage(0, 30, 10).Bytes()) {
		process(t, bus, chunk)
	}
	process(t, bus, protocol.DataChunksSent{Chunks: 1})
	assert.Equal(t, protocol.PixelsFailed, s.State())
}

func TestSignPixelsUnconfigured(t *testing.T) {
	s := NewSign(3, sign.Manual)
	bus := NewBus(s)
	assert.Nil(t, process(t, bus, protocol.RequestOperation{Address: 3, Operation: protocol.ReceivePixels}))
	assert.Equal(t, protocol.Unconfigured, s.State())
}

func TestSignReset(t *testing.T) {
	s, bus := configured(t, sign.Manual)

	assert.Nil(t, process(t, bus, protocol.RequestOperation{Address: 3, Operation: protocol.FinishReset}),
		"finish requires start")

	assert.NotNil(t, process(t, bus, protocol.RequestOperation{Address: 3, Operation: protocol.StartReset}))
	assert.Equal(t, protocol.ReadyToReset, s.State())
	assert.NotNil(t, process(t, bus, protocol.RequestOperation{Address: 3, Operation: protocol.FinishReset}))
	assert.Equal(t, protocol.Unconfigured, s.State())
	assert.Equal(t, protocol.Address(3), s.Address())
	assert.Equal(t, sign.Manual, s.FlipStyle())
	assert.Nil(t, s.LoadedPage())
}

func TestBusMultipleResponses(t *testing.T) {
	bus := NewBus(NewSign(3, sign.Manual), NewSign(3, sign.Automatic))
	_, err := bus.ProcessMessage(protocol.QueryState{Address: 3})
	assert.ErrorIs(t, err, ErrMultipleResponses)
}

func TestBusSigns(t *testing.T) {
	a, b := NewSign(1, sign.Manual), NewSign(2, sign.Manual)
	bus := NewBus(a, b)

	assert.Same(t, b, bus.Sign(2))
	assert.Nil(t, bus.Sign(3))
	assert.Len(t, bus.Signs(), 2)
	assert.Equal(t, "virtual bus with 2 sign(s)", bus.String())

	assert.Equal(t, protocol.ReportState{Address: 1, State: protocol.Unconfigured}, process(t, bus, protocol.QueryState{Address: 1}))
	assert.Nil(t, process(t, bus, protocol.Goodbye{Address: 2}))
}

func TestBusLogsShownPage(t *testing.T) {
	var out bytes.Buffer
	s, bus := configured(t, sign.Automatic)
	bus.SetLogger(slog.New(slog.NewTextHandler(&out, nil)))

	page := sign.NewPage(0, 30, 10)
	page.SetPixel(0, 0, true)
	process(t, bus, protocol.RequestOperation{Address: 3, Operation: protocol.ReceivePixels})
	transfer(t, bus, page.Bytes())
	process(t, bus, protocol.PixelsComplete{Address: 3})

	require.NotNil(t, s.ShownPage())
	assert.Contains(t, out.String(), "virtual sign: showing page")
	assert.Contains(t, out.String(), "@")
}
