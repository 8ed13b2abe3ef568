package flipdot_test

import (
	"errors"
	"image"
	"image/color"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeatGlow/flipdot"
	"github.com/BeatGlow/flipdot/draw"
	"github.com/BeatGlow/flipdot/pixel"
	"github.com/BeatGlow/flipdot/protocol"
	"github.com/BeatGlow/flipdot/sign"
	"github.com/BeatGlow/flipdot/virtual"
)

const testAddress = 3

// countingBus counts messages and requested operations, and fails the message numbered
// failAt (counting from zero) when failAt is not negative.
type countingBus struct {
	bus      sign.Bus
	messages int
	ops      map[protocol.Operation]int
	failAt   int
	failOp   protocol.Operation
	err      error
}

func newCountingBus(bus sign.Bus) *countingBus {
	return &countingBus{bus: bus, ops: make(map[protocol.Operation]int), failAt: -1}
}

func (b *countingBus) ProcessMessage(msg protocol.Message) (protocol.Message, error) {
	n := b.messages
	b.messages++
	if n == b.failAt {
		return nil, b.err
	}
	if req, ok := msg.(protocol.RequestOperation); ok {
		if b.failOp != 0 && req.Operation == b.failOp {
			return nil, b.err
		}
		b.ops[req.Operation]++
	}
	return b.bus.ProcessMessage(msg)
}

func newDisplay(t *testing.T, flip sign.PageFlipStyle) (*flipdot.Display, *virtual.Sign, *countingBus) {
	t.Helper()
	vs := virtual.NewSign(testAddress, flip)
	bus := newCountingBus(virtual.NewBus(vs))
	return flipdot.New(sign.Share(bus), testAddress, sign.Max3000Side90x7), vs, bus
}

func TestDisplayGeometry(t *testing.T) {
	d, _, _ := newDisplay(t, sign.Manual)
	assert.Equal(t, image.Rect(0, 0, 90, 7), d.Bounds())
	assert.Equal(t, pixel.MonoModel, d.ColorModel())
	assert.Equal(t, d.Sign().Width(), d.Page().Width())
	assert.Equal(t, d.Sign().Height(), d.Page().Height())
	assert.Contains(t, d.String(), "max3000-side-90x7")
}

func TestDisplaySetAt(t *testing.T) {
	d, _, _ := newDisplay(t, sign.Manual)

	d.Set(1, 2, color.White)
	assert.Equal(t, pixel.On, d.At(1, 2))
	assert.Equal(t, pixel.Off, d.At(2, 1))
	assert.True(t, d.Page().Pixel(1, 2))

	d.Set(1, 2, color.Black)
	assert.Equal(t, pixel.Off, d.At(1, 2))

	assert.Equal(t, color.Transparent, d.At(-1, 0))
	assert.Equal(t, color.Transparent, d.At(90, 0))
}

func TestDisplayOutOfBounds(t *testing.T) {
	d, vs, _ := newDisplay(t, sign.Manual)

	d.DrawPixels(
		flipdot.Pixel{Point: image.Pt(-1, 0), Color: pixel.On},
		flipdot.Pixel{Point: image.Pt(0, -1), Color: pixel.On},
		flipdot.Pixel{Point: image.Pt(90, 0), Color: pixel.On},
		flipdot.Pixel{Point: image.Pt(0, 7), Color: pixel.On},
	)
	blank := sign.NewPage(0, 90, 7)
	assert.True(t, blank.Equal(d.Page()))

	require.NoError(t, d.Flush())
	assert.True(t, blank.Equal(vs.ShownPage()))
}

func TestDisplayOutOfBoundsKeepsPixels(t *testing.T) {
	d, _, _ := newDisplay(t, sign.Manual)
	draw.Line(d, image.Pt(0, 0), image.Pt(89, 6), pixel.On)
	before := d.Page().Bytes()

	for _, pt := range []image.Point{
		image.Pt(-1, -1), image.Pt(-100, 3), image.Pt(3, -100),
		image.Pt(90, 6), image.Pt(89, 7), image.Pt(1<<20, 1<<20),
	} {
		d.Set(pt.X, pt.Y, pixel.On)
		d.Set(pt.X, pt.Y, pixel.Off)
	}
	assert.Equal(t, before, d.Page().Bytes())
}

func TestDisplayBatchContinuesAfterOutOfBounds(t *testing.T) {
	d, _, _ := newDisplay(t, sign.Manual)
	d.DrawSeq(slices.Values([]flipdot.Pixel{
		{Point: image.Pt(0, 0), Color: pixel.On},
		{Point: image.Pt(-5, 0), Color: pixel.On},
		{Point: image.Pt(89, 6), Color: pixel.On},
	}))
	assert.True(t, d.Page().Pixel(0, 0))
	assert.True(t, d.Page().Pixel(89, 6))
}

func TestDisplayNilColor(t *testing.T) {
	d, _, _ := newDisplay(t, sign.Manual)
	d.Fill(pixel.On)

	assert.NotPanics(t, func() {
		d.DrawPixels(
			flipdot.Pixel{Point: image.Pt(-1, -1)},
			flipdot.Pixel{Point: image.Pt(2, 3)},
			flipdot.Pixel{Point: image.Pt(90, 7)},
		)
	})
	assert.Equal(t, pixel.Off, d.At(2, 3), "no color turns the pixel off")
	assert.Equal(t, pixel.On, d.At(3, 3))
}

func TestDisplayClear(t *testing.T) {
	d, _, _ := newDisplay(t, sign.Manual)
	draw.FilledCircle(d, image.Pt(10, 3), 3, pixel.On)

	d.Clear()
	once := d.Page().Bytes()
	d.Clear()
	assert.Equal(t, once, d.Page().Bytes())
	assert.True(t, sign.NewPage(0, 90, 7).Equal(d.Page()))

	d.Fill(pixel.On)
	once = d.Page().Bytes()
	d.Fill(pixel.On)
	assert.Equal(t, once, d.Page().Bytes())
	assert.Equal(t, pixel.On, d.At(89, 6))
}

func TestFlushManual(t *testing.T) {
	d, vs, bus := newDisplay(t, sign.Manual)
	d.Set(0, 0, pixel.On)

	require.NoError(t, d.Flush())
	assert.Equal(t, 1, bus.ops[protocol.ShowLoadedPage])
	assert.True(t, d.Page().Equal(vs.ShownPage()))

	d.Set(1, 1, pixel.On)
	require.NoError(t, d.Flush())
	assert.Equal(t, 2, bus.ops[protocol.ShowLoadedPage])
	assert.Equal(t, 1, bus.ops[protocol.ReceiveConfig], "configured once")
	assert.True(t, d.Page().Equal(vs.ShownPage()))
	assert.True(t, d.Page().Pixel(0, 0), "flush keeps the page")
}

func TestFlushAutomatic(t *testing.T) {
	d, vs, bus := newDisplay(t, sign.Automatic)
	d.Fill(pixel.On)

	require.NoError(t, d.Flush())
	require.NoError(t, d.Flush())
	assert.Zero(t, bus.ops[protocol.ShowLoadedPage])
	assert.Equal(t, 1, bus.ops[protocol.ReceiveConfig])
	assert.True(t, d.Page().Equal(vs.ShownPage()))
}

func TestFlushFailureKeepsPage(t *testing.T) {
	// Count the messages of a complete first flush.
	d, _, bus := newDisplay(t, sign.Manual)
	require.NoError(t, d.Flush())
	total := bus.messages
	require.NotZero(t, total)

	boom := errors.New("boom")
	for failAt := 0; failAt < total; failAt++ {
		d, vs, bus := newDisplay(t, sign.Manual)
		bus.failAt, bus.err = failAt, boom
		draw.FilledTriangle(d, image.Pt(0, 0), image.Pt(45, 6), image.Pt(89, 0), pixel.On)
		before := d.Page().Bytes()

		err := d.Flush()
		assert.ErrorIsf(t, err, boom, "failing message %d", failAt)
		assert.Equalf(t, before, d.Page().Bytes(), "failing message %d", failAt)
		assert.Equalf(t, failAt+1, bus.messages, "flush stops at failing message %d", failAt)

		// Once the bus works again the same display flushes fine.
		bus.failAt = -1
		require.NoErrorf(t, d.Flush(), "flush after failing message %d", failAt)
		assert.Truef(t, d.Page().Equal(vs.ShownPage()), "page shown after failing message %d", failAt)
	}
}

func TestFlushManualShowFailure(t *testing.T) {
	d, vs, bus := newDisplay(t, sign.Manual)
	bus.failOp, bus.err = protocol.ShowLoadedPage, errors.New("show failed")
	d.Set(4, 4, pixel.On)

	assert.ErrorIs(t, d.Flush(), bus.err)
	assert.True(t, d.Page().Equal(vs.LoadedPage()), "sign holds the new page")
	assert.Nil(t, vs.ShownPage(), "but does not show it")

	bus.failOp = 0
	require.NoError(t, d.Flush())
	assert.True(t, d.Page().Equal(vs.ShownPage()))
}

func TestFlushTriangle(t *testing.T) {
	d, vs, _ := newDisplay(t, sign.Manual)
	draw.FilledTriangle(d, image.Pt(0, 0), image.Pt(45, 6), image.Pt(89, 0), pixel.On)
	require.NoError(t, d.Flush())

	shown := vs.ShownPage()
	require.NotNil(t, shown)
	assert.True(t, d.Page().Equal(shown))

	for x := 0; x < 90; x++ {
		assert.Truef(t, shown.Pixel(x, 0), "row 0 column %d", x)
	}
	for x := 0; x < 90; x++ {
		assert.Equalf(t, x >= 42 && x <= 48, shown.Pixel(x, 6), "row 6 column %d", x)
	}
	t.Log("\n" + shown.String())
}

func TestSharedBus(t *testing.T) {
	left, right := virtual.NewSign(1, sign.Manual), virtual.NewSign(2, sign.Automatic)
	bus := sign.Share(virtual.NewBus(left, right))

	a := flipdot.New(bus, 1, sign.Max3000Side90x7)
	b := flipdot.New(bus, 2, sign.HorizonDash40x12)
	assert.Equal(t, image.Rect(0, 0, 40, 12), b.Bounds())

	a.Set(0, 0, pixel.On)
	b.Set(39, 11, pixel.On)
	require.NoError(t, a.Flush())
	require.NoError(t, b.Flush())

	assert.True(t, a.Page().Equal(left.ShownPage()))
	assert.True(t, b.Page().Equal(right.ShownPage()))

	// Displays made with New leave the bus open.
	require.NoError(t, a.Close())
	require.NoError(t, b.Flush())
}

func TestFromSign(t *testing.T) {
	vs := virtual.NewSign(testAddress, sign.Manual)
	s := sign.New(sign.Share(virtual.NewBus(vs)), testAddress, sign.Max3000Rear30x10)
	d := flipdot.FromSign(s)
	assert.Same(t, s, d.Sign())
	assert.Equal(t, image.Rect(0, 0, 30, 10), d.Bounds())

	draw.Text(d, image.Pt(0, 0), "Hi", nil, pixel.On)
	require.NoError(t, d.Flush())
	assert.True(t, d.Page().Equal(vs.ShownPage()))
}
