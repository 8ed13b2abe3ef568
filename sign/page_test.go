package sign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageBytes(t *testing.T) {
	p := NewPage(3, 2, 9)
	p.SetPixel(0, 0, true)
	p.SetPixel(1, 8, true)

	assert.Equal(t, []byte{0x10, 0x03, 0x00, 0x00, 0x01, 0x00, 0x00, 0x01}, p.Bytes())

	parsed, err := ParsePage(p.Bytes(), 2, 9)
	require.NoError(t, err)
	assert.True(t, p.Equal(parsed))
	assert.Equal(t, PageID(3), parsed.ID())
}

func TestParsePageErrors(t *testing.T) {
	_, err := ParsePage([]byte{0x10, 0, 0, 0}, 2, 9)
	assert.Error(t, err, "short page")

	_, err = ParsePage([]byte{0x11, 0, 0, 0, 0, 0, 0, 0}, 2, 9)
	assert.Error(t, err, "bad header")
}

func TestPagePixels(t *testing.T) {
	p := NewPage(0, 90, 7)
	assert.Equal(t, 90, p.Width())
	assert.Equal(t, 7, p.Height())

	p.SetPixel(-1, 0, true)
	p.SetPixel(90, 0, true)
	p.SetPixel(0, 7, true)
	assert.True(t, p.Equal(NewPage(0, 90, 7)), "out of range pixels are ignored")

	p.SetAllPixels(true)
	for y := 0; y < 7; y++ {
		for x := 0; x < 90; x++ {
			require.Truef(t, p.Pixel(x, y), "pixel (%d,%d)", x, y)
		}
	}
	assert.False(t, p.Pixel(90, 0))

	p.SetPixel(5, 5, false)
	assert.False(t, p.Pixel(5, 5))

	p.SetAllPixels(false)
	assert.True(t, p.Equal(NewPage(0, 90, 7)))
}

func TestPageString(t *testing.T) {
	p := NewPage(0, 3, 2)
	p.SetPixel(0, 0, true)
	p.SetPixel(2, 1, true)
	assert.Equal(t, "+---+\n|@  |\n|  @|\n+---+\n", p.String())
}

func TestPageEqual(t *testing.T) {
	var nilPage *Page
	assert.True(t, nilPage.Equal(nil))
	assert.False(t, NewPage(0, 1, 1).Equal(nil))
	assert.False(t, NewPage(0, 1, 1).Equal(NewPage(1, 1, 1)))
	assert.False(t, NewPage(0, 1, 1).Equal(NewPage(0, 2, 1)))
}
