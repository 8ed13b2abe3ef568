package sign

import (
	"fmt"
	"strings"

	"github.com/BeatGlow/flipdot/pixel"
)

// PageID identifies a page stored in a sign.
type PageID uint8

const pageHeaderLen = 4

// Page is one full screen bitmap destined for a sign.
type Page struct {
	id  PageID
	img *pixel.MonoColumnImage
}

// NewPage returns a blank page.
func NewPage(id PageID, width, height int) *Page {
	return &Page{
		id:  id,
		img: pixel.NewMonoColumnImage(width, height),
	}
}

// ParsePage decodes a page as produced by [Page.Bytes].
func ParsePage(data []byte, width, height int) (*Page, error) {
	p := NewPage(0, width, height)
	if want := pageHeaderLen + len(p.img.Pix); len(data) != want {
		return nil, fmt.Errorf("sign: page is %d bytes, expected %d for %dx%d", len(data), want, width, height)
	}
	if data[0] != 0x10 || data[2] != 0 || data[3] != 0 {
		return nil, fmt.Errorf("sign: invalid page header % x", data[:pageHeaderLen])
	}
	p.id = PageID(data[1])
	copy(p.img.Pix, data[pageHeaderLen:])
	return p, nil
}

// ID of the page.
func (p *Page) ID() PageID { return p.id }

// Width in pixels.
func (p *Page) Width() int { return p.img.Rect.Dx() }

// Height in pixels.
func (p *Page) Height() int { return p.img.Rect.Dy() }

// Image returns the bitmap backing this page.
func (p *Page) Image() *pixel.MonoColumnImage { return p.img }

// Pixel reports whether the pixel at (x, y) is on.
func (p *Page) Pixel(x, y int) bool {
	return p.img.IsOn(x, y)
}

// SetPixel turns the pixel at (x, y) on or off; out of range pixels are ignored.
func (p *Page) SetPixel(x, y int, on bool) {
	p.img.SetBit(x, y, on)
}

// SetAllPixels turns all pixels on or off.
func (p *Page) SetAllPixels(on bool) {
	p.img.FillBit(on)
}

// Bytes returns the encoded page: a four byte header followed by the column data.
func (p *Page) Bytes() []byte {
	b := make([]byte, pageHeaderLen, pageHeaderLen+len(p.img.Pix))
	b[0] = 0x10
	b[1] = byte(p.id)
	return append(b, p.img.Pix...)
}

// Equal reports whether both pages have the same id, size and pixels.
func (p *Page) Equal(other *Page) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.id == other.id && p.img.Rect == other.img.Rect && string(p.img.Pix) == string(other.img.Pix)
}

// String renders the page as text, lit pixels are drawn as '@'.
func (p *Page) String() string {
	var (
		w, h   = p.Width(), p.Height()
		border = "+" + strings.Repeat("-", w) + "+\n"
		b      strings.Builder
	)
	b.WriteString(border)
	for y := 0; y < h; y++ {
		b.WriteByte('|')
		for x := 0; x < w; x++ {
			if p.Pixel(x, y) {
				b.WriteByte('@')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString("|\n")
	}
	b.WriteString(border)
	return b.String()
}
