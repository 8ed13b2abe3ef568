// Package flipdot renders drawings onto flip-dot signs.
//
// A [Display] is a draw.Image sized to one sign. Drawing only touches an in-memory page and
// never fails, pixels outside the sign are dropped. [Display.Flush] sends the page to the sign.
package flipdot

import (
	"fmt"
	"image"
	"image/color"
	"iter"

	"github.com/BeatGlow/flipdot/pixel"
	"github.com/BeatGlow/flipdot/sign"
)

// pageID is the page slot used by a Display, it keeps a single page per sign.
const pageID sign.PageID = 0

// Pixel is a single pixel write.
type Pixel struct {
	image.Point
	Color color.Color
}

// Display draws onto one sign on a bus.
type Display struct {
	sign *sign.Sign
	page *sign.Page

	// owned is set if the bus was opened by the Display.
	owned *sign.SharedBus
}

// New returns a Display for the sign at address on bus. The bus is not closed by
// [Display.Close], it may be shared with other displays.
func New(bus *sign.SharedBus, address sign.Address, signType sign.SignType) *Display {
	return FromSign(sign.New(bus, address, signType))
}

// FromSign returns a Display for s.
func FromSign(s *sign.Sign) *Display {
	return &Display{
		sign: s,
		page: s.CreatePage(pageID),
	}
}

func (d *Display) String() string {
	return fmt.Sprintf("display for %s", d.sign)
}

// Sign the display is bound to.
func (d *Display) Sign() *sign.Sign { return d.sign }

// Page returns the page buffer.
func (d *Display) Page() *sign.Page { return d.page }

// Bounds is the sign area, with the origin at the top left corner.
func (d *Display) Bounds() image.Rectangle {
	return image.Rectangle{Max: d.sign.Size()}
}

// ColorModel is [pixel.MonoModel].
func (d *Display) ColorModel() color.Model {
	return pixel.MonoModel
}

// At returns the pixel at (x, y), or transparent if it is outside the sign.
func (d *Display) At(x, y int) color.Color {
	if !d.contains(x, y) {
		return color.Transparent
	}
	if d.page.Pixel(x, y) {
		return pixel.On
	}
	return pixel.Off
}

// Set the pixel at (x, y); colors are converted with [pixel.MonoModel].
func (d *Display) Set(x, y int, c color.Color) {
	if d.contains(x, y) {
		d.page.SetPixel(x, y, pixel.IsOn(c))
	}
}

// DrawPixels sets all pixels in order.
func (d *Display) DrawPixels(pixels ...Pixel) {
	for _, p := range pixels {
		d.Set(p.X, p.Y, p.Color)
	}
}

// DrawSeq sets all pixels yielded by seq.
func (d *Display) DrawSeq(seq iter.Seq[Pixel]) {
	for p := range seq {
		d.Set(p.X, p.Y, p.Color)
	}
}

// Fill sets all pixels to c.
func (d *Display) Fill(c color.Color) {
	d.page.SetAllPixels(pixel.IsOn(c))
}

// Clear turns all pixels off.
func (d *Display) Clear() {
	d.page.SetAllPixels(false)
}

func (d *Display) contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < d.sign.Width() && y < d.sign.Height()
}

// Flush sends the page to the sign and makes it visible. The sign is configured first if
// it is not configured yet.
//
// The first error is returned and the page is left as it was, so Flush may be retried. Signs
// with a manual page flip need a second command to show the page. If that command fails the
// sign holds the new page without showing it, the next successful Flush shows it.
func (d *Display) Flush() error {
	if err := d.sign.ConfigureIfNeeded(); err != nil {
		return err
	}
	style, err := d.sign.SendPages(d.page)
	if err != nil {
		return err
	}
	if style == sign.Manual {
		return d.sign.ShowLoadedPage()
	}
	return nil
}

// Close releases the bus if it was opened by [Open].
func (d *Display) Close() error {
	if d.owned == nil {
		return nil
	}
	bus := d.owned
	d.owned = nil
	return bus.Close()
}

// Interface checks.
var (
	_ pixel.Image = (*Display)(nil)
)
