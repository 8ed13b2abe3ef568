package pixel

import (
	"image"
	"image/color"

	"github.com/BeatGlow/flipdot/draw"
)

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values and is a container that is used by the image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between adjacent columns.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

func makeBuffer(w, h, stride, size int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, size),
		Stride: stride,
	}
}

// MonoColumnImage is a 1-bit per pixel monochrome image stored column by column.
//
// Each column occupies Stride bytes, the least significant bit of the first byte
// is the top row. This is the layout flip-dot sign controllers expect.
type MonoColumnImage struct {
	Buffer
}

func NewMonoColumnImage(w, h int) *MonoColumnImage {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	stride := ((h + 7) & ^7) / 8 // round up to whole bytes
	return &MonoColumnImage{
		Buffer: makeBuffer(w, h, stride, stride*w),
	}
}

func (p *MonoColumnImage) ColorModel() color.Model {
	return MonoModel
}

// PixOffset returns the index of the byte holding the pixel at (x, y).
func (p *MonoColumnImage) PixOffset(x, y int) int {
	return x*p.Stride + y/8
}

func (p *MonoColumnImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return Mono{On: p.IsOn(x, y)}
}

// IsOn reports whether the pixel at (x, y) is lit; out of bounds pixels are never lit.
func (p *MonoColumnImage) IsOn(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return false
	}
	return p.Pix[p.PixOffset(x, y)]&(1<<uint(y&7)) != 0
}

func (p *MonoColumnImage) Set(x, y int, c color.Color) {
	p.SetBit(x, y, monoModel(c).(Mono).On)
}

// SetBit changes a single pixel, out of bounds coordinates are ignored.
func (p *MonoColumnImage) SetBit(x, y int, on bool) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	var (
		pos = p.PixOffset(x, y)
		bit = byte(1) << uint(y&7)
	)
	if on {
		p.Pix[pos] |= bit
	} else {
		p.Pix[pos] &^= bit
	}
}

func (p *MonoColumnImage) Fill(c color.Color) {
	p.FillBit(monoModel(c).(Mono).On)
}

// FillBit sets all pixels to the same state.
//
// Padding bits beyond the last row are always left cleared, so two images
// with the same pixels always have the same Pix.
func (p *MonoColumnImage) FillBit(on bool) {
	if !on {
		p.Clear()
		return
	}
	h := p.Rect.Dy()
	for x := 0; x < p.Rect.Dx(); x++ {
		col := p.Pix[x*p.Stride : (x+1)*p.Stride]
		for i := range col {
			rows := h - i*8
			switch {
			case rows >= 8:
				col[i] = 0xff
			default:
				col[i] = byte(1)<<uint(rows) - 1
			}
		}
	}
}

// Interface checks.
var (
	_ Image = (*MonoColumnImage)(nil)
)
