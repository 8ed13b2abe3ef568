package draw

import (
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Text draws s with the top left corner of the first glyph at pt, using face (or [Face5x7] if
// face is nil). It returns the x coordinate just past the last glyph.
func Text(dst Image, pt image.Point, s string, face font.Face, c color.Color) int {
	if face == nil {
		face = Face5x7
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(pt.X, pt.Y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
	return d.Dot.X.Ceil()
}

// MeasureText returns the width of s in pixels.
func MeasureText(s string, face font.Face) int {
	if face == nil {
		face = Face5x7
	}
	return font.MeasureString(face, s).Ceil()
}

// LoadTrueType parses a TrueType font and returns a face rendering at size pixels.
func LoadTrueType(data []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
