// Package pixel implements monochrome colors and bitmaps suitable for flip-dot and LED signs.
//
// This module provides a 1-bit color model, compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces.
package pixel
