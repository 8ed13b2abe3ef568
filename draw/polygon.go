package draw

import (
	"image"
	"image/color"
	"math"
)

// Triangle draws the outline of the triangle a, b, c.
func Triangle(dst Image, a, b, c image.Point, col color.Color) {
	Line(dst, a, b, col)
	Line(dst, b, c, col)
	Line(dst, c, a, col)
}

// FilledTriangle draws a filled triangle.
//
// Every row is filled between the leftmost and rightmost edge crossing, after which the
// outline is drawn on top so shallow edges have no gaps.
func FilledTriangle(dst Image, a, b, c image.Point, col color.Color) {
	var (
		minY  = min(a.Y, b.Y, c.Y)
		maxY  = max(a.Y, b.Y, c.Y)
		edges = [3][2]image.Point{{a, b}, {b, c}, {c, a}}
	)
	for y := minY; y <= maxY; y++ {
		x0, x1 := math.MaxInt, math.MinInt
		for _, e := range edges {
			p, q := e[0], e[1]
			if y < min(p.Y, q.Y) || y > max(p.Y, q.Y) {
				continue
			}
			if p.Y == q.Y {
				x0, x1 = min(x0, p.X, q.X), max(x1, p.X, q.X)
				continue
			}
			x := p.X + divRound((y-p.Y)*(q.X-p.X), q.Y-p.Y)
			x0, x1 = min(x0, x), max(x1, x)
		}
		if x0 <= x1 {
			HorizontalLine(dst, x0, y, x1-x0+1, col)
		}
	}
	Triangle(dst, a, b, c, col)
}

// Circle draws a circle outline around center.
func Circle(dst Image, center image.Point, radius int, c color.Color) {
	if radius < 0 {
		return
	}
	x0, y0 := center.X, center.Y
	dst.Set(x0, y0+radius, c)
	dst.Set(x0, y0-radius, c)
	dst.Set(x0+radius, y0, c)
	dst.Set(x0-radius, y0, c)
	roundedCorner(dst, x0, y0, radius, 1|2|4|8, c)
}

// FilledCircle draws a filled circle around center.
func FilledCircle(dst Image, center image.Point, radius int, c color.Color) {
	if radius < 0 {
		return
	}
	VerticalLine(dst, center.X, center.Y-radius, 2*radius+1, c)
	filledRoundedCorner(dst, center.X, center.Y, radius, 1|2, 0, c)
}

// divRound divides n by d, rounding halves away from zero.
func divRound(n, d int) int {
	if d < 0 {
		n, d = -n, -d
	}
	if n >= 0 {
		return (n + d/2) / d
	}
	return -((-n + d/2) / d)
}
