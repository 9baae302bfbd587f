package writing

import (
	"image/color"

	"github.com/f3rmion/gallifreyan/internal/geometry"
	"github.com/f3rmion/gallifreyan/internal/render"
)

var origin geometry.Point

// borderInfo tracks the stroke widths of concentric border lines.
type borderInfo struct {
	borders string
	widths  []float64
}

func newBorderInfo(borders string) borderInfo {
	return borderInfo{borders: borders, widths: make([]float64, len(borders))}
}

func (b *borderInfo) scaleWidths(scale float64) {
	for i := range len(b.borders) {
		b.widths[i] = LineWidth(b.borders[i], scale)
	}
}

func (b borderInfo) count() int { return len(b.borders) }

func (b borderInfo) halfWidth(i int) float64 { return b.widths[i] / 2 }

// outerCircle is a circle whose extra borders grow outward.
type outerCircle struct {
	borderInfo
	radius       float64
	halfDistance float64
}

func newOuterCircle(borders string) outerCircle {
	return outerCircle{borderInfo: newBorderInfo(borders)}
}

func (c *outerCircle) scale(scale float64) {
	c.scaleWidths(scale)
	c.halfDistance = HalfLineDistance(scale)
}

func (c outerCircle) span() float64 {
	return 2 * c.halfDistance * float64(c.count()-1)
}

func (c outerCircle) outside(d float64) bool {
	if c.count() > 1 {
		return d > c.radius+c.span()
	}
	return d > c.radius+c.halfDistance
}

func (c outerCircle) onBorder(d float64) bool {
	if c.count() > 1 {
		return d > c.radius
	}
	return d > c.radius-c.halfDistance
}

// extent is the radius of the outer edge of the outermost stroke.
func (c outerCircle) extent() float64 {
	return c.radius + c.span() + c.halfWidth(0)
}

func (c outerCircle) draw(s render.Surface, center geometry.Point, fg, bg color.Color) {
	n := c.count()
	if n > 1 {
		s.Ring(center, c.radius+c.span()/2, c.span(), bg)
	}
	for i := range n {
		r := c.radius + 2*c.halfDistance*float64(n-1-i)
		s.Ring(center, r, c.widths[i], fg)
	}
}

// innerCircle is a circle whose extra borders grow inward.
type innerCircle struct {
	borderInfo
	radius       float64
	halfDistance float64
}

func newInnerCircle(borders string) innerCircle {
	return innerCircle{borderInfo: newBorderInfo(borders)}
}

func (c *innerCircle) scale(scale float64) {
	c.scaleWidths(scale)
	c.halfDistance = HalfLineDistance(scale)
}

func (c innerCircle) span() float64 {
	return 2 * c.halfDistance * float64(c.count()-1)
}

func (c innerCircle) inside(d float64) bool {
	if c.count() > 1 {
		return d < c.radius-c.span()
	}
	return d < c.radius-c.halfDistance
}

func (c innerCircle) onBorder(d float64) bool {
	if c.count() > 1 {
		return d < c.radius
	}
	return d < c.radius+c.halfDistance
}

func (c innerCircle) ringRadius(i int) float64 {
	if i == 0 {
		return c.radius
	}
	return minRadius(c.radius - 2*c.halfDistance*float64(i))
}

// visibleRadius is the radius of the innermost border.
func (c innerCircle) visibleRadius() float64 {
	return c.ringRadius(c.count() - 1)
}

func (c innerCircle) draw(s render.Surface, center geometry.Point, fg, bg color.Color) {
	s.Disc(center, c.radius, bg)
	c.drawRings(s, center, fg, bg)
}

func (c innerCircle) drawRings(s render.Surface, center geometry.Point, fg, bg color.Color) {
	n := c.count()
	if n > 1 {
		inner := c.visibleRadius()
		s.Ring(center, (c.radius+inner)/2, c.radius-inner, bg)
	}
	for i := range n {
		s.Ring(center, c.ringRadius(i), c.widths[i], fg)
	}
}

// hollow draws a background disc outlined by a ring.
func hollow(s render.Surface, center geometry.Point, radius, width float64, fg, bg color.Color) {
	s.Disc(center, radius, bg)
	s.Ring(center, radius, width, fg)
}
