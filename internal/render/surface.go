// Package render draws glyph trees onto raster images.
//
// Glyph elements never touch pixels directly. They issue commands to a
// Surface, which keeps the layout engine independent of the rasterizer and
// lets tests record what was drawn.
package render

import (
	"image/color"

	"github.com/f3rmion/gallifreyan/internal/geometry"
)

// Surface accepts draw commands in canvas coordinates.
type Surface interface {
	// Size reports the drawable area in pixels.
	Size() (width, height int)

	// Fill paints the whole clip area.
	Fill(c color.Color)
	// Disc paints a filled circle.
	Disc(center geometry.Point, radius float64, c color.Color)
	// Ring strokes a circle. The stroke is centred on radius.
	Ring(center geometry.Point, radius, width float64, c color.Color)
	// Line strokes a segment with butt caps.
	Line(a, b geometry.Point, width float64, c color.Color)
	// Arc strokes the part of a circle from start to end, angles increasing.
	Arc(center geometry.Point, radius, start, end, width float64, c color.Color)
	// Polygon fills a closed polygon.
	Polygon(points []geometry.Point, c color.Color)

	// PushClip starts a layer that is only visible inside the circle.
	PushClip(center geometry.Point, radius float64)
	// PopClip composes the most recent layer onto the one below.
	PopClip()
}

// Offset returns a surface that shifts every command by d.
func Offset(s Surface, d geometry.Point) Surface {
	if d == (geometry.Point{}) {
		return s
	}
	if o, ok := s.(offset); ok {
		return offset{s: o.s, d: o.d.Add(d)}
	}
	return offset{s: s, d: d}
}

type offset struct {
	s Surface
	d geometry.Point
}

func (o offset) Size() (int, int)   { return o.s.Size() }
func (o offset) Fill(c color.Color) { o.s.Fill(c) }
func (o offset) PopClip()           { o.s.PopClip() }

func (o offset) at(p geometry.Point) geometry.Point { return p.Add(o.d) }

func (o offset) Disc(center geometry.Point, radius float64, c color.Color) {
	o.s.Disc(o.at(center), radius, c)
}

func (o offset) Ring(center geometry.Point, radius, width float64, c color.Color) {
	o.s.Ring(o.at(center), radius, width, c)
}

func (o offset) Line(a, b geometry.Point, width float64, c color.Color) {
	o.s.Line(o.at(a), o.at(b), width, c)
}

func (o offset) Arc(center geometry.Point, radius, start, end, width float64, c color.Color) {
	o.s.Arc(o.at(center), radius, start, end, width, c)
}

func (o offset) Polygon(points []geometry.Point, c color.Color) {
	shifted := make([]geometry.Point, len(points))
	for i, p := range points {
		shifted[i] = o.at(p)
	}
	o.s.Polygon(shifted, c)
}

func (o offset) PushClip(center geometry.Point, radius float64) {
	o.s.PushClip(o.at(center), radius)
}

// Scaled returns a surface that multiplies every coordinate, radius and
// stroke width by f. Size reports the underlying surface unchanged.
func Scaled(s Surface, f float64) Surface {
	if f == 1 {
		return s
	}
	return scaled{s: s, f: f}
}

type scaled struct {
	s Surface
	f float64
}

func (z scaled) Size() (int, int)   { return z.s.Size() }
func (z scaled) Fill(c color.Color) { z.s.Fill(c) }
func (z scaled) PopClip()           { z.s.PopClip() }

func (z scaled) at(p geometry.Point) geometry.Point { return p.Mul(z.f) }

func (z scaled) Disc(center geometry.Point, radius float64, c color.Color) {
	z.s.Disc(z.at(center), radius*z.f, c)
}

func (z scaled) Ring(center geometry.Point, radius, width float64, c color.Color) {
	z.s.Ring(z.at(center), radius*z.f, width*z.f, c)
}

func (z scaled) Line(a, b geometry.Point, width float64, c color.Color) {
	z.s.Line(z.at(a), z.at(b), width*z.f, c)
}

func (z scaled) Arc(center geometry.Point, radius, start, end, width float64, c color.Color) {
	z.s.Arc(z.at(center), radius*z.f, start, end, width*z.f, c)
}

func (z scaled) Polygon(points []geometry.Point, c color.Color) {
	out := make([]geometry.Point, len(points))
	for i, p := range points {
		out[i] = z.at(p)
	}
	z.s.Polygon(out, c)
}

func (z scaled) PushClip(center geometry.Point, radius float64) {
	z.s.PushClip(z.at(center), radius*z.f)
}
