package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/golang/freetype/raster"
	"golang.org/x/image/math/fixed"

	"github.com/f3rmion/gallifreyan/internal/geometry"
)

// bezierCircle is the control point distance for a quarter circle cubic.
const bezierCircle = 0.5522847498

// Canvas is a Surface backed by an RGBA image and an anti-aliasing
// scan converter.
type Canvas struct {
	base   *image.RGBA
	layers []layer
	free   []*image.RGBA
	mask   *image.Alpha

	ras     *raster.Rasterizer
	painter *raster.RGBAPainter
	path    raster.Path
}

type layer struct {
	img    *image.RGBA
	center geometry.Point
	radius float64
}

// NewCanvas returns a transparent canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	base := image.NewRGBA(image.Rect(0, 0, width, height))
	return &Canvas{
		base:    base,
		ras:     raster.NewRasterizer(width, height),
		painter: raster.NewRGBAPainter(base),
	}
}

// Image returns the composed image. Open clip layers are not included.
func (c *Canvas) Image() *image.RGBA {
	return c.base
}

// Size implements Surface.
func (c *Canvas) Size() (int, int) {
	b := c.base.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) target() *image.RGBA {
	if n := len(c.layers); n > 0 {
		return c.layers[n-1].img
	}
	return c.base
}

// Fill implements Surface.
func (c *Canvas) Fill(col color.Color) {
	draw.Draw(c.target(), c.base.Bounds(), image.NewUniform(col), image.Point{}, draw.Over)
}

// Disc implements Surface.
func (c *Canvas) Disc(center geometry.Point, radius float64, col color.Color) {
	if radius <= 0 {
		return
	}
	c.ras.Clear()
	c.ras.UseNonZeroWinding = true
	addCircle(c.ras, center, radius)
	c.paint(col)
}

// Ring implements Surface.
func (c *Canvas) Ring(center geometry.Point, radius, width float64, col color.Color) {
	if width <= 0 {
		return
	}
	outer := radius + width/2
	inner := radius - width/2
	if outer <= 0 {
		return
	}
	c.ras.Clear()
	c.ras.UseNonZeroWinding = false
	addCircle(c.ras, center, outer)
	if inner > 0 {
		addCircle(c.ras, center, inner)
	}
	c.paint(col)
}

// Line implements Surface.
func (c *Canvas) Line(a, b geometry.Point, width float64, col color.Color) {
	if width <= 0 || a == b {
		return
	}
	c.path.Clear()
	c.path.Start(fx(a))
	c.path.Add1(fx(b))
	c.stroke(width, col)
}

// Arc implements Surface.
func (c *Canvas) Arc(center geometry.Point, radius, start, end, width float64, col color.Color) {
	if width <= 0 || radius <= 0 {
		return
	}
	for end < start {
		end += 2 * math.Pi
	}
	sweep := end - start
	n := max(int(math.Ceil(sweep*radius/4)), 8)

	c.path.Clear()
	c.path.Start(fx(center.Add(geometry.Polar(start, radius))))
	for i := 1; i <= n; i++ {
		angle := start + sweep*float64(i)/float64(n)
		c.path.Add1(fx(center.Add(geometry.Polar(angle, radius))))
	}
	c.stroke(width, col)
}

// Polygon implements Surface.
func (c *Canvas) Polygon(points []geometry.Point, col color.Color) {
	if len(points) < 3 {
		return
	}
	c.ras.Clear()
	c.ras.UseNonZeroWinding = true
	c.ras.Start(fx(points[0]))
	for _, p := range points[1:] {
		c.ras.Add1(fx(p))
	}
	c.ras.Add1(fx(points[0]))
	c.paint(col)
}

// PushClip implements Surface.
func (c *Canvas) PushClip(center geometry.Point, radius float64) {
	var img *image.RGBA
	if n := len(c.free); n > 0 {
		img = c.free[n-1]
		c.free = c.free[:n-1]
		clear(img.Pix)
	} else {
		img = image.NewRGBA(c.base.Bounds())
	}
	c.layers = append(c.layers, layer{img: img, center: center, radius: radius})
}

// PopClip implements Surface.
func (c *Canvas) PopClip() {
	n := len(c.layers)
	if n == 0 {
		return
	}
	top := c.layers[n-1]
	c.layers = c.layers[:n-1]

	bounds := c.base.Bounds()
	if c.mask == nil {
		c.mask = image.NewAlpha(bounds)
	} else {
		clear(c.mask.Pix)
	}
	if top.radius > 0 {
		c.ras.Clear()
		c.ras.UseNonZeroWinding = true
		addCircle(c.ras, top.center, top.radius)
		c.ras.Rasterize(raster.NewAlphaOverPainter(c.mask))
	}
	draw.DrawMask(c.target(), bounds, top.img, bounds.Min, c.mask, bounds.Min, draw.Over)
	c.free = append(c.free, top.img)
}

func (c *Canvas) stroke(width float64, col color.Color) {
	c.ras.Clear()
	c.ras.UseNonZeroWinding = true
	c.ras.AddStroke(c.path, fixed.Int26_6(math.Round(width*64)), raster.ButtCapper, raster.BevelJoiner)
	c.paint(col)
}

func (c *Canvas) paint(col color.Color) {
	c.painter.Image = c.target()
	c.painter.SetColor(col)
	c.ras.Rasterize(c.painter)
}

func addCircle(r *raster.Rasterizer, center geometry.Point, radius float64) {
	r.Start(fx(center.Add(geometry.Pt(radius, 0))))
	for i := range 4 {
		a0 := float64(i) * math.Pi / 2
		a1 := a0 + math.Pi/2
		p0 := geometry.Polar(a0, radius)
		p1 := geometry.Polar(a1, radius)
		c1 := p0.Add(geometry.Polar(a0+math.Pi/2, bezierCircle*radius))
		c2 := p1.Add(geometry.Polar(a1-math.Pi/2, bezierCircle*radius))
		r.Add3(fx(center.Add(c1)), fx(center.Add(c2)), fx(center.Add(p1)))
	}
}

func fx(p geometry.Point) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(p.X * 64)),
		Y: fixed.Int26_6(math.Round(p.Y * 64)),
	}
}
