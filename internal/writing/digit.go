package writing

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
	"github.com/f3rmion/gallifreyan/internal/geometry"
	"github.com/f3rmion/gallifreyan/internal/render"
)

// DigitType is the decoration code of a digit.
type DigitType string

const (
	CircularDigit DigitType = "c"
	LineDigit     DigitType = "l"
)

type digitCircle struct {
	direction float64
	distance  float64
	center    geometry.Point
	radii     []float64
}

func (c *digitCircle) setDirection(direction float64) {
	c.direction = direction
	c.center = geometry.Polar(direction, c.distance)
}

// Digit is one ring of a number group. Digits share the group centre; the
// first digit of a group is the outermost ring.
type Digit struct {
	symbol  rune
	borders string
	Type    DigitType

	inner       innerCircle
	stripeScale float64
	outerRadius float64
	baseInner   float64
	baseStripe  float64

	circles   []digitCircle
	direction float64
	end       geometry.Point

	pressed       pressedType
	pressedCircle int
	bias          geometry.Point
	distanceBias  float64
}

func newDigit(symbol rune, borders string, typ DigitType, rng *rand.Rand) (*Digit, error) {
	d := &Digit{
		symbol:      symbol,
		borders:     borders,
		Type:        typ,
		inner:       newInnerCircle(borders),
		stripeScale: 1,
	}
	switch typ {
	case CircularDigit:
		seen := map[rune]bool{}
		for _, b := range borders {
			if seen[b] {
				continue
			}
			seen[b] = true
			d.circles = append(d.circles, digitCircle{direction: uniform(rng, 0, 2*math.Pi)})
		}
	case LineDigit:
		d.direction = uniform(rng, 0, 2*math.Pi)
	default:
		return nil, fmt.Errorf("unknown digit type %q for %q", typ, symbol)
	}
	return d, nil
}

func (d *Digit) Symbol() rune        { return d.symbol }
func (d *Digit) Kind() alphabet.Kind { return alphabet.KindDigit }

// InnerRadius returns the radius of the digit's inner circle.
func (d *Digit) InnerRadius() float64 { return d.inner.radius }

// StripeScale returns the relative width of the digit's stripe.
func (d *Digit) StripeScale() float64 { return d.stripeScale }

func (d *Digit) resize(groupScale float64) {
	d.inner.scale(groupScale)
}

func (d *Digit) updateInnerRadius(baseInner, baseStripe float64) {
	d.baseInner = baseInner
	d.baseStripe = baseStripe
	r := baseInner + baseStripe*d.stripeScale
	if d.inner.count() > 1 {
		r += 2 * d.inner.halfDistance
	}
	d.inner.radius = r
}

// updateOuterRadius lays out the decorations between the inner circle and
// outer, the innermost line of the enclosing ring with half width outerHalf.
func (d *Digit) updateOuterRadius(outer, outerHalf float64) {
	d.outerRadius = outer
	switch d.Type {
	case CircularDigit:
		innerHalf := d.inner.halfWidth(0)
		for i := range d.circles {
			c := &d.circles[i]
			half := d.inner.halfWidth(i)
			start := d.inner.radius + math.Abs(innerHalf-half)
			end := outer - math.Abs(outerHalf-half)
			radius := minRadius((end - start) / 2)
			c.distance = start + radius
			c.radii = []float64{radius}
			if d.borders == "11" {
				c.radii = append(c.radii, minRadius(radius-2*d.inner.halfDistance))
			}
			c.setDirection(c.direction)
		}
	case LineDigit:
		d.end = geometry.Polar(d.direction, outer)
	}
}

func (d *Digit) setDirection(direction float64) {
	d.direction = direction
	d.end = geometry.Polar(direction, d.outerRadius)
}

func (d *Digit) press(p geometry.Point) bool {
	dist := p.Distance()
	if !d.inner.inside(dist) && d.inner.onBorder(dist) {
		d.distanceBias = dist - d.inner.radius
		d.pressed = pressedInner
		return true
	}
	switch d.Type {
	case CircularDigit:
		for i := len(d.circles) - 1; i >= 0; i-- {
			delta := p.Sub(d.circles[i].center)
			if delta.Distance() < d.circles[i].radii[0] {
				d.bias = delta
				d.pressedCircle = i
				d.pressed = pressedChild
				return true
			}
		}
	case LineDigit:
		q := geometry.RotateInto(p, d.direction)
		if q.X > d.inner.radius && q.X < d.outerRadius && math.Abs(q.Y) < d.inner.halfDistance {
			d.bias = p.Sub(d.end)
			d.pressed = pressedSelf
			return true
		}
	}
	d.pressed = pressedNone
	return false
}

func (d *Digit) move(p geometry.Point) {
	switch d.pressed {
	case pressedInner:
		stripe := p.Distance() - d.distanceBias - d.baseInner
		if d.inner.count() > 1 {
			stripe -= 2 * d.inner.halfDistance
		}
		if d.baseStripe > 0 {
			d.stripeScale = geometry.Clamp(stripe/d.baseStripe, DigitScaleMin, DigitScaleMax)
		}
	case pressedChild:
		d.circles[d.pressedCircle].setDirection(p.Sub(d.bias).Direction())
	case pressedSelf:
		d.setDirection(p.Sub(d.bias).Direction())
	}
}

func (d *Digit) animate(angle float64) {
	switch d.Type {
	case CircularDigit:
		for i := range d.circles {
			d.circles[i].setDirection(d.circles[i].direction + angle)
			angle = -angle
		}
	case LineDigit:
		d.setDirection(d.direction + angle)
	}
}

func (d *Digit) drawDecorations(s render.Surface, scheme *render.Scheme) {
	fg, bg := scheme.Syllable, scheme.SyllableBackground
	switch d.Type {
	case CircularDigit:
		for i, c := range d.circles {
			for _, r := range c.radii {
				hollow(s, c.center, r, d.inner.widths[i], fg, bg)
			}
		}
	case LineDigit:
		if d.inner.count() == 1 {
			s.Line(origin, d.end, d.inner.widths[0], fg)
			return
		}
		off := geometry.Polar(d.direction, d.inner.halfDistance).Perp()
		a1, b1 := off, d.end.Add(off)
		a2, b2 := off.Mul(-1), d.end.Sub(off)
		s.Polygon([]geometry.Point{a1, b1, b2, a2}, bg)
		s.Line(a1, b1, d.inner.widths[0], fg)
		s.Line(a2, b2, d.inner.widths[1], fg)
	}
}
