package writing

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
	"github.com/f3rmion/gallifreyan/internal/geometry"
	"github.com/f3rmion/gallifreyan/internal/render"
)

// ConsonantType is the shape code of a consonant.
type ConsonantType string

const (
	StraightAngle   ConsonantType = "sa"
	ObtuseAngle     ConsonantType = "oa"
	ReflexAngle     ConsonantType = "ra"
	BentLine        ConsonantType = "bl"
	RadialLine      ConsonantType = "rl"
	DiametricalLine ConsonantType = "dl"
	Circular        ConsonantType = "cr"
	MatchingDots    ConsonantType = "md"
	DifferentDots   ConsonantType = "dd"
	HollowDot       ConsonantType = "hd"
	SolidDot        ConsonantType = "sd"
	Aleph           ConsonantType = ""
)

type shape int

const (
	shapeNone shape = iota
	shapeAngle
	shapeBentLine
	shapeRadialLine
	shapeDiametricalLine
	shapeCircle
	shapeDoubleDot
	shapeSingleDot
)

type consonantInfo struct {
	group int
	angle float64
	shape shape
}

var consonantTypes = map[ConsonantType]consonantInfo{
	StraightAngle:   {group: 2, angle: 0.5 * math.Pi, shape: shapeAngle},
	ObtuseAngle:     {group: 2, angle: 0.3 * math.Pi, shape: shapeAngle},
	ReflexAngle:     {group: 2, angle: 0.6 * math.Pi, shape: shapeAngle},
	BentLine:        {group: 1, angle: 0.3 * math.Pi, shape: shapeBentLine},
	RadialLine:      {group: 1, shape: shapeRadialLine},
	DiametricalLine: {group: 1, angle: 0.5 * math.Pi, shape: shapeDiametricalLine},
	Circular:        {group: 3, shape: shapeCircle},
	MatchingDots:    {group: 4, angle: 0.3 * math.Pi, shape: shapeDoubleDot},
	DifferentDots:   {group: 4, angle: 0.3 * math.Pi, shape: shapeDoubleDot},
	HollowDot:       {group: 4, shape: shapeSingleDot},
	SolidDot:        {group: 4, shape: shapeSingleDot},
	Aleph:           {group: 0, shape: shapeNone},
}

// Group is the drawing order of the type; lower groups are drawn first.
func (t ConsonantType) Group() int {
	return consonantTypes[t].group
}

// Consonant is a consonant glyph. Its geometry lives in the frame of the
// enclosing syllable, centred on the syllable centre.
type Consonant struct {
	letterBase
	Type ConsonantType

	info      consonantInfo
	distance  float64
	lineWidth float64
	radius    float64
	ends      [2]geometry.Point
	center    geometry.Point
	pressedID int
}

func newConsonant(symbol rune, borders string, typ ConsonantType, rng *rand.Rand) (*Consonant, error) {
	info, ok := consonantTypes[typ]
	if !ok {
		return nil, fmt.Errorf("unknown consonant type %q for %q", typ, symbol)
	}

	var personal float64
	switch typ {
	case StraightAngle, ReflexAngle, DiametricalLine, Aleph:
		personal = 0
	case RadialLine, Circular:
		personal = uniform(rng, 0.7*math.Pi, 1.3*math.Pi)
	default:
		personal = defaultDirection(rng)
	}

	return &Consonant{
		letterBase: newLetterBase(symbol, alphabet.KindConsonant, borders, personal),
		Type:       typ,
		info:       info,
	}, nil
}

func newAleph() *Consonant {
	return &Consonant{
		letterBase: newLetterBase(0, alphabet.KindConsonant, "1", 0),
		Type:       Aleph,
		info:       consonantTypes[Aleph],
	}
}

// Compatible reports whether b may follow a in one syllable.
func Compatible(a, b *Consonant) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Type == b.Type && (a.Type == ObtuseAngle || a.Type == Circular) {
		return true
	}

	large := []ConsonantType{StraightAngle, ReflexAngle, DiametricalLine}
	if slices.Contains(large, a.Type) && slices.Contains(large, b.Type) {
		return false
	}

	either := func(types ...ConsonantType) bool {
		return slices.Contains(types, a.Type) || slices.Contains(types, b.Type)
	}
	switch {
	case either(RadialLine):
		return a.borders != b.borders
	case either(DiametricalLine):
		return sortedBorders(a.borders) != sortedBorders(b.borders)
	case either(BentLine, StraightAngle, ObtuseAngle, ReflexAngle, Circular):
		return minBorder(a.borders) != minBorder(b.borders)
	}
	return false
}

func sortedBorders(borders string) string {
	b := []byte(borders)
	slices.Sort(b)
	return string(b)
}

func minBorder(borders string) byte {
	return slices.Min([]byte(borders))
}

func (c *Consonant) setParentDirection(direction float64) {
	c.applyParentDirection(direction)
	c.rotate()
}

func (c *Consonant) setDirection(direction float64) {
	c.applyDirection(direction)
	c.rotate()
}

func (c *Consonant) animate(angle float64) {
	c.setDirection(c.direction + angle)
}

func (c *Consonant) resize(scale float64, outer *outerCircle, inner *innerCircle) {
	c.scaleBorders(scale)
	R, r := outer.radius, inner.radius

	switch c.info.shape {
	case shapeAngle, shapeBentLine, shapeRadialLine, shapeDiametricalLine:
		c.lineWidth = c.minLineWidth()
		c.distance = R
		if c.info.shape == shapeAngle {
			c.radius = r + 2*c.halfDistance
		}
	case shapeDoubleDot, shapeSingleDot:
		c.lineWidth = LineWidth('1', scale)
		c.distance = minRadius((R + r) / 2)
		c.radius = minRadius(scale * DefaultDotRadius)
	case shapeCircle:
		c.lineWidth = c.minLineWidth()
		start := r + math.Abs(inner.halfWidth(0)-c.lineWidth/2)
		c.radius = minRadius((R - start) / 4)
		c.distance = start + c.radius
	}
	c.rotate()
}

func (c *Consonant) rotate() {
	a := c.info.angle
	c.ends = [2]geometry.Point{
		geometry.Polar(c.direction-a, c.distance),
		geometry.Polar(c.direction+a, c.distance),
	}
	c.center = geometry.Polar(c.direction, c.distance)
}

func (c *Consonant) onLine(p geometry.Point, base float64) bool {
	q := geometry.RotateInto(p, base)
	return q.X > 0 && q.X < c.distance && math.Abs(q.Y) < c.halfDistance
}

func (c *Consonant) press(p geometry.Point) bool {
	a := c.info.angle
	switch c.info.shape {
	case shapeAngle, shapeBentLine, shapeDiametricalLine:
		for i, base := range []float64{c.direction - a, c.direction + a} {
			if c.onLine(p, base) {
				c.pressedID = i
				c.positionBias = p.Sub(c.ends[i])
				return true
			}
		}
	case shapeRadialLine:
		if c.onLine(p, c.direction) {
			c.positionBias = p.Sub(c.center)
			return true
		}
	case shapeDoubleDot:
		for i, center := range c.ends {
			if delta := p.Sub(center); delta.Distance() < c.radius {
				c.pressedID = i
				c.positionBias = delta
				return true
			}
		}
	case shapeSingleDot, shapeCircle:
		if delta := p.Sub(c.center); delta.Distance() < c.radius {
			c.positionBias = delta
			return true
		}
	}
	return false
}

func (c *Consonant) move(p geometry.Point) {
	direction := p.Sub(c.positionBias).Direction()
	switch c.info.shape {
	case shapeAngle, shapeBentLine, shapeDiametricalLine, shapeDoubleDot:
		if c.pressedID == 1 {
			direction -= c.info.angle
		} else {
			direction += c.info.angle
		}
	case shapeNone:
		return
	}
	c.setDirection(direction)
}

func (c *Consonant) draw(s render.Surface, scheme *render.Scheme) {
	fg, bg := scheme.Syllable, scheme.SyllableBackground
	switch c.info.shape {
	case shapeAngle:
		s.Line(origin, c.ends[0], c.lineWidth, fg)
		s.Line(origin, c.ends[1], c.lineWidth, fg)
		s.Arc(origin, c.radius, c.direction-c.info.angle, c.direction+c.info.angle, c.lineWidth, fg)
	case shapeBentLine:
		s.Line(origin, c.ends[0], c.lineWidth, fg)
		s.Line(origin, c.ends[1], c.lineWidth, fg)
	case shapeRadialLine:
		if len(c.borders) == 1 {
			s.Line(origin, c.center, c.lineWidths[0], fg)
			return
		}
		d := geometry.Polar(c.direction, c.halfDistance).Perp()
		c.drawPair(s, origin, c.center, d, fg, bg)
	case shapeDiametricalLine:
		if len(c.borders) == 1 {
			s.Line(c.ends[0], c.ends[1], c.lineWidths[0], fg)
			return
		}
		d := geometry.Polar(c.direction, c.halfDistance)
		c.drawPair(s, c.ends[0], c.ends[1], d, fg, bg)
	case shapeDoubleDot:
		dot := scheme.Dot
		if c.Type == DifferentDots {
			s.Disc(c.ends[0], c.radius, dot)
		} else {
			hollow(s, c.ends[0], c.radius, c.lineWidth, dot, bg)
		}
		hollow(s, c.ends[1], c.radius, c.lineWidth, dot, bg)
	case shapeSingleDot:
		if c.Type == SolidDot {
			s.Disc(c.center, c.radius, scheme.Dot)
		} else {
			hollow(s, c.center, c.radius, c.lineWidth, scheme.Dot, bg)
		}
	case shapeCircle:
		hollow(s, c.center, c.radius, c.lineWidth, fg, bg)
	}
}

// drawPair draws two parallel lines from a to b offset by ±d with a
// background band between them.
func (c *Consonant) drawPair(s render.Surface, a, b, d geometry.Point, fg, bg render.Color) {
	a1, b1 := a.Sub(d), b.Sub(d)
	a2, b2 := a.Add(d), b.Add(d)
	s.Polygon([]geometry.Point{a1, b1, b2, a2}, bg)
	s.Line(a1, b1, c.lineWidths[0], fg)
	s.Line(a2, b2, c.lineWidths[1], fg)
}

func (c *Consonant) String() string {
	if c.Type == Aleph {
		return "aleph"
	}
	return fmt.Sprintf("%c(%s,%s)", c.symbol, c.Type, strings.TrimSpace(c.borders))
}
