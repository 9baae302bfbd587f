package writing

import (
	"math"
	"math/rand/v2"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
	"github.com/f3rmion/gallifreyan/internal/geometry"
	"github.com/f3rmion/gallifreyan/internal/render"
)

// markRing is the double circle shared by number and punctuation marks.
type markRing struct {
	symbol  rune
	kind    alphabet.Kind
	borders string

	outer      outerCircle
	inner      innerCircle
	scale      float64
	innerScale float64

	pressed      pressedType
	positionBias geometry.Point
	distanceBias float64
}

func newMarkRing(symbol rune, kind alphabet.Kind, borders string, rng *rand.Rand) markRing {
	return markRing{
		symbol:     symbol,
		kind:       kind,
		borders:    borders,
		outer:      newOuterCircle(borders),
		inner:      newInnerCircle(borders),
		innerScale: uniform(rng, InnerCircleInitialScaleMin, InnerCircleInitialScaleMax),
	}
}

func (m *markRing) Symbol() rune        { return m.symbol }
func (m *markRing) Kind() alphabet.Kind { return m.kind }

// Scale returns the absolute scale of the mark.
func (m *markRing) Scale() float64 { return m.scale }

func (m *markRing) resize(scale float64) {
	m.scale = scale
	m.outer.scale(scale)
	m.outer.radius = scale * DefaultWordRadius
	m.resizeInner()
}

func (m *markRing) resizeInner() {
	m.inner.scale(m.scale)
	m.inner.radius = m.scale * m.innerScale * DefaultWordRadius
}

func (m *markRing) hit(local geometry.Point) pressedType {
	d := local.Distance()
	switch {
	case m.outer.outside(d):
		m.pressed = pressedNone
	case m.outer.onBorder(d):
		m.distanceBias = d - m.outer.radius
		m.pressed = pressedOuter
	case m.inner.inside(d):
		m.positionBias = local
		m.pressed = pressedSelf
	case m.inner.onBorder(d):
		m.distanceBias = d - m.inner.radius
		m.pressed = pressedInner
	default:
		m.positionBias = local
		m.pressed = pressedSelf
	}
	return m.pressed
}

func (m *markRing) moveInner(d float64) {
	scale := (d - m.distanceBias) / m.outer.radius
	m.innerScale = geometry.Clamp(scale, InnerCircleScaleMin, InnerCircleScaleMax)
	m.resizeInner()
}

func (m *markRing) drawAt(s render.Surface, center geometry.Point, scheme *render.Scheme) {
	fg, bg := scheme.Syllable, scheme.SyllableBackground
	s.PushClip(center, m.outer.extent())
	s.Fill(bg)
	m.inner.draw(s, center, fg, bg)
	s.PopClip()
	m.outer.draw(s, center, fg, bg)
}

// NumberMark is a minus sign or a trailing number mark sitting on the
// circle of its number group.
type NumberMark struct {
	markRing
	minus bool

	personalScale float64
	parentScale   float64
	parentRadius  float64
	dependent     bool
	direction     float64
	center        geometry.Point
}

func newNumberMark(symbol rune, borders string, minus bool, rng *rand.Rand) *NumberMark {
	m := &NumberMark{
		markRing:      newMarkRing(symbol, alphabet.KindNumberMark, borders, rng),
		minus:         minus,
		personalScale: uniform(rng, MarkInitialScaleMin, MarkInitialScaleMax),
		parentScale:   1,
	}
	m.direction = uniform(rng, -math.Pi, math.Pi)
	m.update()
	return m
}

// Minus reports whether the mark is the minus sign.
func (m *NumberMark) Minus() bool { return m.minus }

// Center returns the mark centre relative to its group.
func (m *NumberMark) Center() geometry.Point { return m.center }

// setParent places the mark on a group circle. A mark of a group without
// digits sits in the group centre at its own scale.
func (m *NumberMark) setParent(scale, radius float64, dependent bool) {
	m.parentScale = scale
	m.parentRadius = radius
	m.dependent = dependent
	m.update()
}

func (m *NumberMark) update() {
	if m.dependent {
		m.resize(m.parentScale * m.personalScale)
	} else {
		m.resize(m.personalScale)
	}
	m.place()
}

func (m *NumberMark) place() {
	if m.dependent {
		m.center = geometry.Polar(m.direction, m.parentRadius)
	} else {
		m.center = origin
	}
}

func (m *NumberMark) setDirection(direction float64) {
	m.direction = direction
	m.place()
}

func (m *NumberMark) press(p geometry.Point) bool {
	return m.hit(p.Sub(m.center)) != pressedNone
}

func (m *NumberMark) move(p geometry.Point) {
	d := p.Sub(m.center).Distance()
	switch m.pressed {
	case pressedInner:
		m.moveInner(d)
	case pressedOuter:
		scale := (d - m.distanceBias) / DefaultWordRadius
		if m.dependent {
			scale /= m.parentScale
		}
		m.personalScale = geometry.Clamp(scale, MarkScaleMin, MarkScaleMax)
		m.update()
	case pressedSelf:
		m.setDirection(p.Sub(m.positionBias).Direction())
	}
}

func (m *NumberMark) animate(angle float64) {
	m.setDirection(m.direction + angle)
}

func (m *NumberMark) draw(s render.Surface, scheme *render.Scheme) {
	m.drawAt(s, m.center, scheme)
}

// PunctuationMark is a free-standing mark ring.
type PunctuationMark struct {
	markRing
}

func newPunctuationMark(symbol rune, borders string, rng *rand.Rand) *PunctuationMark {
	m := &PunctuationMark{markRing: newMarkRing(symbol, alphabet.KindPunctuation, borders, rng)}
	m.resize(uniform(rng, MarkInitialScaleMin, MarkInitialScaleMax))
	return m
}

func (m *PunctuationMark) press(local geometry.Point) pressedType {
	return m.hit(local)
}

func (m *PunctuationMark) move(local geometry.Point) {
	d := local.Distance()
	switch m.pressed {
	case pressedInner:
		m.moveInner(d)
	case pressedOuter:
		m.resize(geometry.Clamp((d-m.distanceBias)/DefaultWordRadius, MarkScaleMin, MarkScaleMax))
	}
}
