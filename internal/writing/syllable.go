package writing

import (
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
	"github.com/f3rmion/gallifreyan/internal/geometry"
	"github.com/f3rmion/gallifreyan/internal/render"
)

// syllableSlot is what a word character belongs to: a syllable or a run
// of separators.
type syllableSlot interface {
	add(c Character) bool
	removeFrom(c Character)
	Text() string
}

// separatorSyllable holds consecutive syllable separators.
type separatorSyllable struct {
	separators []Character
}

func newSeparatorSyllable(c Character) *separatorSyllable {
	return &separatorSyllable{separators: []Character{c}}
}

func (s *separatorSyllable) add(c Character) bool {
	if c.Kind() != alphabet.KindSeparator {
		return false
	}
	s.separators = append(s.separators, c)
	return true
}

func (s *separatorSyllable) removeFrom(c Character) {
	if i := slices.Index(s.separators, c); i >= 0 {
		s.separators = s.separators[:i]
	}
}

func (s *separatorSyllable) Text() string {
	return characterText(s.separators)
}

// Syllable is a consonant/vowel cluster drawn as a circle. Coordinates
// passed to press and move are relative to the word centre.
type Syllable struct {
	first  *Consonant
	second *Consonant
	vowel  *Vowel
	aleph  *Consonant

	consonants []*Consonant
	outer      outerCircle
	inner      innerCircle

	following    *Syllable
	parentCircle *outerCircle

	scale         float64
	parentScale   float64
	personalScale float64
	innerScale    float64
	direction     float64
	center        geometry.Point

	pressed       pressedType
	pressedLetter letter
	positionBias  geometry.Point
	distanceBias  float64
}

func newSyllable(rng *rand.Rand, first *Consonant, vowel *Vowel) *Syllable {
	s := &Syllable{
		first:         first,
		vowel:         vowel,
		aleph:         newAleph(),
		parentScale:   1,
		personalScale: uniform(rng, SyllableInitialScaleMin, SyllableInitialScaleMax),
		innerScale:    uniform(rng, InnerCircleInitialScaleMin, InnerCircleInitialScaleMax),
	}
	s.direction = uniform(rng, -math.Pi, math.Pi)
	s.updateLetters()
	s.update()
	s.setDirection(s.direction)
	return s
}

// Text returns the letters of the syllable.
func (s *Syllable) Text() string {
	var b strings.Builder
	for _, l := range s.letters() {
		b.WriteRune(l.Symbol())
	}
	return b.String()
}

// Scale returns the absolute scale of the syllable.
func (s *Syllable) Scale() float64 { return s.scale }

// Direction returns the direction of the syllable around its parent.
func (s *Syllable) Direction() float64 { return s.direction }

// Radius returns the outer circle radius.
func (s *Syllable) Radius() float64 { return s.outer.radius }

// InnerRadius returns the inner circle radius.
func (s *Syllable) InnerRadius() float64 { return s.inner.radius }

// Center returns the syllable centre relative to the word centre.
func (s *Syllable) Center() geometry.Point { return s.center }

func (s *Syllable) letters() []letter {
	var ls []letter
	if s.first != nil {
		ls = append(ls, s.first)
	}
	if s.second != nil {
		ls = append(ls, s.second)
	}
	if s.vowel != nil {
		ls = append(ls, s.vowel)
	}
	return ls
}

// updateLetters recomputes the drawn consonants and the circle borders.
func (s *Syllable) updateLetters() {
	outer := s.first
	if outer == nil {
		outer = s.aleph
	}
	inner := s.second
	if inner == nil {
		inner = outer
	}
	s.consonants = []*Consonant{outer}
	if inner != outer {
		s.consonants = append(s.consonants, inner)
	}
	slices.SortStableFunc(s.consonants, func(a, b *Consonant) int {
		return a.Type.Group() - b.Type.Group()
	})
	s.outer = newOuterCircle(outer.borders)
	s.inner = newInnerCircle(inner.borders)
}

func (s *Syllable) add(c Character) bool {
	switch l := c.(type) {
	case *Vowel:
		if s.vowel != nil {
			return false
		}
		s.vowel = l
	case *Consonant:
		if s.second != nil || s.vowel != nil || !Compatible(s.first, l) {
			return false
		}
		s.second = l
	default:
		return false
	}
	s.updateLetters()
	s.update()
	s.setDirection(s.direction)
	return true
}

func (s *Syllable) removeFrom(c Character) {
	switch {
	case s.second != nil && c == Character(s.second):
		s.second, s.vowel = nil, nil
	case s.vowel != nil && c == Character(s.vowel):
		s.vowel = nil
	default:
		return
	}
	s.updateLetters()
	s.update()
	s.setDirection(s.direction)
}

// setFollowing links the next syllable of the word, which inherits this
// syllable's scale.
func (s *Syllable) setFollowing(next *Syllable) {
	s.following = next
}

func (s *Syllable) setParentCircle(c *outerCircle) {
	s.parentCircle = c
}

func (s *Syllable) setParentScale(scale float64) {
	s.parentScale = scale
	s.placeCenter()
	s.update()
}

func (s *Syllable) setPersonalScale(scale float64) {
	s.personalScale = scale
	s.update()
}

func (s *Syllable) setInnerScale(scale float64) {
	s.innerScale = scale
	s.inner.radius = s.scale * s.innerScale * DefaultWordRadius
	s.resizeLetters()
}

func (s *Syllable) update() {
	s.scale = s.parentScale * s.personalScale
	s.outer.scale(s.scale)
	s.outer.radius = s.scale * DefaultWordRadius
	s.inner.scale(s.scale)
	s.inner.radius = s.scale * s.innerScale * DefaultWordRadius
	s.resizeLetters()

	if s.following != nil {
		s.following.setParentScale(s.scale)
	}
}

func (s *Syllable) resizeLetters() {
	for _, c := range s.consonants {
		c.resize(s.scale, &s.outer, &s.inner)
	}
	if s.vowel != nil {
		s.vowel.resize(s.scale, &s.outer, &s.inner)
	}
}

func (s *Syllable) placeCenter() {
	if s.parentCircle == nil {
		s.center = origin
		return
	}
	s.center = geometry.Polar(s.direction, s.parentCircle.radius)
}

func (s *Syllable) setDirection(direction float64) {
	s.direction = direction
	s.placeCenter()
	for _, c := range s.consonants {
		c.setParentDirection(direction)
	}
	if s.vowel != nil {
		s.vowel.setParentDirection(direction)
	}
}

func (s *Syllable) press(p geometry.Point) pressedType {
	local := p.Sub(s.center)
	d := local.Distance()
	s.pressed = s.hit(local, d)
	return s.pressed
}

func (s *Syllable) hit(local geometry.Point, d float64) pressedType {
	if s.outer.outside(d) {
		return pressedNone
	}
	if s.outer.onBorder(d) {
		s.distanceBias = d - s.outer.radius
		return pressedOuter
	}
	if s.vowel != nil && !s.vowel.Hidden() && s.vowel.press(local) {
		s.pressedLetter = s.vowel
		return pressedChild
	}
	if s.inner.inside(d) {
		s.positionBias = local
		return pressedSelf
	}
	if s.inner.onBorder(d) {
		s.distanceBias = d - s.inner.radius
		return pressedInner
	}
	for _, c := range slices.Backward(s.consonants) {
		if c.Type != Aleph && c.press(local) {
			s.pressedLetter = c
			return pressedChild
		}
	}
	if s.vowel != nil && s.vowel.Hidden() && s.vowel.press(local) {
		s.pressedLetter = s.vowel
		return pressedChild
	}
	s.positionBias = local
	return pressedSelf
}

func (s *Syllable) move(p geometry.Point) {
	local := p.Sub(s.center)
	d := local.Distance()
	switch s.pressed {
	case pressedInner:
		s.setInnerScale(geometry.Clamp((d-s.distanceBias)/s.outer.radius, InnerCircleScaleMin, InnerCircleScaleMax))
	case pressedOuter:
		scale := (d - s.distanceBias) / DefaultWordRadius / s.parentScale
		s.setPersonalScale(geometry.Clamp(scale, SyllableScaleMin, SyllableScaleMax))
	case pressedSelf:
		s.setDirection(p.Sub(s.positionBias).Direction())
	case pressedChild:
		s.pressedLetter.move(local)
	}
}

func (s *Syllable) animate(angle float64) {
	for _, c := range s.consonants {
		c.animate(2 * angle)
	}
	if s.vowel != nil {
		s.vowel.animate(-2 * angle)
	}
	if s.parentCircle != nil {
		s.setDirection(s.direction + angle)
	}
}

func (s *Syllable) draw(surface render.Surface, scheme *render.Scheme) {
	ls := render.Offset(surface, s.center)
	fg, bg := scheme.Syllable, scheme.SyllableBackground

	ls.PushClip(origin, s.outer.extent())
	ls.Fill(bg)
	if s.vowel != nil && s.vowel.Hidden() {
		s.vowel.draw(ls, scheme)
	}
	for _, c := range s.consonants {
		c.draw(ls, scheme)
	}
	s.inner.draw(ls, origin, fg, bg)
	if s.vowel != nil && !s.vowel.Hidden() {
		s.vowel.draw(ls, scheme)
	}
	ls.PopClip()
	s.outer.draw(ls, origin, fg, bg)
}
