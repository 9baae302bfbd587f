package writing

import (
	"fmt"
	"math/rand/v2"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
	"github.com/f3rmion/gallifreyan/internal/geometry"
	"github.com/f3rmion/gallifreyan/internal/render"
)

// VowelType is the placement code of a vowel.
type VowelType string

const (
	LargeVowel     VowelType = "l"
	WanderingVowel VowelType = "w"
	OrbitingVowel  VowelType = "o"
	CenterVowel    VowelType = "c"
	HiddenVowel    VowelType = "h"
)

const (
	largeVowelRatio    = 0.75
	orbitingVowelRatio = 0.45
	centerVowelRatio   = 0.7
)

// Vowel is a vowel circle inside or on a syllable.
type Vowel struct {
	letterBase
	Type VowelType

	radius   float64
	distance float64
	center   geometry.Point
	radii    []float64
}

func newVowel(symbol rune, borders string, typ VowelType, rng *rand.Rand) (*Vowel, error) {
	var personal float64
	switch typ {
	case LargeVowel:
	case WanderingVowel, OrbitingVowel, CenterVowel, HiddenVowel:
		personal = defaultDirection(rng)
	default:
		return nil, fmt.Errorf("unknown vowel type %q for %q", typ, symbol)
	}
	return &Vowel{
		letterBase: newLetterBase(symbol, alphabet.KindVowel, borders, personal),
		Type:       typ,
		radii:      make([]float64, len(borders)),
	}, nil
}

// Hidden reports whether the vowel is drawn beneath the consonants.
func (v *Vowel) Hidden() bool { return v.Type == HiddenVowel }

func (v *Vowel) setParentDirection(direction float64) {
	v.applyParentDirection(direction)
	v.place()
}

func (v *Vowel) setDirection(direction float64) {
	v.applyDirection(direction)
	v.place()
}

func (v *Vowel) animate(angle float64) {
	v.setDirection(v.direction + angle)
}

func (v *Vowel) resize(scale float64, outer *outerCircle, inner *innerCircle) {
	R, r := outer.radius, inner.radius
	switch v.Type {
	case LargeVowel:
		v.scaleBorders(scale * largeVowelRatio)
		v.radius = R * largeVowelRatio
		v.distance = v.radius
	case WanderingVowel:
		v.scaleBorders(scale)
		v.distance = minRadius((R + r) / 2)
		v.radius = minRadius((R-r)/2 - 3*outer.halfDistance)
	case OrbitingVowel, HiddenVowel:
		v.scaleBorders(scale)
		v.radius = r * orbitingVowelRatio
		v.distance = r
	case CenterVowel:
		v.scaleBorders(scale)
		lineDistance := 2 * inner.halfDistance
		maxRadius := r - lineDistance - float64(inner.count()-1)*lineDistance
		v.radius = minRadius(maxRadius * centerVowelRatio)
		v.distance = maxRadius - v.radius
	}
	v.place()
}

func (v *Vowel) place() {
	v.center = geometry.Polar(v.direction, v.distance)
	for i := range v.radii {
		v.radii[i] = minRadius(v.radius - 2*v.halfDistance*float64(i))
	}
}

func (v *Vowel) press(p geometry.Point) bool {
	delta := p.Sub(v.center)
	if delta.Distance() < v.radius {
		v.positionBias = delta
		return true
	}
	return false
}

func (v *Vowel) move(p geometry.Point) {
	v.setDirection(p.Sub(v.positionBias).Direction())
}

func (v *Vowel) draw(s render.Surface, scheme *render.Scheme) {
	for i, radius := range v.radii {
		hollow(s, v.center, radius, v.lineWidths[i], scheme.Vowel, scheme.SyllableBackground)
	}
}
