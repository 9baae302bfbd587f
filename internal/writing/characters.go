package writing

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
	"github.com/f3rmion/gallifreyan/internal/geometry"
	"github.com/f3rmion/gallifreyan/internal/render"
)

// Character is one typed rune of a sentence.
type Character interface {
	Symbol() rune
	Kind() alphabet.Kind
}

// plain is a character without a glyph: a space or a syllable separator.
type plain struct {
	symbol rune
	kind   alphabet.Kind
}

func (c *plain) Symbol() rune        { return c.symbol }
func (c *plain) Kind() alphabet.Kind { return c.kind }

func newCharacter(e alphabet.Entry, minus rune, rng *rand.Rand) (Character, error) {
	switch e.Kind {
	case alphabet.KindSpace, alphabet.KindSeparator:
		return &plain{symbol: e.Symbol, kind: e.Kind}, nil
	case alphabet.KindConsonant:
		c, err := newConsonant(e.Symbol, e.Borders, ConsonantType(e.Type), rng)
		if err != nil {
			return nil, err
		}
		return c, nil
	case alphabet.KindVowel:
		v, err := newVowel(e.Symbol, e.Borders, VowelType(e.Type), rng)
		if err != nil {
			return nil, err
		}
		return v, nil
	case alphabet.KindDigit:
		d, err := newDigit(e.Symbol, e.Borders, DigitType(e.Type), rng)
		if err != nil {
			return nil, err
		}
		return d, nil
	case alphabet.KindNumberMark:
		return newNumberMark(e.Symbol, e.Borders, e.Symbol == minus, rng), nil
	case alphabet.KindPunctuation:
		return newPunctuationMark(e.Symbol, e.Borders, rng), nil
	}
	return nil, fmt.Errorf("cannot create character %q of kind %s", e.Symbol, e.Kind)
}

func characterText(chars []Character) string {
	rs := make([]rune, len(chars))
	for i, c := range chars {
		rs[i] = c.Symbol()
	}
	return string(rs)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func defaultDirection(rng *rand.Rand) float64 {
	return uniform(rng, 0.9*math.Pi, 1.1*math.Pi)
}

// letter is a consonant or vowel placed inside a syllable.
type letter interface {
	Character
	setParentDirection(direction float64)
	resize(scale float64, outer *outerCircle, inner *innerCircle)
	press(p geometry.Point) bool
	move(p geometry.Point)
	draw(s render.Surface, scheme *render.Scheme)
	animate(angle float64)
}

// letterBase holds what every letter shares: direction split into the
// parent's part and the letter's own, and the border widths at the
// current scale.
type letterBase struct {
	symbol  rune
	kind    alphabet.Kind
	borders string

	direction         float64
	parentDirection   float64
	personalDirection float64

	lineWidths   []float64
	halfDistance float64
	positionBias geometry.Point
}

func newLetterBase(symbol rune, kind alphabet.Kind, borders string, personal float64) letterBase {
	return letterBase{
		symbol:            symbol,
		kind:              kind,
		borders:           borders,
		personalDirection: personal,
		direction:         personal,
		lineWidths:        make([]float64, len(borders)),
	}
}

func (l *letterBase) Symbol() rune        { return l.symbol }
func (l *letterBase) Kind() alphabet.Kind { return l.kind }

// Borders returns the border string of the letter.
func (l *letterBase) Borders() string { return l.borders }

// Direction returns the absolute direction of the letter.
func (l *letterBase) Direction() float64 { return l.direction }

func (l *letterBase) scaleBorders(scale float64) {
	for i := range len(l.borders) {
		l.lineWidths[i] = LineWidth(l.borders[i], scale)
	}
	l.halfDistance = HalfLineDistance(scale)
}

func (l *letterBase) applyParentDirection(parent float64) {
	l.parentDirection = parent
	l.direction = parent + l.personalDirection
}

func (l *letterBase) applyDirection(direction float64) {
	l.direction = direction
	l.personalDirection = direction - l.parentDirection
}

func (l *letterBase) minLineWidth() float64 {
	w := l.lineWidths[0]
	for _, x := range l.lineWidths[1:] {
		w = math.Min(w, x)
	}
	return w
}
