package writing

import (
	"math/rand/v2"
	"slices"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
	"github.com/f3rmion/gallifreyan/internal/geometry"
	"github.com/f3rmion/gallifreyan/internal/render"
)

// token is a run of characters of one group inside a sentence.
type token interface {
	group() alphabet.Group
	characters() []Character
	// insert reports false when the token cannot hold the characters.
	insert(index int, chars []Character) bool
	remove(index, end int)
	removeFrom(index int)
}

// visibleToken is a token with a glyph on the canvas.
type visibleToken interface {
	token
	press(p geometry.Point) bool
	move(p geometry.Point)
	draw(s render.Surface, scheme *render.Scheme)
	animate(sign, angle float64)
}

type tokenBase struct {
	chars []Character
}

func (t *tokenBase) characters() []Character { return t.chars }

func (t *tokenBase) insertChars(index int, chars []Character) {
	t.chars = slices.Insert(t.chars, index, chars...)
}

func (t *tokenBase) removeChars(index, end int) {
	t.chars = slices.Delete(t.chars, index, end)
}

func (t *tokenBase) truncate(index int) {
	t.chars = t.chars[:index]
}

func allOfGroup(chars []Character, g alphabet.Group) bool {
	for _, c := range chars {
		if c.Kind().Group() != g {
			return false
		}
	}
	return true
}

// spaceToken is a run of spaces between visible tokens.
type spaceToken struct {
	tokenBase
}

func newSpaceToken(chars []Character) *spaceToken {
	return &spaceToken{tokenBase{chars: slices.Clone(chars)}}
}

func (t *spaceToken) group() alphabet.Group { return alphabet.GroupSpace }

func (t *spaceToken) insert(index int, chars []Character) bool {
	if !allOfGroup(chars, alphabet.GroupSpace) {
		return false
	}
	t.insertChars(index, chars)
	return true
}

func (t *spaceToken) remove(index, end int) { t.removeChars(index, end) }

func (t *spaceToken) removeFrom(index int) { t.truncate(index) }

// env is what tokens need to create glyphs: the sentence's random source
// and the canvas they are placed on.
type env struct {
	rng           *rand.Rand
	width, height int
}

func (e *env) position() geometry.Point {
	return randomPosition(e.rng, e.width, e.height)
}

// randomPosition returns a point at least one word radius away from the
// canvas edges, or the middle of a canvas too small for that.
func randomPosition(rng *rand.Rand, width, height int) geometry.Point {
	coord := func(size int) float64 {
		span := size - 2*DefaultWordRadius
		if span < 0 {
			return float64(size) / 2
		}
		return float64(DefaultWordRadius + rng.IntN(span+1))
	}
	x := coord(width)
	y := coord(height)
	return geometry.Pt(x, y)
}
