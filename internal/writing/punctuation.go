package writing

import (
	"slices"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
	"github.com/f3rmion/gallifreyan/internal/geometry"
	"github.com/f3rmion/gallifreyan/internal/render"
)

// markItem places a punctuation mark on the canvas.
type markItem struct {
	mark   *PunctuationMark
	center geometry.Point

	pressed pressedType
	bias    geometry.Point
}

func (it *markItem) press(p geometry.Point) bool {
	local := p.Sub(it.center)
	switch it.mark.press(local) {
	case pressedNone:
		it.pressed = pressedNone
		return false
	case pressedSelf:
		it.bias = local
		it.pressed = pressedSelf
	default:
		it.pressed = pressedChild
	}
	return true
}

func (it *markItem) move(p geometry.Point) {
	switch it.pressed {
	case pressedSelf:
		it.center = p.Sub(it.bias)
	case pressedChild:
		it.mark.move(p.Sub(it.center))
	}
}

// Punctuation is a run of punctuation marks, each placed on its own.
type Punctuation struct {
	tokenBase
	env *env

	items   []*markItem
	pressed *markItem
}

func newPunctuation(e *env, chars []Character) *Punctuation {
	t := &Punctuation{env: e}
	t.insert(0, chars)
	return t
}

func (t *Punctuation) group() alphabet.Group { return alphabet.GroupPunctuation }

// Centers returns the canvas positions of the marks.
func (t *Punctuation) Centers() []geometry.Point {
	centers := make([]geometry.Point, len(t.items))
	for i, it := range t.items {
		centers[i] = it.center
	}
	return centers
}

func (t *Punctuation) insert(index int, chars []Character) bool {
	if !allOfGroup(chars, alphabet.GroupPunctuation) {
		return false
	}
	items := make([]*markItem, len(chars))
	for i, c := range chars {
		items[i] = &markItem{mark: c.(*PunctuationMark), center: t.env.position()}
	}
	t.insertChars(index, chars)
	t.items = slices.Insert(t.items, index, items...)
	return true
}

func (t *Punctuation) remove(index, end int) {
	t.removeChars(index, end)
	t.items = slices.Delete(t.items, index, end)
	t.pressed = nil
}

func (t *Punctuation) removeFrom(index int) {
	t.truncate(index)
	t.items = t.items[:index]
	t.pressed = nil
}

func (t *Punctuation) press(p geometry.Point) bool {
	for _, it := range slices.Backward(t.items) {
		if it.press(p) {
			t.pressed = it
			return true
		}
	}
	return false
}

func (t *Punctuation) move(p geometry.Point) {
	if t.pressed != nil {
		t.pressed.move(p)
	}
}

func (t *Punctuation) draw(s render.Surface, scheme *render.Scheme) {
	for _, it := range t.items {
		it.mark.drawAt(s, it.center, scheme)
	}
}

func (t *Punctuation) animate(sign, angle float64) {}
