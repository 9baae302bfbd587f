package writing

import (
	"slices"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
	"github.com/f3rmion/gallifreyan/internal/geometry"
	"github.com/f3rmion/gallifreyan/internal/render"
)

// Word is a run of consonants, vowels and separators laid out as a head
// syllable with the rest orbiting on its outer circle.
type Word struct {
	tokenBase
	env *env

	slots     []syllableSlot
	syllables []*Syllable
	head      *Syllable
	tail      []*Syllable

	outer      outerCircle
	outerScale float64
	center     geometry.Point

	pressed         pressedType
	pressedSyllable *Syllable
	pointBias       geometry.Point
	distanceBias    float64
}

func newWord(e *env, chars []Character) *Word {
	w := &Word{
		env:        e,
		outer:      newOuterCircle(WordBorders),
		outerScale: OuterCircleScaleMin,
		center:     e.position(),
	}
	w.insert(0, chars)
	return w
}

func (w *Word) group() alphabet.Group { return alphabet.GroupWord }

// Center returns the word centre on the canvas.
func (w *Word) Center() geometry.Point { return w.center }

// Radius returns the word circle radius.
func (w *Word) Radius() float64 { return w.outer.radius }

// Syllables returns the syllables of the word, head first.
func (w *Word) Syllables() []*Syllable { return slices.Clone(w.syllables) }

func (w *Word) insert(index int, chars []Character) bool {
	if !allOfGroup(chars, alphabet.GroupWord) {
		return false
	}
	w.split(index)
	w.insertChars(index, chars)
	w.slots = slices.Insert(w.slots, index, make([]syllableSlot, len(chars))...)

	w.redistribute(w.absorbFollowing(index))
	w.setSyllables()
	return true
}

func (w *Word) remove(index, end int) {
	w.split(index)
	w.split(end)
	w.removeChars(index, end)
	w.slots = slices.Delete(w.slots, index, end)

	w.redistribute(w.absorbFollowing(index))
	w.setSyllables()
}

func (w *Word) removeFrom(index int) {
	w.split(index)
	w.truncate(index)
	w.slots = w.slots[:index]
	w.setSyllables()
}

// split cuts the syllable straddling index so that the characters from
// index on lose their syllable.
func (w *Word) split(index int) {
	if index <= 0 || index >= len(w.chars) {
		return
	}
	slot := w.slots[index-1]
	if slot == nil || slot != w.slots[index] {
		return
	}
	slot.removeFrom(w.chars[index])
	for i := index; i < len(w.chars) && w.slots[i] == slot; i++ {
		w.slots[i] = nil
	}
}

// absorbFollowing adds characters from index on to the syllable before
// index and returns the first character it could not take.
func (w *Word) absorbFollowing(index int) int {
	if index == 0 || w.slots[index-1] == nil {
		return index
	}
	slot := w.slots[index-1]
	start := index
	for i := index; i < len(w.chars); i++ {
		if !slot.add(w.chars[i]) {
			break
		}
		w.slots[i] = slot
		start = i + 1
	}
	return start
}

// redistribute builds syllables from start until it reaches a character
// that already starts a syllable.
func (w *Word) redistribute(start int) {
	var current *Syllable
	for i := start; i < len(w.chars); i++ {
		switch c := w.chars[i].(type) {
		case *Consonant:
			if current != nil && current.add(c) {
				w.slots[i] = current
				continue
			}
			if s, ok := w.slots[i].(*Syllable); ok && s.first == c {
				return
			}
			current = newSyllable(w.env.rng, c, nil)
			w.slots[i] = current
		case *Vowel:
			if current != nil {
				current.add(c)
				w.slots[i] = current
				current = nil
				continue
			}
			if w.slots[i] != nil {
				return
			}
			w.slots[i] = newSyllable(w.env.rng, nil, c)
		default:
			current = nil
			if w.slots[i] != nil {
				return
			}
			w.slots[i] = newSeparatorSyllable(c)
		}
	}
}

func (w *Word) setSyllables() {
	w.syllables = nil
	for _, slot := range w.slots {
		if s, ok := slot.(*Syllable); ok && !slices.Contains(w.syllables, s) {
			w.syllables = append(w.syllables, s)
		}
	}
	if len(w.syllables) == 0 {
		w.head, w.tail = nil, nil
		return
	}

	w.head, w.tail = w.syllables[0], w.syllables[1:]
	w.head.setParentCircle(nil)
	w.head.setFollowing(nil)
	for i, s := range w.tail {
		s.setParentCircle(&w.head.outer)
		w.syllables[i].setFollowing(s)
		s.setFollowing(nil)
	}
	w.head.setParentScale(1)
	w.updateCircle()
}

// updateCircle sizes the word circle after the head syllable.
func (w *Word) updateCircle() {
	hs := w.head.scale
	w.outer.scale(hs)
	w.outer.radius = w.outerScale * hs * DefaultWordRadius
}

func (w *Word) press(p geometry.Point) bool {
	wp := p.Sub(w.center)
	if len(w.tail) == 0 {
		return w.head != nil && w.pressHead(wp)
	}

	d := wp.Distance()
	if w.outer.outside(d) {
		return false
	}
	if w.outer.onBorder(d) {
		w.distanceBias = d - w.outer.radius
		w.pressed = pressedOuter
		return true
	}
	for _, s := range slices.Backward(w.tail) {
		if s.press(wp) != pressedNone {
			w.pressedSyllable = s
			w.pressed = pressedChild
			return true
		}
	}
	if w.pressHead(wp) {
		return true
	}
	w.pointBias = wp
	w.pressed = pressedSelf
	return true
}

func (w *Word) pressHead(wp geometry.Point) bool {
	switch w.head.press(wp) {
	case pressedNone:
		return false
	case pressedSelf:
		w.pointBias = wp
		w.pressed = pressedSelf
	default:
		w.pressedSyllable = w.head
		w.pressed = pressedChild
	}
	return true
}

func (w *Word) move(p geometry.Point) {
	wp := p.Sub(w.center)
	switch w.pressed {
	case pressedChild:
		w.pressedSyllable.move(wp)
		if w.pressedSyllable == w.head {
			w.updateCircle()
		}
	case pressedOuter:
		hs := w.head.scale
		scale := (wp.Distance() - w.distanceBias) / DefaultWordRadius / hs
		w.outerScale = geometry.Clamp(scale, OuterCircleScaleMin, OuterCircleScaleMax)
		w.outer.radius = w.outerScale * hs * DefaultWordRadius
	case pressedSelf:
		w.center = p.Sub(w.pointBias)
	}
}

func (w *Word) draw(s render.Surface, scheme *render.Scheme) {
	if w.head == nil {
		return
	}
	ws := render.Offset(s, w.center)
	if len(w.tail) == 0 {
		w.head.draw(ws, scheme)
		return
	}

	ws.PushClip(origin, w.outer.extent())
	ws.Fill(scheme.WordBackground)
	w.head.draw(ws, scheme)
	for _, syl := range w.tail {
		syl.draw(ws, scheme)
	}
	ws.PopClip()
	w.outer.draw(ws, origin, scheme.Word, scheme.WordBackground)
}

func (w *Word) animate(sign, angle float64) {
	if w.head == nil {
		return
	}
	w.head.animate(sign * angle)
	for _, s := range w.tail {
		sign = -sign
		s.animate(sign * angle)
	}
}
