// Package writing lays out sentences of Doctor's Cot Gallifreyan as trees of
// nested circles and keeps them consistent while they are edited, dragged
// and animated.
//
// A sentence is split into tokens: words, numbers, punctuation and the
// invisible spaces between them. Every glyph element answers press and move
// with canvas points; borders resize, interiors move or rotate, and size
// changes propagate to the elements that depend on them.
package writing

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
	"github.com/f3rmion/gallifreyan/internal/geometry"
	"github.com/f3rmion/gallifreyan/internal/render"
)

// ErrIndexOutOfRange is returned for edits outside the sentence text.
var ErrIndexOutOfRange = errors.New("index out of range")

// Sentence is the editable glyph tree of a text.
type Sentence struct {
	alphabet *alphabet.Alphabet
	env      env

	chars   []Character
	slots   []token
	visible []visibleToken
	pressed visibleToken
}

// New returns an empty sentence writing with a.
func New(a *alphabet.Alphabet, opts ...Option) *Sentence {
	s := &Sentence{
		alphabet: a,
		env:      env{width: DefaultCanvasWidth, height: DefaultCanvasHeight},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.env.rng == nil {
		s.env.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// Text returns the sentence text.
func (s *Sentence) Text() string { return characterText(s.chars) }

// Len returns the number of characters.
func (s *Sentence) Len() int { return len(s.chars) }

// Size returns the canvas size.
func (s *Sentence) Size() (width, height int) { return s.env.width, s.env.height }

// Alphabet returns the alphabet the sentence is written with.
func (s *Sentence) Alphabet() *alphabet.Alphabet { return s.alphabet }

// Words returns the words in drawing order.
func (s *Sentence) Words() []*Word { return visibleOf[*Word](s) }

// Numbers returns the numbers in drawing order.
func (s *Sentence) Numbers() []*Number { return visibleOf[*Number](s) }

// Punctuation returns the punctuation runs in drawing order.
func (s *Sentence) Punctuation() []*Punctuation { return visibleOf[*Punctuation](s) }

func visibleOf[T visibleToken](s *Sentence) []T {
	var out []T
	for _, t := range s.visible {
		if v, ok := t.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// Insert adds text before the character at index.
func (s *Sentence) Insert(index int, text string) error {
	if index < 0 || index > len(s.chars) {
		return fmt.Errorf("inserting at %d of %d: %w", index, len(s.chars), ErrIndexOutOfRange)
	}
	if err := s.alphabet.Validate(text); err != nil {
		return err
	}
	if text == "" {
		return nil
	}

	chars := make([]Character, 0, len(text))
	for _, r := range text {
		e, _ := s.alphabet.Lookup(r)
		c, err := newCharacter(e, s.alphabet.Minus, s.env.rng)
		if err != nil {
			return fmt.Errorf("inserting %q: %w", r, err)
		}
		chars = append(chars, c)
	}

	s.pressed = nil
	s.chars = slices.Insert(s.chars, index, chars...)
	groups := splitIntoGroups(chars)
	if len(groups) == 1 {
		s.insertSingle(index, groups[0])
	} else {
		s.insertMultiple(index, groups)
	}
	return nil
}

// Remove deletes n characters starting at index.
func (s *Sentence) Remove(index, n int) error {
	end := index + n
	if index < 0 || n < 0 || end > len(s.chars) {
		return fmt.Errorf("removing %d at %d of %d: %w", n, index, len(s.chars), ErrIndexOutOfRange)
	}
	if n == 0 {
		return nil
	}
	s.pressed = nil

	var removed []token
	for _, t := range s.slots[index:end] {
		if !slices.Contains(removed, t) {
			removed = append(removed, t)
		}
	}
	first := removed[0]
	firstStart := s.start(first)
	if len(removed) == 1 {
		first.remove(index-firstStart, end-firstStart)
	} else {
		first.remove(index-firstStart, s.start(removed[1])-firstStart)
		last := removed[len(removed)-1]
		last.remove(0, end-s.start(last))
	}

	s.chars = slices.Delete(s.chars, index, end)
	s.slots = slices.Delete(s.slots, index, end)
	s.visible = slices.DeleteFunc(s.visible, func(t visibleToken) bool {
		return !slices.Contains(s.slots, token(t))
	})
	s.absorbFollowingToken(index)
	return nil
}

type characterGroup struct {
	group alphabet.Group
	chars []Character
}

func splitIntoGroups(chars []Character) []characterGroup {
	var groups []characterGroup
	for _, c := range chars {
		g := c.Kind().Group()
		if n := len(groups); n > 0 && groups[n-1].group == g {
			groups[n-1].chars = append(groups[n-1].chars, c)
			continue
		}
		groups = append(groups, characterGroup{group: g, chars: []Character{c}})
	}
	return groups
}

func (s *Sentence) start(t token) int {
	return slices.Index(s.slots, t)
}

func (s *Sentence) assign(index int, t token, n int) {
	s.slots = slices.Insert(s.slots, index, slices.Repeat([]token{t}, n)...)
}

func (s *Sentence) neighbours(index int) (prev, next token) {
	if index > 0 {
		prev = s.slots[index-1]
	}
	if index < len(s.slots) {
		next = s.slots[index]
	}
	return prev, next
}

func (s *Sentence) insertSingle(index int, g characterGroup) {
	n := len(g.chars)
	prev, next := s.neighbours(index)
	switch {
	case prev != nil && prev.insert(index-s.start(prev), g.chars):
		s.assign(index, prev, n)
	case next != nil && next.insert(0, g.chars):
		s.assign(index, next, n)
	default:
		s.splitToken(index)
		t := s.newToken(g)
		s.assign(index, t, n)
		s.absorbNones(index+n, t)
	}
}

func (s *Sentence) insertMultiple(index int, groups []characterGroup) {
	s.splitToken(index)
	prev, next := s.neighbours(index)

	first := groups[0]
	if prev != nil && prev.insert(index-s.start(prev), first.chars) {
		s.assign(index, prev, len(first.chars))
	} else {
		s.assign(index, s.newToken(first), len(first.chars))
	}

	cur := index + len(first.chars)
	for _, g := range groups[1 : len(groups)-1] {
		s.assign(cur, s.newToken(g), len(g.chars))
		cur += len(g.chars)
	}

	last := groups[len(groups)-1]
	if next != nil && next.insert(0, last.chars) {
		s.assign(cur, next, len(last.chars))
		return
	}
	t := s.newToken(last)
	s.assign(cur, t, len(last.chars))
	s.absorbNones(cur+len(last.chars), t)
}

// splitToken cuts the token straddling index; its characters from index on
// are left without a token.
func (s *Sentence) splitToken(index int) {
	if index <= 0 || index >= len(s.slots) {
		return
	}
	t := s.slots[index-1]
	if t == nil || t != s.slots[index] {
		return
	}
	t.removeFrom(index - s.start(t))
	for i := index; i < len(s.slots) && s.slots[i] == t; i++ {
		s.slots[i] = nil
	}
}

func (s *Sentence) newToken(g characterGroup) token {
	switch g.group {
	case alphabet.GroupWord:
		return s.show(newWord(&s.env, g.chars))
	case alphabet.GroupNumber:
		return s.show(newNumber(&s.env, g.chars))
	case alphabet.GroupPunctuation:
		return s.show(newPunctuation(&s.env, g.chars))
	}
	return newSpaceToken(g.chars)
}

func (s *Sentence) show(t visibleToken) token {
	s.visible = append(s.visible, t)
	return t
}

// absorbNones gives the characters orphaned by a split to prev, or to a new
// token when prev cannot take them.
func (s *Sentence) absorbNones(index int, prev token) {
	end := index
	for end < len(s.slots) && s.slots[end] == nil {
		end++
	}
	if end == index {
		return
	}

	orphans := slices.Clone(s.chars[index:end])
	t := prev
	if !prev.insert(index-s.start(prev), orphans) {
		t = s.newToken(characterGroup{group: orphans[0].Kind().Group(), chars: orphans})
	}
	for i := index; i < end; i++ {
		s.slots[i] = t
	}
}

// absorbFollowingToken merges the token at index into the one before it
// when it accepts the characters.
func (s *Sentence) absorbFollowingToken(index int) {
	if index <= 0 || index >= len(s.chars) {
		return
	}
	prev, next := s.slots[index-1], s.slots[index]
	if prev == next {
		return
	}
	chars := slices.Clone(next.characters())
	if !prev.insert(index-s.start(prev), chars) {
		return
	}
	for i := index; i < index+len(chars); i++ {
		s.slots[i] = prev
	}
	s.visible = slices.DeleteFunc(s.visible, func(t visibleToken) bool {
		return token(t) == next
	})
}

// Press starts a drag at p. It reports whether a glyph was hit.
func (s *Sentence) Press(p geometry.Point) bool {
	for _, t := range slices.Backward(s.visible) {
		if t.press(p) {
			s.pressed = t
			return true
		}
	}
	s.pressed = nil
	return false
}

// Move continues the drag. It reports whether anything changed.
func (s *Sentence) Move(p geometry.Point) bool {
	if s.pressed == nil {
		return false
	}
	s.pressed.move(p)
	return true
}

// Release ends the drag.
func (s *Sentence) Release() { s.pressed = nil }

// Pressed reports whether a drag is in progress.
func (s *Sentence) Pressed() bool { return s.pressed != nil }

// Animate advances every glyph by one animation step of angle radians.
func (s *Sentence) Animate(angle float64) {
	sign := 1.0
	for _, t := range s.visible {
		t.animate(sign, angle)
		sign = -sign
	}
}

// Draw paints the canvas background and every visible token.
func (s *Sentence) Draw(surface render.Surface, scheme *render.Scheme) {
	surface.Fill(scheme.CanvasBackground)
	for _, t := range s.visible {
		t.draw(surface, scheme)
	}
}
