package writing

import (
	"slices"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
	"github.com/f3rmion/gallifreyan/internal/geometry"
	"github.com/f3rmion/gallifreyan/internal/render"
)

// NumberGroup is one circle of a number: an optional minus sign, digit
// rings from the outside in, and an optional closing mark.
type NumberGroup struct {
	minus  *NumberMark
	digits []*Digit
	mark   *NumberMark

	center       geometry.Point
	scale        float64
	outerRadius  float64
	lineWidth    float64
	halfDistance float64

	pressed      pressedType
	pressedDigit *Digit
	pressedMark  *NumberMark
	pointBias    geometry.Point
	distanceBias float64
}

func newNumberGroup(e *env) *NumberGroup {
	g := &NumberGroup{center: e.position()}
	g.setScale(uniform(e.rng, SyllableInitialScaleMin, SyllableInitialScaleMax))
	return g
}

// Text returns the characters of the group.
func (g *NumberGroup) Text() string {
	var rs []rune
	if g.minus != nil {
		rs = append(rs, g.minus.symbol)
	}
	for _, d := range g.digits {
		rs = append(rs, d.symbol)
	}
	if g.mark != nil {
		rs = append(rs, g.mark.symbol)
	}
	return string(rs)
}

// Center returns the group centre on the canvas.
func (g *NumberGroup) Center() geometry.Point { return g.center }

// Radius returns the group circle radius.
func (g *NumberGroup) Radius() float64 { return g.outerRadius }

// Digits returns the digits from the outermost ring in.
func (g *NumberGroup) Digits() []*Digit { return slices.Clone(g.digits) }

func (g *NumberGroup) add(c Character) bool {
	switch c := c.(type) {
	case *Digit:
		if g.mark != nil {
			return false
		}
		g.digits = append(g.digits, c)
		c.resize(g.scale)
	case *NumberMark:
		if c.minus {
			if g.minus != nil || len(g.digits) > 0 || g.mark != nil {
				return false
			}
			g.minus = c
		} else {
			if g.mark != nil {
				return false
			}
			g.mark = c
		}
	default:
		return false
	}
	g.updateDigits()
	return true
}

func (g *NumberGroup) removeFrom(c Character) {
	switch {
	case g.minus != nil && c == Character(g.minus):
		g.minus, g.digits, g.mark = nil, nil, nil
	case g.mark != nil && c == Character(g.mark):
		g.mark = nil
	default:
		d, ok := c.(*Digit)
		if !ok {
			return
		}
		i := slices.Index(g.digits, d)
		if i < 0 {
			return
		}
		g.digits = g.digits[:i]
		g.mark = nil
	}
	g.updateDigits()
}

func (g *NumberGroup) setScale(scale float64) {
	g.scale = scale
	g.outerRadius = DefaultWordRadius * scale
	g.lineWidth = LineWidth(NumberGroupBorder[0], scale)
	g.halfDistance = HalfLineDistance(scale)
	for _, d := range g.digits {
		d.resize(scale)
	}
	g.updateDigits()
}

// updateDigits hands out the ring stripes from the innermost digit outward,
// then lays out every digit between its neighbours.
func (g *NumberGroup) updateDigits() {
	n := len(g.digits)
	prev := 0.0
	stripe := g.outerRadius / float64(n+1)
	for i := range n {
		d := g.digits[n-1-i]
		d.updateInnerRadius(prev, stripe)
		prev = d.inner.radius
		stripe = (g.outerRadius - prev) / float64(n-i)
	}

	outer, half := g.outerRadius, g.lineWidth/2
	for _, d := range g.digits {
		d.updateOuterRadius(outer, half)
		outer = d.inner.visibleRadius()
		half = d.inner.halfWidth(d.inner.count() - 1)
	}

	dependent := n > 0
	for _, m := range []*NumberMark{g.minus, g.mark} {
		if m != nil {
			m.setParent(g.scale, g.outerRadius, dependent)
		}
	}
}

func (g *NumberGroup) press(p geometry.Point) bool {
	gp := p.Sub(g.center)
	d := gp.Distance()
	switch {
	case d > g.outerRadius+g.halfDistance:
		g.pressed = pressedNone
		return false
	case d > g.outerRadius-g.halfDistance:
		g.distanceBias = d - g.outerRadius
		g.pressed = pressedOuter
		return true
	}

	for _, m := range []*NumberMark{g.mark, g.minus} {
		if m != nil && m.press(gp) {
			g.pressedMark, g.pressedDigit = m, nil
			g.pressed = pressedChild
			return true
		}
	}
	for _, digit := range slices.Backward(g.digits) {
		if digit.press(gp) {
			g.pressedMark, g.pressedDigit = nil, digit
			g.pressed = pressedChild
			return true
		}
	}
	g.pointBias = gp
	g.pressed = pressedParent
	return true
}

func (g *NumberGroup) move(p geometry.Point) {
	gp := p.Sub(g.center)
	switch g.pressed {
	case pressedOuter:
		scale := (gp.Distance() - g.distanceBias) / DefaultWordRadius
		g.setScale(geometry.Clamp(scale, SyllableScaleMin, SyllableScaleMax))
	case pressedParent:
		g.center = p.Sub(g.pointBias)
	case pressedChild:
		if g.pressedMark != nil {
			g.pressedMark.move(gp)
			return
		}
		g.pressedDigit.move(gp)
		g.updateDigits()
	}
}

func (g *NumberGroup) animate(sign, angle float64) {
	s := sign
	for _, d := range g.digits {
		d.animate(s * angle)
		s = -s
	}
	if g.minus != nil {
		g.minus.animate(sign * angle)
	}
	if g.mark != nil {
		g.mark.animate(-sign * angle)
	}
}

func (g *NumberGroup) draw(s render.Surface, scheme *render.Scheme) {
	gs := render.Offset(s, g.center)
	fg, bg := scheme.Syllable, scheme.SyllableBackground

	gs.PushClip(origin, g.outerRadius+g.lineWidth/2)
	gs.Fill(bg)
	for _, d := range g.digits {
		d.drawDecorations(gs, scheme)
		gs.PushClip(origin, d.inner.visibleRadius())
		gs.Fill(bg)
	}
	for range g.digits {
		gs.PopClip()
	}
	for _, d := range g.digits {
		d.inner.drawRings(gs, origin, fg, bg)
	}
	if g.minus != nil {
		g.minus.draw(gs, scheme)
	}
	if g.mark != nil {
		g.mark.draw(gs, scheme)
	}
	gs.PopClip()
	gs.Ring(origin, g.outerRadius, g.lineWidth, fg)
}

// Number is a run of digits and number marks split into groups.
type Number struct {
	tokenBase
	env *env

	slots  []*NumberGroup
	groups []*NumberGroup

	pressedGroup *NumberGroup
}

func newNumber(e *env, chars []Character) *Number {
	n := &Number{env: e}
	n.insert(0, chars)
	return n
}

func (n *Number) group() alphabet.Group { return alphabet.GroupNumber }

// Groups returns the number groups in order.
func (n *Number) Groups() []*NumberGroup { return slices.Clone(n.groups) }

func (n *Number) insert(index int, chars []Character) bool {
	if !allOfGroup(chars, alphabet.GroupNumber) {
		return false
	}
	n.split(index)
	n.insertChars(index, chars)
	n.slots = slices.Insert(n.slots, index, make([]*NumberGroup, len(chars))...)

	n.redistribute(n.absorbFollowing(index))
	n.setGroups()
	return true
}

func (n *Number) remove(index, end int) {
	n.split(index)
	n.split(end)
	n.removeChars(index, end)
	n.slots = slices.Delete(n.slots, index, end)

	n.redistribute(n.absorbFollowing(index))
	n.setGroups()
}

func (n *Number) removeFrom(index int) {
	n.split(index)
	n.truncate(index)
	n.slots = n.slots[:index]
	n.setGroups()
}

func (n *Number) split(index int) {
	if index <= 0 || index >= len(n.chars) {
		return
	}
	g := n.slots[index-1]
	if g == nil || g != n.slots[index] {
		return
	}
	g.removeFrom(n.chars[index])
	for i := index; i < len(n.chars) && n.slots[i] == g; i++ {
		n.slots[i] = nil
	}
}

func (n *Number) absorbFollowing(index int) int {
	if index == 0 || n.slots[index-1] == nil {
		return index
	}
	g := n.slots[index-1]
	start := index
	for i := index; i < len(n.chars); i++ {
		if !g.add(n.chars[i]) {
			break
		}
		n.slots[i] = g
		start = i + 1
	}
	return start
}

func (n *Number) redistribute(start int) {
	var current *NumberGroup
	for i := start; i < len(n.chars); i++ {
		switch c := n.chars[i].(type) {
		case *Digit:
			if current == nil {
				if n.slots[i] != nil {
					return
				}
				current = newNumberGroup(n.env)
			}
			current.add(c)
			n.slots[i] = current
		case *NumberMark:
			if c.minus {
				if n.slots[i] != nil {
					return
				}
				current = newNumberGroup(n.env)
				current.add(c)
				n.slots[i] = current
				continue
			}
			if current == nil {
				if n.slots[i] != nil {
					return
				}
				current = newNumberGroup(n.env)
			}
			current.add(c)
			n.slots[i] = current
			current = nil
		}
	}
}

func (n *Number) setGroups() {
	n.groups = nil
	for _, g := range n.slots {
		if g != nil && !slices.Contains(n.groups, g) {
			n.groups = append(n.groups, g)
		}
	}
}

func (n *Number) press(p geometry.Point) bool {
	for _, g := range slices.Backward(n.groups) {
		if g.press(p) {
			n.pressedGroup = g
			return true
		}
	}
	return false
}

func (n *Number) move(p geometry.Point) {
	if n.pressedGroup != nil {
		n.pressedGroup.move(p)
	}
}

func (n *Number) draw(s render.Surface, scheme *render.Scheme) {
	for _, g := range n.groups {
		g.draw(s, scheme)
	}
}

func (n *Number) animate(sign, angle float64) {
	for _, g := range n.groups {
		g.animate(sign, angle)
		sign = -sign
	}
}
