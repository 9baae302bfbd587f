package writing

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/f3rmion/gallifreyan/internal/geometry"
	"github.com/f3rmion/gallifreyan/internal/render"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

// sameAngle reports whether a and b name the same direction.
func sameAngle(a, b float64) bool {
	return cmp.Equal(math.Remainder(a-b, 2*math.Pi), 0.0, approx)
}

func TestDragInnerBorder(t *testing.T) {
	tests := []struct {
		name string
		to   float64 // fraction of the outer radius
		want float64
	}{
		{"inside range", 0.5, 0.5},
		{"clamped low", 0.05, InnerCircleScaleMin},
		{"clamped high", 0.95, InnerCircleScaleMax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSentence(t, "b")
			w := s.Words()[0]
			head := w.Syllables()[0]
			c := w.Center()
			R := head.Radius()

			// Just inside the border so the press lands on it for any
			// border count.
			const bias = -0.5
			if !s.Press(c.Add(geometry.Pt(head.InnerRadius()+bias, 0))) {
				t.Fatal("Press on the inner border missed")
			}
			if head.pressed != pressedInner {
				t.Fatalf("pressed = %v, want pressedInner", head.pressed)
			}
			s.Move(c.Add(geometry.Pt(tt.to*R+bias, 0)))
			s.Release()

			if !cmp.Equal(head.InnerRadius(), tt.want*R, approx) {
				t.Errorf("inner radius = %v, want %v", head.InnerRadius(), tt.want*R)
			}
			if !cmp.Equal(head.Radius(), R, approx) {
				t.Errorf("outer radius changed to %v, want %v", head.Radius(), R)
			}
		})
	}
}

func TestDragWordBorder(t *testing.T) {
	tests := []struct {
		name string
		to   float64 // outer scale the pointer is dragged to
		want float64
	}{
		{"inside range", 1.5, 1.5},
		{"clamped low", 0.5, OuterCircleScaleMin},
		{"clamped high", 3, OuterCircleScaleMax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSentence(t, "bab")
			w := s.Words()[0]
			if len(w.Syllables()) != 2 {
				t.Fatalf("layout %v, want a head and a tail", layout(s))
			}
			hs := w.Syllables()[0].Scale()
			c := w.Center()

			bias := w.outer.halfDistance
			if !s.Press(c.Add(geometry.Pt(w.Radius()+bias, 0))) {
				t.Fatal("Press on the word border missed")
			}
			if w.pressed != pressedOuter {
				t.Fatalf("pressed = %v, want pressedOuter", w.pressed)
			}
			s.Move(c.Add(geometry.Pt(tt.to*hs*DefaultWordRadius+bias, 0)))
			s.Release()

			if !cmp.Equal(w.Radius(), tt.want*hs*DefaultWordRadius, approx) {
				t.Errorf("word radius = %v, want %v", w.Radius(), tt.want*hs*DefaultWordRadius)
			}
			if !cmp.Equal(w.Syllables()[0].Scale(), hs, approx) {
				t.Errorf("head scale changed to %v", w.Syllables()[0].Scale())
			}
		})
	}
}

func TestRotateTailSyllable(t *testing.T) {
	for _, by := range []float64{1, -2.5, 4} {
		s := newSentence(t, "bab")
		w := s.Words()[0]
		head, tail := w.Syllables()[0], w.Syllables()[1]
		c := w.Center()
		start := tail.Direction()

		if !s.Press(c.Add(tail.Center())) {
			t.Fatal("Press on the tail syllable missed")
		}
		if tail.pressed != pressedSelf {
			t.Fatalf("pressed = %v, want pressedSelf", tail.pressed)
		}
		s.Move(c.Add(geometry.Polar(start+by, head.Radius())))
		s.Release()

		if !sameAngle(tail.Direction(), start+by) {
			t.Errorf("drag by %v: direction = %v, want %v modulo 2π", by, tail.Direction(), start+by)
		}
		if !cmp.Equal(tail.Center().Distance(), head.Radius(), approx) {
			t.Errorf("drag by %v: tail left the head circle, distance %v", by, tail.Center().Distance())
		}
	}
}

func TestVowelPlacement(t *testing.T) {
	tests := []struct {
		text string
		typ  VowelType
		// distance and radius from the outer and inner syllable circles
		want func(outer outerCircle, inner innerCircle) (distance, radius float64)
	}{
		{"a", LargeVowel, func(o outerCircle, _ innerCircle) (float64, float64) {
			return o.radius * largeVowelRatio, o.radius * largeVowelRatio
		}},
		{"e", WanderingVowel, func(o outerCircle, i innerCircle) (float64, float64) {
			return (o.radius + i.radius) / 2, (o.radius-i.radius)/2 - 3*o.halfDistance
		}},
		{"i", OrbitingVowel, func(_ outerCircle, i innerCircle) (float64, float64) {
			return i.radius, i.radius * orbitingVowelRatio
		}},
		{"o", CenterVowel, func(_ outerCircle, i innerCircle) (float64, float64) {
			maxRadius := i.radius - 2*i.halfDistance
			return maxRadius * (1 - centerVowelRatio), maxRadius * centerVowelRatio
		}},
		{"u", HiddenVowel, func(_ outerCircle, i innerCircle) (float64, float64) {
			return i.radius, i.radius * orbitingVowelRatio
		}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			syl := newSentence(t, tt.text).Words()[0].Syllables()[0]
			v := syl.vowel
			if v == nil || v.Type != tt.typ {
				t.Fatalf("vowel = %+v, want type %q", v, tt.typ)
			}

			check := func(when string) {
				t.Helper()
				distance, radius := tt.want(syl.outer, syl.inner)
				got := []float64{v.center.Distance(), v.radius}
				if diff := cmp.Diff([]float64{distance, radius}, got, approx); diff != "" {
					t.Errorf("%s: distance, radius mismatch (-want +got):\n%s", when, diff)
				}
			}
			check("initial")
			syl.setInnerScale(InnerCircleScaleMin)
			check("after inner resize")
			syl.setPersonalScale(SyllableScaleMax)
			check("after outer resize")
		})
	}
}

func TestHiddenVowelPressOrder(t *testing.T) {
	tests := []struct {
		text string
		at   float64 // distance from the syllable centre, in inner radii
		want pressedType
	}{
		// Inside the inner circle a visible vowel wins, a hidden one does not.
		{"i", 0.7, pressedChild},
		{"u", 0.7, pressedSelf},
		// Outside the inner circle the hidden vowel is the last candidate.
		{"i", 1.3, pressedChild},
		{"u", 1.3, pressedChild},
	}
	for _, tt := range tests {
		syl := newSentence(t, tt.text).Words()[0].Syllables()[0]
		p := geometry.Polar(syl.vowel.center.Direction(), tt.at*syl.InnerRadius())

		got := syl.press(p)
		if got != tt.want {
			t.Errorf("%q at %v r: pressed = %v, want %v", tt.text, tt.at, got, tt.want)
			continue
		}
		if got == pressedChild && syl.pressedLetter != letter(syl.vowel) {
			t.Errorf("%q at %v r: pressed letter %v, want the vowel", tt.text, tt.at, syl.pressedLetter)
		}
	}
}

func TestDragHiddenVowel(t *testing.T) {
	s := newSentence(t, "u")
	w := s.Words()[0]
	syl := w.Syllables()[0]
	v := syl.vowel
	c := w.Center()
	start := v.center.Direction()
	from := geometry.Polar(start, 1.3*syl.InnerRadius())
	to := geometry.Polar(start+1, 1.3*syl.InnerRadius())
	// The vowel keeps the offset between the pointer and its centre.
	offset := from.Sub(v.center)

	if !s.Press(c.Add(from)) {
		t.Fatal("Press on the hidden vowel missed")
	}
	s.Move(c.Add(to))
	s.Release()

	want := to.Sub(offset).Direction()
	if !sameAngle(v.center.Direction(), want) {
		t.Errorf("vowel direction = %v, want %v", v.center.Direction(), want)
	}
	if !cmp.Equal(v.center.Distance(), syl.InnerRadius(), approx) {
		t.Errorf("vowel left the inner circle, distance %v", v.center.Distance())
	}
}

func TestDragDigitBorder(t *testing.T) {
	tests := []struct {
		name string
		to   float64 // stripe scale the pointer is dragged to
		want float64
	}{
		{"inside range", 0.8, 0.8},
		{"clamped low", 0.1, DigitScaleMin},
		{"clamped high", 2, DigitScaleMax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSentence(t, "12")
			g := s.Numbers()[0].Groups()[0]
			outer, inner := g.Digits()[0], g.Digits()[1]
			R := g.Radius()
			// Across the line of the inner digit.
			dir := inner.direction + math.Pi/2
			c := g.Center()

			if !s.Press(c.Add(geometry.Polar(dir, outer.InnerRadius()))) {
				t.Fatal("Press on the digit border missed")
			}
			if g.pressedDigit != outer || outer.pressed != pressedInner {
				t.Fatalf("press did not reach the outer digit border, state %v", outer.pressed)
			}
			s.Move(c.Add(geometry.Polar(dir, R/3+R/3*tt.to)))
			s.Release()

			if !cmp.Equal(outer.StripeScale(), tt.want, approx) {
				t.Errorf("stripe scale = %v, want %v", outer.StripeScale(), tt.want)
			}
			if want := R/3 + R/3*tt.want; !cmp.Equal(outer.InnerRadius(), want, approx) {
				t.Errorf("outer digit radius = %v, want %v", outer.InnerRadius(), want)
			}
			if !cmp.Equal(inner.InnerRadius(), R/3, approx) {
				t.Errorf("inner digit radius = %v, want %v", inner.InnerRadius(), R/3)
			}
		})
	}
}

func TestDragNumberMark(t *testing.T) {
	tests := []struct {
		name  string
		inner bool
		to    float64
		want  float64
	}{
		{"outer", false, 0.3, 0.3},
		{"outer clamped low", false, 0.01, MarkScaleMin},
		{"outer clamped high", false, 1, MarkScaleMax},
		{"inner", true, 0.5, 0.5},
		{"inner clamped low", true, 0.05, InnerCircleScaleMin},
		{"inner clamped high", true, 0.9, InnerCircleScaleMax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSentence(t, "1%")
			g := s.Numbers()[0].Groups()[0]
			m := g.mark
			// Towards the group centre so the pointer stays inside the group.
			dir := m.direction + math.Pi
			at := g.Center().Add(m.Center())
			gs := g.scale

			r := m.outer.radius
			if tt.inner {
				r = m.inner.radius
			}
			if !s.Press(at.Add(geometry.Polar(dir, r))) {
				t.Fatal("Press on the mark missed")
			}
			if g.pressedMark != m {
				t.Fatal("press did not reach the mark")
			}

			if tt.inner {
				R := m.outer.radius
				s.Move(at.Add(geometry.Polar(dir, tt.to*R)))
				if !cmp.Equal(m.inner.radius, tt.want*R, approx) {
					t.Errorf("mark inner radius = %v, want %v", m.inner.radius, tt.want*R)
				}
				return
			}
			s.Move(at.Add(geometry.Polar(dir, tt.to*gs*DefaultWordRadius)))
			if !cmp.Equal(m.Scale(), tt.want*gs, approx) {
				t.Errorf("mark scale = %v, want %v", m.Scale(), tt.want*gs)
			}
			if !cmp.Equal(m.Center().Distance(), g.Radius(), approx) {
				t.Errorf("mark left the group circle, distance %v", m.Center().Distance())
			}
		})
	}
}

func TestDrawDoubleLineDigit(t *testing.T) {
	s := newSentence(t, "6")
	d := s.Numbers()[0].Groups()[0].Digits()[0]
	if d.Type != LineDigit || d.inner.count() != 2 {
		t.Fatalf("digit 6 is %q with %d borders, want a double line", d.Type, d.inner.count())
	}

	var lines []render.Command
	for _, c := range record(s).Commands {
		if c.Op == "line" {
			lines = append(lines, c)
		}
	}
	if len(lines) != 2 {
		t.Fatalf("drew %d lines, want 2", len(lines))
	}
	a1, b1 := lines[0].Points[0], lines[0].Points[1]
	a2 := lines[1].Points[0]

	gap := a1.Sub(a2)
	if !cmp.Equal(gap.Distance(), 2*d.inner.halfDistance, approx) {
		t.Errorf("line gap = %v, want %v", gap.Distance(), 2*d.inner.halfDistance)
	}
	along := b1.Sub(a1)
	if dot := gap.X*along.X + gap.Y*along.Y; !cmp.Equal(dot, 0.0, cmpopts.EquateApprox(0, 1e-6)) {
		t.Errorf("lines are offset along their direction, dot product %v", dot)
	}
}
