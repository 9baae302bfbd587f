package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/f3rmion/gallifreyan/internal/geometry"
)

// Command is one recorded draw call.
type Command struct {
	Op     string
	Points []geometry.Point
	Values []float64
	Color  color.Color
}

func (c Command) String() string {
	var b strings.Builder
	b.WriteString(c.Op)
	for _, p := range c.Points {
		fmt.Fprintf(&b, " (%.1f,%.1f)", p.X, p.Y)
	}
	for _, v := range c.Values {
		fmt.Fprintf(&b, " %.2f", v)
	}
	return b.String()
}

// Recorder is a Surface that keeps the commands it receives.
type Recorder struct {
	Width, Height int
	Commands      []Command
}

// Ops returns the operation names in call order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Commands))
	for i, c := range r.Commands {
		ops[i] = c.Op
	}
	return ops
}

// Count returns how many commands used op.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset drops recorded commands.
func (r *Recorder) Reset() { r.Commands = nil }

func (r *Recorder) add(op string, col color.Color, values []float64, points ...geometry.Point) {
	r.Commands = append(r.Commands, Command{Op: op, Points: points, Values: values, Color: col})
}

func (r *Recorder) Size() (int, int) { return r.Width, r.Height }

func (r *Recorder) Fill(c color.Color) { r.add("fill", c, nil) }

func (r *Recorder) Disc(center geometry.Point, radius float64, c color.Color) {
	r.add("disc", c, []float64{radius}, center)
}

func (r *Recorder) Ring(center geometry.Point, radius, width float64, c color.Color) {
	r.add("ring", c, []float64{radius, width}, center)
}

func (r *Recorder) Line(a, b geometry.Point, width float64, c color.Color) {
	r.add("line", c, []float64{width}, a, b)
}

func (r *Recorder) Arc(center geometry.Point, radius, start, end, width float64, c color.Color) {
	r.add("arc", c, []float64{radius, start, end, width}, center)
}

func (r *Recorder) Polygon(points []geometry.Point, c color.Color) {
	r.add("polygon", c, nil, points...)
}

func (r *Recorder) PushClip(center geometry.Point, radius float64) {
	r.add("push", nil, []float64{radius}, center)
}

func (r *Recorder) PopClip() { r.add("pop", nil, nil) }
