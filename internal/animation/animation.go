// Package animation holds the animation settings shared by the editor and
// the GIF exporter.
package animation

import (
	"math"
	"time"
)

// Limits of the settings. Values are snapped to the step.
const (
	CycleMin     = 10
	CycleMax     = 360
	CycleStep    = 10
	DefaultCycle = 180

	DelayMin     = 100
	DelayMax     = 500
	DelayStep    = 50
	DefaultDelay = 100
)

// Settings controls how fast glyphs turn. Cycle is the number of frames of
// one full revolution and Delay the milliseconds between frames.
type Settings struct {
	Cycle int `yaml:"cycle" mapstructure:"cycle"`
	Delay int `yaml:"delay" mapstructure:"delay"`
}

// Default returns the default settings.
func Default() Settings {
	return Settings{Cycle: DefaultCycle, Delay: DefaultDelay}
}

// Normalize returns s with zero values replaced by the defaults and every
// value snapped to its step and clamped to its range.
func (s Settings) Normalize() Settings {
	if s.Cycle == 0 {
		s.Cycle = DefaultCycle
	}
	if s.Delay == 0 {
		s.Delay = DefaultDelay
	}
	s.Cycle = snap(s.Cycle, CycleMin, CycleMax, CycleStep)
	s.Delay = snap(s.Delay, DelayMin, DelayMax, DelayStep)
	return s
}

func snap(v, lo, hi, step int) int {
	v = lo + int(math.Round(float64(v-lo)/float64(step)))*step
	return min(max(v, lo), hi)
}

// Angle is the rotation of one animation step.
func (s Settings) Angle() float64 {
	return 2 * math.Pi / float64(s.Cycle)
}

// Interval is the time between frames.
func (s Settings) Interval() time.Duration {
	return time.Duration(s.Delay) * time.Millisecond
}

// GIFDelay is the frame delay in hundredths of a second.
func (s Settings) GIFDelay() int {
	return max(s.Delay/10, 1)
}
