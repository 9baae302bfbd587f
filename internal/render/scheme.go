package render

import (
	"fmt"
	"image/color"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color is an opaque colour that reads and writes as "#rrggbb".
type Color color.RGBA

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA(c).RGBA()
}

// Hex formats the colour as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string { return c.Hex() }

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseHex(node.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseHex parses "#rgb" or "#rrggbb".
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q", s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// MustHex is ParseHex for constants.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Blend mixes a and b, t = 0 gives a and t = 1 gives b.
func Blend(a, b Color, t float64) Color {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 0xff}
}

// Scheme holds the colours of every glyph component.
type Scheme struct {
	CanvasBackground   Color `yaml:"canvas_bg"`
	WordBackground     Color `yaml:"word_bg"`
	SyllableBackground Color `yaml:"syllable_bg"`
	Word               Color `yaml:"word"`
	Syllable           Color `yaml:"syllable"`
	Vowel              Color `yaml:"vowel"`
	Dot                Color `yaml:"dot"`
}

// SchemeKeys lists the names accepted by Set, in display order.
var SchemeKeys = []string{"canvas_bg", "word_bg", "syllable_bg", "word", "syllable", "vowel", "dot"}

// DefaultScheme returns the built-in colours.
func DefaultScheme() Scheme {
	return Scheme{
		CanvasBackground:   MustHex("#00004d"),
		WordBackground:     MustHex("#00004d"),
		SyllableBackground: MustHex("#101060"),
		Word:               MustHex("#dddddd"),
		Syllable:           MustHex("#cccccc"),
		Vowel:              MustHex("#dddddd"),
		Dot:                MustHex("#dddddd"),
	}
}

// Reset restores the built-in colours.
func (s *Scheme) Reset() {
	*s = DefaultScheme()
}

func (s *Scheme) field(name string) *Color {
	switch name {
	case "canvas_bg":
		return &s.CanvasBackground
	case "word_bg":
		return &s.WordBackground
	case "syllable_bg":
		return &s.SyllableBackground
	case "word":
		return &s.Word
	case "syllable":
		return &s.Syllable
	case "vowel":
		return &s.Vowel
	case "dot":
		return &s.Dot
	}
	return nil
}

// Get returns the named colour.
func (s *Scheme) Get(name string) (Color, error) {
	f := s.field(name)
	if f == nil {
		return Color{}, fmt.Errorf("unknown colour %q (want one of %s)", name, strings.Join(SchemeKeys, ", "))
	}
	return *f, nil
}

// Set changes the named colour.
func (s *Scheme) Set(name, value string) error {
	f := s.field(name)
	if f == nil {
		return fmt.Errorf("unknown colour %q (want one of %s)", name, strings.Join(SchemeKeys, ", "))
	}
	c, err := ParseHex(value)
	if err != nil {
		return err
	}
	*f = c
	return nil
}

// Colors returns the distinct colours of the scheme.
func (s Scheme) Colors() []Color {
	all := []Color{s.CanvasBackground, s.WordBackground, s.SyllableBackground, s.Word, s.Syllable, s.Vowel, s.Dot}
	var out []Color
	for _, c := range all {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}
