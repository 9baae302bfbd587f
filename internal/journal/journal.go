// Package journal records the edits and gestures applied to a sentence so a
// composition can be stored and rebuilt exactly. Every random layout choice
// comes from the seeded generator, so replaying the same operations from the
// same seed gives the same drawing.
package journal

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
	"github.com/f3rmion/gallifreyan/internal/geometry"
	"github.com/f3rmion/gallifreyan/internal/writing"
)

// Version is the journal format version written by Marshal.
const Version = 1

// ErrVersion is returned by Replay for journals of another format version.
var ErrVersion = errors.New("unsupported journal version")

// ErrAlphabet is returned by Replay for journals written with another
// alphabet.
var ErrAlphabet = errors.New("journal was written with another alphabet")

// Operation kinds.
const (
	OpInsert  = "insert"
	OpRemove  = "remove"
	OpPress   = "press"
	OpMove    = "move"
	OpRelease = "release"
	OpAnimate = "animate"
)

// Op is one recorded operation.
type Op struct {
	Kind  string  `yaml:"op"`
	Index int     `yaml:"index,omitempty"`
	Text  string  `yaml:"text,omitempty"`
	N     int     `yaml:"n,omitempty"`
	X     float64 `yaml:"x,omitempty"`
	Y     float64 `yaml:"y,omitempty"`
	Angle float64 `yaml:"angle,omitempty"`
	Count int     `yaml:"count,omitempty"`
}

// Record is the serialised form of a document.
type Record struct {
	Version int    `yaml:"version"`
	Seed    uint64 `yaml:"seed"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	// Alphabet is the fingerprint of the alphabet the ops were typed with.
	// Records without one replay against any alphabet.
	Alphabet string `yaml:"alphabet,omitempty"`
	Ops      []Op   `yaml:"ops"`
}

// Document is a sentence together with the operations that built it.
type Document struct {
	sentence *writing.Sentence
	seed     uint64
	width    int
	height   int
	ops      []Op
}

// New returns an empty document.
func New(a *alphabet.Alphabet, seed uint64, width, height int) *Document {
	return &Document{
		sentence: writing.New(a, writing.WithSeed(seed), writing.WithCanvasSize(width, height)),
		seed:     seed,
		width:    width,
		height:   height,
	}
}

// Sentence returns the sentence. Changes made to it directly are not
// recorded.
func (d *Document) Sentence() *writing.Sentence { return d.sentence }

// Text returns the current text.
func (d *Document) Text() string { return d.sentence.Text() }

// Seed returns the layout seed.
func (d *Document) Seed() uint64 { return d.seed }

// Ops returns the recorded operations.
func (d *Document) Ops() []Op { return d.ops }

// Insert adds text at index.
func (d *Document) Insert(index int, text string) error {
	if text == "" {
		return nil
	}
	if err := d.sentence.Insert(index, text); err != nil {
		return err
	}
	d.ops = append(d.ops, Op{Kind: OpInsert, Index: index, Text: text})
	return nil
}

// Remove deletes n characters at index.
func (d *Document) Remove(index, n int) error {
	if n == 0 {
		return nil
	}
	if err := d.sentence.Remove(index, n); err != nil {
		return err
	}
	d.ops = append(d.ops, Op{Kind: OpRemove, Index: index, N: n})
	return nil
}

// SetText turns the current text into text with at most one removal and
// one insertion around the common prefix and suffix.
func (d *Document) SetText(text string) error {
	if err := d.sentence.Alphabet().Validate(text); err != nil {
		return err
	}
	old, next := []rune(d.sentence.Text()), []rune(text)
	prefix := 0
	for prefix < len(old) && prefix < len(next) && old[prefix] == next[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(old)-prefix && suffix < len(next)-prefix &&
		old[len(old)-1-suffix] == next[len(next)-1-suffix] {
		suffix++
	}

	if err := d.Remove(prefix, len(old)-prefix-suffix); err != nil {
		return fmt.Errorf("setting text: %w", err)
	}
	if err := d.Insert(prefix, string(next[prefix:len(next)-suffix])); err != nil {
		return fmt.Errorf("setting text: %w", err)
	}
	return nil
}

// Press starts a drag.
func (d *Document) Press(p geometry.Point) bool {
	hit := d.sentence.Press(p)
	if hit {
		d.ops = append(d.ops, Op{Kind: OpPress, X: p.X, Y: p.Y})
	}
	return hit
}

// Move continues a drag. Consecutive moves are stored as the last one.
func (d *Document) Move(p geometry.Point) bool {
	if !d.sentence.Move(p) {
		return false
	}
	op := Op{Kind: OpMove, X: p.X, Y: p.Y}
	if n := len(d.ops); n > 0 && d.ops[n-1].Kind == OpMove {
		d.ops[n-1] = op
	} else {
		d.ops = append(d.ops, op)
	}
	return true
}

// Release ends a drag.
func (d *Document) Release() {
	if !d.sentence.Pressed() {
		return
	}
	d.sentence.Release()
	d.ops = append(d.ops, Op{Kind: OpRelease})
}

// Animate advances the animation by one step.
func (d *Document) Animate(angle float64) {
	d.sentence.Animate(angle)
	if n := len(d.ops); n > 0 && d.ops[n-1].Kind == OpAnimate && d.ops[n-1].Angle == angle {
		d.ops[n-1].Count++
		return
	}
	d.ops = append(d.ops, Op{Kind: OpAnimate, Angle: angle, Count: 1})
}

// Marshal encodes the document.
func (d *Document) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(Record{
		Version:  Version,
		Seed:     d.seed,
		Width:    d.width,
		Height:   d.height,
		Alphabet: d.sentence.Alphabet().Fingerprint(),
		Ops:      d.ops,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling journal: %w", err)
	}
	return data, nil
}

// Replay rebuilds a document from Marshal output.
func Replay(a *alphabet.Alphabet, data []byte) (*Document, error) {
	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing journal: %w", err)
	}
	if r.Version != Version {
		return nil, fmt.Errorf("journal version %d: %w", r.Version, ErrVersion)
	}
	if r.Alphabet != "" && r.Alphabet != a.Fingerprint() {
		return nil, fmt.Errorf("alphabet %s, have %s: %w", r.Alphabet, a.Fingerprint(), ErrAlphabet)
	}

	d := New(a, r.Seed, r.Width, r.Height)
	for i, op := range r.Ops {
		if err := d.apply(op); err != nil {
			return nil, fmt.Errorf("replaying op %d (%s): %w", i, op.Kind, err)
		}
	}
	return d, nil
}

func (d *Document) apply(op Op) error {
	p := geometry.Pt(op.X, op.Y)
	switch op.Kind {
	case OpInsert:
		return d.Insert(op.Index, op.Text)
	case OpRemove:
		return d.Remove(op.Index, op.N)
	case OpPress:
		d.Press(p)
	case OpMove:
		d.Move(p)
	case OpRelease:
		d.Release()
	case OpAnimate:
		for range max(op.Count, 1) {
			d.Animate(op.Angle)
		}
	default:
		return fmt.Errorf("unknown operation %q", op.Kind)
	}
	return nil
}
