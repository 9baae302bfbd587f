package journal

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gopkg.in/yaml.v3"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
	"github.com/f3rmion/gallifreyan/internal/geometry"
	"github.com/f3rmion/gallifreyan/internal/render"
)

func draw(d *Document) []render.Command {
	rec := &render.Recorder{}
	scheme := render.DefaultScheme()
	d.Sentence().Draw(rec, &scheme)
	return rec.Commands
}

func TestSetText(t *testing.T) {
	tests := []struct {
		from, to string
		want     []Op
	}{
		{"", "bake", []Op{{Kind: OpInsert, Index: 0, Text: "bake"}}},
		{"bake", "bike", []Op{{Kind: OpRemove, Index: 1, N: 1}, {Kind: OpInsert, Index: 1, Text: "i"}}},
		{"bake", "bake do", []Op{{Kind: OpInsert, Index: 4, Text: " do"}}},
		{"ba ke", "bake", []Op{{Kind: OpRemove, Index: 2, N: 1}}},
		{"bake", "bake", nil},
		{"aaa", "aa", []Op{{Kind: OpRemove, Index: 2, N: 1}}},
		{"bake", "", []Op{{Kind: OpRemove, Index: 0, N: 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			d := New(alphabet.Default(), 1, 800, 600)
			if err := d.SetText(tt.from); err != nil {
				t.Fatal(err)
			}
			start := len(d.Ops())
			if err := d.SetText(tt.to); err != nil {
				t.Fatal(err)
			}
			if got := d.Text(); got != tt.to {
				t.Errorf("Text() = %q, want %q", got, tt.to)
			}
			if diff := cmp.Diff(tt.want, d.Ops()[start:], cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("ops mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSetTextRejectsUnknownRunes(t *testing.T) {
	d := New(alphabet.Default(), 1, 800, 600)
	if err := d.SetText("ba"); err != nil {
		t.Fatal(err)
	}
	err := d.SetText("baQ")
	var unknown *alphabet.UnknownRuneError
	if !errors.As(err, &unknown) {
		t.Fatalf("SetText() = %v, want UnknownRuneError", err)
	}
	if got := d.Text(); got != "ba" {
		t.Errorf("Text() = %q, want %q", got, "ba")
	}
	if len(d.Ops()) != 1 {
		t.Errorf("recorded %d ops, want 1", len(d.Ops()))
	}
}

func TestGestureOps(t *testing.T) {
	d := New(alphabet.Default(), 2, 800, 600)
	if err := d.SetText("b"); err != nil {
		t.Fatal(err)
	}
	w := d.Sentence().Words()[0]
	c := w.Center()
	r := w.Syllables()[0].Radius()

	if d.Press(geometry.Pt(-500, -500)) {
		t.Fatal("Press far away hit")
	}
	if !d.Press(c.Add(geometry.Pt(r, 0))) {
		t.Fatal("Press on the border missed")
	}
	d.Move(c.Add(geometry.Pt(r-10, 0)))
	d.Move(c.Add(geometry.Pt(r-20, 0)))
	d.Release()
	d.Release()
	d.Animate(0.1)
	d.Animate(0.1)
	d.Animate(0.2)

	want := []Op{
		{Kind: OpInsert, Text: "b"},
		{Kind: OpPress, X: c.X + r, Y: c.Y},
		{Kind: OpMove, X: c.X + (r - 20), Y: c.Y},
		{Kind: OpRelease},
		{Kind: OpAnimate, Angle: 0.1, Count: 2},
		{Kind: OpAnimate, Angle: 0.2, Count: 1},
	}
	if diff := cmp.Diff(want, d.Ops()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestReplay(t *testing.T) {
	a := alphabet.Default()
	d := New(a, 42, 640, 480)
	for _, text := range []string{"bake", "bake 12", "ba ke 12%", "bake 12%."} {
		if err := d.SetText(text); err != nil {
			t.Fatal(err)
		}
	}
	w := d.Sentence().Words()[0]
	d.Press(w.Center())
	d.Move(w.Center().Add(geometry.Pt(15, -10)))
	d.Release()
	for range 7 {
		d.Animate(2 * math.Pi / 90)
	}

	data, err := d.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	got, err := Replay(a, data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Text() != d.Text() || got.Seed() != 42 {
		t.Errorf("replayed %q seed %d, want %q seed 42", got.Text(), got.Seed(), d.Text())
	}
	if w, h := got.Sentence().Size(); w != 640 || h != 480 {
		t.Errorf("canvas = %dx%d, want 640x480", w, h)
	}
	if diff := cmp.Diff(draw(d), draw(got)); diff != "" {
		t.Errorf("replay drew differently (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(d.Ops(), got.Ops()); diff != "" {
		t.Errorf("replay ops mismatch (-want +got):\n%s", diff)
	}
}

func TestReplayErrors(t *testing.T) {
	a := alphabet.Default()
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "{"},
		{"unknown op", "version: 1\nseed: 1\nwidth: 800\nheight: 600\nops:\n  - op: jump\n"},
		{"bad index", "version: 1\nseed: 1\nwidth: 800\nheight: 600\nops:\n  - op: remove\n    index: 3\n    n: 1\n"},
		{"unknown rune", "version: 1\nseed: 1\nwidth: 800\nheight: 600\nops:\n  - op: insert\n    text: Q\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Replay(a, []byte(tt.data)); err == nil {
				t.Error("Replay() succeeded")
			}
		})
	}

	_, err := Replay(a, []byte("version: 9\n"))
	if !errors.Is(err, ErrVersion) {
		t.Errorf("Replay(version 9) = %v, want ErrVersion", err)
	}
}

func TestReplayOtherAlphabet(t *testing.T) {
	d := New(alphabet.Default(), 3, 800, 600)
	if err := d.SetText("bad"); err != nil {
		t.Fatal(err)
	}
	data, err := d.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	// Same letters, one more typeable.
	other, err := alphabet.Parse(bytes.Replace(alphabet.DefaultData(), []byte("disabled: [ʔ]"), []byte("disabled: []"), 1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Replay(other, data); !errors.Is(err, ErrAlphabet) {
		t.Errorf("Replay() with another alphabet = %v, want ErrAlphabet", err)
	}

	// Reformatting the alphabet file keeps its fingerprint.
	reformatted, err := alphabet.Parse(bytes.ReplaceAll(alphabet.DefaultData(), []byte("# "), []byte("#  ")))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Replay(reformatted, data); err != nil {
		t.Errorf("Replay() with a reformatted alphabet = %v", err)
	}

	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		t.Fatal(err)
	}
	if r.Alphabet != alphabet.Default().Fingerprint() {
		t.Fatalf("recorded alphabet %q, want %q", r.Alphabet, alphabet.Default().Fingerprint())
	}
	r.Alphabet = ""
	legacy, err := yaml.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Replay(other, legacy); err != nil {
		t.Errorf("Replay() of a journal without alphabet = %v", err)
	}
}
