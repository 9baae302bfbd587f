package preview

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
	"github.com/f3rmion/gallifreyan/internal/geometry"
	"github.com/f3rmion/gallifreyan/internal/render"
	"github.com/f3rmion/gallifreyan/internal/writing"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name                      string
		width, height, cols, rows int
		want                      Layout
	}{
		{"exact", 800, 600, 40, 15, Layout{Cols: 40, Rows: 15, Scale: 0.05}},
		{"wide area", 800, 600, 100, 15, Layout{Cols: 40, Rows: 15, Scale: 0.05}},
		{"tall area", 800, 600, 40, 100, Layout{Cols: 40, Rows: 15, Scale: 0.05}},
		{"no room", 800, 600, 0, 10, Layout{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(tt.width, tt.height, tt.cols, tt.rows)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Fit() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCellMapping(t *testing.T) {
	l := Fit(800, 600, 40, 15)
	p := l.ToCanvas(3, 7)
	if diff := cmp.Diff(geometry.Pt(70, 300), p, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("ToCanvas() mismatch (-want +got):\n%s", diff)
	}
	col, row := l.ToCell(p)
	if col != 3 || row != 7 {
		t.Errorf("ToCell(ToCanvas(3, 7)) = %d, %d", col, row)
	}
	if l.Contains(40, 0) || l.Contains(0, -1) || !l.Contains(39, 14) {
		t.Error("Contains() disagrees with the layout size")
	}
}

func TestBlocksMono(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 4))
	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	for _, p := range []image.Point{{0, 0}, {0, 1}, {1, 0}, {0, 3}} {
		img.Set(p.X, p.Y, white)
	}
	got := Blocks(img, Options{Mono: true, Background: color.Black, Threshold: 40})
	want := "█▀\n▄ "
	if got != want {
		t.Errorf("Blocks() = %q, want %q", got, want)
	}
}

func TestBlocksCursor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	got := Blocks(img, Options{Mono: true, Cursor: image.Pt(1, 0), ShowCursor: true, CursorStyle: lipgloss.NewStyle()})
	if got != " + " {
		t.Errorf("Blocks() = %q, want %q", got, " + ")
	}
}

func TestImage(t *testing.T) {
	s := writing.New(alphabet.Default(), writing.WithSeed(3), writing.WithCanvasSize(800, 600))
	if err := s.Insert(0, "bake"); err != nil {
		t.Fatal(err)
	}
	scheme := render.DefaultScheme()
	l := Fit(800, 600, 40, 15)
	img := Image(s, &scheme, l)
	if got := img.Bounds().Size(); got != image.Pt(40, 30) {
		t.Fatalf("image size = %v, want 40x30", got)
	}

	out := Blocks(img, Options{})
	lines := strings.Split(out, "\n")
	if len(lines) != 15 {
		t.Errorf("got %d lines, want 15", len(lines))
	}
	if n := strings.Count(out, "▀"); n != 40*15 {
		t.Errorf("got %d cells, want %d", n, 40*15)
	}
}
