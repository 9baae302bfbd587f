// Package preview draws sentences as half-block terminal art.
//
// Every terminal cell shows two vertical pixels: the upper one as the
// foreground of '▀' and the lower one as its background.
package preview

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"

	"github.com/f3rmion/gallifreyan/internal/geometry"
	"github.com/f3rmion/gallifreyan/internal/render"
	"github.com/f3rmion/gallifreyan/internal/writing"
)

// oversample is how many canvas pixels are averaged into one preview pixel.
const oversample = 2

// Layout maps a canvas onto a block of terminal cells.
type Layout struct {
	Cols, Rows int
	// Scale is preview pixels per canvas unit.
	Scale float64
}

// Fit returns the largest layout of at most cols x rows cells that keeps
// the aspect ratio of a width x height canvas.
func Fit(width, height, cols, rows int) Layout {
	if width <= 0 || height <= 0 || cols <= 0 || rows <= 0 {
		return Layout{}
	}
	scale := min(float64(cols)/float64(width), float64(2*rows)/float64(height))
	return Layout{
		Cols:  max(int(float64(width)*scale), 1),
		Rows:  max(int(math.Ceil(float64(height)*scale/2-1e-9)), 1),
		Scale: scale,
	}
}

// Empty reports whether the layout has no cells.
func (l Layout) Empty() bool { return l.Cols == 0 || l.Rows == 0 }

// ToCanvas returns the canvas point under the middle of a cell.
func (l Layout) ToCanvas(col, row int) geometry.Point {
	if l.Scale == 0 {
		return geometry.Point{}
	}
	return geometry.Pt((float64(col)+0.5)/l.Scale, float64(2*row+1)/l.Scale)
}

// ToCell returns the cell containing p.
func (l Layout) ToCell(p geometry.Point) (col, row int) {
	return int(math.Floor(p.X * l.Scale)), int(math.Floor(p.Y * l.Scale / 2))
}

// Contains reports whether the cell lies inside the layout.
func (l Layout) Contains(col, row int) bool {
	return col >= 0 && row >= 0 && col < l.Cols && row < l.Rows
}

// Image draws s at preview resolution, two pixels per cell row.
func Image(s *writing.Sentence, scheme *render.Scheme, l Layout) image.Image {
	if l.Empty() {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	canvas := render.NewCanvas(l.Cols*oversample, 2*l.Rows*oversample)
	s.Draw(render.Scaled(canvas, l.Scale*oversample), scheme)
	return imaging.Resize(canvas.Image(), l.Cols, 2*l.Rows, imaging.Box)
}

// Options tunes Blocks.
type Options struct {
	// Mono draws with block characters only, lighting the pixels that
	// differ from Background by more than Threshold.
	Mono       bool
	Background color.Color
	Threshold  uint8

	// Cursor is highlighted with CursorStyle when ShowCursor is set.
	Cursor      image.Point
	ShowCursor  bool
	CursorStyle lipgloss.Style
}

// Blocks converts img to lines of half-block cells.
func Blocks(img image.Image, opts Options) string {
	b := img.Bounds()
	rows := (b.Dy() + 1) / 2
	styles := make(map[[2]string]lipgloss.Style)

	var out strings.Builder
	for row := range rows {
		for col := range b.Dx() {
			top := pixel(img, b.Min.X+col, b.Min.Y+2*row)
			bottom := pixel(img, b.Min.X+col, b.Min.Y+2*row+1)

			if opts.ShowCursor && opts.Cursor == image.Pt(col, row) {
				out.WriteString(opts.CursorStyle.Render("+"))
				continue
			}
			if opts.Mono {
				out.WriteRune(monoBlock(lit(top, opts), lit(bottom, opts)))
				continue
			}
			key := [2]string{hex(top), hex(bottom)}
			style, ok := styles[key]
			if !ok {
				style = lipgloss.NewStyle().
					Foreground(lipgloss.Color(key[0])).
					Background(lipgloss.Color(key[1]))
				styles[key] = style
			}
			out.WriteString(style.Render("▀"))
		}
		if row < rows-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

func monoBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	}
	return ' '
}

func pixel(img image.Image, x, y int) color.Color {
	if !image.Pt(x, y).In(img.Bounds()) {
		return color.Transparent
	}
	return img.At(x, y)
}

func lit(c color.Color, opts Options) bool {
	bg := opts.Background
	if bg == nil {
		bg = color.Black
	}
	d := int(luma(c)) - int(luma(bg))
	return d > int(opts.Threshold) || -d > int(opts.Threshold)
}

func luma(c color.Color) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y
}

func hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return render.Color{R: n.R, G: n.G, B: n.B, A: 0xff}.Hex()
}
