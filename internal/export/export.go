// Package export writes sentences as PNG images and animated GIFs.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/f3rmion/gallifreyan/internal/animation"
	"github.com/f3rmion/gallifreyan/internal/render"
	"github.com/f3rmion/gallifreyan/internal/writing"
)

// ErrUnsupportedFormat is returned for file names that are neither PNG nor GIF.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format is an export file format.
type Format int

const (
	PNG Format = iota
	GIF
)

func (f Format) String() string {
	if f == GIF {
		return "gif"
	}
	return "png"
}

// FileFormat picks the format from the extension of path.
func FileFormat(path string) (Format, error) {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	switch f {
	case imaging.PNG:
		return PNG, nil
	case imaging.GIF:
		return GIF, nil
	}
	return 0, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

// Options tunes an export.
type Options struct {
	// Scale resizes the output; 0 and 1 keep the canvas size.
	Scale float64
	// Caption is printed below the glyphs when set.
	Caption string
	// Face draws the caption; nil uses the built-in 7x13 bitmap face.
	Face   font.Face
	Logger *log.Logger
}

func (o Options) face() font.Face {
	if o.Face != nil {
		return o.Face
	}
	return basicfont.Face7x13
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// Frame renders the current state of s.
func Frame(s *writing.Sentence, scheme *render.Scheme, opts Options) image.Image {
	w, h := s.Size()
	canvas := render.NewCanvas(w, h)
	s.Draw(canvas, scheme)

	img := canvas.Image()
	if opts.Caption != "" {
		drawCaption(img, opts.face(), opts.Caption, scheme.Word)
	}
	if opts.Scale > 0 && opts.Scale != 1 {
		width := max(int(float64(w)*opts.Scale), 1)
		return imaging.Resize(img, width, 0, imaging.Lanczos)
	}
	return img
}

func drawCaption(img draw.Image, face font.Face, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
	}
	b := img.Bounds()
	width := d.MeasureString(text)
	d.Dot = fixed.Point26_6{
		X: (fixed.I(b.Dx()) - width) / 2,
		Y: fixed.I(b.Max.Y-8) - face.Metrics().Descent,
	}
	d.DrawString(text)
}

// WritePNG encodes the current frame.
func WritePNG(w io.Writer, s *writing.Sentence, scheme *render.Scheme, opts Options) error {
	if err := imaging.Encode(w, Frame(s, scheme, opts), imaging.PNG); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	opts.logger().Debug("exported png", "text", s.Text())
	return nil
}

// WriteGIF encodes one full animation cycle. Every frame is drawn after one
// animation step; s is back in its starting layout when WriteGIF returns,
// also after ctx is cancelled.
func WriteGIF(ctx context.Context, w io.Writer, s *writing.Sentence, scheme *render.Scheme, settings animation.Settings, opts Options) error {
	settings = settings.Normalize()
	logger := opts.logger()
	pal := Palette(scheme)
	angle := settings.Angle()

	anim := &gif.GIF{LoopCount: 0}
	for i := range settings.Cycle {
		if err := ctx.Err(); err != nil {
			for range settings.Cycle - i {
				s.Animate(angle)
			}
			return fmt.Errorf("exporting gif: %w", err)
		}
		s.Animate(angle)
		frame := Frame(s, scheme, opts)
		p := image.NewPaletted(frame.Bounds(), pal)
		draw.Draw(p, p.Rect, frame, frame.Bounds().Min, draw.Src)
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, settings.GIFDelay())
		if (i+1)%30 == 0 {
			logger.Debug("rendered frames", "done", i+1, "total", settings.Cycle)
		}
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("encoding gif: %w", err)
	}
	logger.Debug("exported gif", "text", s.Text(), "frames", settings.Cycle)
	return nil
}

// Palette returns the scheme colours followed by evenly spaced blends of
// every pair, at most 256 entries.
func Palette(scheme *render.Scheme) color.Palette {
	base := scheme.Colors()
	pal := make(color.Palette, 0, 256)
	for _, c := range base {
		pal = append(pal, c)
	}
	pairs := len(base) * (len(base) - 1) / 2
	if pairs == 0 {
		return pal
	}
	steps := (256-len(base))/pairs + 1
	for i := range base {
		for j := i + 1; j < len(base); j++ {
			for k := 1; k < steps; k++ {
				pal = append(pal, render.Blend(base[i], base[j], float64(k)/float64(steps)))
			}
		}
	}
	return pal
}

// File writes s to path in the format its extension names.
func File(ctx context.Context, path string, s *writing.Sentence, scheme *render.Scheme, settings animation.Settings, opts Options) (err error) {
	format, err := FileFormat(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	opts.logger().Info("exporting", "path", path, "format", format)
	if format == GIF {
		return WriteGIF(ctx, f, s, scheme, settings, opts)
	}
	return WritePNG(f, s, scheme, opts)
}
