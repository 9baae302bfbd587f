package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
	"github.com/f3rmion/gallifreyan/internal/config"
	"github.com/f3rmion/gallifreyan/internal/export"
	"github.com/f3rmion/gallifreyan/internal/transliterate"
	"github.com/f3rmion/gallifreyan/internal/writing"
)

var renderCmd = &cobra.Command{
	Use:   "render <text>",
	Short: "Render a sentence to a PNG image",
	Long: `Lay out a sentence and write the result as a PNG image.

Arguments are joined with spaces. Runes the alphabet cannot write are
rejected unless --pinyin is given, which turns Hanzi into pinyin first
and drops everything else the alphabet does not know.

Examples:
  gallifreyan render "doctor who" -o doctor.png
  gallifreyan render 你好 --pinyin --caption "ni-hao"
  gallifreyan render "bad wolf" --seed 42 --scale 0.5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

// Flags shared by render and animate.
type sentenceFlags struct {
	output  string
	caption string
	scale   float64
	seed    uint64
	pinyin  bool
}

var renderFlags sentenceFlags

func init() {
	rootCmd.AddCommand(renderCmd)
	addSentenceFlags(renderCmd, &renderFlags, "gallifreyan.png")
}

func addSentenceFlags(c *cobra.Command, f *sentenceFlags, output string) {
	c.Flags().StringVarP(&f.output, "output", "o", output, "Output file")
	c.Flags().StringVar(&f.caption, "caption", "", "Caption printed below the glyphs")
	c.Flags().Float64Var(&f.scale, "scale", 1, "Output scale")
	c.Flags().Uint64Var(&f.seed, "seed", 0, "Layout seed (0 uses the configured seed, or a random one)")
	c.Flags().BoolVar(&f.pinyin, "pinyin", false, "Transliterate Hanzi to pinyin")
}

func runRender(cmd *cobra.Command, args []string) error {
	return exportSentence(cmd.Context(), args, renderFlags, nil)
}

// exportSentence lays out the arguments and writes them to f.output. adjust,
// when set, overrides settings before the export.
func exportSentence(ctx context.Context, args []string, f sentenceFlags, adjust func(config.Config) config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, a, err := loadConfig()
	if err != nil {
		return err
	}
	if adjust != nil {
		cfg = adjust(cfg)
	}
	scheme, err := loadScheme(cfg)
	if err != nil {
		return err
	}
	if f.scale <= 0 {
		return fmt.Errorf("invalid scale %g", f.scale)
	}
	if _, err := export.FileFormat(f.output); err != nil {
		return err
	}

	text := strings.Join(args, " ")
	if f.pinyin {
		text = transliterate.New(a).Text(text)
	}
	if f.seed == 0 {
		f.seed = cfg.Seed
	}
	s, err := newSentence(a, cfg, f.seed, text)
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr)
	opts := export.Options{Scale: f.scale, Caption: f.caption, Logger: logger}
	if f.caption != "" {
		opts.Face = export.CaptionFace()
	}
	if err := export.File(ctx, f.output, s, &scheme, cfg.Animation, opts); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", f.output)
	return nil
}

// newSentence lays out text on the configured canvas. A zero seed picks a
// random layout.
func newSentence(a *alphabet.Alphabet, cfg config.Config, seed uint64, text string) (*writing.Sentence, error) {
	opts := []writing.Option{writing.WithCanvasSize(cfg.Canvas.Width, cfg.Canvas.Height)}
	if seed != 0 {
		opts = append(opts, writing.WithSeed(seed))
	}
	s := writing.New(a, opts...)
	if err := s.Insert(0, text); err != nil {
		var unknown *alphabet.UnknownRuneError
		if errors.As(err, &unknown) {
			return nil, fmt.Errorf("%w (try --pinyin for Chinese text)", err)
		}
		return nil, fmt.Errorf("laying out %q: %w", text, err)
	}
	if s.Len() == 0 {
		return nil, errors.New("nothing to write")
	}
	return s, nil
}
