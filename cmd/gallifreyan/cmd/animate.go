package cmd

import (
	"github.com/spf13/cobra"

	"github.com/f3rmion/gallifreyan/internal/config"
)

var animateCmd = &cobra.Command{
	Use:   "animate <text>",
	Short: "Render a turning sentence to an animated GIF",
	Long: `Lay out a sentence and write one full turn of its animation as a
looping GIF. --cycle sets the frames of one turn and --delay the
milliseconds between frames; both are snapped to their steps.

Examples:
  gallifreyan animate "allons-y" -o allons.gif
  gallifreyan animate "geronimo" --cycle 90 --delay 150`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnimate,
}

var (
	animateFlags sentenceFlags
	animateCycle int
	animateDelay int
)

func init() {
	rootCmd.AddCommand(animateCmd)
	addSentenceFlags(animateCmd, &animateFlags, "gallifreyan.gif")
	animateCmd.Flags().IntVar(&animateCycle, "cycle", 0, "Frames per turn (0 uses the configured value)")
	animateCmd.Flags().IntVar(&animateDelay, "delay", 0, "Milliseconds between frames (0 uses the configured value)")
}

func runAnimate(cmd *cobra.Command, args []string) error {
	return exportSentence(cmd.Context(), args, animateFlags, func(cfg config.Config) config.Config {
		if animateCycle != 0 {
			cfg.Animation.Cycle = animateCycle
		}
		if animateDelay != 0 {
			cfg.Animation.Delay = animateDelay
		}
		cfg.Animation = cfg.Animation.Normalize()
		return cfg
	})
}
