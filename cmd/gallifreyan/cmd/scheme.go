package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/gallifreyan/internal/config"
	"github.com/f3rmion/gallifreyan/internal/render"
)

var schemeCmd = &cobra.Command{
	Use:   "scheme",
	Short: "Show or change the colour scheme",
	Long: `Show or change the colours used by the editor and the exporters.

Colour names: canvas_bg, word_bg, syllable_bg, word, syllable, vowel, dot.

Examples:
  gallifreyan scheme show
  gallifreyan scheme set word "#ffcc00"
  gallifreyan scheme reset`,
}

var schemeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current colours",
	Args:  cobra.NoArgs,
	RunE:  runSchemeShow,
}

var schemeSetCmd = &cobra.Command{
	Use:   "set <name> <hex>",
	Short: "Change one colour",
	Args:  cobra.ExactArgs(2),
	RunE:  runSchemeSet,
}

var schemeResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the built-in colours",
	Args:  cobra.NoArgs,
	RunE:  runSchemeReset,
}

func init() {
	rootCmd.AddCommand(schemeCmd)
	schemeCmd.AddCommand(schemeShowCmd, schemeSetCmd, schemeResetCmd)
}

// schemePath returns the configured scheme file.
func schemePath() (string, error) {
	cfg, err := config.FromViper(viper.GetViper(), getConfigDir())
	if err != nil {
		return "", err
	}
	if cfg.Scheme == "" {
		return "", errors.New("no scheme file configured")
	}
	return cfg.Scheme, nil
}

func runSchemeShow(cmd *cobra.Command, args []string) error {
	path, err := schemePath()
	if err != nil {
		return err
	}
	scheme, err := config.LoadSchemeOrDefault(path)
	if err != nil {
		return err
	}
	fmt.Printf("Scheme: %s\n\n", path)
	for _, name := range render.SchemeKeys {
		c, _ := scheme.Get(name)
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("    ")
		fmt.Printf("  %-12s %s %s\n", name, swatch, c.Hex())
	}
	return nil
}

func runSchemeSet(cmd *cobra.Command, args []string) error {
	path, err := schemePath()
	if err != nil {
		return err
	}
	scheme, err := config.LoadSchemeOrDefault(path)
	if err != nil {
		return err
	}
	if err := scheme.Set(args[0], args[1]); err != nil {
		return err
	}
	if err := saveScheme(path, scheme); err != nil {
		return err
	}
	c, _ := scheme.Get(args[0])
	fmt.Printf("Set %s to %s in %s\n", args[0], c.Hex(), path)
	return nil
}

func runSchemeReset(cmd *cobra.Command, args []string) error {
	path, err := schemePath()
	if err != nil {
		return err
	}
	if err := saveScheme(path, render.DefaultScheme()); err != nil {
		return err
	}
	fmt.Printf("Reset colours in %s\n", path)
	return nil
}

func saveScheme(path string, scheme render.Scheme) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return config.SaveScheme(path, scheme)
}
