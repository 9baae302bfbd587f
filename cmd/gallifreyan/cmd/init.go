package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/f3rmion/gallifreyan/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize gallifreyan configuration",
	Long: `Initialize configuration files in your config directory.

This creates template YAML files for:
  - config.yaml    (canvas size, animation, seed, file locations)
  - alphabet.yaml  (the letter tables, digits, marks and punctuation)
  - scheme.yaml    (the colour scheme)

Existing files are kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()

	fmt.Printf("Initializing gallifreyan configuration in %s\n\n", configDir)

	written, err := config.WriteTemplates(configDir, force)
	for _, path := range written {
		fmt.Printf("  Created %s\n", filepath.Base(path))
	}
	if err != nil {
		return err
	}
	if len(written) == 0 {
		fmt.Println("  Nothing to do, every file exists. Use --force to overwrite.")
		return nil
	}

	cfg, err := config.Load(filepath.Join(configDir, config.ConfigFile))
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("  Canvas %dx%d, one turn in %d frames of %d ms\n",
		cfg.Canvas.Width, cfg.Canvas.Height, cfg.Animation.Cycle, cfg.Animation.Delay)

	fmt.Println()
	fmt.Println("Configuration initialized!")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Edit alphabet.yaml to change letters or scheme.yaml to change colours")
	fmt.Println("  2. Run 'gallifreyan render <text>' to write a PNG")
	fmt.Println("  3. Run 'gallifreyan' to open the editor")

	return nil
}
