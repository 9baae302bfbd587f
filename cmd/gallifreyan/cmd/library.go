package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/f3rmion/gallifreyan/internal/export"
	"github.com/f3rmion/gallifreyan/internal/journal"
	"github.com/f3rmion/gallifreyan/internal/store"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Work with saved compositions",
	Long: `Commands for the composition library. Compositions are saved from the
editor with ctrl+s and keep every edit, so an export rebuilds the exact
layout that was saved.`,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved compositions",
	Args:  cobra.NoArgs,
	RunE:  runLibraryList,
}

var libraryShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a saved composition",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryShow,
}

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved composition",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryDelete,
}

var libraryExportCmd = &cobra.Command{
	Use:   "export <name> <file>",
	Short: "Export a saved composition as PNG or GIF",
	Long: `Rebuild a saved composition and write it to file. The extension picks
the format.

Examples:
  gallifreyan library export tardis tardis.png
  gallifreyan library export tardis tardis.gif --caption "tardis"`,
	Args: cobra.ExactArgs(2),
	RunE: runLibraryExport,
}

var (
	libraryExportCaption string
	libraryExportScale   float64
)

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryListCmd, libraryShowCmd, libraryDeleteCmd, libraryExportCmd)
	libraryExportCmd.Flags().StringVar(&libraryExportCaption, "caption", "", "Caption printed below the glyphs")
	libraryExportCmd.Flags().Float64Var(&libraryExportScale, "scale", 1, "Output scale")
}

// withStore runs fn against the configured library.
func withStore(fn func(ctx context.Context, st *store.Store) error) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg, newLogger(os.Stderr))
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(context.Background(), st)
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	return withStore(func(ctx context.Context, st *store.Store) error {
		items, err := st.List(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("Library is empty. Save a composition from the editor with ctrl+s.")
			return nil
		}
		rows := make([][]string, 0, len(items))
		for _, c := range items {
			rows = append(rows, []string{c.Name, runewidth.Truncate(c.Text, 40, "…"), c.Updated.Format("2006-01-02 15:04")})
		}
		fmt.Println(newTable().
			Headers("name", "text", "updated").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return alphabetHeaderStyle
				}
				return alphabetCellStyle
			}).
			String())
		return nil
	})
}

func runLibraryShow(cmd *cobra.Command, args []string) error {
	_, a, err := loadConfig()
	if err != nil {
		return err
	}
	return withStore(func(ctx context.Context, st *store.Store) error {
		c, err := st.Get(ctx, args[0])
		if err != nil {
			return libraryError(args[0], err)
		}
		doc, err := journal.Replay(a, c.Journal)
		if err != nil {
			return fmt.Errorf("rebuilding %q: %w", c.Name, err)
		}

		counts := make(map[string]int)
		for _, op := range doc.Ops() {
			counts[op.Kind]++
		}
		s := doc.Sentence()
		fmt.Printf("Name:     %s\n", c.Name)
		fmt.Printf("Text:     %s\n", c.Text)
		fmt.Printf("Created:  %s\n", c.Created.Format("2006-01-02 15:04"))
		fmt.Printf("Updated:  %s\n", c.Updated.Format("2006-01-02 15:04"))
		fmt.Printf("Seed:     %d\n", doc.Seed())
		fmt.Printf("Layout:   %d words, %d numbers, %d punctuation\n", len(s.Words()), len(s.Numbers()), len(s.Punctuation()))
		fmt.Printf("Journal:  %d edits, %d drags, %d animation steps\n",
			counts[journal.OpInsert]+counts[journal.OpRemove], counts[journal.OpPress], counts[journal.OpAnimate])
		return nil
	})
}

func runLibraryDelete(cmd *cobra.Command, args []string) error {
	return withStore(func(ctx context.Context, st *store.Store) error {
		if err := st.Delete(ctx, args[0]); err != nil {
			return libraryError(args[0], err)
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	})
}

func runLibraryExport(cmd *cobra.Command, args []string) error {
	name, path := args[0], args[1]
	if _, err := export.FileFormat(path); err != nil {
		return err
	}
	if libraryExportScale <= 0 {
		return fmt.Errorf("invalid scale %g", libraryExportScale)
	}
	cfg, a, err := loadConfig()
	if err != nil {
		return err
	}
	scheme, err := loadScheme(cfg)
	if err != nil {
		return err
	}
	return withStore(func(ctx context.Context, st *store.Store) error {
		c, err := st.Get(ctx, name)
		if err != nil {
			return libraryError(name, err)
		}
		doc, err := journal.Replay(a, c.Journal)
		if err != nil {
			return fmt.Errorf("rebuilding %q: %w", c.Name, err)
		}
		opts := export.Options{Scale: libraryExportScale, Caption: libraryExportCaption, Logger: newLogger(os.Stderr)}
		if libraryExportCaption != "" {
			opts.Face = export.CaptionFace()
		}
		if err := export.File(ctx, path, doc.Sentence(), &scheme, cfg.Animation, opts); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	})
}

func libraryError(name string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no composition named %q (see 'gallifreyan library list')", name)
	}
	return err
}
