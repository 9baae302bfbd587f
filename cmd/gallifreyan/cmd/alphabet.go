package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
)

var alphabetCmd = &cobra.Command{
	Use:   "alphabet",
	Short: "Show the characters the alphabet can write",
	Long: `Print the consonant and vowel tables and the digits, number marks and
punctuation of the configured alphabet.

Table rows are border styles, columns are letter types.`,
	Args: cobra.NoArgs,
	RunE: runAlphabet,
}

var (
	alphabetTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	alphabetHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ecdc4")).Padding(0, 1)
	alphabetCellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f1faee")).Padding(0, 1)
	alphabetMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Padding(0, 1)
	alphabetBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3d5a80"))
)

func init() {
	rootCmd.AddCommand(alphabetCmd)
}

func runAlphabet(cmd *cobra.Command, args []string) error {
	_, a, err := loadConfig()
	if err != nil {
		return err
	}
	fmt.Println(alphabetView(a))
	return nil
}

// alphabetView renders every table of a.
func alphabetView(a *alphabet.Alphabet) string {
	var b strings.Builder
	section := func(title, body string) {
		b.WriteString(alphabetTitleStyle.Render(title))
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n\n")
	}

	section("Consonants", letterTable(a.Consonants()))
	section("Vowels", letterTable(a.Vowels()))
	for _, kind := range []alphabet.Kind{alphabet.KindDigit, alphabet.KindNumberMark, alphabet.KindPunctuation} {
		entries := a.OfKind(kind)
		if len(entries) == 0 {
			continue
		}
		section(strings.ToUpper(kind.String()[:1])+kind.String()[1:], symbolTable(entries))
	}
	fmt.Fprintf(&b, "separator %q  space %q  minus %q", a.Separator, a.Space, a.Minus)
	return b.String()
}

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(alphabetBorderStyle)
}

// letterTable renders a border-by-type grid. Empty and disabled cells are
// dimmed.
func letterTable(t alphabet.Table) string {
	disabled := make(map[string]bool, len(t.Disabled))
	for _, d := range t.Disabled {
		disabled[d] = true
	}

	headers := append([]string{"borders"}, t.Types...)
	rows := make([][]string, 0, len(t.Borders))
	for i, borders := range t.Borders {
		row := []string{borders}
		for j := range t.Types {
			cell := "·"
			if i < len(t.Letters) && j < len(t.Letters[i]) && t.Letters[i][j] != "" {
				cell = t.Letters[i][j]
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}

	return newTable().
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return alphabetHeaderStyle
			case col == 0 || row >= len(rows) || col >= len(rows[row]):
				return alphabetMutedStyle
			}
			cell := rows[row][col]
			if cell == "·" || disabled[cell] {
				return alphabetMutedStyle
			}
			return alphabetCellStyle
		}).
		String()
}

func symbolTable(entries []alphabet.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{string(e.Symbol), e.Borders, e.Type})
	}
	return newTable().
		Headers("symbol", "borders", "type").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return alphabetHeaderStyle
			}
			return alphabetCellStyle
		}).
		String()
}
