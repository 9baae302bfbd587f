// Package alphabet loads the character repository that maps runes to glyph
// descriptions.
package alphabet

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultData []byte

// Kind classifies a character.
type Kind int

const (
	KindSpace Kind = iota + 1
	KindConsonant
	KindVowel
	KindSeparator
	KindDigit
	KindNumberMark
	KindPunctuation
)

var kindNames = map[Kind]string{
	KindSpace:       "space",
	KindConsonant:   "consonant",
	KindVowel:       "vowel",
	KindSeparator:   "separator",
	KindDigit:       "digit",
	KindNumberMark:  "number mark",
	KindPunctuation: "punctuation",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Group is the token group a character belongs to. Consecutive characters of
// the same group form one token of a sentence.
type Group int

const (
	GroupSpace Group = iota + 1
	GroupWord
	GroupNumber
	GroupPunctuation
)

func (g Group) String() string {
	switch g {
	case GroupSpace:
		return "space"
	case GroupWord:
		return "word"
	case GroupNumber:
		return "number"
	case GroupPunctuation:
		return "punctuation"
	}
	return fmt.Sprintf("Group(%d)", int(g))
}

// Group returns the token group of the kind.
func (k Kind) Group() Group {
	switch k {
	case KindSpace:
		return GroupSpace
	case KindConsonant, KindVowel, KindSeparator:
		return GroupWord
	case KindDigit, KindNumberMark:
		return GroupNumber
	case KindPunctuation:
		return GroupPunctuation
	}
	return 0
}

// Type codes.
var (
	ConsonantTypes = []string{"sa", "oa", "ra", "bl", "rl", "dl", "cr", "md", "dd", "hd", "sd"}
	VowelTypes     = []string{"l", "w", "o", "c", "h"}
	DigitTypes     = []string{"c", "l"}
)

// Entry describes one typeable character.
type Entry struct {
	Symbol  rune
	Kind    Kind
	Borders string
	Type    string
}

// Table is a letter grid: row i uses Borders[i], column j uses Types[j].
type Table struct {
	Borders  []string   `yaml:"borders"`
	Types    []string   `yaml:"types"`
	Letters  [][]string `yaml:"letters"`
	Disabled []string   `yaml:"disabled"`
}

// SymbolEntry is a listed character outside the letter tables.
type SymbolEntry struct {
	Symbol  string `yaml:"symbol"`
	Borders string `yaml:"borders"`
	Type    string `yaml:"type,omitempty"`
}

// File is the YAML layout of an alphabet file.
type File struct {
	Separator   string        `yaml:"separator"`
	Space       string        `yaml:"space"`
	Minus       string        `yaml:"minus"`
	Consonants  Table         `yaml:"consonants"`
	Vowels      Table         `yaml:"vowels"`
	Digits      []SymbolEntry `yaml:"digits"`
	NumberMarks []SymbolEntry `yaml:"number_marks"`
	Punctuation []SymbolEntry `yaml:"punctuation"`
}

// Alphabet is a loaded character repository.
type Alphabet struct {
	Separator rune
	Space     rune
	Minus     rune

	entries    map[rune]Entry
	consonants Table
	vowels     Table
	file       File

	fingerprint string
}

// UnknownRuneError reports a rune the alphabet cannot write.
type UnknownRuneError struct {
	Rune     rune
	Position int
}

func (e *UnknownRuneError) Error() string {
	return fmt.Sprintf("unknown character %q at position %d", e.Rune, e.Position)
}

// Default returns the embedded alphabet.
func Default() *Alphabet {
	a, err := Parse(defaultData)
	if err != nil {
		panic(fmt.Sprintf("alphabet: invalid embedded default: %v", err))
	}
	return a
}

// DefaultData returns the embedded alphabet file.
func DefaultData() []byte {
	return slices.Clone(defaultData)
}

// Load reads an alphabet from a YAML file.
func Load(path string) (*Alphabet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading alphabet file: %w", err)
	}
	a, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing alphabet file: %w", err)
	}
	return a, nil
}

// Parse builds an alphabet from YAML data.
func Parse(data []byte) (*Alphabet, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}

	a := &Alphabet{
		entries:    make(map[rune]Entry),
		consonants: f.Consonants,
		vowels:     f.Vowels,
		file:       f,
	}

	var err error
	if a.Separator, err = singleRune("separator", f.Separator, '-'); err != nil {
		return nil, err
	}
	if a.Space, err = singleRune("space", f.Space, ' '); err != nil {
		return nil, err
	}
	if a.Minus, err = singleRune("minus", f.Minus, '~'); err != nil {
		return nil, err
	}

	if err := a.add(Entry{Symbol: a.Space, Kind: KindSpace}); err != nil {
		return nil, err
	}
	if err := a.add(Entry{Symbol: a.Separator, Kind: KindSeparator}); err != nil {
		return nil, err
	}
	if err := a.addTable("consonants", f.Consonants, KindConsonant, ConsonantTypes); err != nil {
		return nil, err
	}
	if err := a.addTable("vowels", f.Vowels, KindVowel, VowelTypes); err != nil {
		return nil, err
	}
	if err := a.addList("digits", f.Digits, KindDigit, DigitTypes); err != nil {
		return nil, err
	}
	if err := a.addList("number_marks", f.NumberMarks, KindNumberMark, nil); err != nil {
		return nil, err
	}
	if err := a.addList("punctuation", f.Punctuation, KindPunctuation, nil); err != nil {
		return nil, err
	}

	if e, ok := a.entries[a.Minus]; !ok || e.Kind != KindNumberMark {
		return nil, fmt.Errorf("minus sign %q is not listed under number_marks", a.Minus)
	}

	// Hash the re-encoded file so comments and formatting do not count.
	encoded, err := a.Marshal()
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(encoded)
	a.fingerprint = hex.EncodeToString(sum[:8])
	return a, nil
}

// Fingerprint identifies the letters, tables and special runes of the
// alphabet. Alphabets that write the same way share a fingerprint.
func (a *Alphabet) Fingerprint() string { return a.fingerprint }

func singleRune(name, s string, fallback rune) (rune, error) {
	if s == "" {
		return fallback, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s %q must be a single character", name, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func validBorders(borders string) bool {
	if borders == "" {
		return false
	}
	for _, c := range borders {
		if c != '1' && c != '2' {
			return false
		}
	}
	return true
}

func (a *Alphabet) add(e Entry) error {
	if prev, ok := a.entries[e.Symbol]; ok {
		return fmt.Errorf("duplicate symbol %q (%s and %s)", e.Symbol, prev.Kind, e.Kind)
	}
	a.entries[e.Symbol] = e
	return nil
}

func (a *Alphabet) addTable(name string, t Table, kind Kind, types []string) error {
	for _, b := range t.Borders {
		if !validBorders(b) {
			return fmt.Errorf("%s: invalid border string %q", name, b)
		}
	}
	for _, typ := range t.Types {
		if !slices.Contains(types, typ) {
			return fmt.Errorf("%s: unknown type code %q", name, typ)
		}
	}
	if len(t.Letters) > len(t.Borders) {
		return fmt.Errorf("%s: %d rows but %d border strings", name, len(t.Letters), len(t.Borders))
	}

	disabled := make(map[string]bool, len(t.Disabled))
	for _, d := range t.Disabled {
		disabled[d] = true
	}

	for i, row := range t.Letters {
		if len(row) > len(t.Types) {
			return fmt.Errorf("%s: row %d has %d cells but %d types", name, i, len(row), len(t.Types))
		}
		for j, cell := range row {
			if cell == "" {
				continue
			}
			if utf8.RuneCountInString(cell) != 1 {
				return fmt.Errorf("%s: cell %q must be a single character", name, cell)
			}
			if disabled[cell] {
				continue
			}
			r, _ := utf8.DecodeRuneInString(cell)
			if err := a.add(Entry{Symbol: r, Kind: kind, Borders: t.Borders[i], Type: t.Types[j]}); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return nil
}

func (a *Alphabet) addList(name string, list []SymbolEntry, kind Kind, types []string) error {
	for _, s := range list {
		if utf8.RuneCountInString(s.Symbol) != 1 {
			return fmt.Errorf("%s: symbol %q must be a single character", name, s.Symbol)
		}
		if !validBorders(s.Borders) {
			return fmt.Errorf("%s: invalid border string %q for %q", name, s.Borders, s.Symbol)
		}
		if types != nil && !slices.Contains(types, s.Type) {
			return fmt.Errorf("%s: unknown type code %q for %q", name, s.Type, s.Symbol)
		}
		r, _ := utf8.DecodeRuneInString(s.Symbol)
		if err := a.add(Entry{Symbol: r, Kind: kind, Borders: s.Borders, Type: s.Type}); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// Lookup returns the entry for r.
func (a *Alphabet) Lookup(r rune) (Entry, bool) {
	e, ok := a.entries[r]
	return e, ok
}

// Validate reports the first rune of text the alphabet does not know.
// Position counts runes, not bytes.
func (a *Alphabet) Validate(text string) error {
	i := 0
	for _, r := range text {
		if _, ok := a.entries[r]; !ok {
			return &UnknownRuneError{Rune: r, Position: i}
		}
		i++
	}
	return nil
}

// Filter drops every rune the alphabet does not know.
func (a *Alphabet) Filter(text string) string {
	var b strings.Builder
	for _, r := range text {
		if _, ok := a.entries[r]; ok {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Consonants returns the consonant table.
func (a *Alphabet) Consonants() Table {
	return cloneTable(a.consonants)
}

// Vowels returns the vowel table.
func (a *Alphabet) Vowels() Table {
	return cloneTable(a.vowels)
}

// Entries returns every typeable character ordered by kind, then symbol.
func (a *Alphabet) Entries() []Entry {
	out := make([]Entry, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(x, y Entry) int {
		if x.Kind != y.Kind {
			return int(x.Kind) - int(y.Kind)
		}
		return int(x.Symbol) - int(y.Symbol)
	})
	return out
}

// OfKind returns the entries of one kind in symbol order.
func (a *Alphabet) OfKind(kind Kind) []Entry {
	var out []Entry
	for _, e := range a.Entries() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Marshal encodes the alphabet back to YAML.
func (a *Alphabet) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(a.file)
	if err != nil {
		return nil, fmt.Errorf("marshaling alphabet: %w", err)
	}
	return data, nil
}

func cloneTable(t Table) Table {
	letters := make([][]string, len(t.Letters))
	for i, row := range t.Letters {
		letters[i] = slices.Clone(row)
	}
	return Table{
		Borders:  slices.Clone(t.Borders),
		Types:    slices.Clone(t.Types),
		Letters:  letters,
		Disabled: slices.Clone(t.Disabled),
	}
}
