// Package transliterate turns free text into text the alphabet can write.
// Chinese characters become toneless pinyin.
package transliterate

import (
	"strings"
	"unicode"

	gopinyin "github.com/mozillazg/go-pinyin"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
)

// Transliterator converts Hanzi to pinyin syllables.
type Transliterator struct {
	args      gopinyin.Args
	alphabet  *alphabet.Alphabet
	separator rune
}

// New returns a transliterator writing for a.
func New(a *alphabet.Alphabet) *Transliterator {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Tone // tone marks keep ü intact: lǜ
	return &Transliterator{args: args, alphabet: a, separator: a.Separator}
}

// Syllables returns the toneless pinyin of every Hanzi in s.
func (t *Transliterator) Syllables(s string) []string {
	var out []string
	for _, reading := range gopinyin.Pinyin(s, t.args) {
		if len(reading) > 0 {
			out = append(out, stripTone(reading[0]))
		}
	}
	return out
}

// Text converts every run of Hanzi to pinyin syllables joined by the
// syllable separator, keeps the other runes, lowercases the result and
// drops runes the alphabet does not know.
func (t *Transliterator) Text(s string) string {
	var b strings.Builder
	var run []rune
	flush := func() {
		if len(run) == 0 {
			return
		}
		b.WriteString(strings.Join(t.Syllables(string(run)), string(t.separator)))
		run = run[:0]
	}
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			run = append(run, r)
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()
	return t.alphabet.Filter(strings.ToLower(b.String()))
}

var toneMarks = map[rune]rune{
	'ā': 'a', 'á': 'a', 'ǎ': 'a', 'à': 'a',
	'ē': 'e', 'é': 'e', 'ě': 'e', 'è': 'e',
	'ī': 'i', 'í': 'i', 'ǐ': 'i', 'ì': 'i',
	'ō': 'o', 'ó': 'o', 'ǒ': 'o', 'ò': 'o',
	'ū': 'u', 'ú': 'u', 'ǔ': 'u', 'ù': 'u',
	'ǖ': 'ü', 'ǘ': 'ü', 'ǚ': 'ü', 'ǜ': 'ü',
	'ń': 'n', 'ň': 'n', 'ǹ': 'n', 'ḿ': 'm',
}

// stripTone removes tone marks from a pinyin syllable.
func stripTone(syllable string) string {
	return strings.Map(func(r rune) rune {
		if base, ok := toneMarks[r]; ok {
			return base
		}
		return r
	}, syllable)
}
