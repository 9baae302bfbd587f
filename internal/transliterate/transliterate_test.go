package transliterate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
)

func TestStripTone(t *testing.T) {
	tests := map[string]string{
		"hǎo":   "hao",
		"zhōng": "zhong",
		"lǜ":    "lü",
		"de":    "de",
	}
	for in, want := range tests {
		if got := stripTone(in); got != want {
			t.Errorf("stripTone(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSyllables(t *testing.T) {
	tr := New(alphabet.Default())
	if diff := cmp.Diff([]string{"ni", "hao"}, tr.Syllables("你好")); diff != "" {
		t.Errorf("Syllables() mismatch (-want +got):\n%s", diff)
	}
}

func TestText(t *testing.T) {
	tr := New(alphabet.Default())
	tests := []struct {
		in, want string
	}{
		{"你好", "ni-hao"},
		{"你好 世界", "ni-hao shi-jie"},
		{"Doctor Who", "doctor who"},
		{"a1绿", "a1lü"},
		{"Hi, 你!", "hi, ni!"},
		{"#&*", ""},
	}
	for _, tt := range tests {
		if got := tr.Text(tt.in); got != tt.want {
			t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
