package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"

	"github.com/f3rmion/gallifreyan/internal/animation"
	"github.com/f3rmion/gallifreyan/internal/render"
)

func TestFromViper(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("animation.cycle", 33)
	v.Set("canvas.width", 1024)
	v.Set("library", "/abs/lib.db")

	got, err := FromViper(v, "/cfg")
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Canvas:    Canvas{Width: 1024, Height: 600},
		Animation: animation.Settings{Cycle: 30, Delay: 100},
		Scheme:    filepath.Join("/cfg", SchemeFile),
		Library:   "/abs/lib.db",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromViper() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromViperInvalidCanvas(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("canvas.height", 0)
	if _, err := FromViper(v, "/cfg"); err == nil {
		t.Error("FromViper() accepted a zero height")
	}
}

func TestSchemeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scheme.yaml")
	scheme := render.DefaultScheme()
	if err := scheme.Set("dot", "#ff0000"); err != nil {
		t.Fatal(err)
	}
	if err := SaveScheme(path, scheme); err != nil {
		t.Fatal(err)
	}
	got, err := LoadScheme(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(scheme, got); diff != "" {
		t.Errorf("LoadScheme() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSchemePartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scheme.yaml")
	if err := os.WriteFile(path, []byte("word: \"#123456\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadScheme(path)
	if err != nil {
		t.Fatal(err)
	}
	want := render.DefaultScheme()
	want.Word = render.MustHex("#123456")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadScheme() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSchemeOrDefault(t *testing.T) {
	got, err := LoadSchemeOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(render.DefaultScheme(), got); diff != "" {
		t.Errorf("LoadSchemeOrDefault() mismatch (-want +got):\n%s", diff)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("word: nothex\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSchemeOrDefault(bad); err == nil {
		t.Error("LoadSchemeOrDefault() accepted an invalid colour")
	}
}

func TestWriteTemplates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gallifreyan")
	written, err := WriteTemplates(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 3 {
		t.Fatalf("wrote %v, want 3 files", written)
	}

	cfg, err := Load(filepath.Join(dir, ConfigFile))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Alphabet != AlphabetFile {
		t.Errorf("alphabet = %q, want %q", cfg.Alphabet, AlphabetFile)
	}
	if _, err := LoadAlphabet(filepath.Join(dir, AlphabetFile)); err != nil {
		t.Errorf("LoadAlphabet(template) = %v", err)
	}

	again, err := WriteTemplates(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 0 {
		t.Errorf("second run wrote %v", again)
	}
	forced, err := WriteTemplates(dir, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(forced) != 3 {
		t.Errorf("forced run wrote %v, want 3 files", forced)
	}
}

func TestLoadAlphabetDefault(t *testing.T) {
	a, err := LoadAlphabet("")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := a.Lookup('b'); !ok {
		t.Error("built-in alphabet has no b")
	}
}
