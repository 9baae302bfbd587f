// Package config handles loading and saving user configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
	"github.com/f3rmion/gallifreyan/internal/animation"
	"github.com/f3rmion/gallifreyan/internal/render"
)

// File names inside the config directory.
const (
	ConfigFile   = "config.yaml"
	AlphabetFile = "alphabet.yaml"
	SchemeFile   = "scheme.yaml"
	LibraryFile  = "library.db"
	LogFile      = "gallifreyan.log"
)

// Config holds all user settings.
type Config struct {
	Canvas    Canvas             `yaml:"canvas" mapstructure:"canvas"`
	Animation animation.Settings `yaml:"animation" mapstructure:"animation"`
	Seed      uint64             `yaml:"seed" mapstructure:"seed"`         // 0 picks a random layout
	Alphabet  string             `yaml:"alphabet" mapstructure:"alphabet"` // empty uses the built-in alphabet
	Scheme    string             `yaml:"scheme" mapstructure:"scheme"`
	Library   string             `yaml:"library" mapstructure:"library"`
	Verbose   bool               `yaml:"verbose" mapstructure:"verbose"`
}

// Canvas is the drawing area in pixels.
type Canvas struct {
	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Canvas:    Canvas{Width: 800, Height: 600},
		Animation: animation.Default(),
		Scheme:    SchemeFile,
		Library:   LibraryFile,
	}
}

// SetDefaults registers the defaults with v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("canvas.width", d.Canvas.Width)
	v.SetDefault("canvas.height", d.Canvas.Height)
	v.SetDefault("animation.cycle", d.Animation.Cycle)
	v.SetDefault("animation.delay", d.Animation.Delay)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("alphabet", d.Alphabet)
	v.SetDefault("scheme", d.Scheme)
	v.SetDefault("library", d.Library)
}

// FromViper decodes the settings in v. Relative paths are resolved against
// dir.
func FromViper(v *viper.Viper, dir string) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Canvas.Width <= 0 || cfg.Canvas.Height <= 0 {
		return Config{}, fmt.Errorf("invalid canvas size %dx%d", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	cfg.Animation = cfg.Animation.Normalize()
	cfg.Alphabet = resolve(dir, cfg.Alphabet)
	cfg.Scheme = resolve(dir, cfg.Scheme)
	cfg.Library = resolve(dir, cfg.Library)
	return cfg, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// Load reads a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes a config file.
func Save(path string, cfg Config) error {
	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// LoadScheme reads a colour scheme file. Colours missing from the file
// keep their defaults.
func LoadScheme(path string) (render.Scheme, error) {
	scheme := render.DefaultScheme()
	data, err := os.ReadFile(path)
	if err != nil {
		return scheme, fmt.Errorf("reading scheme file: %w", err)
	}
	if err := yaml.Unmarshal(data, &scheme); err != nil {
		return render.DefaultScheme(), fmt.Errorf("parsing scheme file: %w", err)
	}
	return scheme, nil
}

// LoadSchemeOrDefault is LoadScheme that treats a missing file as the
// default scheme.
func LoadSchemeOrDefault(path string) (render.Scheme, error) {
	scheme, err := LoadScheme(path)
	if errors.Is(err, fs.ErrNotExist) {
		return render.DefaultScheme(), nil
	}
	return scheme, err
}

// SaveScheme writes a colour scheme file.
func SaveScheme(path string, scheme render.Scheme) error {
	out, err := yaml.Marshal(&scheme)
	if err != nil {
		return fmt.Errorf("marshaling scheme: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing scheme file: %w", err)
	}
	return nil
}

// LoadAlphabet reads the alphabet file at path, or returns the built-in
// alphabet when path is empty.
func LoadAlphabet(path string) (*alphabet.Alphabet, error) {
	if path == "" {
		return alphabet.Default(), nil
	}
	a, err := alphabet.Load(path)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gallifreyan"), nil
}

// WriteTemplates writes config.yaml, alphabet.yaml and scheme.yaml into dir.
// Existing files are kept unless force is set. It returns the files written.
func WriteTemplates(dir string, force bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	var written []string
	write := func(name string, save func(path string) error) error {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil && !force {
			return nil
		}
		if err := save(path); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	cfg := Default()
	cfg.Alphabet = AlphabetFile
	steps := []struct {
		name string
		save func(string) error
	}{
		{ConfigFile, func(p string) error { return Save(p, cfg) }},
		{AlphabetFile, func(p string) error {
			if err := os.WriteFile(p, alphabet.DefaultData(), 0644); err != nil {
				return fmt.Errorf("writing alphabet file: %w", err)
			}
			return nil
		}},
		{SchemeFile, func(p string) error { return SaveScheme(p, render.DefaultScheme()) }},
	}
	for _, s := range steps {
		if err := write(s.name, s.save); err != nil {
			return written, err
		}
	}
	return written, nil
}
