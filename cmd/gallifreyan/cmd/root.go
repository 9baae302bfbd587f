// Package cmd contains all CLI commands for the gallifreyan tool.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
	"github.com/f3rmion/gallifreyan/internal/config"
	"github.com/f3rmion/gallifreyan/internal/render"
	"github.com/f3rmion/gallifreyan/internal/store"
	"github.com/f3rmion/gallifreyan/internal/tui"
	"github.com/f3rmion/gallifreyan/internal/tui/views"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gallifreyan",
	Short: "Write sentences in Doctor's Cot Gallifreyan",
	Long: `gallifreyan lays out sentences in Doctor's Cot circular Gallifreyan.

Words become circles, syllables sit on their rim and vowels, digits and
marks follow the constraints of the writing system. Every part can be
dragged and the whole sentence can be animated.

Running 'gallifreyan' without arguments launches the interactive editor.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/gallifreyan)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	config.SetDefaults(viper.GetViper())
	viper.SetConfigFile(filepath.Join(getConfigDir(), config.ConfigFile))
	viper.SetEnvPrefix("GALLIFREYAN")
	viper.AutomaticEnv()

	// A missing config.yaml leaves the defaults in place.
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Error reading config:", err)
	}
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// newLogger builds the command logger, writing to w.
func newLogger(w io.Writer) *log.Logger {
	level := log.InfoLevel
	if viper.GetBool("verbose") {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "gallifreyan",
	})
}

// loadConfig decodes the settings and loads the alphabet they name.
func loadConfig() (config.Config, *alphabet.Alphabet, error) {
	cfg, err := config.FromViper(viper.GetViper(), getConfigDir())
	if err != nil {
		return config.Config{}, nil, err
	}
	a, err := config.LoadAlphabet(cfg.Alphabet)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, a, nil
}

// loadScheme reads the configured scheme, falling back to the defaults.
func loadScheme(cfg config.Config) (render.Scheme, error) {
	if cfg.Scheme == "" {
		return render.DefaultScheme(), nil
	}
	return config.LoadSchemeOrDefault(cfg.Scheme)
}

// openStore opens the configured library, creating its directory.
func openStore(cfg config.Config, logger *log.Logger) (*store.Store, error) {
	if cfg.Library == "" {
		return nil, errors.New("no library configured")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Library), 0755); err != nil {
		return nil, fmt.Errorf("creating library directory: %w", err)
	}
	return store.Open(cfg.Library, store.WithLogger(logger))
}

// runTUI launches the interactive editor.
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, a, err := loadConfig()
	if err != nil {
		return err
	}
	scheme, err := loadScheme(cfg)
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so the log goes to a file.
	logger := log.New(io.Discard)
	if err := os.MkdirAll(getConfigDir(), 0755); err == nil {
		f, err := os.OpenFile(filepath.Join(getConfigDir(), config.LogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			defer f.Close()
			logger = newLogger(f)
		}
	}

	env := &views.Env{
		Config:    cfg,
		Alphabet:  a,
		Scheme:    scheme,
		Logger:    logger,
		ExportDir: ".",
		Mono:      os.Getenv("NO_COLOR") != "",
	}
	st, err := openStore(cfg, logger)
	if err != nil {
		// The editor works without a library.
		logger.Warn("library unavailable", "err", err)
	} else {
		defer st.Close()
		env.Store = st
	}

	p := tea.NewProgram(
		tui.NewApp(env),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
