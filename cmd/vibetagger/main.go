// Vibetagger turns a photo into a social media "vibe": a short title, four
// captions in different styles and fifteen hashtags.
//
// It runs as an interactive terminal UI, as a one-shot command, or as a
// small web server for browsers on the local network.
//
// Usage:
//
//	vibetagger [command] [flags]
//
// Running without arguments launches the terminal UI.
// See 'vibetagger --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/vibetagger/internal/analysis"
	"github.com/muurk/vibetagger/internal/app"
	"github.com/muurk/vibetagger/internal/clipboard"
	"github.com/muurk/vibetagger/internal/config"
	"github.com/muurk/vibetagger/internal/logging"
	"github.com/muurk/vibetagger/internal/tui"
	"github.com/muurk/vibetagger/internal/ui"
	"github.com/muurk/vibetagger/internal/urls"
	"github.com/muurk/vibetagger/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	configPath string
	modelFlag  string
	logLevel   string
)

// cfg is loaded once per invocation by loadSettings
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "vibetagger",
	Short: "Read the vibe of a photo",
	Long: `Vibe-Tagger sends a photo to Google Gemini and returns its vibe:
a short title, four captions (Short, Witty, Professional, Aesthetic) and
fifteen hashtags ready to paste.

The Gemini API key is read from VIBETAGGER_API_KEY (or API_KEY), either in
the environment or in a .env file in the working directory.

If no command is specified, the interactive terminal UI launches.`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	RunE:              runTUI,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: per-user config directory)")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "Gemini model (default: "+analysis.DefaultModel+", see "+urls.GeminiModels+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); logs go to stderr")

	rootCmd.AddCommand(versionCmd)
}

// loadSettings reads .env, the config file and the global flags, then sets
// up logging. Flags override the config file.
func loadSettings(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	if modelFlag != "" {
		cfg.Model = modelFlag
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	return logging.Initialize(cfg.LogLevel)
}

// newAnalyzer builds the Gemini client from the loaded settings
func newAnalyzer(ctx context.Context) *analysis.Client {
	return analysis.NewClient(ctx, analysis.Config{
		APIKey: config.APIKey(),
		Model:  cfg.Model,
	})
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !ui.IsTerminal(os.Stdout) {
		return fmt.Errorf("the interactive UI needs a terminal; use 'vibetagger analyze <file>' instead")
	}
	defer logging.Sync()

	ctx := cmd.Context()
	controller := app.NewController(newAnalyzer(ctx))
	return tui.Run(ctx, controller, clipboard.System{})
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vibetagger %s\n", version.Full())
	},
}
