package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/vibetagger/internal/analysis"
	"github.com/muurk/vibetagger/internal/app"
	"github.com/muurk/vibetagger/internal/clipboard"
	"github.com/muurk/vibetagger/internal/config"
	"github.com/muurk/vibetagger/internal/discovery"
	"github.com/muurk/vibetagger/internal/ingest"
	"github.com/muurk/vibetagger/internal/server"
	"github.com/muurk/vibetagger/internal/tui"
	"github.com/muurk/vibetagger/internal/ui"
	"github.com/muurk/vibetagger/internal/urls"
	"github.com/muurk/vibetagger/internal/vibe"
)

// Command flags
var (
	outputFormat string
	copyHashtags bool

	serveHost      string
	servePort      int
	serveAdvertise bool
	serveName      string

	discoverTimeout int
	discoverPlain   bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(configCmd)
}

// analyzeCmd runs a single analysis and prints the result
var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Analyze one image and print its vibe",
	Long: `Analyze one image file and print the detected vibe, captions and hashtags.

The file type is taken from its extension; only images are accepted.`,
	Example: `  # Styled output
  vibetagger analyze photo.jpg

  # JSON for scripting
  vibetagger analyze photo.png --format json

  # Copy the hashtags to the clipboard as well
  vibetagger analyze photo.jpg --copy-hashtags`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, json)")
	analyzeCmd.Flags().BoolVar(&copyHashtags, "copy-hashtags", false, "Copy the hashtag line to the clipboard")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if outputFormat != "detailed" && outputFormat != "json" {
		return fmt.Errorf("unknown format %q (expected detailed or json)", outputFormat)
	}

	path := args[0]
	ctx := cmd.Context()
	controller := app.NewController(newAnalyzer(ctx))

	done, err := controller.SelectImage(ingest.NewLocalFile(path))
	if err != nil {
		return err
	}
	<-done
	if state := controller.State(); !state.HasImage() {
		return errors.New(state.Error)
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	if outputFormat == "detailed" {
		printer.PrintHeader("Vibe-Tagger", "analyze",
			ui.Param{Key: "Image", Value: filepath.Base(path)},
			ui.Param{Key: "Model", Value: modelName()},
		)
		printer.PrintDetails(
			ui.Param{Key: "Type", Value: ingest.MediaType(controller.State().Image)},
			ui.Param{Key: "Size", Value: fileSize(path)},
		)
		printer.Newline()
	}

	<-controller.Generate(ctx)
	state := controller.State()

	if state.Result == nil {
		if outputFormat == "json" {
			return errors.New(state.Error)
		}
		printer.PrintFailure("Analysis failed", state.Error, []string{
			"Check that " + config.APIKeyEnvVar + " holds a valid Gemini API key (" + urls.APIKeys + ")",
			"Check your network connection",
			"Run again with --log-level debug to see the underlying error",
			"See " + urls.GeminiTroubleshooting,
		})
		return errors.New("analysis failed")
	}

	if outputFormat == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(state.Result); err != nil {
			return err
		}
	} else {
		printer.PrintVibe(state.Result)
	}

	if copyHashtags {
		return copyHashtagLine(printer, state.Result)
	}
	return nil
}

func copyHashtagLine(printer *ui.Printer, r *vibe.Result) error {
	if err := clipboard.CopyHashtags(clipboard.System{}, r); err != nil {
		return err
	}
	if outputFormat == "detailed" {
		printer.PrintHint(ui.SuccessMarker + " Hashtags copied to clipboard")
	}
	return nil
}

// fileSize formats the size of the file at path for display
func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "unknown"
	}
	size := float64(info.Size())
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MiB", size/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KiB", size/(1<<10))
	default:
		return fmt.Sprintf("%d B", info.Size())
	}
}

func modelName() string {
	if cfg.Model != "" {
		return cfg.Model
	}
	return analysis.DefaultModel
}

// serveCmd starts the web front-end
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web UI",
	Long: `Start the Vibe-Tagger web server.

Each browser gets its own session. With --advertise the server announces
itself over mDNS so 'vibetagger discover' can find it on the local network.

Flags override the server section of the config file.`,
	Example: `  # Local only
  vibetagger serve

  # Reachable from the LAN and discoverable
  vibetagger serve --host 0.0.0.0 --advertise --name studio`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen address (default from config: 127.0.0.1)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (default from config: 8080)")
	serveCmd.Flags().BoolVar(&serveAdvertise, "advertise", false, "Announce the server over mDNS")
	serveCmd.Flags().StringVar(&serveName, "name", "", "mDNS instance name (default: hostname)")
}

func runServe(cmd *cobra.Command, args []string) error {
	sc := *cfg.Server
	if cmd.Flags().Changed("host") {
		sc.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		sc.Port = servePort
	}
	if cmd.Flags().Changed("advertise") {
		sc.Advertise = serveAdvertise
	}
	if cmd.Flags().Changed("name") {
		sc.InstanceName = serveName
	}

	if config.APIKey() == "" {
		fmt.Fprintf(os.Stderr, "Warning: %s is not set; every analysis will fail (create a key at %s)\n", config.APIKeyEnvVar, urls.APIKeys)
	}

	analyzer := newAnalyzer(cmd.Context())
	srv, err := server.New(&server.Config{
		Host:         sc.Host,
		Port:         sc.Port,
		Advertise:    sc.Advertise,
		InstanceName: sc.InstanceName,
		Model:        analyzer.Model(),
	}, analyzer)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	fmt.Printf("Vibe-Tagger listening on http://%s\n", (&server.Config{Host: sc.Host, Port: sc.Port}).Addr())
	return srv.Start()
}

// discoverCmd browses for servers on the LAN
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find Vibe-Tagger servers on the local network",
	Long: `Browse mDNS for Vibe-Tagger servers started with 'serve --advertise'.

In a terminal the servers are shown in an interactive list; choosing one
copies its URL to the clipboard. With --plain (or when output is not a
terminal) they are printed with their URL, version and model.`,
	Example: `  # Browse for 5 seconds (default)
  vibetagger discover

  # Print the results instead of opening the list
  vibetagger discover --plain

  # Longer browse for slow networks
  vibetagger discover --timeout 15`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&discoverTimeout, "timeout", 0, "Browse timeout in seconds (default from config: 5)")
	discoverCmd.Flags().BoolVar(&discoverPlain, "plain", false, "Print results instead of opening the interactive list")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	timeout := cfg.DiscoverTimeout()
	if discoverTimeout > 0 {
		timeout = time.Duration(discoverTimeout) * time.Second
	}

	scanner := discovery.NewScanner()
	scanner.Timeout = timeout

	if !discoverPlain && ui.IsTerminal(os.Stdout) {
		selected, err := tui.Browse(cmd.Context(), scanner.Scan, timeout, clipboard.System{})
		if err != nil {
			return err
		}
		if selected != nil {
			fmt.Printf("%s %s copied to clipboard\n", ui.SuccessMarker, selected.BaseURL())
		}
		return nil
	}

	fmt.Printf("Browsing for Vibe-Tagger servers (timeout: %s)...\n\n", timeout)

	instances, err := scanner.Scan(cmd.Context())
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	if len(instances) == 0 {
		fmt.Println("No servers found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Start a server with 'vibetagger serve --host 0.0.0.0 --advertise'")
		fmt.Println("  - Check that both machines are on the same network")
		fmt.Println("  - Try increasing --timeout for slower networks")
		return nil
	}

	fmt.Printf("Found %d server(s):\n\n", len(instances))
	for i, inst := range instances {
		fmt.Printf("%d. %s\n", i+1, inst.Name)
		fmt.Printf("   URL:     %s\n", inst.BaseURL())
		if v := inst.GetMetadata("version"); v != "" {
			fmt.Printf("   Version: %s\n", v)
		}
		if m := inst.GetMetadata("model"); m != "" {
			fmt.Printf("   Model:   %s\n", m)
		}
		fmt.Println()
	}
	return nil
}

// configCmd manages the config file
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Init(configPath)
		if err != nil {
			return err
		}
		fmt.Printf("Configuration written to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Print(string(data))

		if config.APIKey() == "" {
			fmt.Printf("\n# %s: not set\n", config.APIKeyEnvVar)
		} else {
			fmt.Printf("\n# %s: set\n", config.APIKeyEnvVar)
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			fmt.Println(configPath)
			return nil
		}
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}
