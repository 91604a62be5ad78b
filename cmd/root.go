package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/articut-go/articut"
	"github.com/s0up4200/articut-go/config"
	"github.com/s0up4200/articut-go/filter"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *articut.Client
	manager *filter.Manager

	version   = "dev"
	buildTime = "unknown"

	// Command flags
	filterExpr string
	preset     string
	jsonOutput bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "articut",
	Short: "A CLI for the Articut Chinese text segmentation API",
	Long: `articut segments Traditional Chinese text into words with part-of-speech
tags using the Droidtown Articut API. Results can be filtered with
expressions, processed in batches, and printed as text or JSON.`,
}

// SetVersion sets the version information for the root command
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", v, bt)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// initializeApp initializes the configuration, the API client and the
// filter presets
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create Articut client
	var opts []articut.Option
	if cfg.Articut.Endpoint != "" {
		opts = append(opts, articut.WithEndpoint(cfg.Articut.Endpoint))
	}
	client, err = articut.NewClient(cfg.Articut.Username, cfg.Articut.APIKey, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create Articut client: %w", err)
	}

	// Compile filter presets up front so broken expressions fail fast
	manager = filter.NewManager()
	if len(cfg.Filter) > 0 {
		if err := manager.RegisterFilters(cfg.Filter); err != nil {
			return fmt.Errorf("failed to register filter presets: %w", err)
		}
		logger.Debug().Int("presets", len(cfg.Filter)).Msg("Registered filter presets")
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colored only on a real terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// getFilterExpression determines the filter name and expression to use
func getFilterExpression() (string, string, error) {
	// Priority: command line filter > preset
	if filterExpr != "" {
		return "cli", filterExpr, nil
	}

	if preset != "" {
		if expression, ok := cfg.Filter[preset]; ok {
			return preset, expression, nil
		}
		return "", "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	return "", "", nil
}
