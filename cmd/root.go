package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gistgrab/gistgrab/config"
	"github.com/gistgrab/gistgrab/github"
)

var (
	cfgFile      string
	cfg          *config.Config
	logger       zerolog.Logger
	githubClient *github.Client

	// Command flags
	username   string
	folder     string
	concurrent int
	limit      int
	pageSize   int
	filterExpr string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gistgrab",
	Short: "A tool to list and download GitHub gists",
	Long: `gistgrab lists the gists of a GitHub user and downloads a chosen
subset of them to local storage, fetching multiple gists concurrently.`,
	PersistentPreRunE: initializeApp,
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

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(downloadCmd)
}

// initializeApp initializes the configuration, logger and API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// A .env file may carry GITHUB_TOKEN; ignore errors if absent.
	_ = godotenv.Load()

	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create GitHub client
	githubClient = github.NewClient(logger,
		github.WithBaseURL(cfg.GitHub.URL),
		github.WithToken(cfg.GitHub.Token),
		github.WithTimeout(time.Duration(cfg.GitHub.Timeout)*time.Second),
		github.WithPageObserver(pageLogger{}),
	)

	return nil
}

// pageLogger reports per-page listing telemetry through the logger.
type pageLogger struct{}

func (pageLogger) OnPageFetched(page, count int, rl github.RateLimit) {
	event := logger.Debug().Int("page", page).Int("count", count)
	if rl.Limit != nil {
		event = event.Int("rate_limit", *rl.Limit)
	}
	if rl.Remaining != nil {
		event = event.Int("rate_remaining", *rl.Remaining)
	}
	event.Msg("Retrieved gist page")
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

	// Console format; color only when writing to a terminal
	useColor := cfg.Color && isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !useColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
