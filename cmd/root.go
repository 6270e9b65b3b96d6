package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/calameo/calameo"
	"github.com/s0up4200/calameo/config"
)

// skipInit marks commands that run without config or client
const skipInit = "skip-init"

var (
	cfgFile string
	output  string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *calameo.Client

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "calameo",
	Short: "Manage publications on Calaméo from the command line",
	Long: `calameo is a CLI for the Calaméo publishing API. It lists and updates
publications, subscriptions and subscribers, and publishes new documents
using signed API requests.`,
	SilenceUsage:       true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: closeApp,
}

// SetVersion sets the build information reported by the version command
func SetVersion(v, built string) {
	version = v
	buildTime = built
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "output format (table|json)")
}

// initializeApp loads the configuration and creates the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipInit] == "true" {
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	// The flag wins over the configured format
	if !cmd.Flags().Changed("output") {
		output = cfg.Output.Format
	}
	if output != "table" && output != "json" {
		return fmt.Errorf("invalid output format: %s", output)
	}

	client, err = calameo.NewClient(cfg.Calameo.Credentials(), logger,
		calameo.WithAPIURL(cfg.Calameo.APIURL),
		calameo.WithUploadURL(cfg.Calameo.UploadURL),
		calameo.WithTimeout(cfg.Calameo.Timeout),
		calameo.WithPageSize(cfg.Calameo.PageSize),
	)
	if err != nil {
		return fmt.Errorf("failed to create Calameo client: %w", err)
	}

	logger.Debug().
		Str("api_url", cfg.Calameo.APIURL).
		Int("page_size", cfg.Calameo.PageSize).
		Msg("Calameo client ready")

	return nil
}

func closeApp(cmd *cobra.Command, args []string) error {
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
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

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; no colors when stderr is redirected
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
