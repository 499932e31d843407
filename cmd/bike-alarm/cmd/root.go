package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/bike-alarm/internal/config"
	"github.com/oshokin/bike-alarm/internal/logger"
	"github.com/oshokin/bike-alarm/internal/service/alarm"
	"github.com/oshokin/bike-alarm/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// stateFile path where the persisted flags live.
	stateFile string
	// logLevel for console output.
	logLevel string

	// rootCmd represents the base command running the alarm control loop.
	rootCmd = &cobra.Command{
		Use:   "bike-alarm",
		Short: "Run the bike alarm control loop on a simulated board.",
		Long: `Runs the anti-theft alarm state machine against a simulated board.

Switch positions are driven from stdin: type "b" to toggle the trigger
button, "k" to toggle the kickstand sensor, "s" to print the board status
and "q" to quit. The triggered flag is persisted to a JSON file so the
alarm resumes sounding after a restart.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			} else {
				logger.Warnf(ctx, "Unknown log level %q, keeping %s", logLevel, logger.Level())
			}

			options := &alarm.Options{
				ConfigPath: configPath,
				StateFile:  stateFile,
			}

			return alarm.Run(ctx, options)
		},
	}
)

// Execute runs the bike-alarm CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().
		StringVarP(&stateFile, "state-file", "s", "", "path to persist the trigger flag (overrides config)")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "console log level")
}
