package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/anjirai/weekly-flyers/internal/config"
)

var (
	configPath string
	verbose    bool

	logger   *zap.Logger
	settings *config.Settings
)

var rootCmd = &cobra.Command{
	Use:   "flyers",
	Short: "Weekly meeting flyer tools",
	Long: `flyers maintains the flyer gallery of the weekly meeting page.

It scans year folders of flyer images and writes the flyer data into the
page, or reports on the folder layout when the gallery looks wrong.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(verbose)

		var err error
		settings, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger.Debug("settings loaded", zap.String("config", configPath), zap.Any("settings", settings))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// newLogger writes debug diagnostics to stderr. Operator messages go to
// stdout through the progress printer instead.
func newLogger(verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	l := zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.Lock(os.Stderr),
		level,
	))
	zap.RedirectStdLog(l)
	return l
}

// applyFlags overrides loaded settings with explicitly set flags.
func applyFlags(cmd *cobra.Command) error {
	if cmd.Flags().Changed("root") {
		settings.RootPath, _ = cmd.Flags().GetString("root")
	}
	if cmd.Flags().Changed("html") {
		settings.HTMLPath, _ = cmd.Flags().GetString("html")
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (.json, .toml or .yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show verbose output")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	interrupted := ctx.Err() != nil
	stop()

	if err != nil {
		if interrupted || errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "\nInterrupted.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
