package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/corey/argsel/internal/app"
)

var (
	configFlag  string
	verboseFlag bool
	colorFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "argsel",
	Short: "Find swapped call arguments",
	Long: "Compares argument names with parameter names at every call site and reports\n" +
		"calls where another argument order fits the parameters much better.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// projectRoot returns the project root (cwd by default).
func projectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return dir
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && ExitCode(err) < 0 {
		fmt.Fprintf(os.Stderr, "error: %s\n", describeError(err))
	}
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFlag, "config", "", "Config file (default: .argsel.yaml in the current directory)")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "Log progress to stderr")
	pf.StringVar(&colorFlag, "color", "auto", "Colorize output: auto, always or never")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(baselineCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger logs to stderr: warnings only, or everything with --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verboseFlag {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openApp builds the app for the current directory with the global flags.
func openApp(configure func(*app.Options)) (*app.App, error) {
	opts := app.Options{
		Root:       projectRoot(),
		ConfigPath: configFlag,
		Logger:     newLogger(),
	}
	if configure != nil {
		configure(&opts)
	}
	return app.New(opts)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
