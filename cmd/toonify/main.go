package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nvandessel/toonify/internal/config"
	"github.com/nvandessel/toonify/internal/console"
)

var version = "1.0.0"

// reportedError marks an error whose message has already been printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			console.New(os.Stdout, os.Stderr).Error("%s", err)
		}
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "toonify <input>",
		Short: "Convert between JSON and TOON",
		Long: `toonify converts JSON collections to TOON (Token-Oriented Object Notation)
and back.

TOON writes a collection of flat records as one header line naming the
collection, the record count and the fields, followed by one comma-separated
row per record. It usually needs far fewer LLM tokens than the equivalent JSON.

Examples:
  toonify users.json --to toon --estimate-tokens
  toonify users.toon --to json
  toonify users.toon --validate
  cat users.json | toonify - --to toon`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			setupLogging(cmd, verbose)
		},
		RunE: runConvert,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for agent consumption)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./.toonify.yaml or ~/.toonify/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("history-db", "", "Conversion history database (default ~/.toonify/history.db)")
	rootCmd.PersistentFlags().Bool("no-history", false, "Do not record conversions")

	rootCmd.Flags().String("to", "", "Target format: json or toon")
	rootCmd.Flags().Bool("compact", false, "Remove line breaks between TOON header and rows (TOON only)")
	rootCmd.Flags().Bool("estimate-tokens", false, "Show token count estimates")
	rootCmd.Flags().Bool("validate", false, "Validate TOON format structure")
	rootCmd.Flags().StringP("output", "o", "", "Output file (default derived from input, - for stdout)")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newHistoryCmd(),
		newMCPServerCmd(),
		newServeCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "toonify version %s\n", version)
			}
		},
	}
}

func setupLogging(cmd *cobra.Command, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// loadConfig loads configuration honoring the --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newPrinter(cmd *cobra.Command) *console.Printer {
	return console.New(cmd.OutOrStdout(), cmd.ErrOrStderr())
}
