package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nvandessel/toonify/internal/config"
	"github.com/nvandessel/toonify/internal/console"
	"github.com/nvandessel/toonify/internal/convert"
	"github.com/nvandessel/toonify/internal/store"
	"github.com/nvandessel/toonify/internal/tokens"
	"github.com/nvandessel/toonify/internal/toon"
)

// stdioPath selects standard input or output in place of a file.
const stdioPath = "-"

func runConvert(cmd *cobra.Command, args []string) error {
	jsonOut, _ := cmd.Flags().GetBool("json")
	validate, _ := cmd.Flags().GetBool("validate")
	to, _ := cmd.Flags().GetString("to")
	outputFlag, _ := cmd.Flags().GetString("output")
	inputPath := args[0]

	p := newPrinter(cmd)
	toStdout := outputFlag == stdioPath || (inputPath == stdioPath && outputFlag == "")
	if toStdout {
		// Keep stdout clean for the converted document.
		p = console.New(cmd.ErrOrStderr(), cmd.ErrOrStderr())
	}

	fail := func(err error) error {
		if jsonOut {
			json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"error": err.Error()})
		} else {
			p.Error("Conversion failed: %s", err)
		}
		return &reportedError{err: err}
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fail(err)
	}
	compact := cfg.Compact
	if cmd.Flags().Changed("compact") {
		compact, _ = cmd.Flags().GetBool("compact")
	}
	estimate := cfg.EstimateTokens
	if cmd.Flags().Changed("estimate-tokens") {
		estimate, _ = cmd.Flags().GetBool("estimate-tokens")
	}

	input, err := convert.ReadInput(inputPath, cmd.InOrStdin())
	if err != nil {
		return fail(err)
	}
	from := convert.DetectFormat(inputPath, input)

	if validate {
		return runValidate(cmd, p, from, input, jsonOut)
	}

	if to == "" {
		return fail(errors.New("--to option is required for conversion"))
	}
	target, err := convert.ParseFormat(to)
	if err != nil {
		return fail(err)
	}

	result, err := convert.Convert(convert.Request{
		Input:   input,
		From:    from,
		To:      target,
		Compact: compact,
	})
	if err != nil {
		return fail(err)
	}

	outputPath := outputFlag
	switch {
	case toStdout:
		outputPath = stdioPath
		fmt.Fprintln(cmd.OutOrStdout(), result.Output)
	default:
		if outputPath == "" {
			outputPath = convert.OutputPath(inputPath, target)
		}
		if err := convert.WriteOutput(outputPath, result.Output); err != nil {
			return fail(err)
		}
	}

	recordHistory(cmd, cfg, store.Conversion{
		InputPath:    inputPath,
		OutputPath:   outputPath,
		From:         string(result.From),
		To:           string(result.To),
		Compact:      compact,
		InputTokens:  result.Tokens.Input,
		OutputTokens: result.Tokens.Output,
	})

	if jsonOut {
		if toStdout {
			return nil
		}
		out := map[string]any{
			"input":  inputPath,
			"output": outputPath,
			"from":   result.From,
			"to":     result.To,
		}
		if estimate {
			out["tokens"] = result.Tokens
		}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
	}

	p.Success("Converted %s → %s (%s)", p.FileName(inputPath), p.FileName(outputPath),
		console.FormatFileSize(int64(len(result.Output))))
	if estimate {
		printTokenEstimate(p, result.Tokens)
	}
	return nil
}

func runValidate(cmd *cobra.Command, p *console.Printer, from convert.Format, input string, jsonOut bool) error {
	if from != convert.FormatTOON {
		err := errors.New("validation only works with TOON format files")
		if jsonOut {
			json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"error": err.Error()})
		} else {
			p.Error("%s", err)
		}
		return &reportedError{err: err}
	}

	result := toon.Validate(input)
	if jsonOut {
		json.NewEncoder(cmd.OutOrStdout()).Encode(result)
	} else if result.Valid {
		p.Success("TOON format is valid")
	} else {
		p.Error("TOON validation failed:")
		for _, msg := range result.Errors {
			p.Error("  %s", msg)
		}
	}

	if !result.Valid {
		return &reportedError{err: fmt.Errorf("invalid TOON: %d problem(s)", len(result.Errors))}
	}
	return nil
}

func printTokenEstimate(p *console.Printer, c tokens.Comparison) {
	p.Info("")
	p.Info("Token Estimation:")
	p.Info("  Input:  %s tokens", console.FormatNumber(c.Input))
	p.Info("  Output: %s tokens", console.FormatNumber(c.Output))

	switch {
	case c.Delta < 0:
		p.Info("  Saved:  %s tokens (%s)", console.FormatNumber(-c.Delta), console.FormatPercentage(c.Percent))
	case c.Delta > 0:
		p.Info("  Added:  %s tokens (%s)", console.FormatNumber(c.Delta), console.FormatPercentage(c.Percent))
	default:
		p.Info("  Change: No change")
	}
}

// recordHistory stores a conversion. Failures are logged, never fatal.
func recordHistory(cmd *cobra.Command, cfg *config.Config, c store.Conversion) {
	history, err := openHistory(cmd, cfg)
	if err != nil {
		slog.Warn("conversion history unavailable", "error", err)
		return
	}
	if history == nil {
		return
	}
	defer history.Close()

	if _, err := history.Record(cmd.Context(), c); err != nil {
		slog.Warn("failed to record conversion", "error", err)
	}
}

// openHistory opens the history store, or returns nil when recording is
// disabled by --no-history or configuration.
func openHistory(cmd *cobra.Command, cfg *config.Config) (*store.SQLiteHistoryStore, error) {
	noHistory, _ := cmd.Flags().GetBool("no-history")
	if noHistory || !cfg.History.Enabled {
		return nil, nil
	}
	return store.NewSQLiteHistoryStore(historyPath(cmd, cfg))
}

func historyPath(cmd *cobra.Command, cfg *config.Config) string {
	if path, _ := cmd.Flags().GetString("history-db"); path != "" {
		return path
	}
	return cfg.History.Path
}
