package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/toonify/internal/console"
	"github.com/nvandessel/toonify/internal/store"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded conversions",
		Long: `List recent conversions with their token estimates.

Examples:
  toonify history --limit 5
  toonify history --stats
  toonify history --export > history.jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			stats, _ := cmd.Flags().GetBool("stats")
			export, _ := cmd.Flags().GetBool("export")
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			history, err := store.NewSQLiteHistoryStore(historyPath(cmd, cfg))
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer history.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if export {
				return history.Export(ctx, out)
			}

			if stats {
				st, err := history.Stats(ctx)
				if err != nil {
					return err
				}
				if jsonOut {
					return json.NewEncoder(out).Encode(st)
				}
				fmt.Fprintf(out, "Conversions:   %s\n", console.FormatNumber(st.Conversions))
				fmt.Fprintf(out, "Input tokens:  %s\n", console.FormatNumber(st.InputTokens))
				fmt.Fprintf(out, "Output tokens: %s\n", console.FormatNumber(st.OutputTokens))
				fmt.Fprintf(out, "Tokens saved:  %s\n", console.FormatNumber(st.Saved()))
				return nil
			}

			conversions, err := history.List(ctx, limit)
			if err != nil {
				return err
			}
			if jsonOut {
				return json.NewEncoder(out).Encode(map[string]interface{}{
					"conversions": conversions,
					"count":       len(conversions),
				})
			}

			if len(conversions) == 0 {
				fmt.Fprintln(out, "No conversions recorded yet.")
				return nil
			}
			for _, c := range conversions {
				fmt.Fprintf(out, "%s  %s → %s  %s → %s  %s → %s tokens\n",
					c.CreatedAt.Local().Format("2006-01-02 15:04"),
					c.From, c.To,
					c.InputPath, c.OutputPath,
					console.FormatNumber(c.InputTokens), console.FormatNumber(c.OutputTokens),
				)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum number of conversions to list (0 for all)")
	cmd.Flags().Bool("stats", false, "Show totals instead of individual conversions")
	cmd.Flags().Bool("export", false, "Write every conversion as JSON lines")

	return cmd
}
