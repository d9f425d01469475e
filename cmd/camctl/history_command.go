package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"camctl/internal/ledger"
)

func newHistoryCommand(cmdCtx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently downloaded recordings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("download history is disabled in the configuration")
			}

			store, err := ledger.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			rows, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if cmdCtx.jsonOutput() {
				type historyRow struct {
					RunID        string `json:"run_id"`
					Source       string `json:"source"`
					DestPath     string `json:"dest_path"`
					Triggers     string `json:"triggers"`
					Start        string `json:"start"`
					Size         int64  `json:"size_bytes"`
					DownloadedAt string `json:"downloaded_at"`
				}
				out := make([]historyRow, 0, len(rows))
				for _, row := range rows {
					out = append(out, historyRow{
						RunID:        row.RunID,
						Source:       row.Source,
						DestPath:     row.DestPath,
						Triggers:     row.TriggerNames,
						Start:        row.StartedAt.Format(time.RFC3339),
						Size:         row.SizeBytes,
						DownloadedAt: row.DownloadedAt.Format(time.RFC3339),
					})
				}
				return writeJSON(cmd, out)
			}

			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No downloads recorded.")
				return nil
			}
			tableRows := make([][]string, 0, len(rows))
			for _, row := range rows {
				tableRows = append(tableRows, []string{
					row.DownloadedAt.Format("2006-01-02 15:04:05"),
					row.StartedAt.Format("2006-01-02 15:04:05"),
					row.TriggerNames,
					formatBytes(row.SizeBytes),
					row.DestPath,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Downloaded", "Recording start", "Triggers", "Size", "Path"},
				tableRows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum rows to show")
	return cmd
}
