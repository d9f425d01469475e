package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"camctl/internal/camera"
	"camctl/internal/fetch"
	"camctl/internal/ledger"
	"camctl/internal/logging"
)

func newDownloadCommand(cmdCtx *commandContext) *cobra.Command {
	var selFlags selectionFlags
	var outputDir string
	var stream string
	var dryRun bool
	var showProgress bool

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download recordings matching trigger and time filters",
		Long: `Search the camera's recording index, pick the clips whose detection
triggers and start times match the filters, and download each one into a
date-partitioned directory. Clips that already exist locally are skipped.`,
		Example: `  camctl download --person --date today
  camctl download --vehicle --doorbell --since 6h
  camctl download --all --from 2026-08-01 --to 2026-08-07 --latest 20
  camctl download --motion --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			logger := cmdCtx.loggerValue()

			window, err := selFlags.window(time.Now())
			if err != nil {
				return err
			}
			criteria := selFlags.criteria(cmd, window)
			if err := criteria.Validate(); err != nil {
				return err
			}

			if outputDir != "" {
				cfg.Download.OutputDir = outputDir
			}
			if stream != "" {
				cfg.Download.Stream = stream
			}

			return cmdCtx.withCamera(cmd.Context(), func(client *camera.Client) error {
				selected, _, err := collectRecordings(cmd.Context(), client, cfg, logger, window, criteria)
				if err != nil {
					return err
				}
				items := fetch.Plan(selected, cfg.Download.OutputDir)

				if dryRun {
					return printPlan(cmd, cmdCtx, items)
				}
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No recordings matched.")
					return nil
				}

				var history *ledger.Store
				if cfg.History.Enabled {
					history, err = ledger.Open(cfg.History.Path)
					if err != nil {
						logger.Warn("download history unavailable", logging.Error(err))
					} else {
						defer history.Close()
					}
				}

				progress := showProgress && isatty.IsTerminal(os.Stderr.Fd())
				fetcher := fetch.New(client, history, logger, cfg.Download.OutputDir, progress)
				summary, err := fetcher.Run(cmd.Context(), items)
				if err != nil {
					return err
				}
				return printSummary(cmd, cmdCtx, summary)
			})
		},
	}

	selFlags.register(cmd)
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Destination root (overrides configuration)")
	cmd.Flags().StringVar(&stream, "stream", "", "Recording stream to search: main or sub")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List what would be downloaded without transferring")
	cmd.Flags().BoolVar(&showProgress, "progress", true, "Show per-file progress bars when attached to a terminal")
	return cmd
}

func printPlan(cmd *cobra.Command, cmdCtx *commandContext, items []fetch.Item) error {
	if cmdCtx.jsonOutput() {
		type planRow struct {
			Source   string   `json:"source"`
			Dest     string   `json:"dest"`
			Start    string   `json:"start"`
			Duration string   `json:"duration"`
			Size     int64    `json:"size_bytes"`
			Triggers []string `json:"triggers"`
		}
		rows := make([]planRow, 0, len(items))
		for _, item := range items {
			rows = append(rows, planRow{
				Source:   item.Entry.Source,
				Dest:     item.DestPath,
				Start:    item.Entry.Start.Format(time.RFC3339),
				Duration: item.Entry.Duration().String(),
				Size:     item.Entry.Size,
				Triggers: item.Entry.Triggers.Names(),
			})
		}
		return writeJSON(cmd, rows)
	}

	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recordings matched.")
		return nil
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.Entry.Start.Format("2006-01-02 15:04:05"),
			item.Entry.Duration().String(),
			item.Entry.Triggers.String(),
			formatBytes(item.Entry.Size),
			item.DestPath,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Start", "Duration", "Triggers", "Size", "Destination"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight, alignLeft},
	))
	fmt.Fprintf(cmd.OutOrStdout(), "%d recording(s) would be downloaded.\n", len(items))
	return nil
}

func printSummary(cmd *cobra.Command, cmdCtx *commandContext, summary fetch.Summary) error {
	if cmdCtx.jsonOutput() {
		type summaryRow struct {
			RunID      string `json:"run_id"`
			Downloaded int    `json:"downloaded"`
			Skipped    int    `json:"skipped"`
			Failed     int    `json:"failed"`
		}
		return writeJSON(cmd, summaryRow{
			RunID:      summary.RunID,
			Downloaded: summary.Downloaded,
			Skipped:    summary.Skipped,
			Failed:     summary.Failed,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %d, skipped %d, failed %d.\n",
		summary.Downloaded, summary.Skipped, summary.Failed)
	if summary.Failed > 0 {
		return fmt.Errorf("%d download(s) failed", summary.Failed)
	}
	return nil
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
