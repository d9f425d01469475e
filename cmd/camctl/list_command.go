package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"camctl/internal/camera"
	"camctl/internal/catalog"
)

func newListCommand(cmdCtx *commandContext) *cobra.Command {
	var selFlags selectionFlags
	var stream string
	var showSkipped bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recordings on the camera without downloading",
		Example: `  camctl list --date yesterday
  camctl list --person --vehicle --since 12h
  camctl list --all --latest 10 --json`,
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
			if stream != "" {
				cfg.Download.Stream = stream
			}

			return cmdCtx.withCamera(cmd.Context(), func(client *camera.Client) error {
				selected, skipped, err := collectRecordings(cmd.Context(), client, cfg, logger, window, criteria)
				if err != nil {
					return err
				}
				return printEntries(cmd, cmdCtx, selected, skipped, showSkipped)
			})
		},
	}

	selFlags.register(cmd)
	cmd.Flags().StringVar(&stream, "stream", "", "Recording stream to search: main or sub")
	cmd.Flags().BoolVar(&showSkipped, "show-skipped", false, "Also list index entries that could not be classified")
	return cmd
}

func printEntries(cmd *cobra.Command, cmdCtx *commandContext, entries []catalog.Entry, skipped []catalog.Skip, showSkipped bool) error {
	if cmdCtx.jsonOutput() {
		type entryRow struct {
			Source   string   `json:"source"`
			Start    string   `json:"start"`
			End      string   `json:"end"`
			Duration string   `json:"duration"`
			Size     int64    `json:"size_bytes"`
			Triggers []string `json:"triggers"`
		}
		type skipRow struct {
			Name   string `json:"name"`
			Reason string `json:"reason"`
		}
		payload := struct {
			Recordings []entryRow `json:"recordings"`
			Skipped    []skipRow  `json:"skipped,omitempty"`
		}{Recordings: make([]entryRow, 0, len(entries))}
		for _, entry := range entries {
			payload.Recordings = append(payload.Recordings, entryRow{
				Source:   entry.Source,
				Start:    entry.Start.Format(time.RFC3339),
				End:      entry.End.Format(time.RFC3339),
				Duration: entry.Duration().String(),
				Size:     entry.Size,
				Triggers: entry.Triggers.Names(),
			})
		}
		if showSkipped {
			for _, skip := range skipped {
				payload.Skipped = append(payload.Skipped, skipRow{Name: skip.Name, Reason: skip.Reason})
			}
		}
		return writeJSON(cmd, payload)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recordings matched.")
	} else {
		rows := make([][]string, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, []string{
				entry.Start.Format("2006-01-02 15:04:05"),
				entry.Duration().String(),
				entry.Triggers.String(),
				formatBytes(entry.Size),
				entry.Source,
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(
			[]string{"Start", "Duration", "Triggers", "Size", "Source"},
			rows,
			[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight, alignLeft},
		))
		fmt.Fprintf(cmd.OutOrStdout(), "%d recording(s).\n", len(entries))
	}

	if showSkipped && len(skipped) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d entry(ies) skipped:\n", len(skipped))
		for _, skip := range skipped {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", skip.Name, skip.Reason)
		}
	}
	return nil
}
