package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"camctl/internal/camera"
)

func newSnapshotCommand(cmdCtx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Capture a still image from the live stream",
		Example: `  camctl snapshot
  camctl snapshot -o front-door.jpg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			return cmdCtx.withCamera(cmd.Context(), func(client *camera.Client) error {
				data, err := client.Snapshot(cmd.Context(), cfg.Camera.Channel)
				if err != nil {
					return err
				}

				path := output
				if path == "" {
					path = fmt.Sprintf("snapshot_%s.jpg", time.Now().Format("20060102_150405"))
				}
				if dir := filepath.Dir(path); dir != "." {
					if err := os.MkdirAll(dir, 0o755); err != nil {
						return fmt.Errorf("create snapshot directory: %w", err)
					}
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("write snapshot: %w", err)
				}

				if cmdCtx.jsonOutput() {
					return writeJSON(cmd, struct {
						Path string `json:"path"`
						Size int    `json:"size_bytes"`
					}{Path: path, Size: len(data)})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s).\n", path, formatBytes(int64(len(data))))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Snapshot file path (default snapshot_<timestamp>.jpg)")
	return cmd
}
