package main

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"camctl/internal/camera"
)

func newSystemCommand(cmdCtx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "system",
		Short: "Device maintenance operations",
	}
	cmd.AddCommand(newSystemRebootCommand(cmdCtx))
	cmd.AddCommand(newSystemTimeCommand(cmdCtx))
	return cmd
}

func newSystemRebootCommand(cmdCtx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reboot",
		Short: "Restart the device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				fmt.Fprint(cmd.OutOrStdout(), "Reboot the camera? [y/N] ")
				reader := bufio.NewReader(cmd.InOrStdin())
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				answer := strings.ToLower(strings.TrimSpace(line))
				if answer != "y" && answer != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}
			return cmdCtx.withCamera(cmd.Context(), func(client *camera.Client) error {
				if err := client.Reboot(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Reboot requested. The device will be unavailable for a minute or two.")
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newSystemTimeCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "time",
		Short: "Show the device clock and its drift from this host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withCamera(cmd.Context(), func(client *camera.Client) error {
				deviceTime, err := client.GetTime(cmd.Context())
				if err != nil {
					return err
				}
				now := time.Now()
				drift := deviceTime.Sub(now).Round(time.Second)

				if cmdCtx.jsonOutput() {
					return writeJSON(cmd, struct {
						Device string `json:"device_time"`
						Host   string `json:"host_time"`
						Drift  string `json:"drift"`
					}{
						Device: deviceTime.Format(time.RFC3339),
						Host:   now.Format(time.RFC3339),
						Drift:  drift.String(),
					})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Device: %s\n", deviceTime.Format(time.RFC3339))
				fmt.Fprintf(out, "Host:   %s\n", now.Format(time.RFC3339))
				fmt.Fprintf(out, "Drift:  %s\n", drift)
				return nil
			})
		},
	}
}
