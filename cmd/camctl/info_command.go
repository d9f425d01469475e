package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"camctl/internal/camera"
)

func newInfoCommand(cmdCtx *commandContext) *cobra.Command {
	var showStorage bool

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show device model, firmware and storage details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withCamera(cmd.Context(), func(client *camera.Client) error {
				info, err := client.GetDeviceInfo(cmd.Context())
				if err != nil {
					return err
				}

				var storage []camera.Storage
				if showStorage {
					storage, err = client.GetStorageInfo(cmd.Context())
					if err != nil {
						return err
					}
				}

				if cmdCtx.jsonOutput() {
					payload := struct {
						Device  camera.DeviceInfo `json:"device"`
						Storage []camera.Storage  `json:"storage,omitempty"`
					}{Device: info, Storage: storage}
					return writeJSON(cmd, payload)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Model:    %s\n", info.Model)
				fmt.Fprintf(out, "Name:     %s\n", info.Name)
				fmt.Fprintf(out, "Serial:   %s\n", info.Serial)
				fmt.Fprintf(out, "Firmware: %s\n", info.Firmware)
				fmt.Fprintf(out, "Hardware: %s\n", info.Hardware)
				fmt.Fprintf(out, "Channels: %d\n", info.ChannelNum)

				if showStorage {
					if len(storage) == 0 {
						fmt.Fprintln(out, "\nNo storage detected.")
						return nil
					}
					rows := make([][]string, 0, len(storage))
					for _, s := range storage {
						mounted := "no"
						if s.Mounted == 1 {
							mounted = "yes"
						}
						rows = append(rows, []string{
							strconv.Itoa(s.Number),
							s.Type,
							formatBytes(s.CapacityMB * 1024 * 1024),
							formatBytes(s.FreeMB * 1024 * 1024),
							mounted,
						})
					}
					fmt.Fprintln(out)
					fmt.Fprintln(out, renderTable(
						[]string{"Slot", "Type", "Capacity", "Free", "Mounted"},
						rows,
						[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft},
					))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&showStorage, "storage", false, "Include storage slot details")
	return cmd
}
