package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"camctl/internal/camera"
)

func newPtzCommand(cmdCtx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ptz",
		Short: "Pan, tilt and zoom control",
	}
	cmd.AddCommand(newPtzPresetsCommand(cmdCtx))
	cmd.AddCommand(newPtzGotoCommand(cmdCtx))
	cmd.AddCommand(newPtzMoveCommand(cmdCtx))
	cmd.AddCommand(newPtzStopCommand(cmdCtx))
	return cmd
}

func newPtzPresetsCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List stored camera positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			return cmdCtx.withCamera(cmd.Context(), func(client *camera.Client) error {
				presets, err := client.GetPtzPresets(cmd.Context(), cfg.Camera.Channel)
				if err != nil {
					return err
				}
				if cmdCtx.jsonOutput() {
					return writeJSON(cmd, presets)
				}
				if len(presets) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No presets stored.")
					return nil
				}
				rows := make([][]string, 0, len(presets))
				for _, p := range presets {
					rows = append(rows, []string{strconv.Itoa(p.ID), p.Name})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Name"},
					rows,
					[]columnAlignment{alignRight, alignLeft},
				))
				return nil
			})
		},
	}
}

func newPtzGotoCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "goto <preset-id>",
		Short: "Drive the camera to a stored position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("preset id must be a number, got %q", args[0])
			}
			return cmdCtx.withCamera(cmd.Context(), func(client *camera.Client) error {
				if err := client.PtzToPreset(cmd.Context(), cfg.Camera.Channel, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moving to preset %d.\n", id)
				return nil
			})
		},
	}
}

func newPtzMoveCommand(cmdCtx *commandContext) *cobra.Command {
	var speed int
	var duration time.Duration

	cmd := &cobra.Command{
		Use:       "move {left|right|up|down|zoom-in|zoom-out}",
		Short:     "Move the camera for a fixed duration",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"left", "right", "up", "down", "zoom-in", "zoom-out"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			ops := map[string]string{
				"left":     "Left",
				"right":    "Right",
				"up":       "Up",
				"down":     "Down",
				"zoom-in":  "ZoomInc",
				"zoom-out": "ZoomDec",
			}
			op, ok := ops[args[0]]
			if !ok {
				return fmt.Errorf("unknown direction %q", args[0])
			}
			if speed < 1 || speed > 64 {
				return fmt.Errorf("speed must be between 1 and 64, got %d", speed)
			}
			return cmdCtx.withCamera(cmd.Context(), func(client *camera.Client) error {
				if err := client.PtzMove(cmd.Context(), cfg.Camera.Channel, op, speed); err != nil {
					return err
				}
				select {
				case <-time.After(duration):
				case <-cmd.Context().Done():
				}
				// Stop must go out even when the command context was canceled.
				stopCtx, cancel := context.WithTimeout(context.WithoutCancel(cmd.Context()), 5*time.Second)
				defer cancel()
				return client.PtzStop(stopCtx, cfg.Camera.Channel)
			})
		},
	}

	cmd.Flags().IntVar(&speed, "speed", 32, "Movement speed, 1 to 64")
	cmd.Flags().DurationVar(&duration, "for", time.Second, "How long to move before stopping")
	return cmd
}

func newPtzStopCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Halt all camera movement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			return cmdCtx.withCamera(cmd.Context(), func(client *camera.Client) error {
				return client.PtzStop(cmd.Context(), cfg.Camera.Channel)
			})
		},
	}
}
