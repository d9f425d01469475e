package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"camctl/internal/camera"
)

func newDetectCommand(cmdCtx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Inspect and adjust motion and AI detection",
	}
	cmd.AddCommand(newDetectStatusCommand(cmdCtx))
	cmd.AddCommand(newDetectMotionCommand(cmdCtx))
	cmd.AddCommand(newDetectAiCommand(cmdCtx))
	return cmd
}

func newDetectStatusCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show current motion and AI detection settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			return cmdCtx.withCamera(cmd.Context(), func(client *camera.Client) error {
				motion, err := client.GetMotion(cmd.Context(), cfg.Camera.Channel)
				if err != nil {
					return err
				}
				ai, err := client.GetAiDetect(cmd.Context(), cfg.Camera.Channel)
				if err != nil {
					return err
				}

				if cmdCtx.jsonOutput() {
					return writeJSON(cmd, struct {
						Motion camera.MotionConfig  `json:"motion"`
						Ai     camera.AiDetectState `json:"ai"`
					}{Motion: motion, Ai: ai})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Motion:      %s (sensitivity %d)\n", onOff(motion.Enabled), motion.Sensitivity)
				fmt.Fprintf(out, "AI person:   %s\n", onOff(ai.People))
				fmt.Fprintf(out, "AI vehicle:  %s\n", onOff(ai.Vehicle))
				fmt.Fprintf(out, "AI animal:   %s\n", onOff(ai.DogCat))
				fmt.Fprintf(out, "AI face:     %s\n", onOff(ai.Face))
				return nil
			})
		},
	}
}

func newDetectMotionCommand(cmdCtx *commandContext) *cobra.Command {
	var sensitivity int

	cmd := &cobra.Command{
		Use:       "motion {on|off}",
		Short:     "Enable or disable motion detection",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			enabled, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			return cmdCtx.withCamera(cmd.Context(), func(client *camera.Client) error {
				motion, err := client.GetMotion(cmd.Context(), cfg.Camera.Channel)
				if err != nil {
					return err
				}
				motion.Enabled = enabled
				if cmd.Flags().Changed("sensitivity") {
					if sensitivity < 1 || sensitivity > 50 {
						return fmt.Errorf("sensitivity must be between 1 and 50, got %d", sensitivity)
					}
					motion.Sensitivity = sensitivity
				}
				if err := client.SetMotion(cmd.Context(), motion); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Motion detection %s.\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&sensitivity, "sensitivity", 0, "Motion sensitivity, 1 (low) to 50 (high)")
	return cmd
}

func newDetectAiCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:       "ai <type> {on|off}",
		Short:     "Toggle one AI detection type: person, vehicle, animal, face",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"person", "vehicle", "animal", "face"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			enabled, err := parseOnOff(args[1])
			if err != nil {
				return err
			}
			return cmdCtx.withCamera(cmd.Context(), func(client *camera.Client) error {
				state, err := client.GetAiDetect(cmd.Context(), cfg.Camera.Channel)
				if err != nil {
					return err
				}
				switch args[0] {
				case "person":
					state.People = enabled
				case "vehicle":
					state.Vehicle = enabled
				case "animal":
					state.DogCat = enabled
				case "face":
					state.Face = enabled
				default:
					return fmt.Errorf("unknown AI detection type %q", args[0])
				}
				if err := client.SetAiDetect(cmd.Context(), state); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "AI %s detection %s.\n", args[0], args[1])
				return nil
			})
		},
	}
}

func onOff(v int) string {
	if v == 1 {
		return "on"
	}
	return "off"
}

func parseOnOff(arg string) (int, error) {
	switch arg {
	case "on":
		return 1, nil
	case "off":
		return 0, nil
	default:
		return 0, fmt.Errorf("expected on or off, got %q", arg)
	}
}
