package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"camctl/internal/camera"
)

func newLightCommand(cmdCtx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "light",
		Short: "Control infrared and spotlight illumination",
	}
	cmd.AddCommand(newLightIrCommand(cmdCtx))
	cmd.AddCommand(newLightSpotlightCommand(cmdCtx))
	cmd.AddCommand(newLightLedCommand(cmdCtx))
	return cmd
}

func newLightLedCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:       "led [on|off]",
		Short:     "Show or set the status LED",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			return cmdCtx.withCamera(cmd.Context(), func(client *camera.Client) error {
				if len(args) == 0 {
					state, err := client.GetPowerLed(cmd.Context(), cfg.Camera.Channel)
					if err != nil {
						return err
					}
					if cmdCtx.jsonOutput() {
						return writeJSON(cmd, struct {
							State string `json:"state"`
						}{State: state})
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Status LED: %s\n", strings.ToLower(state))
					return nil
				}

				state := "Off"
				if args[0] == "on" {
					state = "On"
				}
				if err := client.SetPowerLed(cmd.Context(), cfg.Camera.Channel, state); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Status LED %s.\n", args[0])
				return nil
			})
		},
	}
}

func newLightIrCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:       "ir [auto|on|off]",
		Short:     "Show or set the infrared light mode",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"auto", "on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			return cmdCtx.withCamera(cmd.Context(), func(client *camera.Client) error {
				if len(args) == 0 {
					state, err := client.GetIrLights(cmd.Context(), cfg.Camera.Channel)
					if err != nil {
						return err
					}
					if cmdCtx.jsonOutput() {
						return writeJSON(cmd, struct {
							State string `json:"state"`
						}{State: string(state)})
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Infrared: %s\n", strings.ToLower(string(state)))
					return nil
				}

				var state camera.IrState
				switch args[0] {
				case "auto":
					state = "Auto"
				case "on":
					state = "On"
				case "off":
					state = "Off"
				default:
					return fmt.Errorf("expected auto, on or off, got %q", args[0])
				}
				if err := client.SetIrLights(cmd.Context(), cfg.Camera.Channel, state); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Infrared set to %s.\n", args[0])
				return nil
			})
		},
	}
}

func newLightSpotlightCommand(cmdCtx *commandContext) *cobra.Command {
	var brightness int

	cmd := &cobra.Command{
		Use:       "spotlight [on|off]",
		Short:     "Show or set the white spotlight",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			return cmdCtx.withCamera(cmd.Context(), func(client *camera.Client) error {
				led, err := client.GetWhiteLed(cmd.Context(), cfg.Camera.Channel)
				if err != nil {
					return err
				}

				if len(args) == 0 && !cmd.Flags().Changed("brightness") {
					if cmdCtx.jsonOutput() {
						return writeJSON(cmd, led)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Spotlight: %s (brightness %d)\n", onOff(led.State), led.Bright)
					return nil
				}

				if len(args) == 1 {
					state, err := parseOnOff(args[0])
					if err != nil {
						return err
					}
					led.State = state
				}
				if cmd.Flags().Changed("brightness") {
					if brightness < 0 || brightness > 100 {
						return fmt.Errorf("brightness must be between 0 and 100, got %d", brightness)
					}
					led.Bright = brightness
				}
				if err := client.SetWhiteLed(cmd.Context(), led); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Spotlight %s (brightness %d).\n", onOff(led.State), led.Bright)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&brightness, "brightness", 0, "Spotlight brightness, 0 to 100")
	return cmd
}
