package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"camctl/internal/camera"
)

func newImageCommand(cmdCtx *commandContext) *cobra.Command {
	var bright, contrast, saturation, hue, sharpen int

	cmd := &cobra.Command{
		Use:   "image",
		Short: "Show or adjust picture settings",
		Long: `Without flags, prints the current brightness, contrast, saturation,
hue and sharpness. Each flag adjusts one value; values range 0 to 255.`,
		Example: `  camctl image
  camctl image --brightness 140 --contrast 120`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			return cmdCtx.withCamera(cmd.Context(), func(client *camera.Client) error {
				settings, err := client.GetImageSettings(cmd.Context(), cfg.Camera.Channel)
				if err != nil {
					return err
				}

				changed := false
				apply := func(flag string, target *int, value int) error {
					if !cmd.Flags().Changed(flag) {
						return nil
					}
					if value < 0 || value > 255 {
						return fmt.Errorf("--%s must be between 0 and 255, got %d", flag, value)
					}
					*target = value
					changed = true
					return nil
				}
				if err := apply("brightness", &settings.Bright, bright); err != nil {
					return err
				}
				if err := apply("contrast", &settings.Contrast, contrast); err != nil {
					return err
				}
				if err := apply("saturation", &settings.Saturation, saturation); err != nil {
					return err
				}
				if err := apply("hue", &settings.Hue, hue); err != nil {
					return err
				}
				if err := apply("sharpness", &settings.Sharpen, sharpen); err != nil {
					return err
				}

				if changed {
					if err := client.SetImageSettings(cmd.Context(), settings); err != nil {
						return err
					}
				}

				if cmdCtx.jsonOutput() {
					return writeJSON(cmd, settings)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Brightness: %d\n", settings.Bright)
				fmt.Fprintf(out, "Contrast:   %d\n", settings.Contrast)
				fmt.Fprintf(out, "Saturation: %d\n", settings.Saturation)
				fmt.Fprintf(out, "Hue:        %d\n", settings.Hue)
				fmt.Fprintf(out, "Sharpness:  %d\n", settings.Sharpen)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&bright, "brightness", 0, "Picture brightness, 0 to 255")
	cmd.Flags().IntVar(&contrast, "contrast", 0, "Picture contrast, 0 to 255")
	cmd.Flags().IntVar(&saturation, "saturation", 0, "Picture saturation, 0 to 255")
	cmd.Flags().IntVar(&hue, "hue", 0, "Picture hue, 0 to 255")
	cmd.Flags().IntVar(&sharpen, "sharpness", 0, "Picture sharpness, 0 to 255")
	return cmd
}
