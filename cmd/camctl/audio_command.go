package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"camctl/internal/camera"
)

func newAudioCommand(cmdCtx *commandContext) *cobra.Command {
	var volume int
	var mute string

	cmd := &cobra.Command{
		Use:   "audio",
		Short: "Show or adjust audio settings",
		Example: `  camctl audio
  camctl audio --volume 80
  camctl audio --mute on`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			return cmdCtx.withCamera(cmd.Context(), func(client *camera.Client) error {
				audio, err := client.GetAudio(cmd.Context(), cfg.Camera.Channel)
				if err != nil {
					return err
				}

				changed := false
				if cmd.Flags().Changed("volume") {
					if volume < 0 || volume > 100 {
						return fmt.Errorf("volume must be between 0 and 100, got %d", volume)
					}
					audio.Volume = volume
					changed = true
				}
				if cmd.Flags().Changed("mute") {
					state, err := parseOnOff(mute)
					if err != nil {
						return err
					}
					audio.Mute = state
					changed = true
				}
				if changed {
					if err := client.SetAudio(cmd.Context(), audio); err != nil {
						return err
					}
				}

				if cmdCtx.jsonOutput() {
					return writeJSON(cmd, audio)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Volume: %d\nMute:   %s\n", audio.Volume, onOff(audio.Mute))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&volume, "volume", 0, "Audio volume, 0 to 100")
	cmd.Flags().StringVar(&mute, "mute", "", "Mute audio: on or off")
	return cmd
}
