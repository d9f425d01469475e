package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag, hostFlag, userFlag, passwordFlag string
	channelFlag := -1
	var jsonFlag bool

	ctx := newCommandContext(&configFlag, &hostFlag, &userFlag, &passwordFlag, &channelFlag, &jsonFlag)

	rootCmd := &cobra.Command{
		Use:           "camctl",
		Short:         "Retrieve and control camera recordings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&hostFlag, "host", "H", "", "Camera address (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "Camera user (overrides config)")
	rootCmd.PersistentFlags().StringVar(&passwordFlag, "password", "", "Camera password (overrides config)")
	rootCmd.PersistentFlags().IntVar(&channelFlag, "channel", -1, "Camera channel (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Output as JSON")

	rootCmd.AddCommand(newDownloadCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newInfoCommand(ctx))
	rootCmd.AddCommand(newSnapshotCommand(ctx))
	rootCmd.AddCommand(newDetectCommand(ctx))
	rootCmd.AddCommand(newLightCommand(ctx))
	rootCmd.AddCommand(newImageCommand(ctx))
	rootCmd.AddCommand(newAudioCommand(ctx))
	rootCmd.AddCommand(newPtzCommand(ctx))
	rootCmd.AddCommand(newSystemCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

// shouldSkipConfig reports whether a command opted out of config loading
// (config init must run before any config file exists).
func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
