package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string

	cctx := newCommandContext(&configFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "spool",
		Short:         "Batch video analysis pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := cctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override the configured log level (debug, info, warn, error)")

	rootCmd.AddCommand(newRunCommand(cctx))
	rootCmd.AddCommand(newReportCommand(cctx))
	rootCmd.AddCommand(newRunsCommand(cctx))
	rootCmd.AddCommand(newLogsCommand(cctx))
	rootCmd.AddCommand(newDoctorCommand(cctx))
	rootCmd.AddCommand(newDecodeCommand())
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
