package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spool/internal/preflight"
)

func newDoctorCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools, directories, and credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			colorize := shouldColorize(stdout)

			for _, line := range renderSectionHeader("Tools", colorize) {
				fmt.Fprintln(stdout, line)
			}
			for _, status := range preflight.CheckTools(cfg) {
				if status.Available {
					message := "Ready"
					if status.Command != "" {
						message = fmt.Sprintf("Ready (command: %s)", status.Command)
					}
					fmt.Fprintln(stdout, renderStatusLine(status.Name, statusOK, message, colorize))
					continue
				}
				kind := statusError
				if status.Optional {
					kind = statusWarn
				}
				fmt.Fprintln(stdout, renderStatusLine(status.Name, kind, status.Detail, colorize))
			}

			fmt.Fprintln(stdout)
			for _, line := range renderSectionHeader("Environment", colorize) {
				fmt.Fprintln(stdout, line)
			}
			for _, result := range preflight.RunAll(cfg) {
				kind := statusError
				if result.Passed {
					kind = statusOK
				}
				fmt.Fprintln(stdout, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}
			return nil
		},
	}
}
