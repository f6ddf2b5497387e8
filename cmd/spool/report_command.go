package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"spool/internal/journal"
)

func newReportCommand(cctx *commandContext) *cobra.Command {
	var runFlag string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the failure report for a run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			jrnl, err := journal.Open(cfg.Paths.JournalPath)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer jrnl.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			id := strings.TrimSpace(runFlag)
			if id == "" {
				latest, err := jrnl.LatestRunID(ctx)
				if err != nil {
					return fmt.Errorf("find latest run: %w", err)
				}
				if latest == "" {
					fmt.Fprintln(out, "No runs recorded yet.")
					return nil
				}
				id = latest
			}

			run, err := jrnl.Run(ctx, id)
			if errors.Is(err, journal.ErrNotFound) {
				return fmt.Errorf("run %s not found", id)
			}
			if err != nil {
				return fmt.Errorf("load run: %w", err)
			}

			fmt.Fprintf(out, "Run %s (%s, %s) started %s\n", run.ID, run.Kind, run.Status, run.StartedAt.Local().Format(time.RFC3339))
			fmt.Fprintf(out, "%sTotal: %d  Processed: %d  Skipped: %d  Failed: %d\n",
				statusIndent, run.Total, run.Processed, run.Skipped, run.Failed)

			failures, err := jrnl.Failures(ctx, id)
			if err != nil {
				return fmt.Errorf("load failures: %w", err)
			}
			if len(failures) == 0 {
				fmt.Fprintln(out, "No failures recorded.")
				return nil
			}

			rows := make([][]string, 0, len(failures))
			for _, failure := range failures {
				rows = append(rows, []string{
					failure.ItemRef,
					failure.FailureKind,
					truncateDetail(failure.Detail, detailWidth),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"REF", "KIND", "DETAIL"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().StringVar(&runFlag, "run", "", "Run identifier (defaults to the most recent run)")
	return cmd
}
