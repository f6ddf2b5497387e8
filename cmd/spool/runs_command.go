package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"spool/internal/journal"
)

func newRunsCommand(cctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent runs from the journal",
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

			runs, err := jrnl.RecentRuns(cmd.Context(), limitFlag)
			if err != nil {
				return fmt.Errorf("load runs: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.Kind,
					run.Status,
					strconv.Itoa(run.Total),
					strconv.Itoa(run.Processed),
					strconv.Itoa(run.Skipped),
					strconv.Itoa(run.Failed),
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					runDuration(run),
				})
			}
			aligns := []columnAlignment{
				alignLeft, alignLeft, alignLeft,
				alignRight, alignRight, alignRight, alignRight,
				alignLeft, alignRight,
			}
			fmt.Fprintln(out, renderTable(
				[]string{"RUN", "KIND", "STATUS", "TOTAL", "OK", "SKIP", "FAIL", "STARTED", "DURATION"},
				rows, aligns))
			return nil
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 10, "Maximum number of runs to list")
	return cmd
}

func runDuration(run journal.Run) string {
	if run.FinishedAt.IsZero() || run.FinishedAt.Before(run.StartedAt) {
		return "-"
	}
	return run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String()
}
