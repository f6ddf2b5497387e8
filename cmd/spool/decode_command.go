package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"spool/internal/parse"
	"spool/internal/records"
)

// decodeKeyPlaceholder stands in for the derived key when decoding a line
// outside a run.
const decodeKeyPlaceholder = "example.mp4"

func newDecodeCommand() *cobra.Command {
	var analysisFlag string

	cmd := &cobra.Command{
		Use:   "decode <line>",
		Short: "Run one model output line through the parser chain",
		Long: "Decode normalizes, tokenizes, repairs, and validates a single line the\n" +
			"way a run would, then prints the resulting record column by column.\n" +
			"Useful when tuning prompts against real model output.",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := records.ForKind(analysisFlag)
			if err != nil {
				return err
			}

			line := strings.TrimSpace(parse.Normalize(args[0]))
			if line == "" || strings.HasPrefix(line, "```") {
				return errors.New("line is empty or a code fence; a run would skip it")
			}
			fields := parse.Tokenize(line)
			out := cmd.OutOrStdout()
			if schema.IsHeaderRow(fields) {
				fmt.Fprintln(out, "Header row; a run would skip it.")
				return nil
			}

			reconciled, err := parse.Reconcile(fields, schema.Line())
			if err != nil {
				return fmt.Errorf("reconcile %d fields: %w", len(fields), err)
			}
			rec, err := schema.Materialize(decodeKeyPlaceholder, reconciled)
			if err != nil {
				return fmt.Errorf("materialize: %w", err)
			}

			rows := make([][]string, 0, len(schema.Columns))
			for i, column := range schema.Columns {
				rows = append(rows, []string{column, rec.Values[i]})
			}
			fmt.Fprintln(out, renderTable([]string{"COLUMN", "VALUE"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().StringVarP(&analysisFlag, "analysis", "a", "", "Analysis kind: script or segments")
	_ = cmd.MarkFlagRequired("analysis")
	return cmd
}
