package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"spool/internal/pipeline"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 12
	statusIndent     = "  "
	detailWidth      = 96
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", message)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func printRunSummary(out io.Writer, summary *pipeline.Summary) {
	colorize := shouldColorize(out)

	verdict := "finished"
	if summary.Aborted {
		verdict = "aborted"
	}
	fmt.Fprintf(out, "Run %s (%s) %s in %s\n", summary.RunID, summary.Kind, verdict, summary.Duration().Round(time.Second))

	fmt.Fprintln(out, renderStatusLine("Processed", statusOK, strconv.Itoa(summary.Processed), colorize))
	fmt.Fprintln(out, renderStatusLine("Skipped", statusInfo, strconv.Itoa(summary.Skipped), colorize))
	failedKind := statusOK
	if summary.Failed > 0 {
		failedKind = statusError
	}
	fmt.Fprintln(out, renderStatusLine("Failed", failedKind, strconv.Itoa(summary.Failed), colorize))

	if failures := summary.Failures(); len(failures) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Failed items:")
		fmt.Fprintln(out, renderFailureTable(failures))
	}
}

func renderFailureTable(failures []pipeline.ItemOutcome) string {
	rows := make([][]string, 0, len(failures))
	for _, failure := range failures {
		rows = append(rows, []string{
			failure.Ref,
			string(failure.Failure),
			truncateDetail(failure.Detail, detailWidth),
		})
	}
	return renderTable([]string{"REF", "KIND", "DETAIL"}, rows, nil)
}

func truncateDetail(detail string, width int) string {
	if width <= 3 {
		return detail
	}
	runes := []rune(detail)
	if len(runes) <= width {
		return detail
	}
	return string(runes[:width-3]) + "..."
}
