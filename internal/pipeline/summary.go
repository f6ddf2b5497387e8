package pipeline

import "time"

// ItemOutcome records how a single work-list item ended up. Every item
// produces exactly one outcome, including items cut short by cancellation.
type ItemOutcome struct {
	Ref     string
	Key     string
	State   State
	Failure FailureKind
	Detail  string
	Rows    int
	Gated   time.Duration
	Elapsed time.Duration
}

// Failed reports whether the item ended in a classified failure. Aborted
// items are not failures; they were never given the chance to finish.
func (o ItemOutcome) Failed() bool {
	return o.Failure != FailureNone
}

// Summary aggregates a run for the journal, notifications, and the
// end-of-run report.
type Summary struct {
	RunID      string
	Kind       string
	Model      string
	Worklist   string
	StartedAt  time.Time
	FinishedAt time.Time
	Total      int
	Processed  int
	Skipped    int
	Failed     int
	Aborted    bool
	Outcomes   []ItemOutcome
}

// Duration returns the wall-clock length of the run.
func (s *Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// Failures returns the outcomes that ended in a classified failure, in
// work-list order.
func (s *Summary) Failures() []ItemOutcome {
	var failed []ItemOutcome
	for _, outcome := range s.Outcomes {
		if outcome.Failed() {
			failed = append(failed, outcome)
		}
	}
	return failed
}

func (s *Summary) record(outcome ItemOutcome) {
	s.Outcomes = append(s.Outcomes, outcome)
	switch {
	case outcome.Failed():
		s.Failed++
	case outcome.State == StateSkipped:
		s.Skipped++
	case outcome.State == StatePersisted:
		s.Processed++
	}
}
