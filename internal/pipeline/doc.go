// Package pipeline drives a batch run end to end: it loads the work list,
// resolves each reference to its canonical filename, skips items the dataset
// already holds, gates generation-service calls through the rate limiter,
// fetches media, submits it for analysis, repairs and validates the returned
// rows, and appends them to the dataset.
//
// The pipeline owns run-level bookkeeping (journal rows, notifications, the
// end-of-run summary) and the failure classification for each item. External
// effects reach it through narrow interfaces so tests can substitute fakes
// for the fetch tool, the generation service, and storage.
package pipeline
